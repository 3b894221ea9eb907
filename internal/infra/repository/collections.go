package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/BruksfildServices01/clinica-turnos/internal/domain/clinic"
	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
	"github.com/BruksfildServices01/clinica-turnos/internal/infra/store"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
)

// Collections is the clinic.Repository over any store.Store. Each read
// decodes the whole collection; each write re-encodes and replaces it.
type Collections struct {
	store store.Store
	mu    *sync.Mutex
}

func NewCollections(s store.Store) *Collections {
	return &Collections{store: s, mu: &sync.Mutex{}}
}

// --------------------------------------------------
// Codec
// --------------------------------------------------

func load[T any](ctx context.Context, s store.Store, c store.Collection, out *T) error {
	raw, err := s.Load(ctx, c)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", c, err)
	}
	return nil
}

func save(ctx context.Context, s store.Store, c store.Collection, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", c, err)
	}
	return s.Save(ctx, c, bytes.TrimRight(buf.Bytes(), "\n"))
}

// --------------------------------------------------
// Patients
// --------------------------------------------------

func (r *Collections) Patients(ctx context.Context) ([]models.Patient, error) {
	out := []models.Patient{}
	if err := load(ctx, r.store, store.Patients, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Collections) SavePatients(ctx context.Context, patients []models.Patient) error {
	// age is derived on read and never persisted
	clean := make([]models.Patient, len(patients))
	for i, p := range patients {
		p.Edad = nil
		clean[i] = p
	}
	return save(ctx, r.store, store.Patients, clean)
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (r *Collections) Appointments(ctx context.Context) ([]models.Appointment, error) {
	out := []models.Appointment{}
	if err := load(ctx, r.store, store.Appointments, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Collections) SaveAppointments(ctx context.Context, appointments []models.Appointment) error {
	if appointments == nil {
		appointments = []models.Appointment{}
	}
	return save(ctx, r.store, store.Appointments, appointments)
}

// --------------------------------------------------
// Payments
// --------------------------------------------------

func (r *Collections) Payments(ctx context.Context) ([]models.Payment, error) {
	out := []models.Payment{}
	if err := load(ctx, r.store, store.Payments, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Collections) SavePayments(ctx context.Context, payments []models.Payment) error {
	if payments == nil {
		payments = []models.Payment{}
	}
	return save(ctx, r.store, store.Payments, payments)
}

// --------------------------------------------------
// Agenda
// --------------------------------------------------

func (r *Collections) Agenda(ctx context.Context) (models.Agenda, error) {
	out := models.Agenda{}
	if err := load(ctx, r.store, store.Agenda, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Collections) SaveAgenda(ctx context.Context, agenda models.Agenda) error {
	if agenda == nil {
		agenda = models.Agenda{}
	}
	return save(ctx, r.store, store.Agenda, agenda)
}

// --------------------------------------------------
// Clinical records
// --------------------------------------------------

func (r *Collections) ClinicalRecords(ctx context.Context) ([]models.ClinicalRecord, error) {
	out := []models.ClinicalRecord{}
	if err := load(ctx, r.store, store.ClinicalRecords, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Collections) SaveClinicalRecords(ctx context.Context, records []models.ClinicalRecord) error {
	if records == nil {
		records = []models.ClinicalRecord{}
	}
	return save(ctx, r.store, store.ClinicalRecords, records)
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *Collections) Users(ctx context.Context) ([]models.User, error) {
	out := []models.User{}
	if err := load(ctx, r.store, store.Users, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Collections) SaveUsers(ctx context.Context, users []models.User) error {
	if users == nil {
		users = []models.User{}
	}
	return save(ctx, r.store, store.Users, users)
}

// --------------------------------------------------
// Raw
// --------------------------------------------------

func (r *Collections) Raw(ctx context.Context, collection string) ([]byte, error) {
	c, err := store.Parse(collection)
	if err != nil {
		return nil, httperr.NotFoundErr("collection_not_found", "Archivo no encontrado.")
	}
	raw, err := r.store.Load(ctx, c)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return c.Empty(), nil
	}
	return raw, nil
}

// --------------------------------------------------
// Atomic
// --------------------------------------------------

func (r *Collections) Atomic(ctx context.Context, fn func(tx clinic.Repository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ts, ok := r.store.(store.Transactional); ok {
		return ts.InTx(ctx, func(tx store.Store) error {
			return fn(&Collections{store: tx, mu: r.mu})
		})
	}

	j := newJournal(r.store)
	if err := fn(&Collections{store: j, mu: r.mu}); err != nil {
		if rbErr := j.rollback(ctx); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}
	return nil
}

// Compile-time check
var _ clinic.Repository = (*Collections)(nil)
