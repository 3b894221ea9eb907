package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinica-turnos/internal/domain/clinic"
	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
	"github.com/BruksfildServices01/clinica-turnos/internal/infra/store"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
)

func TestAppointmentsKeepStoredEstado(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	require.NoError(t, s.Save(ctx, store.Appointments, []byte(`[{"medico":"Dr. Lopez","hora":"09:00","fecha":"2024-06-10","dni_paciente":"30111222"}]`)))

	list, err := NewCollections(s).Appointments(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Empty(t, list[0].Estado)
}

func TestSaveWritesIndentedJSON(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	repo := NewCollections(s)

	require.NoError(t, repo.SavePayments(ctx, nil))

	raw, err := s.Load(ctx, store.Payments)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))

	require.NoError(t, repo.SaveAgenda(ctx, models.Agenda{"Dr. Lopez": {"LUNES": {"09:00"}}}))
	raw, err = s.Load(ctx, store.Agenda)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n    \"Dr. Lopez\"")
}

func TestRaw(t *testing.T) {
	ctx := context.Background()
	repo := NewCollections(store.NewMemoryStore())

	raw, err := repo.Raw(ctx, "agenda")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(raw))

	_, err = repo.Raw(ctx, "secrets")
	kind, ok := httperr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, httperr.KindNotFound, kind)
}

func TestAtomicRestoresEarlierWritesOnFailure(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	repo := NewCollections(s)

	require.NoError(t, repo.SavePayments(ctx, []models.Payment{{ID: 1}}))
	before, err := s.Load(ctx, store.Payments)
	require.NoError(t, err)

	boom := errors.New("write failed")
	s.FailOn = map[store.Collection]error{store.Appointments: boom}

	err = repo.Atomic(ctx, func(tx clinic.Repository) error {
		if err := tx.SavePayments(ctx, []models.Payment{{ID: 1}, {ID: 2}}); err != nil {
			return err
		}
		return tx.SaveAppointments(ctx, []models.Appointment{{Hora: "09:00"}})
	})
	assert.ErrorIs(t, err, boom)

	after, err := s.Load(ctx, store.Payments)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestAtomicRestoresCollectionThatDidNotExist(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	repo := NewCollections(s)

	boom := errors.New("rule violated")
	err := repo.Atomic(ctx, func(tx clinic.Repository) error {
		require.NoError(t, tx.SavePatients(ctx, []models.Patient{{DNI: "30111222"}}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	patients, err := repo.Patients(ctx)
	require.NoError(t, err)
	assert.Empty(t, patients)
}
