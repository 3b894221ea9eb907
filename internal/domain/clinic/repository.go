// Package clinic declares the typed view over the stored collections that
// every use case works against.
package clinic

import (
	"context"

	"github.com/BruksfildServices01/clinica-turnos/internal/models"
)

// CollectionNames lists every stored collection, in backup order.
var CollectionNames = []string{
	"pacientes",
	"turnos",
	"pagos",
	"agenda",
	"historias_clinicas",
	"usuarios",
}

type Repository interface {
	// -------- Patients --------
	Patients(ctx context.Context) ([]models.Patient, error)
	SavePatients(ctx context.Context, patients []models.Patient) error

	// -------- Appointments --------
	Appointments(ctx context.Context) ([]models.Appointment, error)
	SaveAppointments(ctx context.Context, appointments []models.Appointment) error

	// -------- Payments --------
	Payments(ctx context.Context) ([]models.Payment, error)
	SavePayments(ctx context.Context, payments []models.Payment) error

	// -------- Agenda --------
	Agenda(ctx context.Context) (models.Agenda, error)
	SaveAgenda(ctx context.Context, agenda models.Agenda) error

	// -------- Clinical records --------
	ClinicalRecords(ctx context.Context) ([]models.ClinicalRecord, error)
	SaveClinicalRecords(ctx context.Context, records []models.ClinicalRecord) error

	// -------- Users --------
	Users(ctx context.Context) ([]models.User, error)
	SaveUsers(ctx context.Context, users []models.User) error

	// -------- Raw access (backups, downloads) --------
	Raw(ctx context.Context, collection string) ([]byte, error)

	// Atomic runs fn with exclusive write access. Saves made through tx
	// are committed together: if fn fails after some of them, the
	// collections already written are restored. Not reentrant.
	Atomic(ctx context.Context, fn func(tx Repository) error) error
}
