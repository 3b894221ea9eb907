package appointment

import (
	"context"

	"github.com/BruksfildServices01/clinica-turnos/internal/audit"
	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/appointment"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/clinic"
	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
	"github.com/BruksfildServices01/clinica-turnos/internal/timezone"
)

type ReceivePatientInput struct {
	DNIPaciente string
	Fecha       string
	Hora        string
}

// ReceivePatient checks a patient in at the front desk. Any current status
// is accepted.
type ReceivePatient struct {
	repo  clinic.Repository
	audit *audit.Dispatcher
	clock timezone.Clock
}

func NewReceivePatient(
	repo clinic.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *ReceivePatient {
	return &ReceivePatient{
		repo:  repo,
		audit: audit,
		clock: clock,
	}
}

func (uc *ReceivePatient) Execute(
	ctx context.Context,
	actor authz.Actor,
	in ReceivePatientInput,
) (*models.Appointment, error) {

	if err := actor.Can(authz.ResourceAppointment, authz.ActionReceive); err != nil {
		return nil, err
	}

	if in.DNIPaciente == "" || in.Fecha == "" || in.Hora == "" {
		return nil, httperr.Validation("missing_field", "DNI, fecha y hora son requeridos.")
	}

	var received models.Appointment

	err := uc.repo.Atomic(ctx, func(tx clinic.Repository) error {
		list, err := tx.Appointments(ctx)
		if err != nil {
			return err
		}

		i := appointment.Find(list, in.DNIPaciente, in.Fecha, in.Hora)
		if i < 0 {
			return errAppointmentNotFound()
		}

		appointment.Receive(&list[i], uc.clock.Now())
		received = list[i]

		return tx.SaveAppointments(ctx, list)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(event(actor, "patient_received", received, nil))

	return &received, nil
}
