package appointment

import (
	"context"

	"github.com/BruksfildServices01/clinica-turnos/internal/audit"
	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/appointment"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/clinic"
	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
)

type UpdateStatusInput struct {
	DNIPaciente string
	Fecha       string
	Hora        string
	Estado      string
}

// UpdateAppointmentStatus is the consulting-room status change. It bypasses
// the front-desk pipeline, so a pending turno may go straight to atendido.
type UpdateAppointmentStatus struct {
	repo  clinic.Repository
	audit *audit.Dispatcher
}

func NewUpdateAppointmentStatus(
	repo clinic.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointmentStatus {
	return &UpdateAppointmentStatus{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateAppointmentStatus) Execute(
	ctx context.Context,
	actor authz.Actor,
	in UpdateStatusInput,
) (*models.Appointment, error) {

	if err := actor.Can(authz.ResourceAppointment, authz.ActionUpdateStatus); err != nil {
		return nil, err
	}

	if !appointment.IsDoctorStatus(in.Estado) {
		return nil, httperr.Validation("invalid_status", "Estado inválido.")
	}

	var updated models.Appointment

	err := uc.repo.Atomic(ctx, func(tx clinic.Repository) error {
		list, err := tx.Appointments(ctx)
		if err != nil {
			return err
		}

		i := appointment.Find(list, in.DNIPaciente, in.Fecha, in.Hora)
		if i < 0 {
			return errAppointmentNotFound()
		}

		list[i].Estado = in.Estado
		updated = list[i]

		return tx.SaveAppointments(ctx, list)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(event(actor, "appointment_status_updated", updated, map[string]string{
		"estado": in.Estado,
	}))

	return &updated, nil
}
