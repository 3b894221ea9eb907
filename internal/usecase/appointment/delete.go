package appointment

import (
	"context"

	"github.com/BruksfildServices01/clinica-turnos/internal/audit"
	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/clinic"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
)

type DeleteAppointment struct {
	repo  clinic.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo clinic.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute removes every turno matching (dni, fecha, hora).
func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	actor authz.Actor,
	dni, fecha, hora string,
) error {

	if err := actor.Can(authz.ResourceAppointment, authz.ActionDelete); err != nil {
		return err
	}

	err := uc.repo.Atomic(ctx, func(tx clinic.Repository) error {
		list, err := tx.Appointments(ctx)
		if err != nil {
			return err
		}

		kept := make([]models.Appointment, 0, len(list))
		for _, ap := range list {
			if !ap.Locates(dni, fecha, hora) {
				kept = append(kept, ap)
			}
		}
		if len(kept) == len(list) {
			return errAppointmentNotFound()
		}

		return tx.SaveAppointments(ctx, kept)
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(event(actor, "appointment_deleted", models.Appointment{
		DNIPaciente: dni,
		Fecha:       fecha,
		Hora:        hora,
	}, nil))

	return nil
}
