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

// RescheduleInput locates the turno by (DNIPaciente, Fecha, Hora). Nil
// fields are left unchanged.
type RescheduleInput struct {
	DNIPaciente string
	Fecha       string
	Hora        string

	NuevaHora   *string
	NuevaFecha  *string
	NuevoMedico *string
	NuevoEstado *string
}

// RescheduleAppointment is the generic turno edit. The resulting slot must be
// free, but it is not checked against the doctor's agenda again.
type RescheduleAppointment struct {
	repo  clinic.Repository
	audit *audit.Dispatcher
}

func NewRescheduleAppointment(
	repo clinic.Repository,
	audit *audit.Dispatcher,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	actor authz.Actor,
	in RescheduleInput,
) (*models.Appointment, error) {

	if err := actor.Can(authz.ResourceAppointment, authz.ActionUpdate); err != nil {
		return nil, err
	}

	if in.NuevaFecha != nil {
		if _, err := timezone.ParseDate(*in.NuevaFecha); err != nil {
			return nil, httperr.Validation("invalid_date", "Formato de fecha inválido (usar YYYY-MM-DD).")
		}
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

		next := list[i]
		if in.NuevaHora != nil {
			next.Hora = *in.NuevaHora
		}
		if in.NuevaFecha != nil {
			next.Fecha = *in.NuevaFecha
		}
		if in.NuevoMedico != nil {
			next.Medico = *in.NuevoMedico
		}

		// --------------------------------------------------
		// Slot resultante libre (excluyendo este turno)
		// --------------------------------------------------
		if !next.SameSlot(list[i].Medico, list[i].Fecha, list[i].Hora) &&
			appointment.SlotTaken(list, next.Medico, next.Fecha, next.Hora, i) {
			if in.NuevaFecha != nil {
				return httperr.Conflict("slot_taken", "La nueva fecha/hora ya está ocupada.")
			}
			return httperr.Conflict("slot_taken", "La nueva hora ya está ocupada.")
		}

		// Unknown statuses are ignored.
		if in.NuevoEstado != nil && appointment.IsEditableStatus(*in.NuevoEstado) {
			next.Estado = *in.NuevoEstado
		}

		list[i] = next
		updated = next

		return tx.SaveAppointments(ctx, list)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(event(actor, "appointment_updated", updated, map[string]string{
		"anterior": key(in.DNIPaciente, in.Fecha, in.Hora),
	}))

	return &updated, nil
}
