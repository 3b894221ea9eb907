package appointment

import (
	"context"

	"github.com/BruksfildServices01/clinica-turnos/internal/audit"
	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/appointment"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/clinic"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/patient"
	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
	"github.com/BruksfildServices01/clinica-turnos/internal/timezone"
	"github.com/BruksfildServices01/clinica-turnos/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	Medico      string
	Hora        string
	Fecha       string
	DNIPaciente string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  clinic.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo clinic.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	actor authz.Actor,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if err := actor.Can(authz.ResourceAppointment, authz.ActionCreate); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 1️⃣ Campos obligatorios
	// --------------------------------------------------
	if err := validators.Required(
		validators.F("medico", in.Medico),
		validators.F("hora", in.Hora),
		validators.F("fecha", in.Fecha),
		validators.F("dni_paciente", in.DNIPaciente),
	); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Fecha
	// --------------------------------------------------
	date, err := timezone.ParseDate(in.Fecha)
	if err != nil {
		return nil, httperr.Validation("invalid_date", "Formato de fecha inválido (usar YYYY-MM-DD).")
	}

	var created models.Appointment

	err = uc.repo.Atomic(ctx, func(tx clinic.Repository) error {

		// --------------------------------------------------
		// 3️⃣ Agenda del médico
		// --------------------------------------------------
		agenda, err := tx.Agenda(ctx)
		if err != nil {
			return err
		}
		if err := appointment.CheckSlot(agenda, in.Medico, date, in.Hora); err != nil {
			return err
		}

		// --------------------------------------------------
		// 4️⃣ Conflicto de horario
		// --------------------------------------------------
		list, err := tx.Appointments(ctx)
		if err != nil {
			return err
		}
		if appointment.SlotTaken(list, in.Medico, in.Fecha, in.Hora, -1) {
			return httperr.Conflict("slot_taken", "Ya existe un turno asignado para ese horario y fecha.")
		}

		// --------------------------------------------------
		// 5️⃣ Paciente
		// --------------------------------------------------
		patients, err := tx.Patients(ctx)
		if err != nil {
			return err
		}
		if patient.Find(patients, in.DNIPaciente) < 0 {
			return errPatientNotFound()
		}

		// --------------------------------------------------
		// 6️⃣ Alta del turno
		// --------------------------------------------------
		created = models.Appointment{
			Medico:      in.Medico,
			Hora:        in.Hora,
			Fecha:       in.Fecha,
			DNIPaciente: in.DNIPaciente,
			Estado:      string(appointment.InitialStatus()),
		}

		return tx.SaveAppointments(ctx, append(list, created))
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(event(actor, "appointment_created", created, nil))

	return &created, nil
}
