package appointment

import (
	"context"

	"github.com/BruksfildServices01/clinica-turnos/internal/audit"
	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/appointment"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/clinic"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/patient"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/payment"
	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
	"github.com/BruksfildServices01/clinica-turnos/internal/timezone"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type MoveToWaitingRoomInput struct {
	DNIPaciente   string
	Fecha         string
	Hora          string
	Monto         float64
	TipoPago      string
	Observaciones string
}

type MoveToWaitingRoomOutput struct {
	Appointment models.Appointment
	Payment     models.Payment
}

// ======================================================
// USE CASE
// ======================================================

// MoveToWaitingRoom collects the payment for a received patient and seats
// them in the waiting room. The payment and the status change are committed
// together or not at all.
type MoveToWaitingRoom struct {
	repo  clinic.Repository
	audit *audit.Dispatcher
	clock timezone.Clock
}

func NewMoveToWaitingRoom(
	repo clinic.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *MoveToWaitingRoom {
	return &MoveToWaitingRoom{
		repo:  repo,
		audit: audit,
		clock: clock,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *MoveToWaitingRoom) Execute(
	ctx context.Context,
	actor authz.Actor,
	in MoveToWaitingRoomInput,
) (*MoveToWaitingRoomOutput, error) {

	if err := actor.Can(authz.ResourceAppointment, authz.ActionSeat); err != nil {
		return nil, err
	}

	if in.DNIPaciente == "" || in.Fecha == "" || in.Hora == "" {
		return nil, httperr.Validation("missing_field", "DNI, fecha y hora son requeridos.")
	}

	method, err := payment.ResolveMethod(in.Monto, in.TipoPago)
	if err != nil {
		return nil, err
	}

	var out MoveToWaitingRoomOutput

	err = uc.repo.Atomic(ctx, func(tx clinic.Repository) error {

		// --------------------------------------------------
		// 1️⃣ Turno recepcionado
		// --------------------------------------------------
		list, err := tx.Appointments(ctx)
		if err != nil {
			return err
		}

		i := appointment.Find(list, in.DNIPaciente, in.Fecha, in.Hora)
		if i < 0 {
			return errAppointmentNotFound()
		}
		if err := appointment.CanMoveToWaitingRoom(appointment.Current(list[i].Estado)); err != nil {
			return err
		}

		// --------------------------------------------------
		// 2️⃣ Paciente
		// --------------------------------------------------
		patients, err := tx.Patients(ctx)
		if err != nil {
			return err
		}
		pi := patient.Find(patients, in.DNIPaciente)
		if pi < 0 {
			return errPatientNotFound()
		}

		// --------------------------------------------------
		// 3️⃣ Pago único por turno
		// --------------------------------------------------
		payments, err := tx.Payments(ctx)
		if err != nil {
			return err
		}
		if payment.ExistsForSlot(payments, in.DNIPaciente, in.Fecha, in.Hora) {
			return httperr.Conflict(
				"payment_exists",
				"Ya existe un pago registrado para este paciente en este turno.",
			)
		}

		// --------------------------------------------------
		// 4️⃣ Pago + sala de espera
		// --------------------------------------------------
		now := uc.clock.Now()

		payments, out.Payment = payment.Append(payments, payment.Draft{
			Patient:       patients[pi],
			Amount:        in.Monto,
			Method:        method,
			Fecha:         in.Fecha,
			Hora:          in.Hora,
			Observaciones: in.Observaciones,
		}, now)

		if err := appointment.MoveToWaitingRoom(&list[i], in.Monto, now); err != nil {
			return err
		}
		out.Appointment = list[i]

		if err := tx.SavePayments(ctx, payments); err != nil {
			return err
		}
		return tx.SaveAppointments(ctx, list)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(event(actor, "patient_seated", out.Appointment, map[string]any{
		"pago_id":   out.Payment.ID,
		"monto":     out.Payment.Monto,
		"tipo_pago": out.Payment.TipoPago,
	}))

	return &out, nil
}
