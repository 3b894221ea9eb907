package payment

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

type ChargeAndSeatInput struct {
	DNIPaciente   string
	Fecha         string
	Monto         float64
	TipoPago      string
	Observaciones string
}

type ChargeAndSeatOutput struct {
	Appointment models.Appointment
	Payment     models.Payment
}

// ChargeAndSeat is the payments-desk variant of the waiting-room move: it
// finds the patient's received turno on a date by itself and allows a
// single payment per patient and day.
type ChargeAndSeat struct {
	repo  clinic.Repository
	audit *audit.Dispatcher
	clock timezone.Clock
}

func NewChargeAndSeat(
	repo clinic.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *ChargeAndSeat {
	return &ChargeAndSeat{
		repo:  repo,
		audit: audit,
		clock: clock,
	}
}

func (uc *ChargeAndSeat) Execute(
	ctx context.Context,
	actor authz.Actor,
	in ChargeAndSeatInput,
) (*ChargeAndSeatOutput, error) {

	if err := actor.Can(authz.ResourcePayment, authz.ActionCharge); err != nil {
		return nil, err
	}

	if in.DNIPaciente == "" || in.Fecha == "" {
		return nil, httperr.Validation("missing_field", "DNI y fecha son requeridos.")
	}
	if in.Monto < 0 {
		return nil, httperr.Validation("negative_amount", "El monto no puede ser negativo.")
	}

	var out ChargeAndSeatOutput

	err := uc.repo.Atomic(ctx, func(tx clinic.Repository) error {

		// --------------------------------------------------
		// 1️⃣ Turno recepcionado del día
		// --------------------------------------------------
		list, err := tx.Appointments(ctx)
		if err != nil {
			return err
		}
		i := -1
		for idx, ap := range list {
			if ap.DNIPaciente == in.DNIPaciente &&
				ap.Fecha == in.Fecha &&
				appointment.Current(ap.Estado) == appointment.StatusReceived {
				i = idx
				break
			}
		}
		if i < 0 {
			return httperr.NotFoundErr(
				"received_appointment_not_found",
				"No se encontró un turno recepcionado para este paciente en esta fecha.",
			)
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
		// 3️⃣ Un pago por paciente y día
		// --------------------------------------------------
		payments, err := tx.Payments(ctx)
		if err != nil {
			return err
		}
		if payment.ExistsForDay(payments, in.DNIPaciente, in.Fecha) {
			return httperr.Conflict(
				"payment_exists",
				"Ya existe un pago registrado para este paciente en esta fecha.",
			)
		}

		method, err := payment.ResolveMethod(in.Monto, in.TipoPago)
		if err != nil {
			return err
		}

		// --------------------------------------------------
		// 4️⃣ Pago (sin hora) + sala de espera
		// --------------------------------------------------
		now := uc.clock.Now()

		payments, out.Payment = payment.Append(payments, payment.Draft{
			Patient:       patients[pi],
			Amount:        in.Monto,
			Method:        method,
			Fecha:         in.Fecha,
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

	uc.audit.Dispatch(event(actor, "payment_charged_and_seated", out.Payment))

	return &out, nil
}
