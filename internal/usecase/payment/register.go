package payment

import (
	"context"

	"github.com/BruksfildServices01/clinica-turnos/internal/audit"
	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/clinic"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/patient"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/payment"
	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
	"github.com/BruksfildServices01/clinica-turnos/internal/timezone"
	"github.com/BruksfildServices01/clinica-turnos/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type RegisterPaymentInput struct {
	DNIPaciente   string
	Fecha         string
	Hora          string
	Monto         float64
	TipoPago      string
	Observaciones string
}

// ======================================================
// USE CASE
// ======================================================

// RegisterPayment is the direct ledger entry. With a time it refuses a
// second payment for the same (patient, date, time); without one it never
// checks for duplicates.
type RegisterPayment struct {
	repo  clinic.Repository
	audit *audit.Dispatcher
	clock timezone.Clock
}

func NewRegisterPayment(
	repo clinic.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *RegisterPayment {
	return &RegisterPayment{
		repo:  repo,
		audit: audit,
		clock: clock,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *RegisterPayment) Execute(
	ctx context.Context,
	actor authz.Actor,
	in RegisterPaymentInput,
) (*models.Payment, error) {

	if err := actor.Can(authz.ResourcePayment, authz.ActionCreate); err != nil {
		return nil, err
	}

	if err := validators.Required(
		validators.F("dni_paciente", in.DNIPaciente),
		validators.F("fecha", in.Fecha),
	); err != nil {
		return nil, err
	}

	method, err := payment.ResolveMethod(in.Monto, in.TipoPago)
	if err != nil {
		return nil, err
	}

	var created models.Payment

	err = uc.repo.Atomic(ctx, func(tx clinic.Repository) error {
		patients, err := tx.Patients(ctx)
		if err != nil {
			return err
		}
		pi := patient.Find(patients, in.DNIPaciente)
		if pi < 0 {
			return errPatientNotFound()
		}

		list, err := tx.Payments(ctx)
		if err != nil {
			return err
		}
		if in.Hora != "" && payment.ExistsForSlot(list, in.DNIPaciente, in.Fecha, in.Hora) {
			return httperr.Conflict(
				"payment_exists",
				"Ya existe un pago registrado para este paciente en esta fecha y hora.",
			)
		}

		list, created = payment.Append(list, payment.Draft{
			Patient:       patients[pi],
			Amount:        in.Monto,
			Method:        method,
			Fecha:         in.Fecha,
			Hora:          in.Hora,
			Observaciones: in.Observaciones,
		}, uc.clock.Now())

		return tx.SavePayments(ctx, list)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(event(actor, "payment_registered", created))

	return &created, nil
}
