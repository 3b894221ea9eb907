package payment

import (
	"context"

	"github.com/BruksfildServices01/clinica-turnos/internal/audit"
	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/clinic"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
)

type DeletePayment struct {
	repo  clinic.Repository
	audit *audit.Dispatcher
}

func NewDeletePayment(
	repo clinic.Repository,
	audit *audit.Dispatcher,
) *DeletePayment {
	return &DeletePayment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeletePayment) Execute(ctx context.Context, actor authz.Actor, id int) error {
	if err := actor.Can(authz.ResourcePayment, authz.ActionDelete); err != nil {
		return err
	}

	var removed models.Payment

	err := uc.repo.Atomic(ctx, func(tx clinic.Repository) error {
		list, err := tx.Payments(ctx)
		if err != nil {
			return err
		}

		kept := make([]models.Payment, 0, len(list))
		for _, p := range list {
			if p.ID == id {
				removed = p
				continue
			}
			kept = append(kept, p)
		}
		if len(kept) == len(list) {
			return errPaymentNotFound()
		}

		return tx.SavePayments(ctx, kept)
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(event(actor, "payment_deleted", removed))

	return nil
}
