package payment

import (
	"context"

	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/clinic"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
)

type ListPayments struct {
	repo clinic.Repository
}

func NewListPayments(repo clinic.Repository) *ListPayments {
	return &ListPayments{repo: repo}
}

func (uc *ListPayments) Execute(ctx context.Context, actor authz.Actor) ([]models.Payment, error) {
	if err := actor.Can(authz.ResourcePayment, authz.ActionRead); err != nil {
		return nil, err
	}
	return uc.repo.Payments(ctx)
}
