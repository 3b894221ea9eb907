package payment

import (
	"context"

	"github.com/BruksfildServices01/clinica-turnos/internal/audit"
	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/clinic"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/payment"
	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
	"github.com/BruksfildServices01/clinica-turnos/internal/infra/mercadopago"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
)

type CheckoutLinker interface {
	CreateLink(ctx context.Context, p models.Payment) (*mercadopago.Link, error)
}

// CreateCheckoutLink issues a hosted checkout for a transfer payment so the
// patient can settle it remotely.
type CreateCheckoutLink struct {
	repo   clinic.Repository
	linker CheckoutLinker
	audit  *audit.Dispatcher
}

// NewCreateCheckoutLink accepts a nil linker; Execute then reports the
// feature as not configured.
func NewCreateCheckoutLink(
	repo clinic.Repository,
	linker CheckoutLinker,
	audit *audit.Dispatcher,
) *CreateCheckoutLink {
	return &CreateCheckoutLink{
		repo:   repo,
		linker: linker,
		audit:  audit,
	}
}

func (uc *CreateCheckoutLink) Execute(
	ctx context.Context,
	actor authz.Actor,
	id int,
) (*mercadopago.Link, error) {

	if err := actor.Can(authz.ResourcePayment, authz.ActionCreate); err != nil {
		return nil, err
	}
	if uc.linker == nil {
		return nil, httperr.Validation("checkout_disabled", "Los links de pago no están configurados.")
	}

	list, err := uc.repo.Payments(ctx)
	if err != nil {
		return nil, err
	}

	var found *models.Payment
	for i := range list {
		if list[i].ID == id {
			found = &list[i]
			break
		}
	}
	if found == nil {
		return nil, errPaymentNotFound()
	}
	if payment.Method(found.TipoPago) != payment.MethodTransfer || found.Monto <= 0 {
		return nil, httperr.Validation(
			"not_transfer",
			"Solo se generan links para pagos por transferencia.",
		)
	}

	link, err := uc.linker.CreateLink(ctx, *found)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(event(actor, "payment_link_created", *found))

	return link, nil
}
