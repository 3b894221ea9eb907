// Package mercadopago creates checkout links for transfer payments.
package mercadopago

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/BruksfildServices01/clinica-turnos/internal/models"
)

// Link is a hosted checkout for one payment.
type Link struct {
	PreferenceID string `json:"preference_id"`
	URL          string `json:"url"`
}

type Linker struct {
	client   preference.Client
	currency string
}

func NewLinker(accessToken, currency string) (*Linker, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	if currency == "" {
		currency = "ARS"
	}
	return &Linker{
		client:   preference.NewClient(cfg),
		currency: currency,
	}, nil
}

// CreateLink registers a checkout preference whose external reference is the
// payment id.
func (l *Linker) CreateLink(ctx context.Context, p models.Payment) (*Link, error) {
	req := preference.Request{
		ExternalReference: strconv.Itoa(p.ID),
		Items: []preference.ItemRequest{
			{
				ID:         strconv.Itoa(p.ID),
				Title:      fmt.Sprintf("Consulta %s - %s", p.Fecha, p.NombrePaciente),
				Quantity:   1,
				UnitPrice:  p.Monto,
				CurrencyID: l.currency,
			},
		},
	}

	res, err := l.client.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("mercadopago preference: %w", err)
	}

	return &Link{
		PreferenceID: res.ID,
		URL:          res.InitPoint,
	}, nil
}
