package payment

import (
	"math"

	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
)

type Method string

const (
	MethodCash      Method = "efectivo"
	MethodTransfer  Method = "transferencia"
	MethodInsurance Method = "obra_social"
)

// ResolveMethod applies the ledger rule: a zero amount is always covered by
// the insurer, anything else must be paid in cash or by transfer.
func ResolveMethod(amount float64, requested string) (Method, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "", httperr.Validation("invalid_amount", "El monto debe ser un número.")
	}
	if amount < 0 {
		return "", httperr.Validation("negative_amount", "El monto no puede ser negativo.")
	}
	if amount == 0 {
		return MethodInsurance, nil
	}

	if requested == "" {
		requested = string(MethodCash)
	}
	switch Method(requested) {
	case MethodCash, MethodTransfer:
		return Method(requested), nil
	}
	return "", httperr.Validation(
		"invalid_payment_method",
		"Tipo de pago inválido. Debe ser 'efectivo' o 'transferencia'.",
	)
}

// NextID is one past the highest id in use, so deleting a payment never
// causes a later one to reuse an id. On gap-free data it equals len+1.
func NextID(list []models.Payment) int {
	max := 0
	for _, p := range list {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}

// ExistsForSlot reports a payment for (dni, fecha, hora).
func ExistsForSlot(list []models.Payment, dni, fecha, hora string) bool {
	for _, p := range list {
		if p.DNIPaciente == dni && p.Fecha == fecha && p.Hora == hora {
			return true
		}
	}
	return false
}

// ExistsForDay reports any payment by dni on fecha, whatever its time.
func ExistsForDay(list []models.Payment, dni, fecha string) bool {
	for _, p := range list {
		if p.DNIPaciente == dni && p.Fecha == fecha {
			return true
		}
	}
	return false
}

// FirstForDay returns the first payment of dni on fecha.
func FirstForDay(list []models.Payment, dni, fecha string) (models.Payment, bool) {
	for _, p := range list {
		if p.DNIPaciente == dni && p.Fecha == fecha {
			return p, true
		}
	}
	return models.Payment{}, false
}
