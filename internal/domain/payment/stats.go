package payment

import (
	"sort"
	"strings"

	"github.com/BruksfildServices01/clinica-turnos/internal/models"
)

type PatientLine struct {
	Nombre     string  `json:"nombre"`
	Monto      float64 `json:"monto"`
	ObraSocial string  `json:"obra_social,omitempty"`
	TipoPago   string  `json:"tipo_pago"`
}

type DayDetail struct {
	Cantidad  int           `json:"cantidad"`
	Monto     float64       `json:"monto"`
	Pacientes []PatientLine `json:"pacientes"`
}

// MethodTotals counts and sums payments per method.
type MethodTotals struct {
	Efectivo           int     `json:"efectivo"`
	Transferencia      int     `json:"transferencia"`
	ObraSocial         int     `json:"obra_social"`
	TotalEfectivo      float64 `json:"total_efectivo"`
	TotalTransferencia float64 `json:"total_transferencia"`
	TotalObraSocial    float64 `json:"total_obra_social"`
}

func methodOf(p models.Payment) Method {
	if p.TipoPago == "" {
		return MethodCash
	}
	return Method(p.TipoPago)
}

func ByMethod(list []models.Payment) MethodTotals {
	var t MethodTotals
	for _, p := range list {
		switch methodOf(p) {
		case MethodCash:
			t.Efectivo++
			t.TotalEfectivo += p.Monto
		case MethodTransfer:
			t.Transferencia++
			t.TotalTransferencia += p.Monto
		case MethodInsurance:
			t.ObraSocial++
			t.TotalObraSocial += p.Monto
		}
	}
	return t
}

func OnDate(list []models.Payment, fecha string) []models.Payment {
	out := []models.Payment{}
	for _, p := range list {
		if p.Fecha == fecha {
			out = append(out, p)
		}
	}
	return out
}

// InMonth selects payments whose date starts with the "YYYY-MM" prefix.
func InMonth(list []models.Payment, month string) []models.Payment {
	out := []models.Payment{}
	for _, p := range list {
		if strings.HasPrefix(p.Fecha, month) {
			out = append(out, p)
		}
	}
	return out
}

func Sum(list []models.Payment) float64 {
	total := 0.0
	for _, p := range list {
		total += p.Monto
	}
	return total
}

// CountCoverage splits payments into insurer-covered (amount 0) and private.
func CountCoverage(list []models.Payment) (insurance, private int) {
	for _, p := range list {
		if p.Monto == 0 {
			insurance++
		} else {
			private++
		}
	}
	return insurance, private
}

// ByDay groups payments per calendar date. nameOf resolves the label shown
// for each line; nil uses the stored name snapshot.
func ByDay(list []models.Payment, nameOf func(models.Payment) string) map[string]*DayDetail {
	out := map[string]*DayDetail{}
	for _, p := range list {
		d, ok := out[p.Fecha]
		if !ok {
			d = &DayDetail{Pacientes: []PatientLine{}}
			out[p.Fecha] = d
		}
		name := p.NombrePaciente
		if nameOf != nil {
			name = nameOf(p)
		}
		d.Cantidad++
		d.Monto += p.Monto
		d.Pacientes = append(d.Pacientes, PatientLine{
			Nombre:     name,
			Monto:      p.Monto,
			ObraSocial: p.ObraSocial,
			TipoPago:   string(methodOf(p)),
		})
	}
	return out
}

// SortedDays returns the keys of a ByDay result in date order.
func SortedDays(days map[string]*DayDetail) []string {
	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
