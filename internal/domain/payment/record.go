package payment

import (
	"time"

	"github.com/BruksfildServices01/clinica-turnos/internal/models"
	"github.com/BruksfildServices01/clinica-turnos/internal/timezone"
)

type Draft struct {
	Patient       models.Patient
	Amount        float64
	Method        Method
	Fecha         string
	Hora          string
	Observaciones string
}

// Append adds the drafted payment to list with the next free id and returns
// both the new list and the stored record.
func Append(list []models.Payment, d Draft, now time.Time) ([]models.Payment, models.Payment) {
	p := models.Payment{
		ID:             NextID(list),
		DNIPaciente:    d.Patient.DNI,
		NombrePaciente: d.Patient.FullName(),
		Monto:          d.Amount,
		Fecha:          d.Fecha,
		Hora:           d.Hora,
		FechaRegistro:  now.Format(timezone.StampLayout),
		Observaciones:  d.Observaciones,
		ObraSocial:     d.Patient.ObraSocial,
		TipoPago:       string(d.Method),
	}
	return append(list, p), p
}
