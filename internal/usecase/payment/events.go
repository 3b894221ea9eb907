package payment

import (
	"strconv"

	"github.com/BruksfildServices01/clinica-turnos/internal/audit"
	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
)

func errPatientNotFound() error {
	return httperr.NotFoundErr("patient_not_found", "Paciente no encontrado.")
}

func errPaymentNotFound() error {
	return httperr.NotFoundErr("payment_not_found", "Pago no encontrado.")
}

func event(actor authz.Actor, action string, p models.Payment) audit.Event {
	return audit.Event{
		Actor:    actor.User,
		Role:     string(actor.Role),
		Action:   action,
		Entity:   "payment",
		EntityID: strconv.Itoa(p.ID),
		Metadata: map[string]any{
			"dni_paciente": p.DNIPaciente,
			"fecha":        p.Fecha,
			"monto":        p.Monto,
			"tipo_pago":    p.TipoPago,
		},
	}
}
