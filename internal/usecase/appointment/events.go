package appointment

import (
	"github.com/BruksfildServices01/clinica-turnos/internal/audit"
	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
)

func errAppointmentNotFound() error {
	return httperr.NotFoundErr("appointment_not_found", "Turno no encontrado.")
}

func errPatientNotFound() error {
	return httperr.NotFoundErr("patient_not_found", "Paciente no encontrado.")
}

func key(dni, fecha, hora string) string {
	return dni + "/" + fecha + "/" + hora
}

func event(actor authz.Actor, action string, ap models.Appointment, meta any) audit.Event {
	return audit.Event{
		Actor:    actor.User,
		Role:     string(actor.Role),
		Action:   action,
		Entity:   "appointment",
		EntityID: key(ap.DNIPaciente, ap.Fecha, ap.Hora),
		Metadata: meta,
	}
}
