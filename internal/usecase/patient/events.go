package patient

import (
	"github.com/BruksfildServices01/clinica-turnos/internal/audit"
	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
)

func errPatientNotFound() error {
	return httperr.NotFoundErr("patient_not_found", "Paciente no encontrado.")
}

func errDuplicateDNI() error {
	return httperr.Conflict("duplicate_dni", "Ya existe un paciente con ese DNI.")
}

func event(actor authz.Actor, action, dni string, meta any) audit.Event {
	return audit.Event{
		Actor:    actor.User,
		Role:     string(actor.Role),
		Action:   action,
		Entity:   "patient",
		EntityID: dni,
		Metadata: meta,
	}
}
