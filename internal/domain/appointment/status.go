package appointment

import (
	"strings"

	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending     Status = "sin atender"
	StatusReceived    Status = "recepcionado"
	StatusWaitingRoom Status = "sala de espera"
	StatusCalled      Status = "llamado"
	StatusAttended    Status = "atendido"
	StatusAbsent      Status = "ausente"
)

// doctorStatuses are the values a doctor may set from the consulting room.
var doctorStatuses = map[Status]bool{
	StatusPending:  true,
	StatusCalled:   true,
	StatusAttended: true,
	StatusAbsent:   true,
}

// editableStatuses are accepted by the generic appointment edit.
var editableStatuses = map[Status]bool{
	StatusPending:     true,
	StatusReceived:    true,
	StatusWaitingRoom: true,
	StatusCalled:      true,
	StatusAttended:    true,
	StatusAbsent:      true,
}

// ===============================
// Validations
// ===============================

func IsDoctorStatus(s string) bool {
	return doctorStatuses[Status(s)]
}

func IsEditableStatus(s string) bool {
	return editableStatuses[Status(s)]
}

// CanMoveToWaitingRoom only accepts appointments already received at the desk.
func CanMoveToWaitingRoom(current Status) error {
	if current != StatusReceived {
		return httperr.Conflict("not_received", "El paciente debe estar recepcionado primero.")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}

// Current reads the stored status; records written without one are pending.
func Current(estado string) Status {
	if estado == "" {
		return StatusPending
	}
	return Status(estado)
}

// IsPending compares case-insensitively, as older rows were typed by hand.
func IsPending(estado string) bool {
	return strings.EqualFold(strings.TrimSpace(estado), string(StatusPending))
}

// IsOpen reports statuses that still expect the patient to be seen.
func IsOpen(estado string) bool {
	switch Current(estado) {
	case StatusPending, StatusReceived, StatusWaitingRoom:
		return true
	}
	return false
}
