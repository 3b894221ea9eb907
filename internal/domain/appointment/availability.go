package appointment

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
)

var workdays = map[time.Weekday]string{
	time.Monday:    "LUNES",
	time.Tuesday:   "MARTES",
	time.Wednesday: "MIERCOLES",
	time.Thursday:  "JUEVES",
	time.Friday:    "VIERNES",
}

// Workdays lists the agenda day keys in week order.
var Workdays = []string{"LUNES", "MARTES", "MIERCOLES", "JUEVES", "VIERNES"}

// WeekdayName returns the agenda key for t, false on weekends.
func WeekdayName(t time.Time) (string, bool) {
	name, ok := workdays[t.Weekday()]
	return name, ok
}

// NormalizeWorkday upper-cases day and checks it is a weekday key.
func NormalizeWorkday(day string) (string, bool) {
	up := strings.ToUpper(strings.TrimSpace(day))
	return up, slices.Contains(Workdays, up)
}

// CheckSlot verifies that medico offers hora on the weekday of date.
func CheckSlot(agenda models.Agenda, medico string, date time.Time, hora string) error {
	day, ok := WeekdayName(date)
	if !ok {
		return httperr.Validation("weekend", "Solo se pueden asignar turnos de lunes a viernes.")
	}

	days, ok := agenda[medico]
	if !ok {
		return httperr.NotFoundErr("doctor_not_found", "Médico no encontrado.")
	}

	if !slices.Contains(days[day], hora) {
		return httperr.Validation(
			"slot_unavailable",
			fmt.Sprintf("La hora '%s' no está disponible para el médico %s el día %s.", hora, medico, day),
		)
	}
	return nil
}
