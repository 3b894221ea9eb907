package appointment

import (
	"time"

	"github.com/BruksfildServices01/clinica-turnos/internal/models"
)

// StaleAfter is how long a never-attended appointment survives its slot.
const StaleAfter = 24 * time.Hour

// IsStale reports appointments still pending more than StaleAfter past their
// slot. Unparseable date/time never counts as stale.
func IsStale(ap models.Appointment, now time.Time) bool {
	hora := ap.Hora
	if hora == "" {
		hora = "00:00"
	}
	at, err := time.ParseInLocation("2006-01-02 15:04", ap.Fecha+" "+hora, now.Location())
	if err != nil {
		return false
	}
	return IsPending(ap.Estado) && at.Before(now.Add(-StaleAfter))
}

// IsOverdue is the report-side notion: any open appointment whose slot passed
// more than StaleAfter ago counts as an absence.
func IsOverdue(ap models.Appointment, now time.Time) bool {
	if !IsOpen(ap.Estado) {
		return false
	}
	hora := ap.Hora
	if hora == "" {
		hora = "00:00"
	}
	at, err := time.ParseInLocation("2006-01-02 15:04", ap.Fecha+" "+hora, now.Location())
	if err != nil {
		return false
	}
	return now.Sub(at) > StaleAfter
}
