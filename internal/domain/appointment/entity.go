package appointment

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/clinica-turnos/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Receive marks the patient as arrived at the front desk.
func Receive(ap *models.Appointment, now time.Time) {
	stamp := now.Format("15:04")
	ap.Estado = string(StatusReceived)
	ap.HoraRecepcion = &stamp
}

// MoveToWaitingRoom advances a received appointment once its payment is taken.
func MoveToWaitingRoom(ap *models.Appointment, amount float64, now time.Time) error {
	if err := CanMoveToWaitingRoom(Current(ap.Estado)); err != nil {
		return err
	}

	stamp := now.Format("15:04")
	ap.Estado = string(StatusWaitingRoom)
	ap.HoraSalaEspera = &stamp
	ap.PagoRegistrado = true
	ap.MontoPagado = &amount
	return nil
}

// ===============================
// Lookups
// ===============================

// Find returns the index of the appointment located by (dni, fecha, hora), or -1.
func Find(list []models.Appointment, dni, fecha, hora string) int {
	for i, ap := range list {
		if ap.Locates(dni, fecha, hora) {
			return i
		}
	}
	return -1
}

// SlotTaken reports whether another appointment than skip holds the slot.
// Pass skip = -1 to check against every appointment.
func SlotTaken(list []models.Appointment, medico, fecha, hora string, skip int) bool {
	for i, ap := range list {
		if i == skip {
			continue
		}
		if ap.SameSlot(medico, fecha, hora) {
			return true
		}
	}
	return false
}

// SortByTime orders by "HH:MM"; zero-padded 24h strings sort lexically.
func SortByTime(list []models.Appointment) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Hora < list[j].Hora
	})
}

// FormatDate renders YYYY-MM-DD as D/M/YYYY for display.
func FormatDate(fecha string) string {
	t, err := time.Parse("2006-01-02", fecha)
	if err != nil {
		return fecha
	}
	return t.Format("2/1/2006")
}
