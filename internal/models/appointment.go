package models

// Appointment is a turno: a patient booked with a doctor at (fecha, hora).
type Appointment struct {
	Medico      string `json:"medico"`
	Hora        string `json:"hora"`
	Fecha       string `json:"fecha"`
	DNIPaciente string `json:"dni_paciente"`
	Estado      string `json:"estado"`

	HoraRecepcion  *string  `json:"hora_recepcion,omitempty"`
	HoraSalaEspera *string  `json:"hora_sala_espera,omitempty"`
	PagoRegistrado bool     `json:"pago_registrado,omitempty"`
	MontoPagado    *float64 `json:"monto_pagado,omitempty"`
}

// SameSlot reports whether both appointments occupy the same doctor slot.
func (a Appointment) SameSlot(medico, fecha, hora string) bool {
	return a.Medico == medico && a.Fecha == fecha && a.Hora == hora
}

// Locates reports whether the appointment is the one identified by the
// front-desk key (patient, date, time).
func (a Appointment) Locates(dni, fecha, hora string) bool {
	return a.DNIPaciente == dni && a.Fecha == fecha && a.Hora == hora
}
