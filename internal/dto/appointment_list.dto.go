package dto

import "github.com/BruksfildServices01/clinica-turnos/internal/models"

// AppointmentView is a turno enriched with its patient for listings.
type AppointmentView struct {
	models.Appointment

	Paciente *models.Patient `json:"paciente"`
	FechaFmt string          `json:"fecha_fmt,omitempty"`
}

// QueueEntry is one row of the front-desk queues (received, waiting room,
// attended without payment).
type QueueEntry struct {
	DNI        string `json:"dni"`
	Nombre     string `json:"nombre"`
	Apellido   string `json:"apellido"`
	ObraSocial string `json:"obra_social"`
	Celular    string `json:"celular,omitempty"`

	HoraTurno      string `json:"hora_turno"`
	Medico         string `json:"medico"`
	Fecha          string `json:"fecha,omitempty"`
	HoraRecepcion  string `json:"hora_recepcion,omitempty"`
	HoraSalaEspera string `json:"hora_sala_espera,omitempty"`

	MontoPagado   *float64 `json:"monto_pagado,omitempty"`
	TipoPago      string   `json:"tipo_pago,omitempty"`
	Observaciones string   `json:"observaciones,omitempty"`
}
