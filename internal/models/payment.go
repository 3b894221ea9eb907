package models

type Payment struct {
	ID             int     `json:"id"`
	DNIPaciente    string  `json:"dni_paciente"`
	NombrePaciente string  `json:"nombre_paciente"`
	Monto          float64 `json:"monto"`
	Fecha          string  `json:"fecha"`
	Hora           string  `json:"hora"`
	FechaRegistro  string  `json:"fecha_registro"`
	Observaciones  string  `json:"observaciones"`
	ObraSocial     string  `json:"obra_social"`
	TipoPago       string  `json:"tipo_pago"`
}
