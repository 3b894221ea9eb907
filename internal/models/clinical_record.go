package models

// ClinicalRecord is one consultation in a patient's historia clínica.
type ClinicalRecord struct {
	ID             int    `json:"id"`
	DNI            string `json:"dni"`
	Medico         string `json:"medico"`
	ConsultaMedica string `json:"consulta_medica"`
	FechaConsulta  string `json:"fecha_consulta,omitempty"`
	Diagnostico    string `json:"diagnostico,omitempty"`
	Tratamiento    string `json:"tratamiento,omitempty"`
	Observaciones  string `json:"observaciones,omitempty"`
	FechaCreacion  string `json:"fecha_creacion,omitempty"`
}
