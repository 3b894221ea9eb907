package models

// Patient is a row of the pacientes collection. Age is never persisted; Edad
// is filled at read time.
type Patient struct {
	DNI              string `json:"dni"`
	Nombre           string `json:"nombre"`
	Apellido         string `json:"apellido"`
	ObraSocial       string `json:"obra_social"`
	NumeroObraSocial string `json:"numero_obra_social"`
	Celular          string `json:"celular"`
	FechaNacimiento  string `json:"fecha_nacimiento"`
	FechaRegistro    string `json:"fecha_registro,omitempty"`

	Edad *int `json:"edad,omitempty"`
}

func (p Patient) FullName() string {
	switch {
	case p.Nombre == "":
		return p.Apellido
	case p.Apellido == "":
		return p.Nombre
	}
	return p.Nombre + " " + p.Apellido
}
