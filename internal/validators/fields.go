package validators

import (
	"fmt"
	"strings"

	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
)

// Field is a named value checked for presence.
type Field struct {
	Name  string
	Value string
}

func F(name, value string) Field {
	return Field{Name: name, Value: value}
}

// Required fails on the first blank field, in the given order.
func Required(fields ...Field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			return httperr.Validation("missing_field", fmt.Sprintf("El campo '%s' es obligatorio.", f.Name))
		}
	}
	return nil
}

// IsDNI accepts 7 or 8 decimal digits.
func IsDNI(dni string) bool {
	if len(dni) != 7 && len(dni) != 8 {
		return false
	}
	for _, r := range dni {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func DNI(dni string) error {
	if !IsDNI(dni) {
		return httperr.Validation("invalid_dni", "El DNI debe tener 7 u 8 dígitos numéricos.")
	}
	return nil
}
