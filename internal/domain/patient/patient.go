package patient

import (
	"sort"
	"strings"
	"time"

	"github.com/BruksfildServices01/clinica-turnos/internal/models"
)

// Age derives whole years from a YYYY-MM-DD birth date as of today.
// Missing or malformed dates give nil.
func Age(birth string, today time.Time) *int {
	b, err := time.Parse("2006-01-02", strings.TrimSpace(birth))
	if err != nil {
		return nil
	}

	age := today.Year() - b.Year()
	if today.Month() < b.Month() || (today.Month() == b.Month() && today.Day() < b.Day()) {
		age--
	}
	return &age
}

// Dedup keeps the first record seen for each DNI, in storage order. Records
// without a DNI are dropped.
func Dedup(list []models.Patient) []models.Patient {
	seen := make(map[string]bool, len(list))
	out := make([]models.Patient, 0, len(list))
	for _, p := range list {
		if p.DNI == "" || seen[p.DNI] {
			continue
		}
		seen[p.DNI] = true
		out = append(out, p)
	}
	return out
}

// WithAge fills Edad for every patient.
func WithAge(list []models.Patient, today time.Time) {
	for i := range list {
		list[i].Edad = Age(list[i].FechaNacimiento, today)
	}
}

func SortBySurname(list []models.Patient) {
	sort.SliceStable(list, func(i, j int) bool {
		return strings.ToLower(list[i].Apellido) < strings.ToLower(list[j].Apellido)
	})
}

// Matches is a case-insensitive substring match on DNI, surname and name.
// q must already be lower-cased.
func Matches(p models.Patient, q string) bool {
	return strings.Contains(strings.ToLower(p.DNI), q) ||
		strings.Contains(strings.ToLower(p.Apellido), q) ||
		strings.Contains(strings.ToLower(p.Nombre), q)
}

// Find returns the index of the first patient with dni, or -1.
func Find(list []models.Patient, dni string) int {
	for i, p := range list {
		if p.DNI == dni {
			return i
		}
	}
	return -1
}
