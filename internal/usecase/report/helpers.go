package report

import (
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
	"github.com/BruksfildServices01/clinica-turnos/internal/timezone"
)

// Range is an inclusive date interval.
type Range struct {
	From time.Time
	To   time.Time
}

func parseRange(from, to string) (Range, error) {
	f, err := timezone.ParseDate(from)
	if err != nil {
		return Range{}, errBadDate()
	}
	t, err := timezone.ParseDate(to)
	if err != nil {
		return Range{}, errBadDate()
	}
	return Range{From: f, To: t}, nil
}

func errBadDate() error {
	return httperr.Validation("invalid_date", "Formato de fecha inválido. Use YYYY-MM-DD.")
}

// Contains reports whether the YYYY-MM-DD fecha falls inside r. Malformed
// dates are outside every range.
func (r Range) Contains(fecha string) bool {
	d, err := timezone.ParseDate(fecha)
	if err != nil {
		return false
	}
	return !d.Before(r.From) && !d.After(r.To)
}

// percent rounds part/total*100 to one decimal; zero when total is zero.
func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// insurerLabel groups patients without coverage ("" or "0") as Particular.
func insurerLabel(obraSocial string) string {
	if obraSocial == "" || obraSocial == "0" {
		return "Particular"
	}
	return capitalize(obraSocial)
}
