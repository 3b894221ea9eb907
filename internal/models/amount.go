package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidAmount = errors.New("invalid amount")

// Amount accepts a JSON number or a numeric string, as the front desk forms
// send either.
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = 0
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return ErrInvalidAmount
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return ErrInvalidAmount
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return ErrInvalidAmount
		}
		return a.set(f)
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return ErrInvalidAmount
	}
	return a.set(f)
}

// set rejects NaN and the infinities, which ParseFloat accepts.
func (a *Amount) set(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ErrInvalidAmount
	}
	*a = Amount(f)
	return nil
}
