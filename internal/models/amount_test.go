package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountUnmarshal(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want Amount
	}{
		{"number", `1500.5`, 1500.5},
		{"numeric string", `" 1500 "`, 1500},
		{"null", `null`, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var a Amount
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &a))
			assert.Equal(t, tc.want, a)
		})
	}
}

func TestAmountRejectsNonNumbers(t *testing.T) {
	for _, raw := range []string{`"mucho"`, `""`, `"NaN"`, `"Inf"`, `"-Infinity"`, `true`} {
		t.Run(raw, func(t *testing.T) {
			var a Amount
			err := json.Unmarshal([]byte(raw), &a)
			assert.ErrorIs(t, err, ErrInvalidAmount)
			assert.Zero(t, a)
		})
	}
}
