package payment

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
)

func TestResolveMethod(t *testing.T) {
	cases := []struct {
		name      string
		amount    float64
		requested string
		want      Method
		errCode   string
	}{
		{"zero forces insurance", 0, "transferencia", MethodInsurance, ""},
		{"default cash", 1500, "", MethodCash, ""},
		{"transfer", 1500, "transferencia", MethodTransfer, ""},
		{"insurance with amount", 1500, "obra_social", "", "invalid_payment_method"},
		{"unknown method", 1500, "cheque", "", "invalid_payment_method"},
		{"negative", -1, "efectivo", "", "negative_amount"},
		{"not a number", math.NaN(), "efectivo", "", "invalid_amount"},
		{"infinite", math.Inf(1), "", "", "invalid_amount"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveMethod(tc.amount, tc.requested)
			if tc.errCode != "" {
				assert.True(t, httperr.IsBusiness(err, tc.errCode))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNextIDNeverReusesAfterDelete(t *testing.T) {
	assert.Equal(t, 1, NextID(nil))

	list := []models.Payment{{ID: 1}, {ID: 3}}
	assert.Equal(t, 4, NextID(list))
}

func TestAppendSnapshotsPatient(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 15, 0, 0, time.UTC)
	existing := []models.Payment{{ID: 1}}

	list, p := Append(existing, Draft{
		Patient: models.Patient{DNI: "30111222", Nombre: "Ana", Apellido: "Gómez", ObraSocial: "OSDE"},
		Amount:  2000,
		Method:  MethodCash,
		Fecha:   "2024-06-10",
		Hora:    "09:00",
	}, now)

	require.Len(t, list, 2)
	assert.Equal(t, 2, p.ID)
	assert.Equal(t, "Ana Gómez", p.NombrePaciente)
	assert.Equal(t, "OSDE", p.ObraSocial)
	assert.Equal(t, "efectivo", p.TipoPago)
	assert.Equal(t, "2024-06-10T09:15:00.000000+00:00", p.FechaRegistro)
}

func TestDuplicateLookups(t *testing.T) {
	list := []models.Payment{
		{DNIPaciente: "30111222", Fecha: "2024-06-10", Hora: "09:00"},
	}

	assert.True(t, ExistsForSlot(list, "30111222", "2024-06-10", "09:00"))
	assert.False(t, ExistsForSlot(list, "30111222", "2024-06-10", "10:00"))
	assert.True(t, ExistsForDay(list, "30111222", "2024-06-10"))
	assert.False(t, ExistsForDay(list, "30111222", "2024-06-11"))
}

func TestByMethodTreatsMissingAsCash(t *testing.T) {
	totals := ByMethod([]models.Payment{
		{Monto: 100},
		{Monto: 200, TipoPago: "efectivo"},
		{Monto: 300, TipoPago: "transferencia"},
		{Monto: 0, TipoPago: "obra_social"},
	})

	assert.Equal(t, 2, totals.Efectivo)
	assert.Equal(t, 300.0, totals.TotalEfectivo)
	assert.Equal(t, 1, totals.Transferencia)
	assert.Equal(t, 1, totals.ObraSocial)
}
