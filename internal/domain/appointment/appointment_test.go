package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
)

func agenda() models.Agenda {
	return models.Agenda{
		"Dr. Lopez": {
			"LUNES":   {"09:00", "09:30"},
			"VIERNES": {"10:00"},
		},
	}
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestCheckSlot(t *testing.T) {
	t.Run("offered hour", func(t *testing.T) {
		assert.NoError(t, CheckSlot(agenda(), "Dr. Lopez", date(t, "2024-06-10"), "09:30"))
	})

	t.Run("weekend", func(t *testing.T) {
		err := CheckSlot(agenda(), "Dr. Lopez", date(t, "2024-06-15"), "09:00")
		assert.True(t, httperr.IsBusiness(err, "weekend"))
	})

	t.Run("unknown doctor", func(t *testing.T) {
		err := CheckSlot(agenda(), "Dr. Perez", date(t, "2024-06-10"), "09:00")
		kind, ok := httperr.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, httperr.KindNotFound, kind)
	})

	t.Run("hour not offered that day", func(t *testing.T) {
		err := CheckSlot(agenda(), "Dr. Lopez", date(t, "2024-06-14"), "09:00")
		assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))
	})
}

func TestNormalizeWorkday(t *testing.T) {
	day, ok := NormalizeWorkday(" miercoles ")
	assert.True(t, ok)
	assert.Equal(t, "MIERCOLES", day)

	_, ok = NormalizeWorkday("sabado")
	assert.False(t, ok)
}

func TestMoveToWaitingRoomRequiresReceived(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 5, 0, 0, time.UTC)

	ap := models.Appointment{Estado: string(StatusPending)}
	err := MoveToWaitingRoom(&ap, 1000, now)
	assert.True(t, httperr.IsBusiness(err, "not_received"))
	assert.Equal(t, string(StatusPending), ap.Estado)
	assert.Nil(t, ap.MontoPagado)

	Receive(&ap, now)
	require.NotNil(t, ap.HoraRecepcion)
	assert.Equal(t, "09:05", *ap.HoraRecepcion)

	require.NoError(t, MoveToWaitingRoom(&ap, 1000, now.Add(10*time.Minute)))
	assert.Equal(t, string(StatusWaitingRoom), ap.Estado)
	assert.True(t, ap.PagoRegistrado)
	assert.Equal(t, 1000.0, *ap.MontoPagado)
	assert.Equal(t, "09:15", *ap.HoraSalaEspera)
}

func TestSlotTaken(t *testing.T) {
	list := []models.Appointment{
		{Medico: "Dr. Lopez", Fecha: "2024-06-10", Hora: "09:00", DNIPaciente: "30111222"},
	}

	assert.True(t, SlotTaken(list, "Dr. Lopez", "2024-06-10", "09:00", -1))
	assert.False(t, SlotTaken(list, "Dr. Lopez", "2024-06-10", "09:00", 0))
	assert.False(t, SlotTaken(list, "Dr. Lopez", "2024-06-10", "09:30", -1))
}

func TestIsStale(t *testing.T) {
	now := time.Date(2024, 6, 12, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		ap   models.Appointment
		want bool
	}{
		{"pending two days ago", models.Appointment{Fecha: "2024-06-10", Hora: "09:00", Estado: "sin atender"}, true},
		{"pending case-insensitive", models.Appointment{Fecha: "2024-06-10", Hora: "09:00", Estado: "Sin Atender"}, true},
		{"pending within 24h", models.Appointment{Fecha: "2024-06-11", Hora: "13:00", Estado: "sin atender"}, false},
		{"attended long ago", models.Appointment{Fecha: "2024-06-01", Hora: "09:00", Estado: "atendido"}, false},
		{"bad date", models.Appointment{Fecha: "10/06/2024", Hora: "09:00", Estado: "sin atender"}, false},
		{"no estado recorded", models.Appointment{Fecha: "2024-06-01", Hora: "09:00"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsStale(tc.ap, now))
		})
	}
}

func TestIsOverdueCountsOpenStatuses(t *testing.T) {
	now := time.Date(2024, 6, 12, 12, 0, 0, 0, time.UTC)

	assert.True(t, IsOverdue(models.Appointment{Fecha: "2024-06-10", Hora: "09:00", Estado: "recepcionado"}, now))
	assert.False(t, IsOverdue(models.Appointment{Fecha: "2024-06-10", Hora: "09:00", Estado: "ausente"}, now))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "5/3/2024", FormatDate("2024-03-05"))
	assert.Equal(t, "garbage", FormatDate("garbage"))
}
