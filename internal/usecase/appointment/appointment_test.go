package appointment

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
	"github.com/BruksfildServices01/clinica-turnos/internal/infra/repository"
	"github.com/BruksfildServices01/clinica-turnos/internal/infra/store"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
	"github.com/BruksfildServices01/clinica-turnos/internal/timezone"
)

var (
	secretaria = authz.Actor{User: "recepcion", Role: authz.RoleSecretaria}
	medico     = authz.Actor{User: "Dr. Lopez", Role: authz.RoleMedico}
)

// Monday 2024-06-10, 09:05 clinic time.
func fixedClock() timezone.Clock {
	return func() time.Time {
		return time.Date(2024, 6, 10, 9, 5, 0, 0, timezone.Location(""))
	}
}

type fixture struct {
	store *store.MemoryStore
	repo  *repository.Collections
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	s := store.NewMemoryStore()
	repo := repository.NewCollections(s)

	require.NoError(t, repo.SavePatients(ctx, []models.Patient{
		{DNI: "30111222", Nombre: "Ana", Apellido: "Gómez", ObraSocial: "OSDE"},
		{DNI: "28999000", Nombre: "Luis", Apellido: "Pérez"},
	}))
	require.NoError(t, repo.SaveAgenda(ctx, models.Agenda{
		"Dr. Lopez": {"LUNES": {"09:00", "09:30"}},
	}))

	return &fixture{store: s, repo: repo}
}

func (f *fixture) book(t *testing.T, dni, hora string) {
	t.Helper()
	_, err := NewCreateAppointment(f.repo, nil).Execute(context.Background(), secretaria, CreateAppointmentInput{
		Medico:      "Dr. Lopez",
		Hora:        hora,
		Fecha:       "2024-06-10",
		DNIPaciente: dni,
	})
	require.NoError(t, err)
}

func (f *fixture) appointments(t *testing.T) []models.Appointment {
	t.Helper()
	list, err := f.repo.Appointments(context.Background())
	require.NoError(t, err)
	return list
}

func (f *fixture) payments(t *testing.T) []models.Payment {
	t.Helper()
	list, err := f.repo.Payments(context.Background())
	require.NoError(t, err)
	return list
}

func TestCreateAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("books a free slot as pending", func(t *testing.T) {
		f := newFixture(t)
		f.book(t, "30111222", "09:00")

		list := f.appointments(t)
		require.Len(t, list, 1)
		assert.Equal(t, "sin atender", list[0].Estado)
	})

	t.Run("rejects a taken slot", func(t *testing.T) {
		f := newFixture(t)
		f.book(t, "30111222", "09:00")

		_, err := NewCreateAppointment(f.repo, nil).Execute(ctx, secretaria, CreateAppointmentInput{
			Medico: "Dr. Lopez", Hora: "09:00", Fecha: "2024-06-10", DNIPaciente: "28999000",
		})
		assert.True(t, httperr.IsBusiness(err, "slot_taken"))
		assert.Len(t, f.appointments(t), 1)
	})

	t.Run("rejects hours outside the agenda", func(t *testing.T) {
		f := newFixture(t)
		_, err := NewCreateAppointment(f.repo, nil).Execute(ctx, secretaria, CreateAppointmentInput{
			Medico: "Dr. Lopez", Hora: "11:00", Fecha: "2024-06-10", DNIPaciente: "30111222",
		})
		assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))
	})

	t.Run("rejects unknown patient", func(t *testing.T) {
		f := newFixture(t)
		_, err := NewCreateAppointment(f.repo, nil).Execute(ctx, secretaria, CreateAppointmentInput{
			Medico: "Dr. Lopez", Hora: "09:00", Fecha: "2024-06-10", DNIPaciente: "11111111",
		})
		kind, ok := httperr.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, httperr.KindNotFound, kind)
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		f := newFixture(t)
		_, err := NewCreateAppointment(f.repo, nil).Execute(ctx, secretaria, CreateAppointmentInput{
			Medico: "Dr. Lopez", Hora: "09:00", Fecha: "10/06/2024", DNIPaciente: "30111222",
		})
		assert.True(t, httperr.IsBusiness(err, "invalid_date"))
	})

	t.Run("doctors cannot book", func(t *testing.T) {
		f := newFixture(t)
		_, err := NewCreateAppointment(f.repo, nil).Execute(ctx, medico, CreateAppointmentInput{
			Medico: "Dr. Lopez", Hora: "09:00", Fecha: "2024-06-10", DNIPaciente: "30111222",
		})
		kind, _ := httperr.KindOf(err)
		assert.Equal(t, httperr.KindForbidden, kind)
	})
}

func TestFrontDeskFlow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.book(t, "30111222", "09:00")

	seat := NewMoveToWaitingRoom(f.repo, nil, fixedClock())
	in := MoveToWaitingRoomInput{DNIPaciente: "30111222", Fecha: "2024-06-10", Hora: "09:00", Monto: 0, TipoPago: "efectivo"}

	// 1️⃣ not received yet: nothing is written
	_, err := seat.Execute(ctx, secretaria, in)
	assert.True(t, httperr.IsBusiness(err, "not_received"))
	assert.Empty(t, f.payments(t))

	// 2️⃣ receive
	ap, err := NewReceivePatient(f.repo, nil, fixedClock()).Execute(ctx, secretaria, ReceivePatientInput{
		DNIPaciente: "30111222", Fecha: "2024-06-10", Hora: "09:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "recepcionado", ap.Estado)
	assert.Equal(t, "09:05", *ap.HoraRecepcion)

	// 3️⃣ seat with amount 0: insurer pays
	out, err := seat.Execute(ctx, secretaria, in)
	require.NoError(t, err)
	assert.Equal(t, "obra_social", out.Payment.TipoPago)
	assert.Equal(t, 1, out.Payment.ID)
	assert.Equal(t, "Ana Gómez", out.Payment.NombrePaciente)
	assert.Equal(t, "sala de espera", out.Appointment.Estado)

	list := f.appointments(t)
	require.Len(t, list, 1)
	assert.Equal(t, "sala de espera", list[0].Estado)
	assert.True(t, list[0].PagoRegistrado)
	assert.Len(t, f.payments(t), 1)

	// already in the waiting room: no second payment
	_, err = seat.Execute(ctx, secretaria, in)
	assert.True(t, httperr.IsBusiness(err, "not_received"))
	assert.Len(t, f.payments(t), 1)

	// 4️⃣ the queues follow the state
	queues := NewFrontDeskQueues(f.repo, fixedClock())
	received, err := queues.Received(ctx, secretaria, "")
	require.NoError(t, err)
	assert.Empty(t, received)

	waiting, err := queues.WaitingRoom(ctx, secretaria, "2024-06-10")
	require.NoError(t, err)
	require.Len(t, waiting, 1)
	assert.Equal(t, "obra_social", waiting[0].TipoPago)

	// 5️⃣ doctor closes the visit
	done, err := NewUpdateAppointmentStatus(f.repo, nil).Execute(ctx, medico, UpdateStatusInput{
		DNIPaciente: "30111222", Fecha: "2024-06-10", Hora: "09:00", Estado: "atendido",
	})
	require.NoError(t, err)
	assert.Equal(t, "atendido", done.Estado)
}

func TestMoveToWaitingRoomRejectsInvalidMethod(t *testing.T) {
	f := newFixture(t)
	f.book(t, "30111222", "09:00")

	_, err := NewMoveToWaitingRoom(f.repo, nil, fixedClock()).Execute(context.Background(), secretaria, MoveToWaitingRoomInput{
		DNIPaciente: "30111222", Fecha: "2024-06-10", Hora: "09:00", Monto: 500, TipoPago: "cheque",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_payment_method"))
}

func TestMoveToWaitingRoomRejectsNonFiniteAmount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.book(t, "30111222", "09:00")

	_, err := NewReceivePatient(f.repo, nil, fixedClock()).Execute(ctx, secretaria, ReceivePatientInput{
		DNIPaciente: "30111222", Fecha: "2024-06-10", Hora: "09:00",
	})
	require.NoError(t, err)

	_, err = NewMoveToWaitingRoom(f.repo, nil, fixedClock()).Execute(ctx, secretaria, MoveToWaitingRoomInput{
		DNIPaciente: "30111222", Fecha: "2024-06-10", Hora: "09:00", Monto: math.NaN(), TipoPago: "efectivo",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_amount"))
	assert.Empty(t, f.payments(t))
	assert.Equal(t, "recepcionado", f.appointments(t)[0].Estado)
}

func TestMoveToWaitingRoomRollsBackPaymentWhenAppointmentSaveFails(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.book(t, "30111222", "09:00")

	_, err := NewReceivePatient(f.repo, nil, fixedClock()).Execute(ctx, secretaria, ReceivePatientInput{
		DNIPaciente: "30111222", Fecha: "2024-06-10", Hora: "09:00",
	})
	require.NoError(t, err)

	boom := errors.New("disk full")
	f.store.FailOn = map[store.Collection]error{store.Appointments: boom}

	_, err = NewMoveToWaitingRoom(f.repo, nil, fixedClock()).Execute(ctx, secretaria, MoveToWaitingRoomInput{
		DNIPaciente: "30111222", Fecha: "2024-06-10", Hora: "09:00", Monto: 1500,
	})
	assert.ErrorIs(t, err, boom)

	f.store.FailOn = nil
	assert.Empty(t, f.payments(t))
	assert.Equal(t, "recepcionado", f.appointments(t)[0].Estado)
}

func TestUpdateStatusRejectsFrontDeskStates(t *testing.T) {
	f := newFixture(t)
	f.book(t, "30111222", "09:00")

	_, err := NewUpdateAppointmentStatus(f.repo, nil).Execute(context.Background(), medico, UpdateStatusInput{
		DNIPaciente: "30111222", Fecha: "2024-06-10", Hora: "09:00", Estado: "sala de espera",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestRescheduleFreesPreviousSlot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.book(t, "30111222", "09:00")

	nueva := "09:30"
	moved, err := NewRescheduleAppointment(f.repo, nil).Execute(ctx, secretaria, RescheduleInput{
		DNIPaciente: "30111222", Fecha: "2024-06-10", Hora: "09:00", NuevaHora: &nueva,
	})
	require.NoError(t, err)
	assert.Equal(t, "09:30", moved.Hora)

	// 09:00 is bookable again
	f.book(t, "28999000", "09:00")

	// and 09:30 is now taken
	back := "09:30"
	_, err = NewRescheduleAppointment(f.repo, nil).Execute(ctx, secretaria, RescheduleInput{
		DNIPaciente: "28999000", Fecha: "2024-06-10", Hora: "09:00", NuevaHora: &back,
	})
	assert.True(t, httperr.IsBusiness(err, "slot_taken"))
}

func TestRescheduleIgnoresUnknownStatus(t *testing.T) {
	f := newFixture(t)
	f.book(t, "30111222", "09:00")

	estado := "perdido"
	out, err := NewRescheduleAppointment(f.repo, nil).Execute(context.Background(), secretaria, RescheduleInput{
		DNIPaciente: "30111222", Fecha: "2024-06-10", Hora: "09:00", NuevoEstado: &estado,
	})
	require.NoError(t, err)
	assert.Equal(t, "sin atender", out.Estado)
}

func TestDeleteAppointment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.book(t, "30111222", "09:00")

	uc := NewDeleteAppointment(f.repo, nil)
	require.NoError(t, uc.Execute(ctx, secretaria, "30111222", "2024-06-10", "09:00"))
	assert.Empty(t, f.appointments(t))

	err := uc.Execute(ctx, secretaria, "30111222", "2024-06-10", "09:00")
	kind, _ := httperr.KindOf(err)
	assert.Equal(t, httperr.KindNotFound, kind)
}

func TestExpireStaleAppointments(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.repo.SaveAppointments(ctx, []models.Appointment{
		{Medico: "Dr. Lopez", Fecha: "2024-06-03", Hora: "09:00", DNIPaciente: "30111222", Estado: "sin atender"},
		{Medico: "Dr. Lopez", Fecha: "2024-06-03", Hora: "09:30", DNIPaciente: "28999000", Estado: "atendido"},
		{Medico: "Dr. Lopez", Fecha: "2024-06-10", Hora: "09:00", DNIPaciente: "30111222", Estado: "sin atender"},
	}))

	n, err := NewExpireStaleAppointments(f.repo, nil, fixedClock()).Execute(ctx, authz.System)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	list := f.appointments(t)
	require.Len(t, list, 2)
	assert.Equal(t, "atendido", list[0].Estado)
	assert.Equal(t, "2024-06-10", list[1].Fecha)
}

func TestTurnosWithoutEstado(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.store.Save(ctx, store.Appointments, []byte(
		`[{"medico":"Dr. Lopez","hora":"09:00","fecha":"2024-06-01","dni_paciente":"30111222"}]`,
	)))

	n, err := NewExpireStaleAppointments(f.repo, nil, fixedClock()).Execute(ctx, authz.System)
	require.NoError(t, err)
	assert.Zero(t, n)

	all, err := NewListAppointments(f.repo, fixedClock()).All(ctx, secretaria)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "sin atender", all[0].Estado)
	assert.Empty(t, f.appointments(t)[0].Estado)
}

func TestListForDoctorOnlyReturnsOwnTurnos(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.book(t, "30111222", "09:00")

	require.NoError(t, f.repo.SaveAgenda(ctx, models.Agenda{
		"Dr. Lopez": {"LUNES": {"09:00", "09:30"}},
		"Dra. Ruiz": {"LUNES": {"10:00"}},
	}))
	_, err := NewCreateAppointment(f.repo, nil).Execute(ctx, secretaria, CreateAppointmentInput{
		Medico: "Dra. Ruiz", Hora: "10:00", Fecha: "2024-06-10", DNIPaciente: "28999000",
	})
	require.NoError(t, err)

	out, err := NewListAppointments(f.repo, fixedClock()).ForDoctor(ctx, medico)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Dr. Lopez", out[0].Medico)
	require.NotNil(t, out[0].Paciente)
	assert.Equal(t, "Ana", out[0].Paciente.Nombre)

	_, err = NewListAppointments(f.repo, fixedClock()).ForDoctor(ctx, secretaria)
	kind, _ := httperr.KindOf(err)
	assert.Equal(t, httperr.KindForbidden, kind)
}

func TestByDateSortsByTimeAndDefaultsToToday(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.book(t, "28999000", "09:30")
	f.book(t, "30111222", "09:00")

	out, err := NewListAppointments(f.repo, fixedClock()).ByDate(ctx, secretaria, "")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "09:00", out[0].Hora)
	assert.Equal(t, "Luis", out[1].Paciente.Nombre)

	all, err := NewListAppointments(f.repo, fixedClock()).All(ctx, secretaria)
	require.NoError(t, err)
	assert.Equal(t, "09:30", all[0].Hora)
	assert.Equal(t, "10/6/2024", all[0].FechaFmt)
}

func TestAttendedUnpaidQueue(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.book(t, "30111222", "09:00")
	f.book(t, "28999000", "09:30")

	status := NewUpdateAppointmentStatus(f.repo, nil)
	for _, slot := range []struct{ dni, hora string }{{"30111222", "09:00"}, {"28999000", "09:30"}} {
		_, err := status.Execute(ctx, medico, UpdateStatusInput{
			DNIPaciente: slot.dni, Fecha: "2024-06-10", Hora: slot.hora, Estado: "atendido",
		})
		require.NoError(t, err)
	}
	require.NoError(t, f.repo.SavePayments(ctx, []models.Payment{
		{ID: 1, DNIPaciente: "28999000", Fecha: "2024-06-10", Monto: 800, TipoPago: "efectivo"},
	}))

	out, err := NewFrontDeskQueues(f.repo, fixedClock()).AttendedUnpaid(ctx, secretaria, "")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "30111222", out[0].DNI)
	assert.Equal(t, "09:00", out[0].HoraTurno)
}
