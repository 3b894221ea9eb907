package appointment

import (
	"context"
	"sort"

	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/appointment"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/clinic"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/payment"
	"github.com/BruksfildServices01/clinica-turnos/internal/dto"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
	"github.com/BruksfildServices01/clinica-turnos/internal/timezone"
)

// FrontDeskQueues lists, for one day, the patients at each front-desk stage.
type FrontDeskQueues struct {
	repo  clinic.Repository
	clock timezone.Clock
}

func NewFrontDeskQueues(
	repo clinic.Repository,
	clock timezone.Clock,
) *FrontDeskQueues {
	return &FrontDeskQueues{
		repo:  repo,
		clock: clock,
	}
}

type snapshot struct {
	appointments []models.Appointment
	patients     map[string]*models.Patient
	payments     []models.Payment
}

func (uc *FrontDeskQueues) load(ctx context.Context, actor authz.Actor) (*snapshot, error) {
	if err := actor.Can(authz.ResourceAppointment, authz.ActionRead); err != nil {
		return nil, err
	}

	list, err := uc.repo.Appointments(ctx)
	if err != nil {
		return nil, err
	}
	patients, err := uc.repo.Patients(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := uc.repo.Payments(ctx)
	if err != nil {
		return nil, err
	}

	return &snapshot{
		appointments: list,
		patients:     indexPatients(patients),
		payments:     payments,
	}, nil
}

func entry(p *models.Patient, ap models.Appointment) dto.QueueEntry {
	e := dto.QueueEntry{
		DNI:        p.DNI,
		Nombre:     p.Nombre,
		Apellido:   p.Apellido,
		ObraSocial: p.ObraSocial,
		Celular:    p.Celular,
		HoraTurno:  ap.Hora,
		Medico:     ap.Medico,
		Fecha:      ap.Fecha,
	}
	if ap.HoraRecepcion != nil {
		e.HoraRecepcion = *ap.HoraRecepcion
	}
	if ap.HoraSalaEspera != nil {
		e.HoraSalaEspera = *ap.HoraSalaEspera
	}
	return e
}

func sortByTurno(list []dto.QueueEntry) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].HoraTurno < list[j].HoraTurno
	})
}

func (uc *FrontDeskQueues) unpaid(
	ctx context.Context,
	actor authz.Actor,
	fecha string,
	status appointment.Status,
) ([]dto.QueueEntry, error) {

	if fecha == "" {
		fecha = uc.clock.Today()
	}

	s, err := uc.load(ctx, actor)
	if err != nil {
		return nil, err
	}

	out := []dto.QueueEntry{}
	for _, ap := range s.appointments {
		if ap.Fecha != fecha || appointment.Current(ap.Estado) != status {
			continue
		}
		if payment.ExistsForDay(s.payments, ap.DNIPaciente, fecha) {
			continue
		}
		p, ok := s.patients[ap.DNIPaciente]
		if !ok {
			continue
		}
		out = append(out, entry(p, ap))
	}

	sortByTurno(out)
	return out, nil
}

// Received lists patients checked in on fecha who have not paid yet.
func (uc *FrontDeskQueues) Received(
	ctx context.Context,
	actor authz.Actor,
	fecha string,
) ([]dto.QueueEntry, error) {
	return uc.unpaid(ctx, actor, fecha, appointment.StatusReceived)
}

// AttendedUnpaid lists patients seen on fecha with no payment that day.
func (uc *FrontDeskQueues) AttendedUnpaid(
	ctx context.Context,
	actor authz.Actor,
	fecha string,
) ([]dto.QueueEntry, error) {
	return uc.unpaid(ctx, actor, fecha, appointment.StatusAttended)
}

// WaitingRoom lists patients seated on fecha with the payment collected.
func (uc *FrontDeskQueues) WaitingRoom(
	ctx context.Context,
	actor authz.Actor,
	fecha string,
) ([]dto.QueueEntry, error) {

	if fecha == "" {
		fecha = uc.clock.Today()
	}

	s, err := uc.load(ctx, actor)
	if err != nil {
		return nil, err
	}

	out := []dto.QueueEntry{}
	for _, ap := range s.appointments {
		if ap.Fecha != fecha || appointment.Current(ap.Estado) != appointment.StatusWaitingRoom {
			continue
		}
		p, ok := s.patients[ap.DNIPaciente]
		if !ok {
			continue
		}

		e := entry(p, ap)
		amount := 0.0
		e.TipoPago = string(payment.MethodInsurance)
		if pay, ok := payment.FirstForDay(s.payments, ap.DNIPaciente, fecha); ok {
			amount = pay.Monto
			if pay.TipoPago != "" {
				e.TipoPago = pay.TipoPago
			}
			e.Observaciones = pay.Observaciones
		}
		e.MontoPagado = &amount

		out = append(out, e)
	}

	sortByTurno(out)
	return out, nil
}
