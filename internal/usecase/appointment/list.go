package appointment

import (
	"context"

	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/appointment"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/clinic"
	"github.com/BruksfildServices01/clinica-turnos/internal/dto"
	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
	"github.com/BruksfildServices01/clinica-turnos/internal/timezone"
)

// ListAppointments serves the read side of the turnos: every turno, one
// day's turnos, or the logged-in doctor's.
type ListAppointments struct {
	repo  clinic.Repository
	clock timezone.Clock
}

func NewListAppointments(
	repo clinic.Repository,
	clock timezone.Clock,
) *ListAppointments {
	return &ListAppointments{
		repo:  repo,
		clock: clock,
	}
}

// All returns every turno in storage order with its patient and display date.
func (uc *ListAppointments) All(
	ctx context.Context,
	actor authz.Actor,
) ([]dto.AppointmentView, error) {

	if err := actor.Can(authz.ResourceAppointment, authz.ActionRead); err != nil {
		return nil, err
	}

	list, byDNI, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentView, 0, len(list))
	for _, ap := range list {
		out = append(out, dto.AppointmentView{
			Appointment: ap,
			Paciente:    byDNI[ap.DNIPaciente],
			FechaFmt:    appointment.FormatDate(ap.Fecha),
		})
	}
	return out, nil
}

// ByDate returns the turnos of fecha (today when empty) ordered by time.
func (uc *ListAppointments) ByDate(
	ctx context.Context,
	actor authz.Actor,
	fecha string,
) ([]dto.AppointmentView, error) {

	if err := actor.Can(authz.ResourceAppointment, authz.ActionRead); err != nil {
		return nil, err
	}
	if fecha == "" {
		fecha = uc.clock.Today()
	}

	list, byDNI, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}

	day := make([]models.Appointment, 0)
	for _, ap := range list {
		if ap.Fecha == fecha {
			day = append(day, ap)
		}
	}
	appointment.SortByTime(day)

	out := make([]dto.AppointmentView, 0, len(day))
	for _, ap := range day {
		out = append(out, dto.AppointmentView{
			Appointment: ap,
			Paciente:    byDNI[ap.DNIPaciente],
		})
	}
	return out, nil
}

// ForDoctor returns the turnos whose medico is the actor's username.
func (uc *ListAppointments) ForDoctor(
	ctx context.Context,
	actor authz.Actor,
) ([]dto.AppointmentView, error) {

	if actor.Role != authz.RoleMedico {
		return nil, httperr.Forbidden("forbidden", "No tiene permisos para realizar esta acción.")
	}

	list, byDNI, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentView, 0)
	for _, ap := range list {
		if ap.Medico != actor.User {
			continue
		}
		out = append(out, dto.AppointmentView{
			Appointment: ap,
			Paciente:    byDNI[ap.DNIPaciente],
		})
	}
	return out, nil
}

func (uc *ListAppointments) load(
	ctx context.Context,
) ([]models.Appointment, map[string]*models.Patient, error) {

	list, err := uc.repo.Appointments(ctx)
	if err != nil {
		return nil, nil, err
	}
	// Rows without estado are shown as pending; storage keeps them as they are.
	for i := range list {
		list[i].Estado = string(appointment.Current(list[i].Estado))
	}
	patients, err := uc.repo.Patients(ctx)
	if err != nil {
		return nil, nil, err
	}
	return list, indexPatients(patients), nil
}

// indexPatients maps dni to the first patient stored with it.
func indexPatients(patients []models.Patient) map[string]*models.Patient {
	byDNI := make(map[string]*models.Patient, len(patients))
	for i := range patients {
		if _, ok := byDNI[patients[i].DNI]; !ok {
			byDNI[patients[i].DNI] = &patients[i]
		}
	}
	return byDNI
}
