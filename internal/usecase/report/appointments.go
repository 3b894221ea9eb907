package report

import (
	"context"

	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/appointment"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/clinic"
	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
	"github.com/BruksfildServices01/clinica-turnos/internal/timezone"
)

type Tally struct {
	Total     int `json:"total"`
	Atendidos int `json:"atendidos"`
	Ausentes  int `json:"ausentes"`
}

type AppointmentsReport struct {
	FechaInicio          string            `json:"fecha_inicio"`
	FechaFin             string            `json:"fecha_fin"`
	MedicoFiltro         string            `json:"medico_filtro"`
	TotalTurnos          int               `json:"total_turnos"`
	TurnosAtendidos      int               `json:"turnos_atendidos"`
	TurnosAusentes       int               `json:"turnos_ausentes"`
	TurnosAusentesReales int               `json:"turnos_ausentes_reales"`
	TurnosVencidos       int               `json:"turnos_vencidos"`
	TurnosPendientes     int               `json:"turnos_pendientes"`
	PorcentajeAtencion   float64           `json:"porcentaje_atencion"`
	PorcentajeAusencias  float64           `json:"porcentaje_ausencias"`
	StatsPorMedico       map[string]*Tally `json:"stats_por_medico"`
	StatsPorDia          map[string]*Tally `json:"stats_por_dia"`
}

// AppointmentsReportInput filters by inclusive date range and, optionally,
// by doctor.
type AppointmentsReportInput struct {
	FechaInicio string
	FechaFin    string
	Medico      string
}

// ReportAppointments counts outcomes over a period. Open turnos more than a
// day past their slot count as absences.
type ReportAppointments struct {
	repo  clinic.Repository
	clock timezone.Clock
}

func NewReportAppointments(repo clinic.Repository, clock timezone.Clock) *ReportAppointments {
	return &ReportAppointments{
		repo:  repo,
		clock: clock,
	}
}

func (uc *ReportAppointments) Execute(
	ctx context.Context,
	actor authz.Actor,
	in AppointmentsReportInput,
) (*AppointmentsReport, error) {

	if err := actor.Can(authz.ResourceReport, authz.ActionRead); err != nil {
		return nil, err
	}
	if in.FechaInicio == "" || in.FechaFin == "" {
		return nil, httperr.Validation("missing_range", "Las fechas de inicio y fin son requeridas.")
	}
	period, err := parseRange(in.FechaInicio, in.FechaFin)
	if err != nil {
		return nil, err
	}

	list, err := uc.repo.Appointments(ctx)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	out := &AppointmentsReport{
		FechaInicio:    in.FechaInicio,
		FechaFin:       in.FechaFin,
		MedicoFiltro:   in.Medico,
		StatsPorMedico: map[string]*Tally{},
		StatsPorDia:    map[string]*Tally{},
	}

	open := 0
	for _, ap := range list {
		if !period.Contains(ap.Fecha) {
			continue
		}
		if in.Medico != "" && ap.Medico != in.Medico {
			continue
		}

		medico := ap.Medico
		if medico == "" {
			medico = "Sin médico"
		}
		byDoctor := out.StatsPorMedico[medico]
		if byDoctor == nil {
			byDoctor = &Tally{}
			out.StatsPorMedico[medico] = byDoctor
		}
		byDay := out.StatsPorDia[ap.Fecha]
		if byDay == nil {
			byDay = &Tally{}
			out.StatsPorDia[ap.Fecha] = byDay
		}

		out.TotalTurnos++
		byDoctor.Total++
		byDay.Total++

		switch {
		case appointment.Current(ap.Estado) == appointment.StatusAttended:
			out.TurnosAtendidos++
			byDoctor.Atendidos++
			byDay.Atendidos++
		case appointment.Current(ap.Estado) == appointment.StatusAbsent:
			out.TurnosAusentesReales++
			byDoctor.Ausentes++
			byDay.Ausentes++
		case appointment.IsOpen(ap.Estado):
			open++
			if appointment.IsOverdue(ap, now) {
				out.TurnosVencidos++
				byDoctor.Ausentes++
				byDay.Ausentes++
			}
		}
	}

	out.TurnosAusentes = out.TurnosAusentesReales + out.TurnosVencidos
	out.TurnosPendientes = open - out.TurnosVencidos
	out.PorcentajeAtencion = percent(out.TurnosAtendidos, out.TotalTurnos)
	out.PorcentajeAusencias = percent(out.TurnosAusentes, out.TotalTurnos)

	return out, nil
}
