package report

import (
	"context"

	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/appointment"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/clinic"
	"github.com/BruksfildServices01/clinica-turnos/internal/timezone"
)

type Occupancy struct {
	SlotsDisponibles    int     `json:"slots_disponibles"`
	SlotsOcupados       int     `json:"slots_ocupados"`
	PorcentajeOcupacion float64 `json:"porcentaje_ocupacion"`
}

type OccupancyReport struct {
	FechaInicio           string                `json:"fecha_inicio"`
	FechaFin              string                `json:"fecha_fin"`
	OcupacionPromedio     float64               `json:"ocupacion_promedio"`
	TotalSlotsDisponibles int                   `json:"total_slots_disponibles"`
	TotalSlotsOcupados    int                   `json:"total_slots_ocupados"`
	OcupacionPorMedico    map[string]*Occupancy `json:"ocupacion_por_medico"`
	OcupacionPorDia       map[string]*Occupancy `json:"ocupacion_por_dia"`
}

// ReportOccupancy compares booked turnos with the weekly agenda. Per doctor
// the capacity is one week of slots, so the figure is approximate for
// longer periods.
type ReportOccupancy struct {
	repo  clinic.Repository
	clock timezone.Clock
}

func NewReportOccupancy(repo clinic.Repository, clock timezone.Clock) *ReportOccupancy {
	return &ReportOccupancy{
		repo:  repo,
		clock: clock,
	}
}

// Execute defaults to the last seven days when either bound is missing.
func (uc *ReportOccupancy) Execute(
	ctx context.Context,
	actor authz.Actor,
	from, to string,
) (*OccupancyReport, error) {

	if err := actor.Can(authz.ResourceReport, authz.ActionRead); err != nil {
		return nil, err
	}

	if from == "" || to == "" {
		now := uc.clock.Now()
		to = now.Format("2006-01-02")
		from = now.AddDate(0, 0, -7).Format("2006-01-02")
	}
	period, err := parseRange(from, to)
	if err != nil {
		return nil, err
	}

	list, err := uc.repo.Appointments(ctx)
	if err != nil {
		return nil, err
	}
	agenda, err := uc.repo.Agenda(ctx)
	if err != nil {
		return nil, err
	}

	out := &OccupancyReport{
		FechaInicio:        from,
		FechaFin:           to,
		OcupacionPorMedico: map[string]*Occupancy{},
		OcupacionPorDia:    map[string]*Occupancy{},
	}

	bookedBy := map[string]int{}
	for _, ap := range list {
		if !period.Contains(ap.Fecha) {
			continue
		}
		bookedBy[ap.Medico]++

		day := out.OcupacionPorDia[ap.Fecha]
		if day == nil {
			day = &Occupancy{}
			out.OcupacionPorDia[ap.Fecha] = day
		}
		day.SlotsOcupados++
	}

	for medico, days := range agenda {
		o := &Occupancy{SlotsOcupados: bookedBy[medico]}
		for _, slots := range days {
			o.SlotsDisponibles += len(slots)
		}
		o.PorcentajeOcupacion = percent(o.SlotsOcupados, o.SlotsDisponibles)
		out.OcupacionPorMedico[medico] = o

		out.TotalSlotsDisponibles += o.SlotsDisponibles
		out.TotalSlotsOcupados += o.SlotsOcupados
	}

	for fecha, day := range out.OcupacionPorDia {
		if d, err := timezone.ParseDate(fecha); err == nil {
			if name, ok := appointment.WeekdayName(d); ok {
				for _, days := range agenda {
					day.SlotsDisponibles += len(days[name])
				}
			}
		}
		day.PorcentajeOcupacion = percent(day.SlotsOcupados, day.SlotsDisponibles)
	}

	out.OcupacionPromedio = percent(out.TotalSlotsOcupados, out.TotalSlotsDisponibles)

	return out, nil
}
