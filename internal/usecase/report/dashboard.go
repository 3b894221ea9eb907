package report

import (
	"context"
	"math"

	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/appointment"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/clinic"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/patient"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/payment"
	"github.com/BruksfildServices01/clinica-turnos/internal/timezone"
)

type DoctorEfficiency struct {
	Total      int     `json:"total"`
	Atendidos  int     `json:"atendidos"`
	Eficiencia float64 `json:"eficiencia"`
}

type Dashboard struct {
	FechaConsulta string `json:"fecha_consulta"`
	MesActual     string `json:"mes_actual"`

	TotalPacientes     int     `json:"total_pacientes"`
	PacientesActivos   int     `json:"pacientes_activos"`
	PacientesSinTurnos int     `json:"pacientes_sin_turnos"`
	EdadPromedio       float64 `json:"edad_promedio"`

	TotalTurnosMes     int     `json:"total_turnos_mes"`
	TurnosAtendidosMes int     `json:"turnos_atendidos_mes"`
	TurnosAusentesMes  int     `json:"turnos_ausentes_mes"`
	TurnosVencidos     int     `json:"turnos_vencidos"`
	PorcentajeAtencion float64 `json:"porcentaje_atencion"`

	OcupacionPromedio     float64 `json:"ocupacion_promedio"`
	TotalSlotsDisponibles int     `json:"total_slots_disponibles"`
	TotalSlotsOcupados    int     `json:"total_slots_ocupados"`

	TotalIngresosMes float64 `json:"total_ingresos_mes"`
	CantidadPagosMes int     `json:"cantidad_pagos_mes"`

	MedicosEficiencia map[string]*DoctorEfficiency `json:"medicos_eficiencia"`
	ObrasSociales     map[string]int               `json:"obras_sociales"`
}

// ExecutiveDashboard gathers the headline figures of the current month.
// Occupancy compares the turnos of the last seven days with one week of
// agenda slots.
type ExecutiveDashboard struct {
	repo  clinic.Repository
	clock timezone.Clock
}

func NewExecutiveDashboard(repo clinic.Repository, clock timezone.Clock) *ExecutiveDashboard {
	return &ExecutiveDashboard{
		repo:  repo,
		clock: clock,
	}
}

func (uc *ExecutiveDashboard) Execute(ctx context.Context, actor authz.Actor) (*Dashboard, error) {
	if err := actor.Can(authz.ResourceReport, authz.ActionRead); err != nil {
		return nil, err
	}

	patients, err := uc.repo.Patients(ctx)
	if err != nil {
		return nil, err
	}
	patients = patient.Dedup(patients)
	appointments, err := uc.repo.Appointments(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := uc.repo.Payments(ctx)
	if err != nil {
		return nil, err
	}
	agenda, err := uc.repo.Agenda(ctx)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	today := now.Format("2006-01-02")
	month := now.Format("2006-01")

	out := &Dashboard{
		FechaConsulta:     today,
		MesActual:         month,
		TotalPacientes:    len(patients),
		MedicosEficiencia: map[string]*DoctorEfficiency{},
		ObrasSociales:     map[string]int{},
	}

	// ======================================================
	// PATIENTS
	// ======================================================
	withAppointments := map[string]bool{}
	for _, ap := range appointments {
		withAppointments[ap.DNIPaciente] = true
	}

	sum, counted := 0, 0
	for _, p := range patients {
		if withAppointments[p.DNI] {
			out.PacientesActivos++
		}
		if age := patient.Age(p.FechaNacimiento, now); age != nil && *age > 0 {
			sum += *age
			counted++
		}
		out.ObrasSociales[insurerLabel(p.ObraSocial)]++
	}
	out.PacientesSinTurnos = out.TotalPacientes - out.PacientesActivos
	if counted > 0 {
		out.EdadPromedio = math.Round(float64(sum)/float64(counted)*10) / 10
	}

	// ======================================================
	// TURNOS OF THE MONTH
	// ======================================================
	absent := 0
	for _, ap := range appointments {
		if len(ap.Fecha) < 7 || ap.Fecha[:7] != month {
			continue
		}
		medico := ap.Medico
		if medico == "" {
			medico = "Sin médico"
		}
		doc := out.MedicosEficiencia[medico]
		if doc == nil {
			doc = &DoctorEfficiency{}
			out.MedicosEficiencia[medico] = doc
		}

		out.TotalTurnosMes++
		doc.Total++

		switch {
		case appointment.Current(ap.Estado) == appointment.StatusAttended:
			out.TurnosAtendidosMes++
			doc.Atendidos++
		case appointment.Current(ap.Estado) == appointment.StatusAbsent:
			absent++
		case appointment.IsOverdue(ap, now):
			out.TurnosVencidos++
		}
	}
	out.TurnosAusentesMes = absent + out.TurnosVencidos
	out.PorcentajeAtencion = percent(out.TurnosAtendidosMes, out.TotalTurnosMes)
	for _, doc := range out.MedicosEficiencia {
		doc.Eficiencia = percent(doc.Atendidos, doc.Total)
	}

	// ======================================================
	// OCCUPANCY
	// ======================================================
	week, err := parseRange(now.AddDate(0, 0, -7).Format("2006-01-02"), today)
	if err != nil {
		return nil, err
	}
	for _, ap := range appointments {
		if week.Contains(ap.Fecha) {
			out.TotalSlotsOcupados++
		}
	}
	for _, days := range agenda {
		for _, slots := range days {
			out.TotalSlotsDisponibles += len(slots)
		}
	}
	out.OcupacionPromedio = percent(out.TotalSlotsOcupados, out.TotalSlotsDisponibles)

	// ======================================================
	// INCOME
	// ======================================================
	monthly := payment.InMonth(payments, month)
	out.TotalIngresosMes = payment.Sum(monthly)
	out.CantidadPagosMes = len(monthly)

	return out, nil
}
