package report

import (
	"context"
	"sort"
	"strings"

	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/appointment"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/clinic"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/payment"
	"github.com/BruksfildServices01/clinica-turnos/internal/export"
	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
	"github.com/BruksfildServices01/clinica-turnos/internal/timezone"
)

type CustomRow struct {
	DNI              string  `json:"dni"`
	Nombre           string  `json:"nombre"`
	Apellido         string  `json:"apellido"`
	ObraSocial       string  `json:"obra_social"`
	NumeroObraSocial string  `json:"numero_obra_social"`
	FechaTurno       string  `json:"fecha_turno"`
	HoraTurno        string  `json:"hora_turno"`
	Medico           string  `json:"medico"`
	Estado           string  `json:"estado"`
	MontoPagado      float64 `json:"monto_pagado"`
	TipoPago         string  `json:"tipo_pago"`
}

type CustomReport struct {
	FechaInicio      string      `json:"fecha_inicio"`
	FechaFin         string      `json:"fecha_fin"`
	MedicoFiltro     string      `json:"medico_filtro"`
	ObraSocialFiltro string      `json:"obra_social_filtro"`
	TotalPacientes   int         `json:"total_pacientes"`
	TotalAtendidos   int         `json:"total_atendidos"`
	TotalConsultas   int         `json:"total_consultas"`
	Datos            []CustomRow `json:"datos"`

	// Name is the download file name, without extension.
	Name string `json:"-"`
}

type CustomReportInput struct {
	FechaInicio string
	FechaFin    string
	Medico      string
	ObraSocial  string
}

// ReportCustom lists the attended turnos of a period joined with the
// payment collected that day, optionally narrowed to one doctor and one
// insurer.
type ReportCustom struct {
	repo  clinic.Repository
	clock timezone.Clock
}

func NewReportCustom(repo clinic.Repository, clock timezone.Clock) *ReportCustom {
	return &ReportCustom{
		repo:  repo,
		clock: clock,
	}
}

func (uc *ReportCustom) Execute(
	ctx context.Context,
	actor authz.Actor,
	in CustomReportInput,
) (*CustomReport, error) {

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
	if period.From.After(period.To) {
		return nil, httperr.Validation(
			"invalid_range",
			"La fecha de inicio no puede ser mayor que la fecha de fin.",
		)
	}

	appointments, err := uc.repo.Appointments(ctx)
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
	byDNI := indexPatients(patients)

	insurer := strings.ToLower(strings.TrimSpace(in.ObraSocial))
	seen := map[string]bool{}
	out := &CustomReport{
		FechaInicio:      in.FechaInicio,
		FechaFin:         in.FechaFin,
		MedicoFiltro:     in.Medico,
		ObraSocialFiltro: in.ObraSocial,
		Datos:            []CustomRow{},
		Name:             uc.fileName(in),
	}

	for _, ap := range appointments {
		if !period.Contains(ap.Fecha) {
			continue
		}
		if in.Medico != "" && ap.Medico != in.Medico {
			continue
		}
		if appointment.Current(ap.Estado) != appointment.StatusAttended {
			continue
		}
		p, ok := byDNI[ap.DNIPaciente]
		if !ok {
			continue
		}
		if insurer != "" && strings.ToLower(strings.TrimSpace(p.ObraSocial)) != insurer {
			continue
		}

		row := CustomRow{
			DNI:              p.DNI,
			Nombre:           p.Nombre,
			Apellido:         p.Apellido,
			ObraSocial:       p.ObraSocial,
			NumeroObraSocial: p.NumeroObraSocial,
			FechaTurno:       ap.Fecha,
			HoraTurno:        ap.Hora,
			Medico:           ap.Medico,
			Estado:           ap.Estado,
			TipoPago:         string(payment.MethodInsurance),
		}
		if pay, ok := payment.FirstForDay(payments, ap.DNIPaciente, ap.Fecha); ok {
			row.MontoPagado = pay.Monto
			if pay.TipoPago != "" {
				row.TipoPago = pay.TipoPago
			}
		}

		seen[p.DNI] = true
		out.Datos = append(out.Datos, row)
	}

	sort.SliceStable(out.Datos, func(i, j int) bool {
		a, b := out.Datos[i], out.Datos[j]
		if a.FechaTurno != b.FechaTurno {
			return a.FechaTurno < b.FechaTurno
		}
		return a.HoraTurno < b.HoraTurno
	})

	out.TotalPacientes = len(seen)
	out.TotalAtendidos = len(seen)
	out.TotalConsultas = len(out.Datos)
	return out, nil
}

// fileName encodes the filters and the generation time:
// reporte_personalizado[_medico][_obra]_YYYYMMDD_YYYYMMDD_YYYYMMDD_HHMMSS.
func (uc *ReportCustom) fileName(in CustomReportInput) string {
	slug := func(s string) string {
		return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "_"))
	}

	parts := []string{"reporte_personalizado"}
	if in.Medico != "" {
		parts = append(parts, slug(in.Medico))
	}
	if strings.TrimSpace(in.ObraSocial) != "" {
		parts = append(parts, slug(in.ObraSocial))
	}
	parts = append(parts,
		strings.ReplaceAll(in.FechaInicio, "-", ""),
		strings.ReplaceAll(in.FechaFin, "-", ""),
		uc.clock.Now().Format("20060102_150405"),
	)
	return strings.Join(parts, "_")
}

// Table lays the report out for download with a summary block at the end.
func (r *CustomReport) Table() export.Table {
	t := export.Table{
		Name:  r.Name,
		Sheet: "Reporte",
		Header: []string{
			"DNI", "Nombre", "Apellido", "Obra Social", "Número Obra Social",
			"Fecha Turno", "Hora Turno", "Médico", "Estado", "Monto Pagado", "Tipo Pago",
		},
		Widths: []float64{12, 18, 18, 18, 18, 12, 10, 18, 12, 14, 14},
		Rows:   make([][]any, 0, len(r.Datos)),
		Summary: [][]any{
			{"RESUMEN"},
			{"Total Pacientes Únicos", r.TotalPacientes},
			{"Total Atendidos", r.TotalAtendidos},
			{"Total Consultas", r.TotalConsultas},
		},
	}
	for _, d := range r.Datos {
		t.Rows = append(t.Rows, []any{
			d.DNI, d.Nombre, d.Apellido, d.ObraSocial, d.NumeroObraSocial,
			d.FechaTurno, d.HoraTurno, d.Medico, d.Estado, d.MontoPagado, d.TipoPago,
		})
	}
	return t
}

// indexPatients maps dni to the first patient stored with it.
func indexPatients(patients []models.Patient) map[string]models.Patient {
	byDNI := make(map[string]models.Patient, len(patients))
	for _, p := range patients {
		if _, ok := byDNI[p.DNI]; !ok {
			byDNI[p.DNI] = p
		}
	}
	return byDNI
}
