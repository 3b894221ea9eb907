package report

import (
	"context"
	"sort"

	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/clinic"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/payment"
	"github.com/BruksfildServices01/clinica-turnos/internal/export"
	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
	"github.com/BruksfildServices01/clinica-turnos/internal/timezone"
)

type IncomeRow struct {
	Fecha            string  `json:"fecha"`
	DNI              string  `json:"dni"`
	Nombre           string  `json:"nombre"`
	Apellido         string  `json:"apellido"`
	ObraSocial       string  `json:"obra_social"`
	NumeroObraSocial string  `json:"numero_obra_social"`
	Monto            float64 `json:"monto"`
	TipoPago         string  `json:"tipo_pago"`
	Observaciones    string  `json:"observaciones"`
}

// IncomeTotals is the dashboard summary of a period.
type IncomeTotals struct {
	TotalIngresos      float64 `json:"total_ingresos"`
	TotalEfectivo      float64 `json:"total_efectivo"`
	TotalTransferencia float64 `json:"total_transferencia"`
}

type IncomeReport struct {
	IncomeTotals

	FechaInicio string      `json:"fecha_inicio"`
	FechaFin    string      `json:"fecha_fin"`
	Pagos       []IncomeRow `json:"pagos"`

	// ConsultasObraSocial counts insurer-covered visits, not money.
	ConsultasObraSocial int `json:"consultas_obra_social"`
	TotalPagos          int `json:"total_pagos"`

	Name string `json:"-"`
}

// ReportIncome lists the payments of a date range with revenue totals.
// Payments without tipo_pago count as cash.
type ReportIncome struct {
	repo  clinic.Repository
	clock timezone.Clock
}

func NewReportIncome(repo clinic.Repository, clock timezone.Clock) *ReportIncome {
	return &ReportIncome{
		repo:  repo,
		clock: clock,
	}
}

func (uc *ReportIncome) Execute(
	ctx context.Context,
	actor authz.Actor,
	from, to string,
) (*IncomeReport, error) {

	if err := actor.Can(authz.ResourceReport, authz.ActionRead); err != nil {
		return nil, err
	}
	if from == "" || to == "" {
		return nil, httperr.Validation("missing_range", "Las fechas de inicio y fin son requeridas.")
	}
	period, err := parseRange(from, to)
	if err != nil {
		return nil, err
	}

	payments, err := uc.repo.Payments(ctx)
	if err != nil {
		return nil, err
	}
	patients, err := uc.repo.Patients(ctx)
	if err != nil {
		return nil, err
	}
	byDNI := indexPatients(patients)

	out := &IncomeReport{
		FechaInicio: from,
		FechaFin:    to,
		Pagos:       []IncomeRow{},
		Name:        "ingresos_anual_" + from + "_" + to + "_" + uc.clock.Now().Format("20060102_150405"),
	}

	var selected []models.Payment
	for _, p := range payments {
		if !period.Contains(p.Fecha) {
			continue
		}
		selected = append(selected, p)

		pat := byDNI[p.DNIPaciente]
		method := p.TipoPago
		if method == "" {
			method = string(payment.MethodCash)
		}
		out.Pagos = append(out.Pagos, IncomeRow{
			Fecha:            p.Fecha,
			DNI:              p.DNIPaciente,
			Nombre:           pat.Nombre,
			Apellido:         pat.Apellido,
			ObraSocial:       pat.ObraSocial,
			NumeroObraSocial: pat.NumeroObraSocial,
			Monto:            p.Monto,
			TipoPago:         method,
			Observaciones:    p.Observaciones,
		})
	}
	sort.SliceStable(out.Pagos, func(i, j int) bool {
		return out.Pagos[i].Fecha < out.Pagos[j].Fecha
	})

	totals := payment.ByMethod(selected)
	out.TotalIngresos = payment.Sum(selected)
	out.TotalEfectivo = totals.TotalEfectivo
	out.TotalTransferencia = totals.TotalTransferencia
	out.ConsultasObraSocial = totals.ObraSocial
	out.TotalPagos = len(selected)

	return out, nil
}

// Table lays the payments out for download. The summary values sit under
// the Monto column.
func (r *IncomeReport) Table() export.Table {
	t := export.Table{
		Name:  r.Name,
		Sheet: "Ingresos",
		Header: []string{
			"Fecha", "DNI", "Nombre", "Apellido", "Obra Social", "Número Obra Social",
			"Monto", "Tipo Pago", "Observaciones",
		},
		Widths: []float64{12, 12, 18, 18, 18, 18, 12, 14, 36},
		Rows:   make([][]any, 0, len(r.Pagos)),
	}
	for _, p := range r.Pagos {
		t.Rows = append(t.Rows, []any{
			p.Fecha, p.DNI, p.Nombre, p.Apellido, p.ObraSocial, p.NumeroObraSocial,
			p.Monto, p.TipoPago, p.Observaciones,
		})
	}

	line := func(label string, value any) []any {
		return []any{label, "", "", "", "", "", value, "", ""}
	}
	t.Summary = [][]any{
		{"RESUMEN ANUAL"},
		line("Total Ingresos", r.TotalIngresos),
		line("Total Efectivo", r.TotalEfectivo),
		line("Total Transferencia", r.TotalTransferencia),
		line("Consultas Obra Social", r.ConsultasObraSocial),
		line("Total Pagos", r.TotalPagos),
	}
	return t
}
