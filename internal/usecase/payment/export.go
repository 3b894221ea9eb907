package payment

import (
	"context"

	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/clinic"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/payment"
	"github.com/BruksfildServices01/clinica-turnos/internal/export"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
	"github.com/BruksfildServices01/clinica-turnos/internal/timezone"
)

// ExportFilter selects one day (Fecha) or one month (Mes). With neither,
// the current month is exported. A malformed Fecha means today.
type ExportFilter struct {
	Fecha string
	Mes   string
}

type ExportPayments struct {
	repo  clinic.Repository
	clock timezone.Clock
}

func NewExportPayments(repo clinic.Repository, clock timezone.Clock) *ExportPayments {
	return &ExportPayments{
		repo:  repo,
		clock: clock,
	}
}

func (uc *ExportPayments) Execute(
	ctx context.Context,
	actor authz.Actor,
	f ExportFilter,
) (*export.Report, error) {

	if err := actor.Can(authz.ResourcePayment, authz.ActionExport); err != nil {
		return nil, err
	}

	list, err := uc.repo.Payments(ctx)
	if err != nil {
		return nil, err
	}
	patients, err := uc.repo.Patients(ctx)
	if err != nil {
		return nil, err
	}
	byDNI := make(map[string]models.Patient, len(patients))
	for _, p := range patients {
		if _, ok := byDNI[p.DNI]; !ok {
			byDNI[p.DNI] = p
		}
	}

	report := export.Report{}
	var selected []models.Payment

	switch {
	case f.Fecha != "":
		fecha := f.Fecha
		if _, err := timezone.ParseDate(fecha); err != nil {
			fecha = uc.clock.Today()
		}
		selected = payment.OnDate(list, fecha)
		report.Name = "pagos_" + fecha
		report.Daily = true
	case f.Mes != "":
		selected = payment.InMonth(list, f.Mes)
		report.Name = "pagos_" + f.Mes
	default:
		mes := uc.clock.Now().Format("2006-01")
		selected = payment.InMonth(list, mes)
		report.Name = "pagos_" + mes
	}

	report.Rows = make([]export.Row, 0, len(selected))
	for _, p := range selected {
		pat := byDNI[p.DNIPaciente]
		method := p.TipoPago
		if method == "" {
			method = string(payment.MethodCash)
		}
		report.Rows = append(report.Rows, export.Row{
			Fecha:         p.Fecha,
			DNI:           p.DNIPaciente,
			Nombre:        pat.Nombre,
			Apellido:      pat.Apellido,
			Monto:         p.Monto,
			TipoPago:      method,
			ObraSocial:    pat.ObraSocial,
			Observaciones: p.Observaciones,
		})
	}

	if report.Daily {
		totals := payment.ByMethod(selected)
		report.SubtotalEfectivo = totals.TotalEfectivo
		report.SubtotalTransferencia = totals.TotalTransferencia
		report.SubtotalObraSocial = totals.TotalObraSocial
		report.Total = totals.TotalEfectivo + totals.TotalTransferencia
	}

	return &report, nil
}
