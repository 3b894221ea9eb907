package payment

import (
	"context"

	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/clinic"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/payment"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
	"github.com/BruksfildServices01/clinica-turnos/internal/timezone"
)

// DailyStats is the front-desk cash summary for one day and its month.
type DailyStats struct {
	TotalDia         float64                       `json:"total_dia"`
	TotalMes         float64                       `json:"total_mes"`
	CantidadPagosDia int                           `json:"cantidad_pagos_dia"`
	CantidadPagosMes int                           `json:"cantidad_pagos_mes"`
	PagosObraSocial  int                           `json:"pagos_obra_social"`
	PagosParticular  int                           `json:"pagos_particulares"`
	Fecha            string                        `json:"fecha"`
	MesConsultado    string                        `json:"mes_consultado"`
	DetallePorDia    map[string]*payment.DayDetail `json:"detalle_por_dia"`

	PagosEfectivoHoy      int     `json:"pagos_efectivo_hoy"`
	PagosTransferenciaHoy int     `json:"pagos_transferencia_hoy"`
	PagosObraSocialHoy    int     `json:"pagos_obra_social_hoy"`
	TotalEfectivoHoy      float64 `json:"total_efectivo_hoy"`
	TotalTransferenciaHoy float64 `json:"total_transferencia_hoy"`
	TotalObraSocialHoy    float64 `json:"total_obra_social_hoy"`
}

// MonthStats is the administrator's monthly summary.
type MonthStats struct {
	Mes              string                        `json:"mes"`
	TotalMes         float64                       `json:"total_mes"`
	PagosParticular  int                           `json:"pagos_particulares"`
	PagosObraSocial  int                           `json:"pagos_obra_social"`
	CantidadPagosMes int                           `json:"cantidad_pagos_mes"`
	DetallePorDia    map[string]*payment.DayDetail `json:"detalle_por_dia"`

	PagosEfectivo        int     `json:"pagos_efectivo"`
	PagosTransferencia   int     `json:"pagos_transferencia"`
	PagosObraSocialCount int     `json:"pagos_obra_social_count"`
	TotalEfectivo        float64 `json:"total_efectivo"`
	TotalTransferencia   float64 `json:"total_transferencia"`
	TotalObraSocial      float64 `json:"total_obra_social"`
}

type PaymentStats struct {
	repo  clinic.Repository
	clock timezone.Clock
}

func NewPaymentStats(repo clinic.Repository, clock timezone.Clock) *PaymentStats {
	return &PaymentStats{
		repo:  repo,
		clock: clock,
	}
}

// Daily aggregates fecha (today when empty or malformed) and mes (the month
// of fecha when empty).
func (uc *PaymentStats) Daily(
	ctx context.Context,
	actor authz.Actor,
	fecha, mes string,
) (*DailyStats, error) {

	if err := actor.Can(authz.ResourcePayment, authz.ActionReadStats); err != nil {
		return nil, err
	}

	if _, err := timezone.ParseDate(fecha); err != nil {
		fecha = uc.clock.Today()
	}
	if mes == "" {
		mes = fecha[:7]
	}

	list, err := uc.repo.Payments(ctx)
	if err != nil {
		return nil, err
	}

	day := payment.OnDate(list, fecha)
	month := payment.InMonth(list, mes)
	insurance, private := payment.CountCoverage(month)
	byMethod := payment.ByMethod(day)

	return &DailyStats{
		TotalDia:         payment.Sum(day),
		TotalMes:         payment.Sum(month),
		CantidadPagosDia: len(day),
		CantidadPagosMes: len(month),
		PagosObraSocial:  insurance,
		PagosParticular:  private,
		Fecha:            fecha,
		MesConsultado:    mes,
		DetallePorDia:    payment.ByDay(month, nil),

		PagosEfectivoHoy:      byMethod.Efectivo,
		PagosTransferenciaHoy: byMethod.Transferencia,
		PagosObraSocialHoy:    byMethod.ObraSocial,
		TotalEfectivoHoy:      byMethod.TotalEfectivo,
		TotalTransferenciaHoy: byMethod.TotalTransferencia,
		TotalObraSocialHoy:    byMethod.TotalObraSocial,
	}, nil
}

// Monthly aggregates mes (current month when empty). Day details name the
// patient as currently registered rather than the stored snapshot.
func (uc *PaymentStats) Monthly(
	ctx context.Context,
	actor authz.Actor,
	mes string,
) (*MonthStats, error) {

	if err := actor.Can(authz.ResourcePayment, authz.ActionReadAdminStats); err != nil {
		return nil, err
	}

	if mes == "" {
		mes = uc.clock.Now().Format("2006-01")
	}

	list, err := uc.repo.Payments(ctx)
	if err != nil {
		return nil, err
	}
	patients, err := uc.repo.Patients(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(patients))
	for _, p := range patients {
		if _, ok := names[p.DNI]; !ok {
			names[p.DNI] = p.FullName()
		}
	}

	month := payment.InMonth(list, mes)
	insurance, private := payment.CountCoverage(month)
	byMethod := payment.ByMethod(month)

	return &MonthStats{
		Mes:              mes,
		TotalMes:         payment.Sum(month),
		PagosParticular:  private,
		PagosObraSocial:  insurance,
		CantidadPagosMes: len(month),
		DetallePorDia: payment.ByDay(month, func(p models.Payment) string {
			return names[p.DNIPaciente]
		}),

		PagosEfectivo:        byMethod.Efectivo,
		PagosTransferencia:   byMethod.Transferencia,
		PagosObraSocialCount: byMethod.ObraSocial,
		TotalEfectivo:        byMethod.TotalEfectivo,
		TotalTransferencia:   byMethod.TotalTransferencia,
		TotalObraSocial:      byMethod.TotalObraSocial,
	}, nil
}
