package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
	"github.com/BruksfildServices01/clinica-turnos/internal/httpresp"
	"github.com/BruksfildServices01/clinica-turnos/internal/middleware"
	ucReport "github.com/BruksfildServices01/clinica-turnos/internal/usecase/report"
)

// ReportHandler serves the administrator dashboards.
type ReportHandler struct {
	appointments *ucReport.ReportAppointments
	patients     *ucReport.ReportPatients
	occupancy    *ucReport.ReportOccupancy
	custom       *ucReport.ReportCustom
	dashboard    *ucReport.ExecutiveDashboard
	income       *ucReport.ReportIncome
	lists        *ucReport.FilterLists
}

func NewReportHandler(
	appointments *ucReport.ReportAppointments,
	patients *ucReport.ReportPatients,
	occupancy *ucReport.ReportOccupancy,
	custom *ucReport.ReportCustom,
	dashboard *ucReport.ExecutiveDashboard,
	income *ucReport.ReportIncome,
	lists *ucReport.FilterLists,
) *ReportHandler {
	return &ReportHandler{
		appointments: appointments,
		patients:     patients,
		occupancy:    occupancy,
		custom:       custom,
		dashboard:    dashboard,
		income:       income,
		lists:        lists,
	}
}

func (h *ReportHandler) Appointments(c *gin.Context) {
	out, err := h.appointments.Execute(c.Request.Context(), middleware.ActorFrom(c), ucReport.AppointmentsReportInput{
		FechaInicio: c.Query("fecha_inicio"),
		FechaFin:    c.Query("fecha_fin"),
		Medico:      c.Query("medico"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *ReportHandler) Patients(c *gin.Context) {
	out, err := h.patients.Execute(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *ReportHandler) Occupancy(c *gin.Context) {
	out, err := h.occupancy.Execute(
		c.Request.Context(),
		middleware.ActorFrom(c),
		c.Query("fecha_inicio"),
		c.Query("fecha_fin"),
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

// Custom answers JSON by default; formato=csv|excel|xlsx downloads the
// same rows.
func (h *ReportHandler) Custom(c *gin.Context) {
	out, err := h.custom.Execute(c.Request.Context(), middleware.ActorFrom(c), ucReport.CustomReportInput{
		FechaInicio: c.Query("fecha_inicio"),
		FechaFin:    c.Query("fecha_fin"),
		Medico:      c.Query("medico"),
		ObraSocial:  c.Query("obra_social"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	format := c.DefaultQuery("formato", "json")
	if format == "json" {
		httpresp.OK(c, out)
		return
	}
	sendTable(c, out.Table(), format)
}

func (h *ReportHandler) Dashboard(c *gin.Context) {
	out, err := h.dashboard.Execute(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

// IncomeFile downloads the payments of the range, csv unless formato=xlsx.
func (h *ReportHandler) IncomeFile(c *gin.Context) {
	out, err := h.income.Execute(c.Request.Context(), middleware.ActorFrom(c), c.Query("fecha_inicio"), c.Query("fecha_fin"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	sendTable(c, out.Table(), c.DefaultQuery("formato", "csv"))
}

func (h *ReportHandler) IncomeTotals(c *gin.Context) {
	out, err := h.income.Execute(c.Request.Context(), middleware.ActorFrom(c), c.Query("fecha_inicio"), c.Query("fecha_fin"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out.IncomeTotals)
}

func (h *ReportHandler) Doctors(c *gin.Context) {
	out, err := h.lists.Doctors(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *ReportHandler) Insurers(c *gin.Context) {
	out, err := h.lists.Insurers(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}
