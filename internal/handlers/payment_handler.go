package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
	"github.com/BruksfildServices01/clinica-turnos/internal/httpresp"
	"github.com/BruksfildServices01/clinica-turnos/internal/middleware"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
	ucPayment "github.com/BruksfildServices01/clinica-turnos/internal/usecase/payment"
)

// ======================================================
// HANDLER
// ======================================================

type PaymentHandler struct {
	list     *ucPayment.ListPayments
	register *ucPayment.RegisterPayment
	delete   *ucPayment.DeletePayment
	stats    *ucPayment.PaymentStats
	export   *ucPayment.ExportPayments
	charge   *ucPayment.ChargeAndSeat
	link     *ucPayment.CreateCheckoutLink
}

func NewPaymentHandler(
	list *ucPayment.ListPayments,
	register *ucPayment.RegisterPayment,
	delete *ucPayment.DeletePayment,
	stats *ucPayment.PaymentStats,
	export *ucPayment.ExportPayments,
	charge *ucPayment.ChargeAndSeat,
	link *ucPayment.CreateCheckoutLink,
) *PaymentHandler {
	return &PaymentHandler{
		list:     list,
		register: register,
		delete:   delete,
		stats:    stats,
		export:   export,
		charge:   charge,
		link:     link,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type RegisterPaymentRequest struct {
	DNIPaciente   string        `json:"dni_paciente"`
	Fecha         string        `json:"fecha"`
	Hora          string        `json:"hora"`
	Monto         models.Amount `json:"monto"`
	TipoPago      string        `json:"tipo_pago"`
	Observaciones string        `json:"observaciones"`
}

type ChargeAndSeatRequest struct {
	DNIPaciente   string        `json:"dni_paciente"`
	Fecha         string        `json:"fecha"`
	Monto         models.Amount `json:"monto"`
	TipoPago      string        `json:"tipo_pago"`
	Observaciones string        `json:"observaciones"`
}

type PaymentResponse struct {
	Mensaje string         `json:"mensaje"`
	Pago    models.Payment `json:"pago"`
}

func paymentID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.NotFound(c, "payment_not_found", "Pago no encontrado.")
		return 0, false
	}
	return id, true
}

// ======================================================
// LIST / REGISTER / DELETE
// ======================================================

func (h *PaymentHandler) List(c *gin.Context) {
	out, err := h.list.Execute(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *PaymentHandler) Register(c *gin.Context) {
	var req RegisterPaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.register.Execute(c.Request.Context(), middleware.ActorFrom(c), ucPayment.RegisterPaymentInput{
		DNIPaciente:   req.DNIPaciente,
		Fecha:         req.Fecha,
		Hora:          req.Hora,
		Monto:         float64(req.Monto),
		TipoPago:      req.TipoPago,
		Observaciones: req.Observaciones,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, PaymentResponse{
		Mensaje: "Pago registrado correctamente",
		Pago:    *p,
	})
}

func (h *PaymentHandler) Delete(c *gin.Context) {
	id, ok := paymentID(c)
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, "Pago eliminado correctamente")
}

// ======================================================
// CHARGE AND SEAT
// ======================================================

func (h *PaymentHandler) ChargeAndSeat(c *gin.Context) {
	var req ChargeAndSeatRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.DNIPaciente == "" || req.Fecha == "" {
		httperr.BadRequest(c, "missing_field", "DNI y fecha son requeridos.")
		return
	}

	out, err := h.charge.Execute(c.Request.Context(), middleware.ActorFrom(c), ucPayment.ChargeAndSeatInput{
		DNIPaciente:   req.DNIPaciente,
		Fecha:         req.Fecha,
		Monto:         float64(req.Monto),
		TipoPago:      req.TipoPago,
		Observaciones: req.Observaciones,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, PaymentResponse{
		Mensaje: "Pago registrado y paciente movido a sala de espera",
		Pago:    out.Payment,
	})
}

// ======================================================
// STATS
// ======================================================

func (h *PaymentHandler) Stats(c *gin.Context) {
	out, err := h.stats.Daily(c.Request.Context(), middleware.ActorFrom(c), c.Query("fecha"), c.Query("mes"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *PaymentHandler) AdminStats(c *gin.Context) {
	out, err := h.stats.Monthly(c.Request.Context(), middleware.ActorFrom(c), c.Query("mes"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

// ======================================================
// EXPORT
// ======================================================

// Export streams the payments of a day (fecha) or month (mes) as csv
// (default) or xlsx.
func (h *PaymentHandler) Export(c *gin.Context) {
	report, err := h.export.Execute(c.Request.Context(), middleware.ActorFrom(c), ucPayment.ExportFilter{
		Fecha: c.Query("fecha"),
		Mes:   c.Query("mes"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	sendTable(c, report.Table(), c.DefaultQuery("formato", "csv"))
}

// ======================================================
// CHECKOUT LINK
// ======================================================

func (h *PaymentHandler) CheckoutLink(c *gin.Context) {
	id, ok := paymentID(c)
	if !ok {
		return
	}

	link, err := h.link.Execute(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, link)
}
