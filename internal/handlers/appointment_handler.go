package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
	"github.com/BruksfildServices01/clinica-turnos/internal/httpresp"
	"github.com/BruksfildServices01/clinica-turnos/internal/middleware"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
	ucAppointment "github.com/BruksfildServices01/clinica-turnos/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create       *ucAppointment.CreateAppointment
	updateStatus *ucAppointment.UpdateAppointmentStatus
	receive      *ucAppointment.ReceivePatient
	waitingRoom  *ucAppointment.MoveToWaitingRoom
	reschedule   *ucAppointment.RescheduleAppointment
	delete       *ucAppointment.DeleteAppointment
	expireStale  *ucAppointment.ExpireStaleAppointments
	list         *ucAppointment.ListAppointments
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	updateStatus *ucAppointment.UpdateAppointmentStatus,
	receive *ucAppointment.ReceivePatient,
	waitingRoom *ucAppointment.MoveToWaitingRoom,
	reschedule *ucAppointment.RescheduleAppointment,
	delete *ucAppointment.DeleteAppointment,
	expireStale *ucAppointment.ExpireStaleAppointments,
	list *ucAppointment.ListAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:       create,
		updateStatus: updateStatus,
		receive:      receive,
		waitingRoom:  waitingRoom,
		reschedule:   reschedule,
		delete:       delete,
		expireStale:  expireStale,
		list:         list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	Medico      string `json:"medico"`
	Hora        string `json:"hora"`
	Fecha       string `json:"fecha"`
	DNIPaciente string `json:"dni_paciente"`
}

type UpdateStatusRequest struct {
	DNIPaciente string `json:"dni_paciente"`
	Fecha       string `json:"fecha"`
	Hora        string `json:"hora"`
	Estado      string `json:"estado"`
}

type SlotRequest struct {
	DNIPaciente string `json:"dni_paciente"`
	Fecha       string `json:"fecha"`
	Hora        string `json:"hora"`
}

type WaitingRoomRequest struct {
	DNIPaciente   string        `json:"dni_paciente"`
	Fecha         string        `json:"fecha"`
	Hora          string        `json:"hora"`
	Monto         models.Amount `json:"monto"`
	TipoPago      string        `json:"tipo_pago"`
	Observaciones string        `json:"observaciones"`
}

type RescheduleRequest struct {
	NuevaHora   *string `json:"nueva_hora"`
	NuevaFecha  *string `json:"nueva_fecha"`
	NuevoMedico *string `json:"nuevo_medico"`
	NuevoEstado *string `json:"nuevo_estado"`
}

type WaitingRoomResponse struct {
	Mensaje string         `json:"mensaje"`
	Pago    models.Payment `json:"pago"`
}

type ExpireStaleResponse struct {
	Eliminados int  `json:"eliminados"`
	OK         bool `json:"ok"`
}

func requireSlot(c *gin.Context, dni, fecha, hora string) bool {
	if dni == "" || fecha == "" || hora == "" {
		httperr.BadRequest(c, "missing_field", "DNI, fecha y hora son requeridos.")
		return false
	}
	return true
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	_, err := h.create.Execute(c.Request.Context(), middleware.ActorFrom(c), ucAppointment.CreateAppointmentInput{
		Medico:      req.Medico,
		Hora:        req.Hora,
		Fecha:       req.Fecha,
		DNIPaciente: req.DNIPaciente,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, "Turno asignado correctamente")
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	out, err := h.list.All(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	out, err := h.list.ByDate(c.Request.Context(), middleware.ActorFrom(c), c.Query("fecha"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *AppointmentHandler) ListForDoctor(c *gin.Context) {
	out, err := h.list.ForDoctor(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

// ======================================================
// STATUS TRANSITIONS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	_, err := h.updateStatus.Execute(c.Request.Context(), middleware.ActorFrom(c), ucAppointment.UpdateStatusInput{
		DNIPaciente: req.DNIPaciente,
		Fecha:       req.Fecha,
		Hora:        req.Hora,
		Estado:      req.Estado,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, "Estado actualizado correctamente")
}

func (h *AppointmentHandler) Receive(c *gin.Context) {
	var req SlotRequest
	if !bindJSON(c, &req) {
		return
	}
	if !requireSlot(c, req.DNIPaciente, req.Fecha, req.Hora) {
		return
	}

	_, err := h.receive.Execute(c.Request.Context(), middleware.ActorFrom(c), ucAppointment.ReceivePatientInput{
		DNIPaciente: req.DNIPaciente,
		Fecha:       req.Fecha,
		Hora:        req.Hora,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, "Paciente recepcionado correctamente")
}

func (h *AppointmentHandler) MoveToWaitingRoom(c *gin.Context) {
	var req WaitingRoomRequest
	if !bindJSON(c, &req) {
		return
	}
	if !requireSlot(c, req.DNIPaciente, req.Fecha, req.Hora) {
		return
	}

	out, err := h.waitingRoom.Execute(c.Request.Context(), middleware.ActorFrom(c), ucAppointment.MoveToWaitingRoomInput{
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

	c.JSON(http.StatusOK, WaitingRoomResponse{
		Mensaje: "Paciente movido a sala de espera y pago registrado",
		Pago:    out.Payment,
	})
}

// ======================================================
// EDIT / DELETE
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	var s slot
	if err := c.ShouldBindUri(&s); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	var req RescheduleRequest
	if !bindJSON(c, &req) {
		return
	}

	_, err := h.reschedule.Execute(c.Request.Context(), middleware.ActorFrom(c), ucAppointment.RescheduleInput{
		DNIPaciente: s.DNI,
		Fecha:       s.Fecha,
		Hora:        s.Hora,
		NuevaHora:   req.NuevaHora,
		NuevaFecha:  req.NuevaFecha,
		NuevoMedico: req.NuevoMedico,
		NuevoEstado: req.NuevoEstado,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, "Turno actualizado correctamente")
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	var s slot
	if err := c.ShouldBindUri(&s); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if err := h.delete.Execute(c.Request.Context(), middleware.ActorFrom(c), s.DNI, s.Fecha, s.Hora); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, "Turno eliminado correctamente")
}

// ======================================================
// STALE SWEEP
// ======================================================

func (h *AppointmentHandler) ExpireStale(c *gin.Context) {
	n, err := h.expireStale.Execute(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, ExpireStaleResponse{Eliminados: n, OK: true})
}
