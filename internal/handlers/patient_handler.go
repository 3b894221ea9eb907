package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
	"github.com/BruksfildServices01/clinica-turnos/internal/httpresp"
	"github.com/BruksfildServices01/clinica-turnos/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/clinica-turnos/internal/usecase/appointment"
	ucPatient "github.com/BruksfildServices01/clinica-turnos/internal/usecase/patient"
)

// ======================================================
// HANDLER
// ======================================================

type PatientHandler struct {
	list   *ucPatient.ListPatients
	stats  *ucPatient.PatientStats
	create *ucPatient.CreatePatient
	update *ucPatient.UpdatePatient
	delete *ucPatient.DeletePatient
	queues *ucAppointment.FrontDeskQueues
}

func NewPatientHandler(
	list *ucPatient.ListPatients,
	stats *ucPatient.PatientStats,
	create *ucPatient.CreatePatient,
	update *ucPatient.UpdatePatient,
	delete *ucPatient.DeletePatient,
	queues *ucAppointment.FrontDeskQueues,
) *PatientHandler {
	return &PatientHandler{
		list:   list,
		stats:  stats,
		create: create,
		update: update,
		delete: delete,
		queues: queues,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type PatientRequest struct {
	Nombre           string  `json:"nombre"`
	Apellido         string  `json:"apellido"`
	DNI              string  `json:"dni"`
	ObraSocial       string  `json:"obra_social"`
	NumeroObraSocial string  `json:"numero_obra_social"`
	Celular          string  `json:"celular"`
	FechaNacimiento  *string `json:"fecha_nacimiento"`
}

// ======================================================
// LIST / SEARCH / STATS
// ======================================================

func (h *PatientHandler) List(c *gin.Context) {
	out, err := h.list.All(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *PatientHandler) Search(c *gin.Context) {
	out, err := h.list.Search(c.Request.Context(), middleware.ActorFrom(c), ucPatient.SearchInput{
		Busqueda:  c.Query("busqueda"),
		Pagina:    queryInt(c, "pagina"),
		PorPagina: queryInt(c, "por_pagina"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *PatientHandler) Stats(c *gin.Context) {
	out, err := h.stats.Execute(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

// ======================================================
// CREATE / UPDATE / DELETE
// ======================================================

func (h *PatientHandler) Create(c *gin.Context) {
	var req PatientRequest
	if !bindJSON(c, &req) {
		return
	}

	in := ucPatient.CreatePatientInput{
		Nombre:           req.Nombre,
		Apellido:         req.Apellido,
		DNI:              req.DNI,
		ObraSocial:       req.ObraSocial,
		NumeroObraSocial: req.NumeroObraSocial,
		Celular:          req.Celular,
	}
	if req.FechaNacimiento != nil {
		in.FechaNacimiento = *req.FechaNacimiento
	}

	if _, err := h.create.Execute(c.Request.Context(), middleware.ActorFrom(c), in); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Message(c, "Paciente registrado correctamente")
}

func (h *PatientHandler) Update(c *gin.Context) {
	var req PatientRequest
	if !bindJSON(c, &req) {
		return
	}

	_, err := h.update.Execute(c.Request.Context(), middleware.ActorFrom(c), c.Param("dni"), ucPatient.UpdatePatientInput{
		Nombre:           req.Nombre,
		Apellido:         req.Apellido,
		DNI:              req.DNI,
		ObraSocial:       req.ObraSocial,
		NumeroObraSocial: req.NumeroObraSocial,
		Celular:          req.Celular,
		FechaNacimiento:  req.FechaNacimiento,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Message(c, "Paciente actualizado correctamente")
}

func (h *PatientHandler) Delete(c *gin.Context) {
	if err := h.delete.Execute(c.Request.Context(), middleware.ActorFrom(c), c.Param("dni")); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Message(c, "Paciente eliminado correctamente")
}

// ======================================================
// FRONT DESK QUEUES
// ======================================================

func (h *PatientHandler) Received(c *gin.Context) {
	out, err := h.queues.Received(c.Request.Context(), middleware.ActorFrom(c), c.Query("fecha"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *PatientHandler) WaitingRoom(c *gin.Context) {
	out, err := h.queues.WaitingRoom(c.Request.Context(), middleware.ActorFrom(c), c.Query("fecha"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *PatientHandler) AttendedUnpaid(c *gin.Context) {
	out, err := h.queues.AttendedUnpaid(c.Request.Context(), middleware.ActorFrom(c), c.Query("fecha"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}
