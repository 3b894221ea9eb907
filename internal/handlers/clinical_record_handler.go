package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
	"github.com/BruksfildServices01/clinica-turnos/internal/httpresp"
	"github.com/BruksfildServices01/clinica-turnos/internal/middleware"
	ucRecord "github.com/BruksfildServices01/clinica-turnos/internal/usecase/clinicalrecord"
)

type ClinicalRecordHandler struct {
	create *ucRecord.CreateRecord
	get    *ucRecord.GetRecords
	update *ucRecord.UpdateRecord
	delete *ucRecord.DeleteRecords
	search *ucRecord.SearchRecords
}

func NewClinicalRecordHandler(
	create *ucRecord.CreateRecord,
	get *ucRecord.GetRecords,
	update *ucRecord.UpdateRecord,
	delete *ucRecord.DeleteRecords,
	search *ucRecord.SearchRecords,
) *ClinicalRecordHandler {
	return &ClinicalRecordHandler{
		create: create,
		get:    get,
		update: update,
		delete: delete,
		search: search,
	}
}

type RecordRequest struct {
	DNI            string  `json:"dni"`
	Medico         string  `json:"medico"`
	ConsultaMedica string  `json:"consulta_medica"`
	FechaConsulta  *string `json:"fecha_consulta"`
	Diagnostico    *string `json:"diagnostico"`
	Tratamiento    *string `json:"tratamiento"`
	Observaciones  *string `json:"observaciones"`
}

func (r RecordRequest) input() ucRecord.RecordInput {
	return ucRecord.RecordInput{
		DNI:            r.DNI,
		Medico:         r.Medico,
		ConsultaMedica: r.ConsultaMedica,
		FechaConsulta:  r.FechaConsulta,
		Diagnostico:    r.Diagnostico,
		Tratamiento:    r.Tratamiento,
		Observaciones:  r.Observaciones,
	}
}

func (h *ClinicalRecordHandler) List(c *gin.Context) {
	out, err := h.get.All(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *ClinicalRecordHandler) Create(c *gin.Context) {
	var req RecordRequest
	if !bindJSON(c, &req) {
		return
	}

	if _, err := h.create.Execute(c.Request.Context(), middleware.ActorFrom(c), req.input()); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, httpresp.MessageResponse{Mensaje: "Consulta registrada correctamente"})
}

func (h *ClinicalRecordHandler) Get(c *gin.Context) {
	out, err := h.get.ByDNI(c.Request.Context(), middleware.ActorFrom(c), c.Param("dni"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *ClinicalRecordHandler) Update(c *gin.Context) {
	var req RecordRequest
	if !bindJSON(c, &req) {
		return
	}

	if _, err := h.update.Execute(c.Request.Context(), middleware.ActorFrom(c), c.Param("dni"), req.input()); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, "Historia modificada")
}

func (h *ClinicalRecordHandler) Delete(c *gin.Context) {
	if err := h.delete.Execute(c.Request.Context(), middleware.ActorFrom(c), c.Param("dni")); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, "Historia eliminada")
}

func (h *ClinicalRecordHandler) Search(c *gin.Context) {
	out, err := h.search.Execute(c.Request.Context(), middleware.ActorFrom(c), ucRecord.SearchInput{
		Busqueda:   c.Query("busqueda"),
		Pagina:     queryInt(c, "pagina"),
		PorPagina:  queryInt(c, "por_pagina"),
		OrdenarPor: c.DefaultQuery("ordenar_por", "apellido"),
		Orden:      c.DefaultQuery("orden", "asc"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}
