package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
	"github.com/BruksfildServices01/clinica-turnos/internal/httpresp"
	"github.com/BruksfildServices01/clinica-turnos/internal/middleware"
	ucAgenda "github.com/BruksfildServices01/clinica-turnos/internal/usecase/agenda"
)

type AgendaHandler struct {
	get *ucAgenda.GetAgenda
	set *ucAgenda.SetAgendaDay
}

func NewAgendaHandler(get *ucAgenda.GetAgenda, set *ucAgenda.SetAgendaDay) *AgendaHandler {
	return &AgendaHandler{get: get, set: set}
}

type AgendaDayRequest struct {
	Horarios *[]string `json:"horarios"`
}

func (h *AgendaHandler) Get(c *gin.Context) {
	out, err := h.get.Execute(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

// SetDay replaces the hours of one doctor on one weekday.
func (h *AgendaHandler) SetDay(c *gin.Context) {
	var req AgendaDayRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Horarios == nil {
		httperr.BadRequest(c, "invalid_format", "Formato inválido, se espera un objeto con clave 'horarios' que sea una lista.")
		return
	}

	_, err := h.set.Execute(
		c.Request.Context(),
		middleware.ActorFrom(c),
		c.Param("medico"),
		c.Param("dia"),
		*req.Horarios,
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, "Agenda actualizada correctamente")
}
