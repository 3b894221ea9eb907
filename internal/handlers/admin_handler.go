package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
	"github.com/BruksfildServices01/clinica-turnos/internal/httpresp"
	"github.com/BruksfildServices01/clinica-turnos/internal/middleware"
	ucAdmin "github.com/BruksfildServices01/clinica-turnos/internal/usecase/admin"
)

type AdminHandler struct {
	backup   *ucAdmin.Backup
	download *ucAdmin.Download
}

func NewAdminHandler(backup *ucAdmin.Backup, download *ucAdmin.Download) *AdminHandler {
	return &AdminHandler{backup: backup, download: download}
}

func (h *AdminHandler) Backup(c *gin.Context) {
	out, err := h.backup.Execute(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, out)
}

// Download sends one collection as a JSON attachment.
func (h *AdminHandler) Download(c *gin.Context) {
	name := c.Param("collection")

	raw, err := h.download.Execute(c.Request.Context(), middleware.ActorFrom(c), name)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.json", name))
	c.Data(http.StatusOK, "application/json", raw)
}
