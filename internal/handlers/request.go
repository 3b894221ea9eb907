package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinica-turnos/internal/export"
	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
)

// bindJSON decodes the body into req and answers 400 on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if errors.Is(err, models.ErrInvalidAmount) {
			httperr.BadRequest(c, "invalid_amount", "Monto inválido.")
			return false
		}
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return false
	}
	return true
}

func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}

// slot is the (dni, fecha, hora) triple that identifies a turno in paths.
type slot struct {
	DNI   string `uri:"dni" binding:"required"`
	Fecha string `uri:"fecha" binding:"required"`
	Hora  string `uri:"hora" binding:"required"`
}

// sendTable streams t as an attachment in the requested format: csv, or
// xlsx (also accepted as "excel").
func sendTable(c *gin.Context, t export.Table, format string) {
	switch format {
	case "xlsx", "excel":
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", t.Name))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Status(http.StatusOK)
		if err := export.WriteXLSX(c.Writer, t); err != nil {
			_ = c.Error(err)
		}
	case "csv":
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", t.Name))
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Status(http.StatusOK)
		if err := export.WriteCSV(c.Writer, t); err != nil {
			_ = c.Error(err)
		}
	default:
		httperr.BadRequest(c, "invalid_format", "Formato inválido. Use 'csv' o 'xlsx'.")
	}
}
