package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type MessageResponse struct {
	Mensaje string `json:"mensaje"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// Message answers 200 with {"mensaje": msg}.
func Message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, MessageResponse{Mensaje: msg})
}

// List always encodes an empty slice as [] rather than null.
func List[T any](c *gin.Context, data []T) {
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, data)
}
