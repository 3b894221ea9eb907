package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/config"
	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
	"github.com/BruksfildServices01/clinica-turnos/internal/middleware"
	ucUser "github.com/BruksfildServices01/clinica-turnos/internal/usecase/user"
)

type AuthHandler struct {
	authenticate *ucUser.Authenticate
	config       *config.Config
}

func NewAuthHandler(authenticate *ucUser.Authenticate, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authenticate: authenticate, config: cfg}
}

// --------- Requests ---------

type LoginRequest struct {
	Usuario    string `json:"usuario" binding:"required"`
	Contrasena string `json:"contrasena" binding:"required"`
}

type LoginResponse struct {
	Token   string `json:"token"`
	Usuario string `json:"usuario"`
	Rol     string `json:"rol"`
}

type SessionInfo struct {
	Usuario string `json:"usuario"`
	Rol     string `json:"rol"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	actor, err := h.authenticate.Execute(c.Request.Context(), req.Usuario, req.Contrasena)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_credentials") {
			httperr.Unauthorized(c, "invalid_credentials", "Usuario o contraseña incorrectos.")
			return
		}
		httperr.Respond(c, err)
		return
	}

	token, err := h.generateToken(*actor)
	if err != nil {
		httperr.Internal(c, "token_error", "No se pudo generar el token.")
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:   token,
		Usuario: actor.User,
		Rol:     string(actor.Role),
	})
}

func (h *AuthHandler) SessionInfo(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	c.JSON(http.StatusOK, SessionInfo{
		Usuario: actor.User,
		Rol:     string(actor.Role),
	})
}

// --------- Helpers ---------

func (h *AuthHandler) generateToken(actor authz.Actor) (string, error) {
	ttl := h.config.JWTTTLHours
	if ttl <= 0 {
		ttl = 12
	}
	return middleware.IssueToken(h.config.JWTSecret, actor, time.Duration(ttl)*time.Hour)
}
