package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/config"
)

const (
	ContextUser     = "user"
	ContextUserRole = "userRole"
)

// SessionClaims is the JWT payload: the username travels as "sub" and the
// role as "rol".
type SessionClaims struct {
	Rol string `json:"rol"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 session token for actor valid for ttl.
func IssueToken(secret string, actor authz.Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Rol: string(actor.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.User,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func bearerToken(c *gin.Context) (string, string) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", "missing_authorization_header"
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", "invalid_authorization_header"
	}
	return token, ""
}

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	key := func(*jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	}

	return func(c *gin.Context) {
		raw, problem := bearerToken(c)
		if problem != "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": problem})
			return
		}

		var claims SessionClaims
		if _, err := parser.ParseWithClaims(raw, &claims, key); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}
		if claims.Subject == "" || claims.Rol == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_payload"})
			return
		}

		c.Set(ContextUser, claims.Subject)
		c.Set(ContextUserRole, claims.Rol)

		c.Next()
	}
}

// ActorFrom reads the authenticated actor set by AuthMiddleware.
func ActorFrom(c *gin.Context) authz.Actor {
	return authz.Actor{
		User: c.GetString(ContextUser),
		Role: authz.Role(c.GetString(ContextUserRole)),
	}
}
