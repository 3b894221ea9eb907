package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/config"
	"github.com/BruksfildServices01/clinica-turnos/internal/infra/repository"
	"github.com/BruksfildServices01/clinica-turnos/internal/infra/store"
	"github.com/BruksfildServices01/clinica-turnos/internal/timezone"
	ucUser "github.com/BruksfildServices01/clinica-turnos/internal/usecase/user"
)

type server struct {
	t      *testing.T
	router *gin.Engine
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx := context.Background()
	repo := repository.NewCollections(store.NewMemoryStore())
	add := ucUser.NewAddUser(repo)
	require.NoError(t, add.Execute(ctx, "recepcion", "clave", authz.RoleSecretaria))
	require.NoError(t, add.Execute(ctx, "lopez", "clave", authz.RoleMedico))
	require.NoError(t, add.Execute(ctx, "direccion", "clave", authz.RoleAdministrador))

	clock := timezone.Clock(func() time.Time {
		return time.Date(2024, 6, 10, 9, 5, 0, 0, timezone.Location(""))
	})

	r := gin.New()
	RegisterRoutes(r, Deps{Repo: repo, Clock: clock}, &config.Config{JWTSecret: "test-secret"})
	return &server{t: t, router: r}
}

func (s *server) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *server) login(usuario, contrasena string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/auth/login", "", gin.H{"usuario": usuario, "contrasena": contrasena})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())

	var out struct {
		Token string `json:"token"`
		Rol   string `json:"rol"`
	}
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &out))
	require.NotEmpty(s.t, out.Token)
	return out.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestAuth(t *testing.T) {
	s := newServer(t)

	w := s.do(http.MethodGet, "/api/pacientes", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, "/api/pacientes", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/auth/login", "", gin.H{"usuario": "recepcion", "contrasena": "mal"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", decode(t, w)["error_code"])

	token := s.login("recepcion", "clave")
	w = s.do(http.MethodGet, "/api/session-info", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"usuario": "recepcion", "rol": "secretaria"}, decode(t, w))

	w = s.do(http.MethodGet, "/api/pacientes", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestFrontDeskFlow(t *testing.T) {
	s := newServer(t)
	token := s.login("recepcion", "clave")

	w := s.do(http.MethodPost, "/api/pacientes", token, gin.H{
		"nombre": "Ana", "apellido": "Gómez", "dni": "30111222",
		"obra_social": "OSDE", "numero_obra_social": "1", "celular": "1155550000",
		"fecha_nacimiento": "1990-01-20",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Paciente registrado correctamente", decode(t, w)["mensaje"])

	w = s.do(http.MethodPut, "/api/agenda/Dr.%20Lopez/lunes", token, gin.H{"horarios": []string{"09:00", "09:30"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPut, "/api/agenda/Dr.%20Lopez/lunes", token, gin.H{"otra": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_format", decode(t, w)["error_code"])

	slot := gin.H{"dni_paciente": "30111222", "fecha": "2024-06-10", "hora": "09:00"}
	w = s.do(http.MethodPost, "/api/turnos", token, gin.H{
		"medico": "Dr. Lopez", "fecha": "2024-06-10", "hora": "09:00", "dni_paciente": "30111222",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/turnos", token, gin.H{
		"medico": "Dr. Lopez", "fecha": "2024-06-10", "hora": "09:00", "dni_paciente": "30111222",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "slot_taken", decode(t, w)["error_code"])

	w = s.do(http.MethodPut, "/api/turnos/recepcionar", token, slot)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	bad := gin.H{"dni_paciente": "30111222", "fecha": "2024-06-10", "hora": "09:00", "monto": "mucho"}
	w = s.do(http.MethodPut, "/api/turnos/sala-espera", token, bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_amount", decode(t, w)["error_code"])

	seat := gin.H{"dni_paciente": "30111222", "fecha": "2024-06-10", "hora": "09:00", "monto": "1500"}
	w = s.do(http.MethodPut, "/api/turnos/sala-espera", token, seat)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	pago := decode(t, w)["pago"].(map[string]any)
	assert.Equal(t, 1500.0, pago["monto"])
	assert.Equal(t, "efectivo", pago["tipo_pago"])

	w = s.do(http.MethodGet, "/api/pagos/exportar?fecha=2024-06-10", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "attachment; filename=pagos_2024-06-10.csv", w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Body.String(), "2024-06-10,30111222,Ana,Gómez,1500,efectivo,OSDE,")
	assert.Contains(t, w.Body.String(), "Subtotal Efectivo,1500")

	w = s.do(http.MethodGet, "/api/pagos/exportar?formato=pdf", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRoleChecks(t *testing.T) {
	s := newServer(t)
	medico := s.login("lopez", "clave")

	w := s.do(http.MethodPost, "/api/pacientes", medico, gin.H{
		"nombre": "Ana", "apellido": "Gómez", "dni": "30111222",
		"obra_social": "OSDE", "numero_obra_social": "1", "celular": "1", "fecha_nacimiento": "1990-01-20",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "forbidden", decode(t, w)["error_code"])

	w = s.do(http.MethodGet, "/api/historias", medico, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/reportes/pacientes", medico, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/api/historias/30111222", medico, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminReports(t *testing.T) {
	s := newServer(t)
	token := s.login("direccion", "clave")
	year := "?fecha_inicio=2024-01-01&fecha_fin=2024-12-31"

	w := s.do(http.MethodGet, "/api/reportes/ingresos-anual-data"+year, token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"total_ingresos":0,"total_efectivo":0,"total_transferencia":0}`, w.Body.String())

	w = s.do(http.MethodGet, "/api/reportes/ingresos-anual"+year, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "ingresos_anual_2024-01-01_2024-12-31_")
	assert.Contains(t, w.Body.String(), "Fecha,DNI,Nombre")
	assert.Contains(t, w.Body.String(), "Total Pagos,,,,,,0,,")

	w = s.do(http.MethodGet, "/api/reportes/personalizado"+year, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decode(t, w)["total_consultas"])

	w = s.do(http.MethodGet, "/api/reportes/personalizado"+year+"&formato=excel", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")

	w = s.do(http.MethodGet, "/api/reportes/personalizado?fecha_inicio=2024-12-31&fecha_fin=2024-01-01", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_range", decode(t, w)["error_code"])

	w = s.do(http.MethodGet, "/api/reportes/dashboard-ejecutivo", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2024-06", decode(t, w)["mes_actual"])

	w = s.do(http.MethodGet, "/api/reportes/dashboard-ejecutivo", s.login("recepcion", "clave"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
