package agenda

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
	"github.com/BruksfildServices01/clinica-turnos/internal/infra/repository"
	"github.com/BruksfildServices01/clinica-turnos/internal/infra/store"
)

var secretaria = authz.Actor{User: "recepcion", Role: authz.RoleSecretaria}

func TestSetAgendaDay(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewCollections(store.NewMemoryStore())
	set := NewSetAgendaDay(repo, nil)

	_, err := set.Execute(ctx, secretaria, "Dr. Lopez", "lunes", []string{"09:30", "09:00", "09:00"})
	require.NoError(t, err)
	_, err = set.Execute(ctx, secretaria, "Dr. Lopez", "Martes", nil)
	require.NoError(t, err)

	agenda, err := NewGetAgenda(repo).Execute(ctx, secretaria)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:30", "09:00", "09:00"}, agenda["Dr. Lopez"]["LUNES"])
	assert.Equal(t, []string{}, agenda["Dr. Lopez"]["MARTES"])

	_, err = set.Execute(ctx, secretaria, "Dr. Lopez", "SABADO", []string{"10:00"})
	assert.True(t, httperr.IsBusiness(err, "invalid_day"))
}

func TestAgendaPermissions(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewCollections(store.NewMemoryStore())
	admin := authz.Actor{User: "direccion", Role: authz.RoleAdministrador}

	_, err := NewGetAgenda(repo).Execute(ctx, admin)
	kind, _ := httperr.KindOf(err)
	assert.Equal(t, httperr.KindForbidden, kind)

	medico := authz.Actor{User: "Dr. Lopez", Role: authz.RoleMedico}
	_, err = NewSetAgendaDay(repo, nil).Execute(ctx, medico, "Dr. Lopez", "LUNES", nil)
	kind, _ = httperr.KindOf(err)
	assert.Equal(t, httperr.KindForbidden, kind)
}
