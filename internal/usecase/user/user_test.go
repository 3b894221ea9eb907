package user

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

func TestAddAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewCollections(store.NewMemoryStore())

	add := NewAddUser(repo)
	require.NoError(t, add.Execute(ctx, " recepcion ", "s3cret", authz.RoleSecretaria))

	users, err := repo.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "recepcion", users[0].Usuario)
	assert.NotEqual(t, "s3cret", users[0].PasswordHash)

	actor, err := NewAuthenticate(repo).Execute(ctx, "recepcion", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, authz.Actor{User: "recepcion", Role: authz.RoleSecretaria}, *actor)

	_, err = NewAuthenticate(repo).Execute(ctx, "recepcion", "wrong")
	assert.True(t, httperr.IsBusiness(err, "invalid_credentials"))

	_, err = NewAuthenticate(repo).Execute(ctx, "nadie", "s3cret")
	assert.True(t, httperr.IsBusiness(err, "invalid_credentials"))
}

func TestAddUserRejects(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewCollections(store.NewMemoryStore())
	add := NewAddUser(repo)
	require.NoError(t, add.Execute(ctx, "medico1", "pw", authz.RoleMedico))

	assert.True(t, httperr.IsBusiness(add.Execute(ctx, "medico1", "otra", authz.RoleMedico), "duplicate_user"))
	assert.True(t, httperr.IsBusiness(add.Execute(ctx, "x", "pw", authz.RoleSystem), "invalid_role"))
	assert.True(t, httperr.IsBusiness(add.Execute(ctx, "x", "", authz.RoleMedico), "missing_field"))
}
