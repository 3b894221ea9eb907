package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
	"github.com/BruksfildServices01/clinica-turnos/internal/infra/repository"
	"github.com/BruksfildServices01/clinica-turnos/internal/infra/store"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
	"github.com/BruksfildServices01/clinica-turnos/internal/timezone"
)

var admin = authz.Actor{User: "direccion", Role: authz.RoleAdministrador}

type memUploader struct {
	objects map[string][]byte
	err     error
}

func (u *memUploader) Upload(_ context.Context, key string, body []byte) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	if u.objects == nil {
		u.objects = map[string][]byte{}
	}
	u.objects[key] = body
	return "s3://backups/" + key, nil
}

func fixedClock() timezone.Clock {
	return func() time.Time {
		return time.Date(2024, 6, 10, 23, 15, 0, 0, timezone.Location(""))
	}
}

func TestBackupUploadsEveryCollection(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewCollections(store.NewMemoryStore())
	require.NoError(t, repo.SavePatients(ctx, []models.Patient{{DNI: "30111222", Nombre: "Ana"}}))

	up := &memUploader{}
	out, err := NewBackup(repo, up, nil, fixedClock()).Execute(ctx, admin)
	require.NoError(t, err)

	assert.Equal(t, "20240610T231500", out.Snapshot)
	assert.Len(t, out.Objects, 6)
	assert.Equal(t, "s3://backups/20240610T231500/pacientes.json", out.Objects[0])
	assert.Contains(t, string(up.objects["20240610T231500/pacientes.json"]), "30111222")
	assert.Equal(t, "{}", string(up.objects["20240610T231500/agenda.json"]))
	assert.Equal(t, "[]", string(up.objects["20240610T231500/pagos.json"]))
}

func TestBackupErrors(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewCollections(store.NewMemoryStore())

	_, err := NewBackup(repo, nil, nil, fixedClock()).Execute(ctx, admin)
	assert.True(t, httperr.IsBusiness(err, "backup_disabled"))

	boom := errors.New("bucket unreachable")
	_, err = NewBackup(repo, &memUploader{err: boom}, nil, fixedClock()).Execute(ctx, admin)
	assert.ErrorIs(t, err, boom)

	secretaria := authz.Actor{User: "recepcion", Role: authz.RoleSecretaria}
	_, err = NewBackup(repo, &memUploader{}, nil, fixedClock()).Execute(ctx, secretaria)
	kind, _ := httperr.KindOf(err)
	assert.Equal(t, httperr.KindForbidden, kind)
}

func TestDownload(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewCollections(store.NewMemoryStore())

	raw, err := NewDownload(repo).Execute(ctx, admin, "turnos")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))

	_, err = NewDownload(repo).Execute(ctx, admin, "../etc/passwd")
	assert.True(t, httperr.IsBusiness(err, "collection_not_found"))
}
