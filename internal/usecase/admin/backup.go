package admin

import (
	"context"

	"github.com/BruksfildServices01/clinica-turnos/internal/audit"
	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/clinic"
	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
	"github.com/BruksfildServices01/clinica-turnos/internal/timezone"
)

type Uploader interface {
	Upload(ctx context.Context, key string, body []byte) (string, error)
}

type BackupResult struct {
	Snapshot string   `json:"snapshot"`
	Objects  []string `json:"objects"`
}

// Backup uploads every collection under one timestamped folder.
type Backup struct {
	repo     clinic.Repository
	uploader Uploader
	audit    *audit.Dispatcher
	clock    timezone.Clock
}

// NewBackup accepts a nil uploader; Execute then reports backups as not
// configured.
func NewBackup(
	repo clinic.Repository,
	uploader Uploader,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *Backup {
	return &Backup{
		repo:     repo,
		uploader: uploader,
		audit:    audit,
		clock:    clock,
	}
}

func (uc *Backup) Execute(ctx context.Context, actor authz.Actor) (*BackupResult, error) {
	if err := actor.Can(authz.ResourceBackup, authz.ActionCreate); err != nil {
		return nil, err
	}
	if uc.uploader == nil {
		return nil, httperr.Validation("backup_disabled", "Las copias de seguridad no están configuradas.")
	}

	out := &BackupResult{
		Snapshot: uc.clock.Now().Format("20060102T150405"),
	}

	for _, name := range clinic.CollectionNames {
		raw, err := uc.repo.Raw(ctx, name)
		if err != nil {
			return nil, err
		}
		key, err := uc.uploader.Upload(ctx, out.Snapshot+"/"+name+".json", raw)
		if err != nil {
			return nil, err
		}
		out.Objects = append(out.Objects, key)
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    actor.User,
		Role:     string(actor.Role),
		Action:   "backup_created",
		Entity:   "backup",
		EntityID: out.Snapshot,
	})

	return out, nil
}

// Download returns one collection exactly as stored.
type Download struct {
	repo clinic.Repository
}

func NewDownload(repo clinic.Repository) *Download {
	return &Download{repo: repo}
}

func (uc *Download) Execute(ctx context.Context, actor authz.Actor, collection string) ([]byte, error) {
	if err := actor.Can(authz.ResourceBackup, authz.ActionRead); err != nil {
		return nil, err
	}
	return uc.repo.Raw(ctx, collection)
}
