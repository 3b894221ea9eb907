package clinicalrecord

import (
	"context"

	"github.com/BruksfildServices01/clinica-turnos/internal/audit"
	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/clinic"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
	"github.com/BruksfildServices01/clinica-turnos/internal/timezone"
)

// ======================================================
// CREATE
// ======================================================

type CreateRecord struct {
	repo  clinic.Repository
	audit *audit.Dispatcher
	clock timezone.Clock
}

func NewCreateRecord(
	repo clinic.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *CreateRecord {
	return &CreateRecord{
		repo:  repo,
		audit: audit,
		clock: clock,
	}
}

func (uc *CreateRecord) Execute(
	ctx context.Context,
	actor authz.Actor,
	in RecordInput,
) (*models.ClinicalRecord, error) {

	if err := actor.Can(authz.ResourceClinicalRecord, authz.ActionCreate); err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	if err := validate(in, now); err != nil {
		return nil, err
	}

	var created models.ClinicalRecord

	err := uc.repo.Atomic(ctx, func(tx clinic.Repository) error {
		list, err := tx.ClinicalRecords(ctx)
		if err != nil {
			return err
		}

		apply(&created, in)
		created.ID = nextID(list)
		created.FechaCreacion = stamp(now)

		return tx.SaveClinicalRecords(ctx, append(list, created))
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(event(actor, "clinical_record_created", created.DNI, describe(created)))

	return &created, nil
}

// ======================================================
// READ
// ======================================================

type GetRecords struct {
	repo clinic.Repository
}

func NewGetRecords(repo clinic.Repository) *GetRecords {
	return &GetRecords{repo: repo}
}

func (uc *GetRecords) All(ctx context.Context, actor authz.Actor) ([]models.ClinicalRecord, error) {
	if err := actor.Can(authz.ResourceClinicalRecord, authz.ActionRead); err != nil {
		return nil, err
	}
	return uc.repo.ClinicalRecords(ctx)
}

// ByDNI returns the first stored consultation for dni.
func (uc *GetRecords) ByDNI(
	ctx context.Context,
	actor authz.Actor,
	dni string,
) (*models.ClinicalRecord, error) {

	list, err := uc.All(ctx, actor)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].DNI == dni {
			return &list[i], nil
		}
	}
	return nil, errRecordNotFound()
}

// ======================================================
// UPDATE
// ======================================================

type UpdateRecord struct {
	repo  clinic.Repository
	audit *audit.Dispatcher
	clock timezone.Clock
}

func NewUpdateRecord(
	repo clinic.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *UpdateRecord {
	return &UpdateRecord{
		repo:  repo,
		audit: audit,
		clock: clock,
	}
}

// Execute merges in over the first consultation stored for dni.
func (uc *UpdateRecord) Execute(
	ctx context.Context,
	actor authz.Actor,
	dni string,
	in RecordInput,
) (*models.ClinicalRecord, error) {

	if err := actor.Can(authz.ResourceClinicalRecord, authz.ActionUpdate); err != nil {
		return nil, err
	}
	if err := validate(in, uc.clock.Now()); err != nil {
		return nil, err
	}

	var updated models.ClinicalRecord

	err := uc.repo.Atomic(ctx, func(tx clinic.Repository) error {
		list, err := tx.ClinicalRecords(ctx)
		if err != nil {
			return err
		}

		for i := range list {
			if list[i].DNI != dni {
				continue
			}
			apply(&list[i], in)
			updated = list[i]
			return tx.SaveClinicalRecords(ctx, list)
		}
		return errRecordNotFound()
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(event(actor, "clinical_record_updated", dni, describe(updated)))

	return &updated, nil
}

// ======================================================
// DELETE
// ======================================================

type DeleteRecords struct {
	repo  clinic.Repository
	audit *audit.Dispatcher
}

func NewDeleteRecords(
	repo clinic.Repository,
	audit *audit.Dispatcher,
) *DeleteRecords {
	return &DeleteRecords{
		repo:  repo,
		audit: audit,
	}
}

// Execute removes every consultation of dni.
func (uc *DeleteRecords) Execute(ctx context.Context, actor authz.Actor, dni string) error {
	if err := actor.Can(authz.ResourceClinicalRecord, authz.ActionDelete); err != nil {
		return err
	}

	removed := 0

	err := uc.repo.Atomic(ctx, func(tx clinic.Repository) error {
		list, err := tx.ClinicalRecords(ctx)
		if err != nil {
			return err
		}

		kept := make([]models.ClinicalRecord, 0, len(list))
		for _, r := range list {
			if r.DNI == dni {
				continue
			}
			kept = append(kept, r)
		}
		removed = len(list) - len(kept)
		if removed == 0 {
			return errRecordNotFound()
		}
		return tx.SaveClinicalRecords(ctx, kept)
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(event(actor, "clinical_records_deleted", dni, map[string]int{
		"eliminadas": removed,
	}))

	return nil
}
