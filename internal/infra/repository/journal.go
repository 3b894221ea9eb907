package repository

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/clinica-turnos/internal/infra/store"
)

// journal wraps a store without native transactions. It remembers the
// document each collection held before its first Save so a failed Atomic
// block can put it back.
type journal struct {
	store.Store
	before  map[store.Collection][]byte
	written []store.Collection
}

func newJournal(s store.Store) *journal {
	return &journal{Store: s, before: map[store.Collection][]byte{}}
}

func (j *journal) Save(ctx context.Context, c store.Collection, data []byte) error {
	if _, seen := j.before[c]; !seen {
		prev, err := j.Store.Load(ctx, c)
		if err != nil {
			return err
		}
		if prev == nil {
			prev = c.Empty()
		}
		j.before[c] = prev
	}

	if err := j.Store.Save(ctx, c, data); err != nil {
		return err
	}
	j.written = append(j.written, c)
	return nil
}

func (j *journal) rollback(ctx context.Context) error {
	var errs []error
	restored := map[store.Collection]bool{}
	for i := len(j.written) - 1; i >= 0; i-- {
		c := j.written[i]
		if restored[c] {
			continue
		}
		restored[c] = true
		if err := j.Store.Save(ctx, c, j.before[c]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
