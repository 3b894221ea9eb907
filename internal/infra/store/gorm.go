package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
)

// GormStore keeps each collection as one jsonb row of the collections table.
type GormStore struct {
	db   *gorm.DB
	inTx bool
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Load(ctx context.Context, c Collection) ([]byte, error) {
	q := s.db.WithContext(ctx)
	if s.inTx {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var row models.CollectionRecord
	err := q.Where("name = ?", string(c)).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c, err)
	}
	return []byte(row.Data), nil
}

func (s *GormStore) Save(ctx context.Context, c Collection, data []byte) error {
	now := time.Now()

	res := s.db.WithContext(ctx).
		Model(&models.CollectionRecord{}).
		Where("name = ?", string(c)).
		Updates(map[string]any{"data": string(data), "updated_at": now})
	if res.Error != nil {
		return fmt.Errorf("save %s: %w", c, res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	row := models.CollectionRecord{Name: string(c), Data: string(data), UpdatedAt: now}
	err := s.db.WithContext(ctx).Create(&row).Error
	if err != nil && httperr.IsUniqueViolation(err) {
		// another writer created the row first; last write wins
		err = s.db.WithContext(ctx).
			Model(&models.CollectionRecord{}).
			Where("name = ?", string(c)).
			Updates(map[string]any{"data": string(data), "updated_at": now}).Error
	}
	if err != nil {
		return fmt.Errorf("save %s: %w", c, err)
	}
	return nil
}

func (s *GormStore) InTx(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx, inTx: true})
	})
}

var _ Transactional = (*GormStore)(nil)
