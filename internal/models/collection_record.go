package models

import "time"

// CollectionRecord is the postgres row backing one stored collection.
type CollectionRecord struct {
	Name      string    `gorm:"primaryKey;size:64" json:"name"`
	Data      string    `gorm:"type:jsonb;not null" json:"data"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CollectionRecord) TableName() string {
	return "collections"
}
