// Package store persists named collections as whole JSON documents. Every
// operation reads or replaces a full collection; there are no partial
// updates.
package store

import (
	"context"
	"fmt"
)

type Collection string

const (
	Patients        Collection = "pacientes"
	Appointments    Collection = "turnos"
	Payments        Collection = "pagos"
	Agenda          Collection = "agenda"
	ClinicalRecords Collection = "historias_clinicas"
	Users           Collection = "usuarios"
)

// All lists every collection in a stable order.
var All = []Collection{Patients, Appointments, Payments, Agenda, ClinicalRecords, Users}

func Parse(name string) (Collection, error) {
	for _, c := range All {
		if string(c) == name {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown collection %q", name)
}

// Empty is the serialized form of a collection with no records.
func (c Collection) Empty() []byte {
	if c == Agenda {
		return []byte("{}")
	}
	return []byte("[]")
}

type Store interface {
	// Load returns the raw document, or nil when the collection was never saved.
	Load(ctx context.Context, c Collection) ([]byte, error)
	Save(ctx context.Context, c Collection, data []byte) error
}

// Transactional stores commit every Save made inside fn together, or none.
type Transactional interface {
	InTx(ctx context.Context, fn func(tx Store) error) error
}
