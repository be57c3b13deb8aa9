// Package storage defines persistence contracts for saved inspection sessions.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates a requested save slot does not exist.
var ErrNotFound = errors.New("record not found")

// SaveSlot is one named engine snapshot.
//
// Payload is the engine snapshot JSON, stored opaquely.
type SaveSlot struct {
	Slot      string
	Payload   []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SaveStore persists named snapshots.
type SaveStore interface {
	// Save upserts a slot. CreatedAt is kept from the first save.
	Save(ctx context.Context, slot SaveSlot) error
	Load(ctx context.Context, slot string) (SaveSlot, error)
	// List returns slots ordered by most recent update first.
	List(ctx context.Context) ([]SaveSlot, error)
	Delete(ctx context.Context, slot string) error
}
