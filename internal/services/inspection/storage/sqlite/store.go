// Package sqlite provides a SQLite-backed save-slot store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/closerlook/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/closerlook/internal/platform/timeouts"
	"github.com/louisbranch/closerlook/internal/services/inspection/storage"
	"github.com/louisbranch/closerlook/internal/services/inspection/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists save slots in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite save store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=%d&_synchronous=NORMAL",
		cleanPath, timeouts.StoreBusy.Milliseconds())
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

func slotName(slot string) (string, error) {
	slot = strings.TrimSpace(slot)
	if slot == "" {
		return "", fmt.Errorf("slot name is required")
	}
	return slot, nil
}

// Save upserts one slot. Zero timestamps default to the store clock.
func (s *Store) Save(ctx context.Context, slot storage.SaveSlot) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	name, err := slotName(slot.Slot)
	if err != nil {
		return err
	}
	if len(slot.Payload) == 0 {
		return fmt.Errorf("payload is required")
	}
	updatedAt := slot.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = s.now()
	}
	createdAt := slot.CreatedAt
	if createdAt.IsZero() {
		createdAt = updatedAt
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO save_slots (slot, payload, created_at, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET
		        payload = excluded.payload,
		        updated_at = excluded.updated_at`,
		name,
		slot.Payload,
		toMillis(createdAt),
		toMillis(updatedAt),
	)
	if err != nil {
		return fmt.Errorf("save slot: %w", err)
	}
	return nil
}

// Load returns one slot by name.
func (s *Store) Load(ctx context.Context, slot string) (storage.SaveSlot, error) {
	if err := s.ready(ctx); err != nil {
		return storage.SaveSlot{}, err
	}
	name, err := slotName(slot)
	if err != nil {
		return storage.SaveSlot{}, err
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT slot, payload, created_at, updated_at
		   FROM save_slots
		  WHERE slot = ?`,
		name,
	)
	var (
		record    storage.SaveSlot
		createdAt int64
		updatedAt int64
	)
	if err := row.Scan(&record.Slot, &record.Payload, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.SaveSlot{}, storage.ErrNotFound
		}
		return storage.SaveSlot{}, fmt.Errorf("load slot: %w", err)
	}
	record.CreatedAt = fromMillis(createdAt)
	record.UpdatedAt = fromMillis(updatedAt)
	return record, nil
}

// List returns every slot without payloads, most recently updated first.
func (s *Store) List(ctx context.Context) ([]storage.SaveSlot, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT slot, created_at, updated_at
		   FROM save_slots
		  ORDER BY updated_at DESC, slot ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	var slots []storage.SaveSlot
	for rows.Next() {
		var (
			record    storage.SaveSlot
			createdAt int64
			updatedAt int64
		)
		if err := rows.Scan(&record.Slot, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("list slots: %w", err)
		}
		record.CreatedAt = fromMillis(createdAt)
		record.UpdatedAt = fromMillis(updatedAt)
		slots = append(slots, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	return slots, nil
}

// Delete removes one slot.
func (s *Store) Delete(ctx context.Context, slot string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	name, err := slotName(slot)
	if err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM save_slots WHERE slot = ?`, name)
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

var _ storage.SaveStore = (*Store)(nil)
