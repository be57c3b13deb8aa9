package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/closerlook/internal/services/inspection/storage"
)

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(""); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	now := time.Date(2026, time.March, 4, 9, 30, 0, 0, time.UTC)
	input := storage.SaveSlot{
		Slot:      "study",
		Payload:   []byte(`{"has_light":true}`),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := store.Save(context.Background(), input); err != nil {
		t.Fatalf("save slot: %v", err)
	}

	got, err := store.Load(context.Background(), " study ")
	if err != nil {
		t.Fatalf("load slot: %v", err)
	}
	if got.Slot != "study" {
		t.Fatalf("slot = %q, want %q", got.Slot, "study")
	}
	if string(got.Payload) != string(input.Payload) {
		t.Fatalf("payload = %s, want %s", got.Payload, input.Payload)
	}
	if !got.CreatedAt.Equal(now) || !got.UpdatedAt.Equal(now) {
		t.Fatalf("timestamps = %v/%v, want %v", got.CreatedAt, got.UpdatedAt, now)
	}
}

func TestSaveOverwritesPayloadAndKeepsCreatedAt(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	first := time.Date(2026, time.March, 4, 9, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)
	if err := store.Save(context.Background(), storage.SaveSlot{Slot: "a", Payload: []byte("1"), CreatedAt: first, UpdatedAt: first}); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := store.Save(context.Background(), storage.SaveSlot{Slot: "a", Payload: []byte("2"), CreatedAt: second, UpdatedAt: second}); err != nil {
		t.Fatalf("save second: %v", err)
	}

	got, err := store.Load(context.Background(), "a")
	if err != nil {
		t.Fatalf("load slot: %v", err)
	}
	if string(got.Payload) != "2" {
		t.Fatalf("payload = %s, want 2", got.Payload)
	}
	if !got.CreatedAt.Equal(first) {
		t.Fatalf("created_at = %v, want %v", got.CreatedAt, first)
	}
	if !got.UpdatedAt.Equal(second) {
		t.Fatalf("updated_at = %v, want %v", got.UpdatedAt, second)
	}
}

func TestSaveDefaultsTimestampsToClock(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	fixed := time.Date(2026, time.April, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	if err := store.Save(context.Background(), storage.SaveSlot{Slot: "clock", Payload: []byte("{}")}); err != nil {
		t.Fatalf("save slot: %v", err)
	}
	got, err := store.Load(context.Background(), "clock")
	if err != nil {
		t.Fatalf("load slot: %v", err)
	}
	if !got.CreatedAt.Equal(fixed) || !got.UpdatedAt.Equal(fixed) {
		t.Fatalf("timestamps = %v/%v, want %v", got.CreatedAt, got.UpdatedAt, fixed)
	}
}

func TestSaveRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if err := store.Save(context.Background(), storage.SaveSlot{Slot: "  ", Payload: []byte("{}")}); err == nil {
		t.Fatal("expected blank slot error")
	}
	if err := store.Save(context.Background(), storage.SaveSlot{Slot: "empty"}); err == nil {
		t.Fatal("expected empty payload error")
	}
}

func TestLoadMissingReturnsNotFound(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	_, err := store.Load(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("load missing error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestListOrdersByMostRecentUpdate(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	base := time.Date(2026, time.March, 4, 9, 0, 0, 0, time.UTC)
	for i, name := range []string{"old", "newest", "middle"} {
		at := base
		switch name {
		case "newest":
			at = base.Add(2 * time.Hour)
		case "middle":
			at = base.Add(time.Hour)
		}
		if err := store.Save(context.Background(), storage.SaveSlot{Slot: name, Payload: []byte{byte('0' + i)}, UpdatedAt: at}); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
	}

	slots, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list slots: %v", err)
	}
	want := []string{"newest", "middle", "old"}
	if len(slots) != len(want) {
		t.Fatalf("slots = %d, want %d", len(slots), len(want))
	}
	for i, slot := range slots {
		if slot.Slot != want[i] {
			t.Fatalf("slots[%d] = %q, want %q", i, slot.Slot, want[i])
		}
		if slot.Payload != nil {
			t.Fatalf("slots[%d] payload = %v, want nil", i, slot.Payload)
		}
	}
}

func TestDeleteRemovesSlot(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if err := store.Save(context.Background(), storage.SaveSlot{Slot: "gone", Payload: []byte("{}")}); err != nil {
		t.Fatalf("save slot: %v", err)
	}
	if err := store.Delete(context.Background(), "gone"); err != nil {
		t.Fatalf("delete slot: %v", err)
	}
	if _, err := store.Load(context.Background(), "gone"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("load deleted error = %v, want %v", err, storage.ErrNotFound)
	}
	if err := store.Delete(context.Background(), "gone"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("delete missing error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestStoreHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.List(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("list error = %v, want %v", err, context.Canceled)
	}
}

func TestReopenKeepsSlots(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "saves.sqlite")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.Save(context.Background(), storage.SaveSlot{Slot: "keep", Payload: []byte("{}")}); err != nil {
		t.Fatalf("save slot: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })
	if _, err := reopened.Load(context.Background(), "keep"); err != nil {
		t.Fatalf("load after reopen: %v", err)
	}
}

func openTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "saves.sqlite"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}
