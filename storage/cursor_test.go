package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestCursorsGet(t *testing.T) {
	known := time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)
	cursors := Cursors{"Acme": known}

	if diff := cmp.Diff(known, cursors.Get("Acme")); diff != "" {
		t.Errorf("known cursor mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(time.Unix(0, 0).UTC(), cursors.Get("Unseen")); diff != "" {
		t.Errorf("default cursor mismatch (-want +got):\n%s", diff)
	}
}

func TestCursorsSetNeverDecreases(t *testing.T) {
	cursors := Cursors{}
	newer := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	older := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)

	cursors.Set("Acme", newer)
	cursors.Set("Acme", older)

	if diff := cmp.Diff(newer, cursors.Get("Acme")); diff != "" {
		t.Errorf("cursor decreased (-want +got):\n%s", diff)
	}
}

func TestCursorStoreRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cursors.txt")
	store := NewCursorStore(path)

	want := Cursors{
		"Acme":  time.Date(2024, 1, 3, 9, 30, 0, 0, time.UTC),
		"Other": time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := store.Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("roundtrip mismatch (-want +got):\n%s", diff)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	wantFile := "Acme,2024-01-03T09:30:00Z\nOther,2023-06-01T00:00:00Z\n"
	if diff := cmp.Diff(wantFile, string(data)); diff != "" {
		t.Errorf("file format mismatch (-want +got):\n%s", diff)
	}
}

func TestCursorStoreLoadMissingFile(t *testing.T) {
	store := NewCursorStore(filepath.Join(t.TempDir(), "nope.txt"))

	got, err := store.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty cursors, got %v", got)
	}
}

func TestCursorStoreLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cursors.txt")
	if err := os.WriteFile(path, []byte("Acme;2024-01-03T09:30:00Z\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := NewCursorStore(path).Load()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if len(got) != 0 {
		t.Errorf("expected empty cursors on error, got %v", got)
	}
}

func TestCursorStoreSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cursors.txt")
	store := NewCursorStore(path)

	if err := store.Save(Cursors{"Old": time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := store.Save(Cursors{"New": time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Cursors{"New": time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("overwrite mismatch (-want +got):\n%s", diff)
	}
}
