package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_ReportsSettledChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ethics_db.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte(`{"ethical_events": []}`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events():
		want, _ := filepath.Abs(path)
		if got != want {
			t.Errorf("event path = %q, want %q", got, want)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no event after writing a watched file")
	}
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "watched.json")
	if err := os.WriteFile(watched, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(watched)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events():
		t.Errorf("unexpected event for sibling write: %q", got)
	case <-time.After(1200 * time.Millisecond):
	}
}

func TestWatcher_CreateCountsAsChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "later.json")

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-w.Events():
	case <-time.After(3 * time.Second):
		t.Fatal("no event after creating a watched file")
	}
}

func TestWatcher_CloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(filepath.Join(dir, "a.json"))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("first Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
