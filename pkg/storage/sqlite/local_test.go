package sqlite

import (
	"path/filepath"
	"testing"
)

func newTestLocal(t *testing.T) (*Local, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "storage_test.db")
	l, err := New(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = l.Close() })
	return l, dbPath
}

func TestGetMissing(t *testing.T) {
	l, _ := newTestLocal(t)

	v, ok, err := l.GetItem("pokedex-favorites")
	if err != nil {
		t.Fatal(err)
	}
	if ok || v != "" {
		t.Errorf("expected absent key, got %q ok=%v", v, ok)
	}
}

func TestSetOverwrites(t *testing.T) {
	l, _ := newTestLocal(t)

	if err := l.SetItem("k", "[1,2]"); err != nil {
		t.Fatal(err)
	}
	if err := l.SetItem("k", "[3]"); err != nil {
		t.Fatal(err)
	}

	v, ok, err := l.GetItem("k")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || v != "[3]" {
		t.Errorf("expected overwritten value [3], got %q ok=%v", v, ok)
	}
}

func TestRemoveItem(t *testing.T) {
	l, _ := newTestLocal(t)

	_ = l.SetItem("k", "v")
	if err := l.RemoveItem("k"); err != nil {
		t.Fatal(err)
	}
	if err := l.RemoveItem("k"); err != nil {
		t.Errorf("removing absent key should not fail: %v", err)
	}
	if _, ok, _ := l.GetItem("k"); ok {
		t.Error("expected key removed")
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	l, path := newTestLocal(t)
	if err := l.SetItem("pokedex-favorites", "[25]"); err != nil {
		t.Fatal(err)
	}
	_ = l.Close()

	reopened, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	v, ok, err := reopened.GetItem("pokedex-favorites")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || v != "[25]" {
		t.Errorf("expected [25] after reopen, got %q ok=%v", v, ok)
	}
}
