package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuffer_NewestFirst(t *testing.T) {
	b := NewBuffer(0)
	b.Add("first")
	b.Add("second")
	b.Add("third")

	if got := b.Get(0); got != "third" {
		t.Errorf("Get(0) = %q, want %q", got, "third")
	}
	if got := b.Get(2); got != "first" {
		t.Errorf("Get(2) = %q, want %q", got, "first")
	}
	if diff := cmp.Diff([]string{"third", "second", "first"}, b.Recent(0)); diff != "" {
		t.Errorf("Recent(0) mismatch (-want +got):\n%s", diff)
	}
}

func TestBuffer_GetClamps(t *testing.T) {
	tests := []struct {
		name    string
		entries []string
		index   int
		want    string
	}{
		{"single entry far index", []string{"only"}, 1000, "only"},
		{"past end gives oldest", []string{"a", "b", "c"}, 3, "a"},
		{"negative gives newest", []string{"a", "b"}, -1, "b"},
		{"empty", nil, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer(0)
			for _, e := range tt.entries {
				b.Add(e)
			}
			if got := b.Get(tt.index); got != tt.want {
				t.Errorf("Get(%d) = %q, want %q", tt.index, got, tt.want)
			}
		})
	}
}

func TestBuffer_LimitEvictsOldest(t *testing.T) {
	b := NewBuffer(2)
	b.Add("a")
	b.Add("b")
	b.Add("c")

	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", b.Len())
	}
	if diff := cmp.Diff([]string{"b", "c"}, b.Chronological()); diff != "" {
		t.Errorf("Chronological() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuffer_UnboundedByDefault(t *testing.T) {
	b := NewBuffer(-5)
	for i := 0; i < 500; i++ {
		b.Add("x")
	}
	if b.Len() != 500 {
		t.Errorf("Len() = %d, want 500", b.Len())
	}
}

func TestBuffer_Recent(t *testing.T) {
	b := NewBuffer(0)
	b.Add("a")
	b.Add("b")
	b.Add("c")
	if diff := cmp.Diff([]string{"c", "b"}, b.Recent(2)); diff != "" {
		t.Errorf("Recent(2) mismatch (-want +got):\n%s", diff)
	}
	if got := b.Recent(10); len(got) != 3 {
		t.Errorf("Recent(10) returned %d entries, want 3", len(got))
	}
}

func TestBuffer_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.json")

	b := NewBuffer(0)
	b.Add("echo one")
	b.Add("echo two | upper")
	if err := b.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded := NewBuffer(0)
	if err := loaded.Load(path); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(b.Recent(0), loaded.Recent(0)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestBuffer_LoadAppliesLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	src := NewBuffer(0)
	for _, e := range []string{"1", "2", "3", "4"} {
		src.Add(e)
	}
	if err := src.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	b := NewBuffer(2)
	if err := b.Load(path); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff([]string{"4", "3"}, b.Recent(0)); diff != "" {
		t.Errorf("Recent(0) mismatch (-want +got):\n%s", diff)
	}
}

func TestBuffer_LoadMissingFile(t *testing.T) {
	b := NewBuffer(0)
	if err := b.Load(filepath.Join(t.TempDir(), "absent.json")); err != nil {
		t.Errorf("Load() of missing file error = %v, want nil", err)
	}
}

func TestBuffer_LoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := NewBuffer(0).Load(path); err == nil {
		t.Error("Load() of corrupt file should fail")
	}
}

func TestBuffer_LoadRejectsNewerVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte(`{"version": 99, "entries": ["x"]}`), 0600); err != nil {
		t.Fatal(err)
	}
	if err := NewBuffer(0).Load(path); err == nil {
		t.Error("Load() should reject unknown versions")
	}
}
