package instructions

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCSVWithHeader(t *testing.T) {
	path := writeTemp(t, "list.csv", "instruction,notes\nmake a tanyao hand,easy\nmake a chiitoitsu hand,\n")
	got, err := NewDataReader().Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := []string{"make a tanyao hand", "make a chiitoitsu hand"}
	if len(got) != len(want) {
		t.Fatalf("got %d instructions, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("instruction %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLoadHeaderlessSingleColumn(t *testing.T) {
	path := writeTemp(t, "list.csv", "make a yakuhai hand\nmake a toitoi hand\n")
	got, err := NewDataReader().Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != 2 || got[0] != "make a yakuhai hand" {
		t.Errorf("unexpected instructions: %v", got)
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	path := writeTemp(t, "list.txt", "whatever")
	if _, err := NewDataReader().Load(path); err == nil {
		t.Fatal("expected error for .txt file")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := NewDataReader().Load("/nonexistent/list.csv"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSampleWithoutReplacement(t *testing.T) {
	list := []string{"a", "b", "c", "d", "e"}
	rng := rand.New(rand.NewSource(7))

	got := Sample(list, 3, rng)
	if len(got) != 3 {
		t.Fatalf("got %d items, want 3", len(got))
	}
	seen := map[string]bool{}
	for _, s := range got {
		if seen[s] {
			t.Errorf("duplicate sample %q", s)
		}
		seen[s] = true
	}

	if full := Sample(list, 10, rng); len(full) != 5 {
		t.Errorf("oversized n should return the full list, got %d", len(full))
	}
}
