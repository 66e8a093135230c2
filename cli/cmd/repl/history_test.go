package repl

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("load missing file: %v", err)
	}

	for _, add := range []struct {
		line string
		mode inputMode
	}{
		{"k*x", modeFormula},
		{"list", modeCtrl},
		{"  ", modeFormula},
		{"list", modeCtrl},
		{"exp(-t)", modeFormula},
		{"k*x", modeFormula},
	} {
		if err := h.Add(add.line, add.mode); err != nil {
			t.Fatalf("add %q: %v", add.line, err)
		}
	}

	want := []HistoryEntry{
		{Line: "list", Mode: modeCtrl},
		{Line: "exp(-t)", Mode: modeFormula},
		{Line: "k*x", Mode: modeFormula},
	}

	check := func(t *testing.T, h *History) {
		t.Helper()

		if h.Len() != len(want) {
			t.Fatalf("expected %d entries, got %d", len(want), h.Len())
		}

		for i, w := range want {
			got, err := h.Entry(i)
			if err != nil {
				t.Fatalf("entry %d: %v", i, err)
			}

			if got != w {
				t.Errorf("entry %d: expected %+v, got %+v", i, w, got)
			}
		}
	}

	check(t, h)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if got, exp := string(data), "C:list\nF:exp(-t)\nF:k*x\n"; got != exp {
		t.Errorf("expected file %q, got %q", exp, got)
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}

	check(t, reloaded)

	if _, err := reloaded.Entry(len(want)); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}

	if _, err := reloaded.Entry(-1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestHistoryInMemory(t *testing.T) {
	h := NewHistory("")

	if err := h.Add("x", modeFormula); err != nil {
		t.Fatal(err)
	}

	if err := h.Load(); err != nil {
		t.Fatal(err)
	}

	if h.Len() != 0 {
		t.Errorf("expected load to reset in-memory history, got %d entries", h.Len())
	}
}
