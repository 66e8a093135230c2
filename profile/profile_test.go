//go:build !pprof

package profile

import "testing"

func TestProfiler_DisabledIsNoop(t *testing.T) {
	tests := []Profiler{
		{},
		{Mode: "cpu"},
		{Mode: "bogus", Path: t.TempDir(), Quiet: true},
	}

	for _, p := range tests {
		t.Run(p.Mode, func(t *testing.T) {
			s := p.Start()
			if _, ok := s.(ignore); !ok {
				t.Errorf("expected no-op stopper, got %T", s)
			}

			s.Stop()
		})
	}
}

func TestModes_EmptyWithoutTag(t *testing.T) {
	if got := Modes(); len(got) != 0 {
		t.Errorf("expected no modes without pprof tag, got %v", got)
	}
}
