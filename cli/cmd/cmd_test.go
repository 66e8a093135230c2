package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/daex/lang"
	"github.com/ardnew/daex/model"
)

const enzymeYAML = `name: enzyme
parameters:
  - {id: Vmax, value: 2}
  - {id: Km, value: 0.5}
states:
  - {id: v, kind: assignment, equation: Vmax*S/(Km+S)}
  - {id: S, kind: ode, equation: -v, initial: 1, context: substrate}
  - {id: P, kind: ode, equation: v, context: product}
options:
  t_init: 0
  t_end: 10
`

const cyclicYAML = `name: cyclic
states:
  - {id: a, kind: assignment, equation: b+1}
  - {id: b, kind: assignment, equation: a+1}
`

// writeModel writes content to name in a temporary directory and returns
// its path.
func writeModel(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestInputLoad(t *testing.T) {
	yamlPath := writeModel(t, "enzyme.yaml", enzymeYAML)
	txtPath := writeModel(t, "enzyme.txt", enzymeYAML)

	tests := []struct {
		name    string
		input   Input
		wantErr error
	}{
		{name: "by extension", input: Input{Model: yamlPath}},
		{name: "format override", input: Input{Model: txtPath, Format: "yaml"}},
		{name: "stdin", input: Input{Model: "-", Stdin: strings.NewReader(enzymeYAML)}},
		{name: "stdin format", input: Input{Model: "-", Format: "yml", Stdin: strings.NewReader(enzymeYAML)}},
		{name: "unknown extension", input: Input{Model: txtPath}, wantErr: model.ErrUnknownFormat},
		{name: "missing file", input: Input{Model: filepath.Join(t.TempDir(), "none.yaml")}, wantErr: model.ErrDecode},
		{name: "missing file with format", input: Input{Model: filepath.Join(t.TempDir(), "none"), Format: "yaml"}, wantErr: os.ErrNotExist},
		{name: "bad format", input: Input{Model: "-", Format: "xml", Stdin: strings.NewReader("")}, wantErr: model.ErrUnknownFormat},
		{name: "invalid model", input: Input{Model: "-", Stdin: strings.NewReader("name: 1x\n")}, wantErr: model.ErrInvalidModel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := tt.input.load(context.Background())

			if tt.wantErr != nil {
				if !errors.Is(err, ErrReadModel) || !errors.Is(err, tt.wantErr) {
					t.Errorf("expected ErrReadModel wrapping %v, got %v", tt.wantErr, err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if m.Name != "enzyme" || len(m.States) != 3 {
				t.Errorf("unexpected model %+v", m)
			}
		})
	}
}

func TestOrderRun(t *testing.T) {
	path := writeModel(t, "enzyme.yaml", enzymeYAML)

	tests := []struct {
		name string
		kind bool
		want string
	}{
		{name: "ids", want: "S\nP\nv\n"},
		{name: "kinds", kind: true, want: "S\tode\nP\tode\nv\tassignment\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			o := &Order{Input: Input{Model: path}, Kind: tt.kind, Out: &out}
			if err := o.Run(context.Background()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if out.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, out.String())
			}
		})
	}
}

func TestOrderRunCycle(t *testing.T) {
	o := &Order{Input: Input{Model: writeModel(t, "cyclic.yaml", cyclicYAML)}, Out: new(bytes.Buffer)}

	err := o.Run(context.Background())

	var dep *lang.DependencyError
	if !errors.As(err, &dep) || !errors.Is(err, lang.ErrCyclicDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}

	if strings.Join(dep.States, ",") != "a,b" {
		t.Errorf("expected unresolved states a,b, got %v", dep.States)
	}
}

func TestTranslateRun(t *testing.T) {
	path := writeModel(t, "enzyme.yaml", enzymeYAML)

	tests := []struct {
		name    string
		cmd     Translate
		want    string
		wantErr error
	}{
		{
			name: "model parameters",
			cmd:  Translate{Formula: "Vmax*S/(Km+S)", Model: path, Namespace: "p"},
			want: "p.Vmax.*S./(p.Km + S)\n",
		},
		{
			name: "explicit parameters",
			cmd:  Translate{Formula: "Vmax*S/(Km+S)", Params: []string{"Km"}, Namespace: "q"},
			want: "Vmax.*S./(q.Km + S)\n",
		},
		{
			name: "no namespace",
			cmd:  Translate{Formula: "a^2-b", Params: []string{"a"}},
			want: "a.^2 - b\n",
		},
		{
			name:    "malformed",
			cmd:     Translate{Formula: "a*'b", Namespace: "p"},
			wantErr: lang.ErrMalformedExpression,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			tt.cmd.Out = &out

			err := tt.cmd.Run(context.Background())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if out.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, out.String())
			}
		})
	}
}

func TestRefsRun(t *testing.T) {
	path := writeModel(t, "enzyme.yaml", enzymeYAML)

	tests := []struct {
		name string
		cmd  Refs
		want string
	}{
		{
			name: "model names",
			cmd:  Refs{Formula: "Vmax*S/(Km+S)", Model: path},
			want: "Vmax\nS\nKm\nS\n",
		},
		{
			name: "unique",
			cmd:  Refs{Formula: "Vmax*S/(Km+S)", Model: path, Unique: true},
			want: "Km\nS\nVmax\n",
		},
		{
			name: "explicit names",
			cmd:  Refs{Formula: "x + 2*y - z", Known: []string{"x", "y", "z", "w"}},
			want: "x\ny\nz\n",
		},
		{
			name: "none known",
			cmd:  Refs{Formula: "x + 1"},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			tt.cmd.Out = &out

			if err := tt.cmd.Run(context.Background()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if out.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, out.String())
			}
		})
	}
}

func TestEvalRun(t *testing.T) {
	var out bytes.Buffer

	e := &Eval{Input: Input{Model: writeModel(t, "enzyme.yaml", enzymeYAML)}, Out: &out}
	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "t = 0\nVmax = 2\nKm = 0.5\nv = 1.3333333333333333\nS = 1\nP = 0\n"
	if out.String() != want {
		t.Errorf("expected %q, got %q", want, out.String())
	}
}

func TestFmtRun(t *testing.T) {
	path := writeModel(t, "enzyme.yaml", enzymeYAML)

	tests := []struct {
		name     string
		to       string
		contains []string
	}{
		{name: "yaml", to: "yaml", contains: []string{"name: enzyme", "id: Vmax", "t_end:"}},
		{name: "json", to: "json", contains: []string{`"name": "enzyme"`, `"id": "Vmax"`, `"t_end": 10`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			f := &Fmt{Input: Input{Model: path}, To: tt.to, Out: &out}
			if err := f.Run(context.Background()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			for _, want := range tt.contains {
				if !strings.Contains(out.String(), want) {
					t.Errorf("expected %q in output:\n%s", want, out.String())
				}
			}

			format, _ := model.ParseFormat(tt.to)

			m, err := model.Decode(context.Background(), &out, format)
			if err != nil {
				t.Fatalf("formatted output does not decode: %v", err)
			}

			if m.Name != "enzyme" || len(m.Parameters) != 2 || len(m.States) != 3 {
				t.Errorf("unexpected round-trip model %+v", m)
			}
		})
	}
}

func TestExportRun(t *testing.T) {
	path := writeModel(t, "enzyme.yaml", enzymeYAML)

	tests := []struct {
		name      string
		noExample bool
		files     []string
	}{
		{name: "with example", files: []string{"enzyme.m", "enzyme_example.m"}},
		{name: "without example", noExample: true, files: []string{"enzyme.m"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()

			var out bytes.Buffer

			e := &Export{
				Input:     Input{Model: path},
				Dir:       dir,
				NoExample: tt.noExample,
				Generator: "cmd_test",
				Out:       &out,
			}
			if err := e.Run(context.Background()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var want strings.Builder
			for _, name := range tt.files {
				want.WriteString(filepath.Join(dir, name) + "\n")
			}

			if out.String() != want.String() {
				t.Errorf("expected %q, got %q", want.String(), out.String())
			}

			class, err := os.ReadFile(filepath.Join(dir, "enzyme.m"))
			if err != nil {
				t.Fatal(err)
			}

			if !bytes.Contains(class, []byte("generated by cmd_test")) {
				t.Errorf("expected generator in banner:\n%s", class)
			}
		})
	}
}

func TestExportRunCycle(t *testing.T) {
	dir := t.TempDir()

	e := &Export{Input: Input{Model: writeModel(t, "cyclic.yaml", cyclicYAML)}, Dir: dir, Out: new(bytes.Buffer)}
	if err := e.Run(context.Background()); !errors.Is(err, lang.ErrCyclicDependency) {
		t.Fatalf("expected ErrCyclicDependency, got %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	if len(entries) != 0 {
		t.Errorf("expected no files written, got %d", len(entries))
	}
}
