package cli

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  config
	}{
		{
			name:  "scalars",
			input: "log_level: debug\nlog-pretty: false\nrate: 0.25\ncount: 3\n",
			want: config{
				"log_level":  "debug",
				"log-pretty": false,
				"rate":       "0.25",
				"count":      "3",
			},
		},
		{
			name:  "sequence",
			input: "tags:\n  - a\n  - 2\n",
			want:  config{"tags": []any{"a", "2"}},
		},
		{name: "empty", input: "", want: config{}},
		{name: "not a mapping", input: "- a\n- b\n", want: config{}},
		{name: "malformed", input: "a: [\n", want: config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := resolve(context.Background())(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !reflect.DeepEqual(res, tt.want) {
				t.Errorf("expected %#v, got %#v", tt.want, res)
			}
		})
	}
}

func TestResolveFlags(t *testing.T) {
	var cli struct {
		LogLevel  string   `default:"info"`
		LogPretty bool     `default:"true" negatable:""`
		Rate      float64  `default:"1"`
		Tags      []string `sep:","`
	}

	res, err := resolve(context.Background())(strings.NewReader(
		"log_level: warn\nlog-pretty: false\nrate: 0.5\ntags: [x, y]\n",
	))
	if err != nil {
		t.Fatal(err)
	}

	parser, err := kong.New(&cli, kong.Resolvers(res))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := parser.Parse([]string{"--log-level=error"}); err != nil {
		t.Fatal(err)
	}

	if cli.LogLevel != "error" {
		t.Errorf("expected command line to override config, got %q", cli.LogLevel)
	}

	if cli.LogPretty {
		t.Error("expected log-pretty from config to be false")
	}

	if cli.Rate != 0.5 {
		t.Errorf("expected rate 0.5, got %v", cli.Rate)
	}

	if !reflect.DeepEqual(cli.Tags, []string{"x", "y"}) {
		t.Errorf("expected tags [x y], got %v", cli.Tags)
	}
}
