package model

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/zclconf/go-cty/cty"
)

type hclDocument struct {
	Name       string         `hcl:"name"`
	Parameters []hclParameter `hcl:"parameter,block"`
	States     []hclState     `hcl:"state,block"`
	Options    *hclOptions    `hcl:"options,block"`
}

type hclParameter struct {
	ID    string  `hcl:"id,label"`
	Value float64 `hcl:"value"`
}

type hclState struct {
	ID       string  `hcl:"id,label"`
	Kind     string  `hcl:"kind"`
	Equation string  `hcl:"equation"`
	Initial  float64 `hcl:"initial,optional"`
	Context  string  `hcl:"context,optional"`
}

// hclOptions keeps the options block undecoded; its attributes are read in
// source order.
type hclOptions struct {
	Body hcl.Body `hcl:",remain"`
}

// decodeHCL decodes HCL native syntax. filename is used in diagnostics and
// must carry the .hcl extension.
func decodeHCL(_ context.Context, filename string, data []byte) (*Model, error) {
	var doc hclDocument

	if err := hclsimple.Decode(filename, data, nil, &doc); err != nil {
		return nil, ErrDecode.Wrap(err).With(slog.String("format", FormatHCL.String()))
	}

	m := &Model{Name: doc.Name}

	for _, p := range doc.Parameters {
		m.Parameters = append(m.Parameters, Parameter(p))
	}

	for _, s := range doc.States {
		kind, err := ParseKind(s.Kind)
		if err != nil {
			return nil, ErrDecode.Wrap(err).With(slog.String("state", s.ID))
		}

		m.States = append(m.States, State{
			ID:       s.ID,
			Kind:     kind,
			Equation: s.Equation,
			Initial:  s.Initial,
			Context:  s.Context,
		})
	}

	if doc.Options == nil {
		return m, nil
	}

	attrs, diags := doc.Options.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, ErrDecode.Wrap(diags).With(slog.String("block", "options"))
	}

	ordered := make([]*hcl.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		ordered = append(ordered, attr)
	}

	slices.SortFunc(ordered, func(a, b *hcl.Attribute) int {
		return a.Range.Start.Byte - b.Range.Start.Byte
	})

	for _, attr := range ordered {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, ErrDecode.Wrap(diags).With(slog.String("option", attr.Name))
		}

		text, err := ctyText(val)
		if err != nil {
			return nil, ErrDecode.Wrap(err).With(slog.String("option", attr.Name))
		}

		m.Options = append(m.Options, Option{Key: attr.Name, Value: text})
	}

	return m, nil
}

// ctyText renders a primitive cty value as it is written into generated
// code. Numbers use the shortest decimal form that round-trips.
func ctyText(v cty.Value) (string, error) {
	if v.IsNull() {
		return "", fmt.Errorf("null value")
	}

	if !v.IsKnown() {
		return "", fmt.Errorf("unknown value")
	}

	switch t := v.Type(); {
	case t.Equals(cty.Number):
		return v.AsBigFloat().Text('g', -1), nil
	case t.Equals(cty.String):
		return v.AsString(), nil
	case t.Equals(cty.Bool):
		if v.True() {
			return "true", nil
		}

		return "false", nil
	default:
		return "", fmt.Errorf("unsupported %s value", t.FriendlyName())
	}
}
