package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/goccy/go-yaml"
)

// document is the YAML (and JSON) shape of a model file.
type document struct {
	Name       string        `yaml:"name"`
	Parameters []paramDoc    `yaml:"parameters,omitempty"`
	States     []stateDoc    `yaml:"states,omitempty"`
	Options    yaml.MapSlice `yaml:"options,omitempty"`
}

type paramDoc struct {
	ID    string  `yaml:"id"    json:"id"`
	Value float64 `yaml:"value" json:"value"`
}

type stateDoc struct {
	ID       string  `yaml:"id"                json:"id"`
	Kind     string  `yaml:"kind"              json:"kind"`
	Equation any     `yaml:"equation"          json:"equation"`
	Initial  float64 `yaml:"initial,omitempty" json:"initial,omitempty"`
	Context  string  `yaml:"context,omitempty" json:"context,omitempty"`
}

func decodeYAML(ctx context.Context, data []byte) (*Model, error) {
	var doc document

	dec := yaml.NewDecoder(bytes.NewReader(data), yaml.DisallowUnknownField())
	if err := dec.DecodeContext(ctx, &doc); err != nil {
		return nil, ErrDecode.Wrap(err).With(slog.String("format", FormatYAML.String()))
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

		eq, err := scalarText(s.Equation)
		if err != nil {
			return nil, ErrDecode.Wrap(err).With(slog.String("state", s.ID))
		}

		m.States = append(m.States, State{
			ID:       s.ID,
			Kind:     kind,
			Equation: eq,
			Initial:  s.Initial,
			Context:  s.Context,
		})
	}

	for _, item := range doc.Options {
		key, ok := item.Key.(string)
		if !ok {
			return nil, ErrDecode.With(slog.String("reason", "option key is not a string"),
				slog.Any("key", item.Key))
		}

		val, err := scalarText(item.Value)
		if err != nil {
			return nil, ErrDecode.Wrap(err).With(slog.String("option", key))
		}

		m.Options = append(m.Options, Option{Key: key, Value: val})
	}

	return m, nil
}

// scalarText renders a decoded YAML scalar the way it is written into
// generated code.
func scalarText(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	}

	return "", fmt.Errorf("unsupported value type %T", v)
}

// scalarValue is the inverse of scalarText for encoding: numeric text is
// written as a number, anything else as a string.
func scalarValue(s string) any {
	if f, err := strconv.ParseFloat(s, 64); err == nil && json.Valid([]byte(s)) {
		return f
	}

	return s
}

func makeDocument(m *Model) document {
	doc := document{Name: m.Name}

	for _, p := range m.Parameters {
		doc.Parameters = append(doc.Parameters, paramDoc(p))
	}

	for _, s := range m.States {
		doc.States = append(doc.States, stateDoc{
			ID:       s.ID,
			Kind:     s.Kind.String(),
			Equation: s.Equation,
			Initial:  s.Initial,
			Context:  s.Context,
		})
	}

	for _, o := range m.Options {
		doc.Options = append(doc.Options, yaml.MapItem{Key: o.Key, Value: scalarValue(o.Value)})
	}

	return doc
}

func encodeYAML(ctx context.Context, m *Model) ([]byte, error) {
	return yaml.MarshalContext(ctx, makeDocument(m), yaml.Indent(2), yaml.IndentSequence(true))
}

// jsonOptions marshals as a JSON object with keys in declaration order.
type jsonOptions []Option

func (o jsonOptions) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, opt := range o {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(opt.Key)
		if err != nil {
			return nil, err
		}

		val, err := json.Marshal(scalarValue(opt.Value))
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func encodeJSON(m *Model) ([]byte, error) {
	doc := makeDocument(m)

	out := struct {
		Name       string      `json:"name"`
		Parameters []paramDoc  `json:"parameters,omitempty"`
		States     []stateDoc  `json:"states,omitempty"`
		Options    jsonOptions `json:"options,omitempty"`
	}{
		Name:       doc.Name,
		Parameters: doc.Parameters,
		States:     doc.States,
		Options:    jsonOptions(m.Options),
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(b, '\n'), nil
}
