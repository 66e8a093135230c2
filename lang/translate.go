package lang

import "strings"

// elementwise maps arithmetic operators to their MATLAB elementwise
// spelling, with additive operators padded by spaces.
var elementwise = map[string]string{
	"*":  ".*",
	"/":  "./",
	"^":  ".^",
	"**": ".^",
	"+":  " + ",
	"-":  " - ",
}

// Translate rewrites equation as a MATLAB expression. Each token is
// rewritten independently:
//
//   - a name in params is qualified with the namespace ([DefaultNamespace]
//     unless set by [WithNamespace]);
//   - *, /, and ^ become .*, ./, and .^; the power spelling ** also
//     becomes .^;
//   - + and - are surrounded by single spaces;
//   - every other token is copied verbatim.
//
// Tokens are concatenated without separators, so whitespace in equation is
// not preserved: adjacent names such as "a b" merge into the single
// identifier "ab" (or "p.ab" when a is a parameter). A name that is both
// a parameter and a state is always treated as a parameter.
func Translate(equation string, params Set, opts ...Option) (string, error) {
	o := makeOptions(opts...)

	var b strings.Builder

	for tok, err := range Tokenize(equation) {
		if err != nil {
			return "", err
		}

		switch tok.Kind {
		case KindEnd:
		case KindName:
			if params.Has(tok.Text) && o.namespace != "" {
				b.WriteString(o.namespace)
				b.WriteByte('.')
			}

			b.WriteString(tok.Text)
		case KindOperator:
			if s, ok := elementwise[tok.Text]; ok {
				b.WriteString(s)
			} else {
				b.WriteString(tok.Text)
			}
		default:
			b.WriteString(tok.Text)
		}
	}

	return b.String(), nil
}
