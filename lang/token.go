package lang

//go:generate go tool stringer --linecomment --type Kind --output kind_string.go

import "strconv"

// Kind classifies a [Token].
type Kind int

const (
	KindName     Kind = iota // name
	KindNumber               // number
	KindOperator             // operator
	KindPunct                // punctuation
	KindString               // string
	KindEnd                  // end
)

// Token is a lexical unit of a formula. Text is the exact source text of
// the token and Offset its byte offset in the formula. The end marker has
// empty Text and an Offset equal to the formula length.
type Token struct {
	Kind   Kind
	Text   string
	Offset int
}

func (t Token) String() string {
	if t.Kind == KindEnd {
		return t.Kind.String()
	}

	return t.Kind.String() + " " + strconv.Quote(t.Text)
}

// Is reports whether t has kind k and, when text is given, one of the
// given texts.
func (t Token) Is(k Kind, text ...string) bool {
	if t.Kind != k {
		return false
	}

	if len(text) == 0 {
		return true
	}

	for _, s := range text {
		if t.Text == s {
			return true
		}
	}

	return false
}
