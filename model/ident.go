package model

import (
	"unicode"
	"unicode/utf8"
)

// IsIdentifierStart reports whether r may begin an identifier.
func IsIdentifierStart(r rune) bool {
	return unicode.In(r,
		unicode.L,  // Letter
		unicode.Nl, // Letter, Number
		unicode.Other_ID_Start,
	) || r == '_'
}

// IsIdentifierContinue reports whether r may follow the first rune of an
// identifier.
func IsIdentifierContinue(r rune) bool {
	return unicode.In(r,
		unicode.L,  // Letter
		unicode.Nl, // Letter, Number
		unicode.Other_ID_Start,
		unicode.Mn, // Mark, Nonspacing
		unicode.Mc, // Mark, Spacing Combining
		unicode.Nd, // Number, Decimal Digit
		unicode.Pc, // Punctuation, Connector
		unicode.Other_ID_Continue,
	)
}

// IsIdentifier reports whether s is a non-empty identifier.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if r == utf8.RuneError {
			return false
		}

		if i == 0 && !IsIdentifierStart(r) || i > 0 && !IsIdentifierContinue(r) {
			return false
		}
	}

	return true
}
