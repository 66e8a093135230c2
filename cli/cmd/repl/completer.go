package repl

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/expr-lang/expr/builtin"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/daex/model"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "list", "order", "clear", "quit"}

// mathFunctions are the calls accepted in formulas beyond the expr builtins.
var mathFunctions = []string{
	"exp", "log", "log10", "sqrt", "sin", "cos", "tan", "pow",
}

// isWordBoundary reports whether r ends an identifier for completion
// purposes: whitespace plus the operator and punctuation runes of a formula.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t',
		'(', ')', ',',
		'+', '-', '*', '/', '^',
		'<', '>', '=', '!', '~',
		'&', '|', ';', '.':
		return true
	}

	return false
}

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input. Returns an empty word when the cursor sits on a
// boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// formulaCandidates returns every name a formula over m may reference:
// parameters, states, the time variable, and callable functions.
func formulaCandidates(m *model.Model) []string {
	var names []string

	if m != nil {
		for _, p := range m.Parameters {
			names = append(names, p.ID)
		}

		for _, s := range m.States {
			names = append(names, s.ID)
		}
	}

	names = append(names, "t")
	names = append(names, mathFunctions...)

	for _, fn := range []string{"abs", "min", "max", "floor", "ceil"} {
		if _, ok := builtin.Index[fn]; ok {
			names = append(names, fn)
		}
	}

	return names
}

// computeMatches calculates the fuzzy match results for the word at the
// cursor. An empty word yields no matches so the hint line stays visible.
func (s session) computeMatches() (
	matches fuzzy.Matches,
	wordStart, wordEnd int,
) {
	word, start, end := wordBounds(s.input.Value(), s.input.Position())
	if word == "" {
		return nil, start, end
	}

	candidates := s.candidates
	if s.mode == modeCtrl {
		candidates = ctrlCommands
	}

	return fuzzy.Find(word, candidates), start, end
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. The selected candidate (when tabbing) uses
// the selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted. Functions are displayed with a "()" suffix.
func renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle := suggestionStyle
	highlightStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("4")).
		Bold(true)

	if selected {
		baseStyle = selectedStyle
		highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4")).
			Bold(true)
	}

	var b strings.Builder

	for i, r := range match.Str {
		if slices.Contains(match.MatchedIndexes, i) {
			b.WriteString(highlightStyle.Render(string(r)))
		} else {
			b.WriteString(baseStyle.Render(string(r)))
		}
	}

	if isFunction(match.Str) {
		b.WriteString(baseStyle.Render("()"))
	}

	return b.String()
}

func isFunction(name string) bool {
	if slices.Contains(mathFunctions, name) {
		return true
	}

	_, ok := builtin.Index[name]

	return ok
}
