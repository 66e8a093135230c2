package repl

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/daex/eval"
	"github.com/ardnew/daex/lang"
	"github.com/ardnew/daex/log"
	"github.com/ardnew/daex/model"
)

const (
	formulaPrompt = "➜ "
	ctrlPrompt    = " :"
)

func helpMessage() string {
	return `
: Commands (press Esc to toggle mode):

  help     Print this message
  list     List parameters and states
  order    Print the state evaluation order
  clear    Clear screen
  quit     Exit REPL

Usage:
  Type a formula to see its MATLAB translation, the model names it
    references, and its value at the initial time
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Esc to toggle between formula and command modes
  Use Up/Down arrows for history navigation
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// inputMode represents the current input mode.
type inputMode int

const (
	modeFormula inputMode = iota
	modeCtrl
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// session is the Bubble Tea model for the REPL.
type session struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	model        *model.Model
	values       eval.Values // nil when initial values are unavailable
	valuesErr    error
	params       lang.Set
	known        lang.Set
	namespace    string
	logger       log.Logger
	history      *History
	historyIdx   int
	candidates   []string      // formula completion candidates
	matches      fuzzy.Matches // current fuzzy match results
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int           // terminal width for ellipsization
	quitting     bool
	mode         inputMode
	stash        string // input of the inactive mode
}

// Run starts the REPL over m. The history file is kept in cacheDir; an
// empty cacheDir keeps history in memory.
func Run(
	ctx context.Context,
	m *model.Model,
	namespace string,
	cacheDir string,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if m == nil {
		return ErrNoModel
	}

	logger.TraceContext(
		ctx,
		"repl start",
		slog.String("model", m.Name),
		slog.String("cache_dir", cacheDir),
	)

	var historyPath string
	if cacheDir != "" {
		historyPath = filepath.Join(cacheDir, baseHistory)
	}

	history := NewHistory(historyPath)
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history", slog.Any("error", err))
	}

	s := newSession(ctx, m, namespace, history, logger)

	_, err = tea.NewProgram(s, tea.WithContext(ctx)).Run()

	return err
}

const defaultWidth = 80

func newSession(
	ctx context.Context,
	m *model.Model,
	namespace string,
	history *History,
	logger log.Logger,
) session {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(formulaPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	vals, err := eval.Initial(ctx, m)
	if err != nil {
		logger.DebugContext(ctx, "initial values unavailable", slog.Any("error", err))
	}

	params := lang.NewSet()
	for id := range m.ParameterIDs() {
		params[id] = struct{}{}
	}

	known := lang.NewSet()
	for id := range m.StateIDs() {
		known[id] = struct{}{}
	}

	for id := range params {
		known[id] = struct{}{}
	}

	return session{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		model:      m,
		values:     vals,
		valuesErr:  err,
		params:     params,
		known:      known,
		namespace:  namespace,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		candidates: formulaCandidates(m),
		suggIdx:    -1,
		width:      defaultWidth,
		mode:       modeFormula,
	}
}

func (s session) Init() tea.Cmd {
	return textinput.Blink
}

func (s session) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return s.handleKey(msg)

	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.input.Width = msg.Width - len(formulaPrompt) - 2

		return s, nil
	}

	var cmd tea.Cmd

	s.input, cmd = s.input.Update(msg)

	return s, cmd
}

func (s session) View() string {
	if s.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(s.input.View())
	b.WriteString("\n")

	switch {
	case s.historyIdx < s.history.Len():
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(s.historyIdx+1)),
			s.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case strings.TrimSpace(s.input.Value()) == "":
		hint := "Type a formula or press Esc for commands"
		if s.mode == modeCtrl {
			hint = "Type: " + strings.Join(ctrlCommands, ", ") + " (press Esc to return)"
		}

		b.WriteString(hintStyle.Render(hint))

	default:
		b.WriteString(renderCandidateBar(s.matches, s.suggIdx, s.tabActive, s.width))
	}

	b.WriteString("\n")

	return b.String()
}

func (s session) handleKey(msg tea.KeyMsg) (session, tea.Cmd) {
	s.logger.TraceContext(
		s.ctxFunc(),
		"repl keypress",
		slog.String("key", msg.String()),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if s.input.Value() == "" {
			s.quitting = true

			return s, tea.Quit
		}

		s.input.SetValue("")
		s.tabActive = false
		s.historyIdx = s.history.Len()
		s.refreshMatches(false)

		return s, nil

	case tea.KeyCtrlD:
		if s.input.Value() == "" {
			s.quitting = true

			return s, tea.Quit
		}

		return s, nil

	case tea.KeyEnter:
		if !s.tabActive || len(s.matches) == 0 {
			return s.executeInput()
		}

		// Lock in the current candidate without executing.
		s.tabActive = false
		s.refreshMatches(true)

		return s, nil

	case tea.KeyTab:
		return s.cycle(1), nil

	case tea.KeyShiftTab:
		return s.cycle(-1), nil

	case tea.KeyUp:
		return s.historyMove(-1), nil

	case tea.KeyDown:
		return s.historyMove(1), nil

	case tea.KeyEsc:
		if s.tabActive {
			s.tabActive = false
			s.input.SetValue(s.preTabText)
			s.input.SetCursor(s.preTabCursor)
			s.refreshMatches(false)

			return s, nil
		}

		return s.switchToMode(1 - s.mode), nil

	case tea.KeyRunes, tea.KeySpace:
		if s.tabActive && msg.String() == " " {
			s.tabActive = false
		}

		var cmd tea.Cmd

		s.historyIdx = s.history.Len()
		s.input, cmd = s.input.Update(msg)
		s.refreshMatches(true)

		return s, cmd
	}

	var cmd tea.Cmd

	s.tabActive = false
	s.historyIdx = s.history.Len()
	s.input, cmd = s.input.Update(msg)
	s.refreshMatches(false)

	return s, cmd
}

// cycle moves the tab selection by step, wrapping at either end. A sole
// candidate is completed immediately.
func (s session) cycle(step int) session {
	n := len(s.matches)
	if n == 0 {
		return s
	}

	if n == 1 {
		s.replaceCurrentWord(s.matches[0].Str)
		s.tabActive = false
		s.suggIdx = -1
		s.matches = nil

		return s
	}

	switch {
	case s.tabActive:
		s.suggIdx = (s.suggIdx + step + n) % n
	case step > 0:
		s.tabActive = true
		s.preTabText = s.input.Value()
		s.preTabCursor = s.input.Position()
		s.suggIdx = 0
	default:
		s.tabActive = true
		s.preTabText = s.input.Value()
		s.preTabCursor = s.input.Position()
		s.suggIdx = n - 1
	}

	s.replaceCurrentWord(s.matches[s.suggIdx].Str)

	return s
}

// replaceCurrentWord replaces the current word boundaries in the input with
// the given replacement text and repositions the cursor.
func (s *session) replaceCurrentWord(replacement string) {
	input := s.input.Value()
	cursor := s.wordStart + len(replacement)

	s.input.SetValue(input[:s.wordStart] + replacement + input[s.wordEnd:])
	s.input.SetCursor(cursor)

	s.wordEnd = cursor
}

// refreshMatches recomputes fuzzy matches for the current input state.
// When autoConfirm is true a sole candidate equal to the typed word is
// accepted.
func (s *session) refreshMatches(autoConfirm bool) {
	s.matches, s.wordStart, s.wordEnd = s.computeMatches()

	if !s.tabActive {
		s.suggIdx = -1
	}

	if !autoConfirm || len(s.matches) != 1 {
		return
	}

	if s.input.Value()[s.wordStart:s.wordEnd] == s.matches[0].Str {
		s.tabActive = false
		s.suggIdx = -1
		s.matches = nil
	}
}

func (s session) historyMove(step int) session {
	i := s.historyIdx + step

	switch {
	case i < 0:
		return s
	case i >= s.history.Len():
		s.historyIdx = s.history.Len()
		s.input.SetValue("")
		s.refreshMatches(false)

		return s
	}

	entry, err := s.history.Entry(i)
	if err != nil {
		return s
	}

	s.historyIdx = i

	if s.mode != entry.Mode {
		s = s.switchToMode(entry.Mode)
	}

	s.input.SetValue(entry.Line)
	s.input.SetCursor(len(entry.Line))
	s.refreshMatches(false)

	return s
}

// switchToMode switches to mode, swapping in the input held for it.
func (s session) switchToMode(mode inputMode) session {
	if mode == s.mode {
		return s
	}

	text := s.input.Value()
	s.input.SetValue(s.stash)
	s.input.CursorEnd()
	s.stash = text

	s.mode = mode
	if mode == modeFormula {
		s.input.Prompt = promptStyle.Render(formulaPrompt)
	} else {
		s.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
	}

	s.refreshMatches(false)

	return s
}

func (s session) executeInput() (session, tea.Cmd) {
	input := strings.TrimSpace(s.input.Value())
	if input == "" {
		return s, nil
	}

	s.input.SetValue("")
	s.stash = ""
	s.matches = nil

	if err := s.history.Add(input, s.mode); err != nil {
		s.logger.DebugContext(s.ctxFunc(), "history write", slog.Any("error", err))
	}

	s.historyIdx = s.history.Len()

	if s.mode == modeCtrl {
		return s.executeCommand(input)
	}

	s.logger.TraceContext(s.ctxFunc(), "repl formula", slog.String("input", input))

	echo := tea.Println(promptStyle.Render(formulaPrompt) + inputStyle.Render(input))

	lines, err := s.evaluate(input)
	if err != nil {
		return s, tea.Sequence(echo, tea.Println(errorStyle.Render("error: "+err.Error())))
	}

	return s, tea.Sequence(echo, tea.Println(resultStyle.Render(strings.Join(lines, "\n"))))
}

// evaluate returns the report for formula: its translation, the model
// names it references, and its value at the initial time when the model
// has one.
func (s session) evaluate(formula string) ([]string, error) {
	translated, err := lang.Translate(formula, s.params, lang.WithNamespace(s.namespace))
	if err != nil {
		return nil, err
	}

	refs, err := lang.References(formula, s.known)
	if err != nil {
		return nil, err
	}

	lines := []string{
		"matlab: " + translated,
		"refs:   " + strings.Join(lang.NewSet(refs...).Sorted(), ", "),
	}

	switch {
	case s.valuesErr != nil:
		lines = append(lines, "value:  unavailable ("+s.valuesErr.Error()+")")
	default:
		x, err := eval.Expression(formula, s.values)
		if err != nil {
			lines = append(lines, "value:  "+err.Error())
		} else {
			lines = append(lines, "value:  "+strconv.FormatFloat(x, 'g', -1, 64))
		}
	}

	return lines, nil
}

func (s session) executeCommand(input string) (session, tea.Cmd) {
	parts := strings.Fields(input)
	echo := tea.Println(ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input))

	s.logger.TraceContext(s.ctxFunc(), "repl command", slog.String("command", parts[0]))

	switch parts[0] {
	case "q", "quit", "exit":
		s.quitting = true

		return s, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return s, tea.Sequence(echo, tea.Println(helpMessage()))

	case "l", "list":
		return s, tea.Sequence(echo, tea.Println(s.list()))

	case "o", "order":
		order, err := lang.Order(s.model.States)
		if err != nil {
			return s, tea.Sequence(echo, tea.Println(errorStyle.Render("error: "+err.Error())))
		}

		return s, tea.Sequence(echo, tea.Println(resultStyle.Render(strings.Join(order, " "))))

	case "c", "clear":
		return s, tea.ClearScreen

	default:
		return s, tea.Println(
			errorStyle.Render("Unknown command: " + parts[0] + " (try 'help')"),
		)
	}
}

// list renders the model's parameters and states, one per line.
func (s session) list() string {
	var b strings.Builder

	for _, p := range s.model.Parameters {
		fmt.Fprintf(&b, "  %s %s\n", p.ID,
			hintStyle.Render("= "+strconv.FormatFloat(p.Value, 'g', -1, 64)))
	}

	for _, st := range s.model.States {
		fmt.Fprintf(&b, "  %s %s\n", st.ID,
			hintStyle.Render("("+st.Kind.String()+") "+st.Equation))
	}

	return b.String()
}
