package repl

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mattn/go-isatty"

	"github.com/ardnew/attrex/cli/cmd"
	"github.com/ardnew/attrex/lang"
	"github.com/ardnew/attrex/log"
)

const prompt = "➜ "

const helpMessage = `
Type an expression to evaluate it against the current bindings.
Press Tab / Shift-Tab to cycle variable name completions.
Use Up/Down arrows for history. Ctrl+C or Ctrl+D exits.

Commands:
  :set name=value     Bind a variable
  :unset name         Remove a variable
  :mset name=value    Bind a macro variable
  :munset name        Remove a macro variable
  :macro on|off       Enter or leave macro scope
  :vars               List current bindings
  :help               Print this cruft
  :quit               Exit
`

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Repl is the interactive expression shell command.
type Repl struct {
	cmd.VarFlags `embed:""`

	History string `default:"${cache}/history" help:"History file path" type:"path"`
}

// Run starts the REPL.
func (r *Repl) Run(ctx context.Context) error {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return ErrNoTTY
	}

	env, err := r.VarFlags.Context()
	if err != nil {
		return err
	}

	history := NewHistory(r.History)
	if err := history.Load(); err != nil {
		log.WarnContext(ctx, "could not load history",
			slog.String("path", r.History),
			slog.Any("error", err),
		)
	}

	log.TraceContext(ctx, "repl start",
		slog.Int("vars", len(env.Vars)),
		slog.Bool("macro", env.MacroVars != nil),
		slog.Int("history", history.Len()),
	)

	p := tea.NewProgram(newModel(env, history), tea.WithContext(ctx))

	_, err = p.Run()

	return err
}

const defaultWidth = 80

// model is the Bubble Tea model for the REPL.
type model struct {
	input      textinput.Model
	env        *lang.Context
	history    *History
	historyIdx int
	matches    fuzzy.Matches
	candIdx    int
	tabActive  bool
	preTab     string // input text before tab-cycling began
	wordStart  int    // byte offset of the word under completion
	wordEnd    int
	width      int
	quitting   bool
}

func newModel(env *lang.Context, history *History) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		input:      ti,
		env:        env,
		history:    history,
		historyIdx: history.Len(),
		width:      defaultWidth,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - lipgloss.Width(prompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "ctrl+d":
		m.quitting = true

		return m, tea.Quit

	case "enter":
		return m.submit()

	case "up":
		if m.historyIdx > 0 {
			m.historyIdx--
			m.input.SetValue(m.history.At(m.historyIdx))
			m.input.CursorEnd()
		}

		return m.refreshMatches(), nil

	case "down":
		if m.historyIdx < m.history.Len() {
			m.historyIdx++

			if m.historyIdx == m.history.Len() {
				m.input.SetValue("")
			} else {
				m.input.SetValue(m.history.At(m.historyIdx))
			}

			m.input.CursorEnd()
		}

		return m.refreshMatches(), nil

	case "tab":
		return m.cycle(1), nil

	case "shift+tab":
		return m.cycle(-1), nil

	case "esc":
		if m.tabActive {
			m.input.SetValue(m.preTab)
			m.input.SetCursor(m.wordEnd)
			m.tabActive = false
		}

		return m.refreshMatches(), nil
	}

	m.tabActive = false

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m.refreshMatches(), cmd
}

// refreshMatches recomputes completion candidates for the word under the
// cursor. Matches are frozen while the user is tab-cycling.
func (m model) refreshMatches() model {
	if m.tabActive {
		return m
	}

	input := m.input.Value()
	word, start, end := wordBounds(input, m.input.Position())

	m.wordStart, m.wordEnd = start, end
	m.matches = match(word, candidates(m.env, input, start))
	m.candIdx = 0

	return m
}

// cycle steps through the completion candidates, replacing the word under
// the cursor with the selected candidate.
func (m model) cycle(dir int) model {
	if len(m.matches) == 0 {
		return m
	}

	if !m.tabActive {
		m.tabActive = true
		m.preTab = m.input.Value()
		m.candIdx = 0
	} else {
		m.candIdx = (m.candIdx + dir + len(m.matches)) % len(m.matches)
	}

	selected := m.matches[m.candIdx].Str
	value := m.preTab[:m.wordStart] + selected + m.preTab[m.wordEnd:]

	m.input.SetValue(value)
	m.input.SetCursor(m.wordStart + len(selected))

	return m
}

func (m model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		return m, nil
	}

	m.history.Append(line)
	m.historyIdx = m.history.Len()
	m.input.SetValue("")
	m.tabActive = false

	echo := promptStyle.Render(prompt) + inputStyle.Render(line)

	var output string

	if strings.HasPrefix(line, ":") {
		var quit bool

		output, quit = m.runCommand(line)
		if quit {
			m.quitting = true

			return m, tea.Sequence(tea.Println(echo), tea.Quit)
		}
	} else {
		output = m.evaluate(line)
	}

	m = m.refreshMatches()

	if output == "" {
		return m, tea.Println(echo)
	}

	return m, tea.Println(echo + "\n" + output)
}

// evaluate parses and evaluates line against the current bindings.
func (m model) evaluate(line string) string {
	expr, err := lang.ParseCached(line)
	if err != nil {
		return errorStyle.Render(err.Error())
	}

	result, err := lang.Eval(expr, m.env)
	if err != nil {
		return errorStyle.Render(err.Error())
	}

	return resultStyle.Render(result.String())
}

// runCommand executes a colon-prefixed command line.
func (m model) runCommand(line string) (output string, quit bool) {
	name, rest, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	rest = strings.TrimSpace(rest)

	switch name {
	case "quit", "q", "exit":
		return "", true

	case "help":
		return hintStyle.Render(strings.TrimSpace(helpMessage)), false

	case "set":
		return m.bind(m.env.Vars, rest), false

	case "unset":
		delete(m.env.Vars, rest)

		return "", false

	case "mset":
		if m.env.MacroVars == nil {
			m.env.MacroVars = make(map[string]string)
		}

		return m.bind(m.env.MacroVars, rest), false

	case "munset":
		delete(m.env.MacroVars, rest)

		return "", false

	case "macro":
		switch rest {
		case "on":
			if m.env.MacroVars == nil {
				m.env.MacroVars = make(map[string]string)
			}
		case "off":
			m.env.MacroVars = nil
		default:
			return errorStyle.Render("usage: :macro on|off"), false
		}

		return "", false

	case "vars":
		return m.listVars(), false

	default:
		return errorStyle.Render("unknown command: :" + name), false
	}
}

// bind parses a name=value pair into the given table.
func (m model) bind(table map[string]string, arg string) string {
	name, value, ok := strings.Cut(arg, "=")
	if !ok || name == "" {
		return errorStyle.Render("usage: name=value")
	}

	table[name] = value

	return ""
}

// listVars renders the current bindings, one per line with sigils.
func (m model) listVars() string {
	var b strings.Builder

	for _, name := range sortedKeys(m.env.Vars) {
		fmt.Fprintf(&b, "$%s = %q\n", name, m.env.Vars[name])
	}

	for _, name := range sortedKeys(m.env.MacroVars) {
		fmt.Fprintf(&b, "$@%s = %q\n", name, m.env.MacroVars[name])
	}

	if b.Len() == 0 {
		if m.env.MacroVars != nil {
			return hintStyle.Render("(no bindings; macro scope active)")
		}

		return hintStyle.Render("(no bindings)")
	}

	return hintStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case len(m.matches) > 0 &&
		strings.TrimSpace(m.input.Value()) != "":
		b.WriteString(renderCandidateBar(m.matches, m.candIdx, m.width))

	case m.historyIdx < m.history.Len():
		b.WriteString(hintStyle.Render(
			fmt.Sprintf("%d/%d", m.historyIdx+1, m.history.Len())))

	default:
		b.WriteString(hintStyle.Render(
			"Type an expression, or :help for commands"))
	}

	b.WriteString("\n")

	return b.String()
}
