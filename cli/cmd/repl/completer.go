package repl

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/attrex/lang"
)

// ctrlCommands are the available colon-prefixed commands.
var ctrlCommands = []string{
	"help", "macro", "mset", "munset", "set", "unset", "vars", "quit",
}

// isWordBoundary reports whether r delimits words for completion purposes.
// The variable sigil characters are boundaries so that "$na" completes the
// name "na" rather than "$na". Hyphens and underscores are not boundaries
// because identifiers may contain them.
func isWordBoundary(r rune) bool {
	switch r {
	case '$', '@', '?', ':', ' ', '\t',
		'(', ')', '+', '!', '=', '\'', '"':
		return true
	}

	return false
}

// wordBounds returns the word at the cursor position and its byte
// boundaries within input. An empty word is returned when the cursor sits
// on a boundary.
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

// candidates returns the completion candidates for the word beginning at
// wordStart: command names when the input is a colon command, variable
// names after a variable sigil, and nothing otherwise (barewords are
// free-form text).
func candidates(env *lang.Context, input string, wordStart int) []string {
	if strings.HasPrefix(input, ":") {
		return ctrlCommands
	}

	if !afterSigil(input, wordStart) {
		return nil
	}

	names := make(map[string]bool, len(env.Vars)+len(env.MacroVars))

	if macroRef(input, wordStart) {
		for name := range env.MacroVars {
			names[name] = true
		}
	} else {
		for name := range env.Vars {
			names[name] = true
		}
	}

	list := make([]string, 0, len(names))
	for name := range names {
		list = append(list, name)
	}

	sort.Strings(list)

	return list
}

// afterSigil reports whether the word starting at wordStart is a variable
// reference, i.e. preceded by "$", "$@", "$?", or "$@?".
func afterSigil(input string, wordStart int) bool {
	i := wordStart

	for _, sigil := range []byte{'?', '@'} {
		if i > 0 && input[i-1] == sigil {
			i--
		}
	}

	return i > 0 && input[i-1] == '$'
}

// macroRef reports whether the variable reference at wordStart uses the
// macro sigil.
func macroRef(input string, wordStart int) bool {
	i := wordStart
	if i > 0 && input[i-1] == '?' {
		i--
	}

	return i > 0 && input[i-1] == '@'
}

// sortedKeys returns the keys of m in sorted order.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// match runs fuzzy completion of word against the candidate list.
// An empty word matches every candidate in order.
func match(word string, list []string) fuzzy.Matches {
	if word == "" {
		matches := make(fuzzy.Matches, len(list))
		for i, s := range list {
			matches[i] = fuzzy.Match{Str: s, Index: i}
		}

		return matches
	}

	return fuzzy.Find(word, list)
}

var (
	candidateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle  = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// renderCandidateBar renders the completion candidates on one line with
// the selected entry highlighted, truncated to the terminal width.
func renderCandidateBar(matches fuzzy.Matches, selected, width int) string {
	var b strings.Builder

	for i, m := range matches {
		if b.Len() > 0 {
			b.WriteString("  ")
		}

		if i == selected {
			b.WriteString(selectedStyle.Render(m.Str))
		} else {
			b.WriteString(candidateStyle.Render(m.Str))
		}
	}

	bar := b.String()
	if width > 0 && lipgloss.Width(bar) > width {
		bar = lipgloss.NewStyle().MaxWidth(width).Render(bar)
	}

	return bar
}
