package repl

import (
	"bufio"
	"os"
	"strings"
	"sync"
)

const baseHistory = "history"

// History manages input history with file persistence.
type History struct {
	path    string
	entries []string
	mu      sync.RWMutex
}

// NewHistory creates a new History backed by the file at path.
// An empty path disables persistence.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Load reads history entries from the history file. A missing file is not
// an error.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.path == "" {
		return nil
	}

	file, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}
	defer file.Close()

	h.entries = nil

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		h.entries = append(h.entries, line)
	}

	return scanner.Err()
}

// Append adds a line to the history, skipping blanks and consecutive
// duplicates, and persists it.
func (h *History) Append(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return
	}

	h.entries = append(h.entries, line)

	if h.path == "" {
		return
	}

	file, err := os.OpenFile(
		h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return
	}
	defer file.Close()

	_, _ = file.WriteString(line + "\n")
}

// Len returns the number of history entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// At returns the entry at index i, or "" when out of range.
func (h *History) At(i int) string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return ""
	}

	return h.entries[i]
}
