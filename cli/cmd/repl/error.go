package repl

import "errors"

// Sentinel errors.
var ErrNoTTY = errors.New("repl requires an interactive terminal")
