package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolveYAML is a [kong.ConfigurationLoader] that reads flag defaults from
// a YAML configuration file.
//
// The file is a flat mapping of flag names to values. Flag names may be
// written with hyphens (log-level) or underscores (log_level):
//
//	log-level: debug
//	log-format: text
//	log-pretty: true
//
// Command-line flags override configuration file values. An unreadable or
// malformed file resolves nothing rather than failing the parse.
func resolveYAML(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return config{}, nil
	}

	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return config{}, nil
	}

	return config(values), nil
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	value, ok := r[flag.Name]
	if !ok {
		value, ok = r[strings.ReplaceAll(flag.Name, "-", "_")]
	}

	if !ok {
		return nil, nil
	}

	// Kong expects numeric values as strings for parsing.
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return value, nil
	}
}
