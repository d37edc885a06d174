package cli

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/attrex/log"
)

// logFormat configures the logger format as a side effect of parsing via
// encoding.TextUnmarshaler. Kong calls UnmarshalText while parsing the
// --log-format flag, early enough to affect error messages emitted during
// the remainder of the parse.
type logFormat string

func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel configures the logger level as a side effect of parsing via
// encoding.TextUnmarshaler.
type logLevel string

func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"info"    enum:"trace,debug,info,warn,error" help:"Set log level."`
	Format     logFormat `default:"text"    enum:"text,json"                   help:"Set log format."`
	TimeLayout string    `default:"RFC3339"                                    help:"Set timestamp layout."`
	Caller     bool      `default:"false"                                      help:"Include caller information."       negatable:""`
	Pretty     bool      `default:"false"                                      help:"Enable colorized pretty printing." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{}
}

func (*logConfig) group() kong.Group {
	var group kong.Group

	group.Key = "log"
	group.Title = "Logging options"

	return group
}

// start finalizes the logger configuration with all parsed values,
// including those that don't pass through TextUnmarshaler.
func (f *logConfig) start(ctx context.Context) {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(timeLayout(f.TimeLayout)),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)
}

// timeLayout resolves named layouts from the time package, passing custom
// layout strings through verbatim. "none" disables timestamps.
func timeLayout(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rfc3339":
		return "2006-01-02T15:04:05Z07:00"
	case "rfc3339nano":
		return "2006-01-02T15:04:05.999999999Z07:00"
	case "kitchen":
		return "3:04PM"
	case "stamp":
		return "Jan _2 15:04:05"
	case "stampmilli":
		return "Jan _2 15:04:05.000"
	case "none":
		return ""
	default:
		return name
	}
}

// scan performs an early pass over command-line arguments to apply logger
// configuration before Kong begins parsing.
//
// logFormat and logLevel configure the logger through TextUnmarshaler as
// flags are parsed, but boolean flags like --log-pretty don't go through
// that interface, so this pre-scan catches them all.
func (f *logConfig) scan(args []string) {
	for i := 0; i < len(args); i++ {
		name, value, assigned := strings.Cut(args[i], "=")

		// Non-boolean flags consume the next argument when not assigned
		// with "=".
		next := func() string {
			if assigned {
				return value
			}

			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++

				return args[i]
			}

			return ""
		}

		boolValue := func(fallback bool) bool {
			if !assigned {
				return fallback
			}

			v, err := strconv.ParseBool(value)
			if err != nil {
				return fallback
			}

			return v
		}

		switch name {
		case "--log-level":
			_ = f.Level.UnmarshalText([]byte(next()))

		case "--log-format":
			_ = f.Format.UnmarshalText([]byte(next()))

		case "--log-pretty":
			f.Pretty = boolValue(true)
			log.Config(log.WithPretty(f.Pretty))

		case "--no-log-pretty":
			f.Pretty = !boolValue(true)
			log.Config(log.WithPretty(f.Pretty))

		case "--log-caller":
			f.Caller = boolValue(true)
			log.Config(log.WithCaller(f.Caller))

		case "--no-log-caller":
			f.Caller = !boolValue(true)
			log.Config(log.WithCaller(f.Caller))
		}
	}
}
