// Package log provides a concurrency-safe logging interface based on
// [log/slog].
//
// Loggers are configured at creation time with functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithCaller(true))
//	logger.Info("compiled directive", slog.String("attr", "class"))
//
// The package also maintains a default logger used by the package-level
// functions. [Config] reconfigures it in place:
//
//	log.Config(log.WithLevel(log.LevelTrace))
//	log.Trace("visiting node", slog.String("node", n.String()))
//
// Five levels are supported: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn], and [LevelError]. Trace sits below slog's Debug and is
// rendered with its own name rather than "DEBUG-4".
//
// Two output formats are supported, [FormatText] (default) and
// [FormatJSON]. Text output on a terminal can additionally be colorized
// with [WithPretty].
package log
