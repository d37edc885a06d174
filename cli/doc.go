// Package cli contains the command line interface for attrex.
//
// # Usage
//
// Evaluate an attribute expression against a set of variables:
//
//	attrex eval 'card $?kind' --var kind=wide
//
// Inspect the parse tree of an expression:
//
//	attrex ast '$a and ($b or c)' --output yaml
//
// Or explore interactively:
//
//	attrex repl --var width=4
//
// # Configuration
//
// Defaults for any flag can be stored in a YAML configuration file at
// ~/.config/attrex/config.yaml (platform equivalents apply):
//
//	log-level: debug
//	log-format: text
//
// Command-line flags override configuration file values.
//
// # Logging Options
//
//   - --log-level: minimum log level (trace, debug, info, warn, error)
//   - --log-format: log output format (text, json)
//   - --log-time-layout: timestamp layout
//   - --log-caller: include caller information
//   - --log-pretty: colorized text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: profile output directory
package cli
