// Package profile provides optional runtime profiling.
//
// Profiling integrates [github.com/pkg/profile] and must be enabled at
// build time with the "pprof" build tag. Without the tag every operation
// is a no-op with zero overhead.
//
//	ctrl := profile.Make(
//		profile.WithMode("cpu"),
//		profile.WithPath("/tmp/profiles"),
//	).Start()
//	defer ctrl.Stop()
//
// Use [Modes] for the list of modes supported by the current build.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
