// Package config carries the ambient, build-time and run-mode state of the
// framework: version string, verbose/test-mode flags, and the output file
// extension a reference emitter writes.
//
// Grounded on the teacher's internal/config: a flat package of vars/consts
// set once at startup rather than threaded through every call.
package config

// Version is the current cadl-emitter-framework version. Set at build time
// via -ldflags, or left at this default for development builds.
var Version = "0.1.0"

// Verbose gates the progress logging cmd/cadlemit prints to stderr (the
// loaded-config line and the writer.Stats.Summary line).
var Verbose = false

// IsTestMode indicates the process is running under `go test`, set by test
// mains that need to suppress CLI-only side effects.
var IsTestMode = false

// GoFileExt is the output extension internal/fixture's reference Go emitter
// writes source files with.
const GoFileExt = ".go"
