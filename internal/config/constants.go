// Package config is the single source of truth for the handful of
// constants the CLI and the core pipeline must agree on without a
// circular import between them: the source file extension and the
// process exit codes spec.md §6/§7 pins per diagnostic phase.
package config

// SourceFileExt is the recognized extension for this language's source
// files. The CLI warns when the given path lacks it but reads the file
// either way.
const SourceFileExt = ".lox"

// Exit codes, per spec.md §6/§7: scan, parse, and resolve errors all
// share 65 (a malformed program never reaches evaluation); runtime
// errors get 70; a clean run exits 0.
const (
	ExitOK      = 0
	ExitDataErr = 65
	ExitRuntime = 70
)
