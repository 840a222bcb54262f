// Package diagnostics implements the shared error model used across the
// scan, parse, resolve, and runtime phases of the interpreter.
package diagnostics

import (
	"fmt"

	"github.com/mgrafton/loxwalk/internal/config"
	"github.com/mgrafton/loxwalk/internal/token"
)

// Phase identifies which pipeline stage raised an error.
type Phase string

const (
	PhaseScan    Phase = "scan"
	PhaseParse   Phase = "parse"
	PhaseResolve Phase = "resolve"
	PhaseRuntime Phase = "runtime"
)

// ErrorCode is a short, stable identifier for a specific diagnostic,
// independent of its human-readable message.
type ErrorCode string

const (
	// Scan errors
	ErrUnexpectedChar     ErrorCode = "S001"
	ErrUnterminatedString ErrorCode = "S002"

	// Parse errors
	ErrUnexpectedToken      ErrorCode = "P001"
	ErrInvalidAssignTarget  ErrorCode = "P002"
	ErrTooManyArgs          ErrorCode = "P003"
	ErrBreakOutsideLoop     ErrorCode = "P004"
	ErrContinueOutsideLoop  ErrorCode = "P005"

	// Resolve errors
	ErrSelfReferentialInit ErrorCode = "R101"
	ErrDuplicateLocal      ErrorCode = "R102"
	ErrReturnOutsideFunc   ErrorCode = "R103"
	ErrReturnValueInInit   ErrorCode = "R104"
	ErrThisOutsideClass    ErrorCode = "R105"

	// Runtime errors
	ErrTypeMismatch     ErrorCode = "E001"
	ErrUndefinedName    ErrorCode = "E002"
	ErrArityMismatch    ErrorCode = "E003"
	ErrDivideByZero     ErrorCode = "E004"
	ErrNotCallable      ErrorCode = "E005"
	ErrUndefinedProperty ErrorCode = "E006"
	ErrNotAnInstance    ErrorCode = "E007"
)

// Error is a single reported diagnostic: a phase, a code, the message
// text, and the token it was anchored to (for line/lexeme reporting).
type Error struct {
	Phase   Phase
	Code    ErrorCode
	Message string
	Token   token.Token
	AtEOF   bool // true when the error has no specific token (end of input)

	// Trace holds the call stack at the moment a runtime error was
	// raised, most recent call first. It is only populated for
	// PhaseRuntime errors and is only ever read when -trace is set.
	Trace []string
}

// New creates a diagnostic anchored to tok.
func New(phase Phase, code ErrorCode, tok token.Token, message string) *Error {
	return &Error{Phase: phase, Code: code, Message: message, Token: tok}
}

// Newf is New with fmt.Sprintf-style formatting.
func Newf(phase Phase, code ErrorCode, tok token.Token, format string, args ...interface{}) *Error {
	return New(phase, code, tok, fmt.Sprintf(format, args...))
}

// where renders the spec's `{where}` clause: " at end" at EOF,
// " at 'LEXEME'" at a token, or empty when neither applies.
func (e *Error) where() string {
	if e.AtEOF || e.Token.Type == token.EOF {
		return " at end"
	}
	if e.Token.Lexeme != "" {
		return fmt.Sprintf(" at '%s'", e.Token.Lexeme)
	}
	return ""
}

// Error renders `[line N] Error{where}: message`, matching spec.md §6
// exactly. Phase and Code are not part of the rendered text — they
// exist so callers can distinguish error categories programmatically
// (e.g. to pick an exit code) without parsing the message.
func (e *Error) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", e.Token.Line, e.where(), e.Message)
}

// ExitCode returns the process exit code spec.md §6/§7 assigns to this
// error's phase: 65 for scan/parse/resolve, 70 for runtime.
func (e *Error) ExitCode() int {
	if e.Phase == PhaseRuntime {
		return config.ExitRuntime
	}
	return config.ExitDataErr
}
