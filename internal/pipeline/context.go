package pipeline

import (
	"github.com/mgrafton/loxwalk/internal/ast"
	"github.com/mgrafton/loxwalk/internal/diagnostics"
)

// Context holds all the data passed between pipeline stages: scan fills
// in TokenStream, parse fills in Statements (or Expression, for the
// single-expression entry points `parse`/`evaluate` drive), resolve
// fills in Depths, and interpret consumes all of it.
type Context struct {
	SourceCode string
	FilePath   string // path to the source file, if any; no stage or error message reads it

	TokenStream TokenStream

	// Statements holds a full program's parsed statements (the `run`
	// sub-command path). Expression holds a single parsed expression
	// (the `evaluate`/`parse` sub-command path). Exactly one is set.
	Statements []ast.Statement
	Expression ast.Expression

	// Depths is the resolver's output: expression identity -> scope
	// distance. Absence means "look in globals".
	Depths map[ast.Expression]int

	Errors []*diagnostics.Error
}

// NewContext creates and initializes a new Context for source.
func NewContext(source string) *Context {
	return &Context{
		SourceCode: source,
	}
}

// HasErrors reports whether any stage has appended a diagnostic.
func (c *Context) HasErrors() bool {
	return len(c.Errors) > 0
}
