// Package pipeline wires the scan -> parse -> resolve -> interpret stages
// together behind one shared context, the way the teacher's lexer/parser/
// analyzer stages compose through a pipeline.PipelineContext.
package pipeline

import (
	"github.com/mgrafton/loxwalk/internal/token"
)

// Processor is any pipeline stage that consumes and augments a Context.
type Processor interface {
	Process(ctx *Context) *Context
}

// TokenStream defines the contract for a buffered token source, letting
// the parser peek ahead without the scanner itself buffering.
type TokenStream interface {
	// Next consumes and returns the next token from the stream.
	Next() token.Token

	// Peek returns the next n tokens without consuming them. If the
	// stream has fewer than n tokens remaining, it returns all of them.
	Peek(n int) []token.Token
}
