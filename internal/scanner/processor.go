package scanner

import (
	"github.com/mgrafton/loxwalk/internal/pipeline"
	"github.com/mgrafton/loxwalk/internal/token"
)

// tokenStream is a simple index cursor over an already-scanned token
// slice. The teacher's lexer streams tokens lazily from a live Lexer;
// this module's scanner runs to completion up front instead (so the
// `tokenize` sub-command can report every S001/S002 diagnostic in one
// pass), but keeps the same Next/Peek contract the parser depends on.
type tokenStream struct {
	tokens []token.Token
	pos    int
}

// NewTokenStream wraps an already-scanned token slice as a pipeline.TokenStream.
func NewTokenStream(tokens []token.Token) pipeline.TokenStream {
	return &tokenStream{tokens: tokens}
}

func (ts *tokenStream) Next() token.Token {
	if ts.pos >= len(ts.tokens) {
		return token.Token{Type: token.EOF}
	}
	tok := ts.tokens[ts.pos]
	if ts.pos < len(ts.tokens)-1 {
		ts.pos++
	}
	return tok
}

func (ts *tokenStream) Peek(n int) []token.Token {
	end := ts.pos + n
	if end > len(ts.tokens) {
		end = len(ts.tokens)
	}
	if ts.pos >= len(ts.tokens) {
		return nil
	}
	return ts.tokens[ts.pos:end]
}

// Processor scans ctx.SourceCode into ctx.TokenStream, appending any
// lexical diagnostics to ctx.Errors. It never skips: even a file with
// scan errors gets a full token stream so the parser can still surface
// independent parse errors in the same run.
type Processor struct{}

func (p *Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	sc := New(ctx.SourceCode)
	tokens, errs := sc.ScanTokens()
	ctx.TokenStream = NewTokenStream(tokens)
	ctx.Errors = append(ctx.Errors, errs...)
	return ctx
}

var _ pipeline.TokenStream = (*tokenStream)(nil)
var _ pipeline.Processor = (*Processor)(nil)
