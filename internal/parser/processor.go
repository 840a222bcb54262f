package parser

import "github.com/mgrafton/loxwalk/internal/pipeline"

// Processor parses ctx.TokenStream into ctx.Statements, per the `run`
// sub-command path. It self-guards: if the scanner already reported
// errors it still attempts a parse (independent syntax errors should
// surface in the same run), but a nil TokenStream means scanning never
// ran at all, in which case there's nothing to parse.
type Processor struct{}

func (pp *Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	if ctx.TokenStream == nil {
		return ctx
	}
	p := New(ctx.TokenStream, ctx)
	ctx.Statements = p.ParseProgram()
	return ctx
}

var _ pipeline.Processor = (*Processor)(nil)
