package pipeline

// Pipeline represents a sequence of processing stages run in order.
//
// Stages are expected to self-guard (the way the teacher's
// SemanticAnalyzerProcessor bails out when ctx.AstRoot is nil): resolve
// runs over whatever statements parse produced (even alongside earlier
// parse errors, so a file can report scan/parse/resolve diagnostics
// together in one pass), but the interpret stage always skips once any
// stage has appended an error, matching spec.md §7 ("a resolve error
// means no evaluation occurs").
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes every stage in order.
func (p *Pipeline) Run(initialCtx *Context) *Context {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	return ctx
}
