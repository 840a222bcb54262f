package resolver

import "github.com/mgrafton/loxwalk/internal/pipeline"

// Processor resolves ctx.Statements into ctx.Depths, per the `run`
// sub-command path. It self-guards only on ctx.Statements being nil: it
// runs whenever there are statements at all, even if earlier scan or
// parse diagnostics already exist, and simply appends its own. Blocking
// evaluation after any error is left to the evaluator stage.
type Processor struct{}

func (rp *Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	if ctx.Statements == nil {
		return ctx
	}
	depths, errs := Resolve(ctx.Statements)
	ctx.Depths = depths
	ctx.Errors = append(ctx.Errors, errs...)
	return ctx
}

var _ pipeline.Processor = (*Processor)(nil)
