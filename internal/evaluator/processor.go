package evaluator

import (
	"github.com/mgrafton/loxwalk/internal/pipeline"
)

// Processor drives the `run` sub-command's final stage: interpreting
// ctx.Statements using the depth map resolve produced. It self-guards
// on ctx.Statements being nil (parse never ran) and on ctx already
// carrying diagnostics from any earlier stage, resolve included, so a
// program with a scan, parse, or resolve error is never evaluated.
type Processor struct {
	Trace bool
}

func (ep *Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	if ctx.Statements == nil || ctx.HasErrors() {
		return ctx
	}
	eval := New(ctx.Depths)
	eval.Trace = ep.Trace
	if err := eval.Interpret(ctx.Statements); err != nil {
		ctx.Errors = append(ctx.Errors, err)
	}
	return ctx
}

var _ pipeline.Processor = (*Processor)(nil)

// ExprProcessor drives the `evaluate` sub-command's final stage:
// evaluating ctx.Expression and printing its value, mirroring how the
// `run` path's Processor drives Interpret over ctx.Statements.
type ExprProcessor struct {
	Trace bool
}

func (ep *ExprProcessor) Process(ctx *pipeline.Context) *pipeline.Context {
	if ctx.Expression == nil || ctx.HasErrors() {
		return ctx
	}
	eval := New(ctx.Depths)
	eval.Trace = ep.Trace
	v, err := eval.EvalExpression(ctx.Expression)
	if err != nil {
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	eval.Out.Write([]byte(stringify(v) + "\n"))
	return ctx
}

var _ pipeline.Processor = (*ExprProcessor)(nil)
