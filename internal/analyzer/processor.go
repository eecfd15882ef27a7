package analyzer

import (
	"github.com/funvibe/godel/internal/diagnostics"
	"github.com/funvibe/godel/internal/pipeline"
)

// AnalyzerProcessor infers the type of the parsed formula, or checks it when
// the context names an expected type.
type AnalyzerProcessor struct{}

func (ap *AnalyzerProcessor) Name() string { return "analyze" }

func (ap *AnalyzerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil || ctx.TypeSystem == nil {
		return ctx
	}

	t, errs := Infer(ctx.AstRoot, ctx.Env, ctx.TypeSystem)
	ctx.InferredType = t
	ctx.Errors = append(ctx.Errors, errs...)

	if len(errs) == 0 && ctx.Expected != nil && !ctx.TypeSystem.IsSubtype(t, ctx.Expected) {
		ctx.Errors = append(ctx.Errors, diagnostics.NewNodeError(diagnostics.ErrT003, ctx.AstRoot,
			"expected %s, got %s", ctx.Expected, t))
	}
	return ctx
}
