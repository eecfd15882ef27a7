package parser

import (
	"github.com/funvibe/godel/internal/config"
	"github.com/funvibe/godel/internal/pipeline"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Name() string { return "parse" }

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.TokenStream == nil {
		// lexing failed and already reported
		return ctx
	}

	var resolver TypeResolver
	if ctx.TypeSystem != nil {
		resolver = ctx.TypeSystem
	}
	p := New(resolver)
	node, errs := p.ParseTokens(ctx.TokenStream)
	ctx.Session = p.Session()
	ctx.Errors = append(ctx.Errors, errs...)

	if node != nil && ctx.FilePath != "" {
		node = node.WithMetadata(config.MetaSource, ctx.FilePath)
	}
	ctx.AstRoot = node
	return ctx
}
