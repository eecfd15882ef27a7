package pipeline

import (
	"time"

	"github.com/funvibe/godel/internal/logger"
)

// Processor is one stage of the front end: lexing, parsing or analysis.
type Processor interface {
	Name() string
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline runs its processors in order over a shared context.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes every stage. Stages keep running after errors so that the
// context collects diagnostics from all of them; each stage skips itself
// when its input is missing.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	log := logger.Named("pipeline")
	for _, processor := range p.processors {
		start := time.Now()
		ctx = processor.Process(ctx)
		log.Debugw("stage finished",
			logger.FieldOperation, processor.Name(),
			logger.FieldSession, ctx.Session,
			logger.FieldErrors, len(ctx.Errors),
			logger.FieldDurationUS, time.Since(start).Microseconds(),
		)
	}
	return ctx
}
