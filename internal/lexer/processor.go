package lexer

import (
	"github.com/funvibe/godel/internal/diagnostics"
	"github.com/funvibe/godel/internal/errors"
	"github.com/funvibe/godel/internal/logger"
	"github.com/funvibe/godel/internal/pipeline"
	"github.com/funvibe/godel/internal/token"
)

type LexerProcessor struct{}

func (lp *LexerProcessor) Name() string { return "lex" }

// Process tokenizes the source. A lexical failure becomes an L001 diagnostic
// and leaves the token stream nil, so later stages skip.
func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	tokens, err := Tokenize(ctx.SourceCode)
	if err != nil {
		var lexErr *Error
		tok := token.Token{}
		if errors.As(err, &lexErr) {
			tok.Pos = lexErr.Pos
			tok.Lexeme = lexErr.Input
		}
		ctx.Errors = append(ctx.Errors, diagnostics.NewError(diagnostics.ErrL001, tok, "%s", err.Error()))
		ctx.TokenStream = nil
		return ctx
	}

	ctx.TokenStream = tokens
	logger.Named("lexer").Debugw("tokenized",
		logger.FieldPath, ctx.FilePath,
		logger.FieldTokens, len(tokens))
	return ctx
}
