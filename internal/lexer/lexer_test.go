package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/godel/internal/errors"
	"github.com/funvibe/godel/internal/token"
)

func types(tokens []token.Token) []token.TokenType {
	out := make([]token.TokenType, len(tokens))
	for i, t := range tokens {
		out[i] = t.Type
	}
	return out
}

func TestSpellings(t *testing.T) {
	tests := []struct {
		input string
		want  token.TokenType
	}{
		{"forall", token.FORALL}, {"∀", token.FORALL},
		{"exists", token.EXISTS}, {"∃", token.EXISTS},
		{"lambda", token.LAMBDA}, {"λ", token.LAMBDA}, {`\`, token.LAMBDA},
		{"not", token.NOT}, {"¬", token.NOT}, {"~", token.NOT},
		{"and", token.AND}, {"∧", token.AND}, {"&", token.AND},
		{"or", token.OR}, {"∨", token.OR}, {"|", token.OR},
		{"implies", token.IMPLIES}, {"=>", token.IMPLIES}, {"⇒", token.IMPLIES}, {"->", token.IMPLIES}, {"→", token.IMPLIES},
		{"equiv", token.EQUIV}, {"<=>", token.EQUIV}, {"⇔", token.EQUIV}, {"<->", token.EQUIV}, {"↔", token.EQUIV},
		{"knows", token.KNOWS}, {"believes", token.BELIEVES},
		{"possible", token.POSSIBLE}, {"◇", token.POSSIBLE}, {"<>", token.POSSIBLE},
		{"necessary", token.NECESSARY}, {"□", token.NECESSARY}, {"[]", token.NECESSARY},
		{"prob", token.PROB}, {"probability", token.PROB},
		{"defeasibly", token.DEFEASIBLE}, {"defeasible", token.DEFEASIBLE},
		{"true", token.TRUE}, {"⊤", token.TRUE}, {"false", token.FALSE}, {"⊥", token.FALSE},
		{"define", token.DEFINE}, {":=", token.ASSIGN},
		{"Forall", token.IDENT}, {"AND", token.IDENT},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			require.NoError(t, err)
			require.Len(t, tokens, 2)
			assert.Equal(t, tt.want, tokens[0].Type)
			assert.Equal(t, token.EOF, tokens[1].Type)
		})
	}
}

func TestFormula(t *testing.T) {
	tokens, err := Tokenize("forall ?x:Entity. Human(?x) implies Mortal(?x)")
	require.NoError(t, err)

	assert.Equal(t, []token.TokenType{
		token.FORALL, token.VAR, token.COLON, token.IDENT, token.DOT,
		token.IDENT, token.LPAREN, token.VAR, token.RPAREN,
		token.IMPLIES,
		token.IDENT, token.LPAREN, token.VAR, token.RPAREN,
		token.EOF,
	}, types(tokens))
	assert.Equal(t, "x", tokens[1].Literal)
	assert.Equal(t, "Entity", tokens[3].Literal)
}

func TestLiterals(t *testing.T) {
	tokens, err := Tokenize(`42 -7 3.14 "a\"b\n" 'T`)
	require.NoError(t, err)
	require.Len(t, tokens, 6)

	assert.Equal(t, int64(42), tokens[0].Literal)
	assert.Equal(t, int64(-7), tokens[1].Literal)
	assert.Equal(t, 3.14, tokens[2].Literal)
	assert.Equal(t, token.STRING, tokens[3].Type)
	assert.Equal(t, "a\"b\n", tokens[3].Literal)
	assert.Equal(t, token.TYPEVAR, tokens[4].Type)
	assert.Equal(t, "T", tokens[4].Literal)
}

func TestUnicodeIdentifiersAndPositions(t *testing.T) {
	tokens, err := Tokenize("∀ ?ä.\n  Größe(?ä) // trailing comment\n")
	require.NoError(t, err)

	assert.Equal(t, []token.TokenType{
		token.FORALL, token.VAR, token.DOT, token.IDENT, token.LPAREN, token.VAR, token.RPAREN, token.EOF,
	}, types(tokens))
	assert.Equal(t, token.Position{Line: 1, Column: 3, Offset: 4}, tokens[1].Pos)
	assert.Equal(t, 2, tokens[3].Pos.Line)
	assert.Equal(t, 3, tokens[3].Pos.Column)
	assert.Equal(t, "Größe", tokens[3].Literal)
}

func TestDotAfterNumberIsSeparate(t *testing.T) {
	tokens, err := Tokenize("P(1).")
	require.NoError(t, err)
	assert.Equal(t, []token.TokenType{
		token.IDENT, token.LPAREN, token.NUMBER, token.RPAREN, token.DOT, token.EOF,
	}, types(tokens))
}

func TestLexicalErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
		col   int
	}{
		{"unknown character", "Human(Socrates) # x", 1, 17},
		{"second line", "P(a)\n  and $", 2, 7},
		{"unterminated string", `P("abc`, 1, 3},
		{"bad escape", `P("\q")`, 1, 3},
		{"integer overflow", "P(99999999999999999999)", 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			require.Error(t, err)
			assert.Nil(t, tokens)
			assert.True(t, errors.Is(err, errors.ErrLexical))

			var lexErr *Error
			require.True(t, errors.As(err, &lexErr))
			assert.Equal(t, tt.line, lexErr.Pos.Line)
			assert.Equal(t, tt.col, lexErr.Pos.Column)
		})
	}
}

func TestEmptyInput(t *testing.T) {
	tokens, err := Tokenize("   // nothing here")
	require.NoError(t, err)
	assert.Equal(t, []token.TokenType{token.EOF}, types(tokens))
}
