package token

import "fmt"

type TokenType string

const (
	EOF TokenType = "EOF"

	// Binders
	FORALL TokenType = "FORALL"
	EXISTS TokenType = "EXISTS"
	LAMBDA TokenType = "LAMBDA"

	// Connectives
	NOT     TokenType = "NOT"
	AND     TokenType = "AND"
	OR      TokenType = "OR"
	IMPLIES TokenType = "IMPLIES"
	EQUIV   TokenType = "EQUIV"

	// Modal operators
	KNOWS      TokenType = "KNOWS"
	BELIEVES   TokenType = "BELIEVES"
	POSSIBLE   TokenType = "POSSIBLE"
	NECESSARY  TokenType = "NECESSARY"
	PROB       TokenType = "PROB"
	DEFEASIBLE TokenType = "DEFEASIBLE"

	// Literals and names
	TRUE    TokenType = "TRUE"
	FALSE   TokenType = "FALSE"
	NUMBER  TokenType = "NUMBER"
	STRING  TokenType = "STRING"
	VAR     TokenType = "VAR"
	TYPEVAR TokenType = "TYPEVAR"
	IDENT   TokenType = "IDENT"

	DEFINE TokenType = "DEFINE"

	// Punctuation
	ASSIGN   TokenType = ":="
	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"
	LBRACKET TokenType = "["
	RBRACKET TokenType = "]"
	COMMA    TokenType = ","
	DOT      TokenType = "."
	COLON    TokenType = ":"
)

// Position is a location in the source text. Line and Column are 1-based,
// Column counts runes. Offset is the byte offset.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position points into a source.
func (p Position) IsValid() bool { return p.Line > 0 }

type Token struct {
	Type    TokenType
	Lexeme  string
	Literal any
	Pos     Position
}

func (t Token) String() string {
	if t.Type == EOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.Lexeme)
}

// IsModal reports whether t starts a modal operator.
func (t TokenType) IsModal() bool {
	switch t {
	case KNOWS, BELIEVES, POSSIBLE, NECESSARY, PROB, DEFEASIBLE:
		return true
	}
	return false
}

// IsBinaryConnective reports whether t joins two operands at the logical level.
func (t TokenType) IsBinaryConnective() bool {
	switch t {
	case AND, OR, IMPLIES, EQUIV:
		return true
	}
	return false
}
