package lexer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/funvibe/godel/internal/errors"
	"github.com/funvibe/godel/internal/token"
)

// pattern is one entry of the ordered token table. A pattern with an empty
// type is consumed without producing a token.
type pattern struct {
	name string
	typ  token.TokenType
	re   *regexp.Regexp
}

func p(name string, typ token.TokenType, expr string) pattern {
	return pattern{name: name, typ: typ, re: regexp.MustCompile(`^(?:` + expr + `)`)}
}

// patterns are tried in order at each offset; the first match wins, so
// longer spellings precede their prefixes.
var patterns = []pattern{
	p("whitespace", "", `\s+`),
	p("comment", "", `//[^\n]*`),

	p("equiv", token.EQUIV, `<=>|<->|⇔|↔`),
	p("possible", token.POSSIBLE, `<>|◇`),
	p("implies", token.IMPLIES, `=>|->|⇒|→`),
	p("assign", token.ASSIGN, `:=`),
	p("necessary", token.NECESSARY, `\[\]|□`),

	p("forall", token.FORALL, `∀`),
	p("exists", token.EXISTS, `∃`),
	p("lambda", token.LAMBDA, `λ|\\`),
	p("not", token.NOT, `¬|~`),
	p("and", token.AND, `∧|&`),
	p("or", token.OR, `∨|\|`),
	p("true", token.TRUE, `⊤`),
	p("false", token.FALSE, `⊥`),

	p("lparen", token.LPAREN, `\(`),
	p("rparen", token.RPAREN, `\)`),
	p("lbracket", token.LBRACKET, `\[`),
	p("rbracket", token.RBRACKET, `\]`),
	p("comma", token.COMMA, `,`),
	p("dot", token.DOT, `\.`),
	p("colon", token.COLON, `:`),

	p("variable", token.VAR, `\?[\p{L}_][\p{L}\p{N}_]*`),
	p("typevar", token.TYPEVAR, `'[\p{L}_][\p{L}\p{N}_]*`),
	p("number", token.NUMBER, `-?\d+(?:\.\d+)?`),
	p("string", token.STRING, `"(?:[^"\\\n]|\\.)*"`),
	p("identifier", token.IDENT, `[\p{L}_][\p{L}\p{N}_]*`),
}

// keywords are matched case-sensitively against whole identifiers.
var keywords = map[string]token.TokenType{
	"forall":      token.FORALL,
	"exists":      token.EXISTS,
	"lambda":      token.LAMBDA,
	"not":         token.NOT,
	"and":         token.AND,
	"or":          token.OR,
	"implies":     token.IMPLIES,
	"equiv":       token.EQUIV,
	"knows":       token.KNOWS,
	"believes":    token.BELIEVES,
	"possible":    token.POSSIBLE,
	"necessary":   token.NECESSARY,
	"prob":        token.PROB,
	"probability": token.PROB,
	"defeasibly":  token.DEFEASIBLE,
	"defeasible":  token.DEFEASIBLE,
	"true":        token.TRUE,
	"false":       token.FALSE,
	"define":      token.DEFINE,
}

// LookupIdent returns the keyword type for ident, or IDENT.
func LookupIdent(ident string) token.TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return token.IDENT
}

// Error is a lexical failure. It always wraps errors.ErrLexical.
type Error struct {
	Pos   token.Position
	Input string
	cause error
}

func (e *Error) Error() string { return e.cause.Error() }
func (e *Error) Unwrap() error { return e.cause }

type Lexer struct {
	input  string
	offset int
	line   int
	column int
}

func New(input string) *Lexer {
	return &Lexer{input: input, line: 1, column: 1}
}

// NextToken returns the next token, EOF at the end of input, or an *Error
// when no pattern matches.
func (l *Lexer) NextToken() (token.Token, error) {
	for l.offset < len(l.input) {
		rest := l.input[l.offset:]
		pat, lexeme := match(rest)
		if lexeme == "" {
			return token.Token{}, l.fail(rest)
		}

		pos := l.pos()
		l.advance(lexeme)
		if pat.typ == "" {
			continue
		}
		return l.makeToken(pat, lexeme, pos)
	}
	return token.Token{Type: token.EOF, Pos: l.pos()}, nil
}

func match(rest string) (pattern, string) {
	for _, pat := range patterns {
		if m := pat.re.FindString(rest); m != "" {
			return pat, m
		}
	}
	return pattern{}, ""
}

func (l *Lexer) makeToken(pat pattern, lexeme string, pos token.Position) (token.Token, error) {
	tok := token.Token{Type: pat.typ, Lexeme: lexeme, Pos: pos}

	switch pat.typ {
	case token.IDENT:
		tok.Type = LookupIdent(lexeme)
		tok.Literal = lexeme
	case token.VAR, token.TYPEVAR:
		tok.Literal = lexeme[1:]
	case token.NUMBER:
		if strings.Contains(lexeme, ".") {
			f, err := strconv.ParseFloat(lexeme, 64)
			if err != nil {
				return token.Token{}, l.failAt(pos, lexeme, "invalid real literal")
			}
			tok.Literal = f
		} else {
			i, err := strconv.ParseInt(lexeme, 10, 64)
			if err != nil {
				return token.Token{}, l.failAt(pos, lexeme, "integer literal out of range")
			}
			tok.Literal = i
		}
	case token.STRING:
		s, err := strconv.Unquote(lexeme)
		if err != nil {
			return token.Token{}, l.failAt(pos, lexeme, "invalid escape in string literal")
		}
		tok.Literal = s
	case token.TRUE:
		tok.Literal = true
	case token.FALSE:
		tok.Literal = false
	}
	return tok, nil
}

func (l *Lexer) pos() token.Position {
	return token.Position{Line: l.line, Column: l.column, Offset: l.offset}
}

func (l *Lexer) advance(lexeme string) {
	for _, r := range lexeme {
		if r == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
	}
	l.offset += len(lexeme)
}

func (l *Lexer) fail(rest string) error {
	r, _ := utf8.DecodeRuneInString(rest)
	if r == '"' {
		return l.failAt(l.pos(), firstLine(rest), "unterminated string literal")
	}
	return l.failAt(l.pos(), string(r), "unrecognized character")
}

func (l *Lexer) failAt(pos token.Position, text, reason string) error {
	return &Error{
		Pos:   pos,
		Input: text,
		cause: errors.Wrapf(errors.ErrLexical, "%s %q at %s", reason, text, pos),
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// Tokenize converts input into a token stream that always ends with EOF.
// Lexing stops at the first unrecognized input.
func Tokenize(input string) ([]token.Token, error) {
	l := New(input)
	var tokens []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

// Describe renders a stream for debugging, one token per line.
func Describe(tokens []token.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		fmt.Fprintf(&b, "%-6s %-10s %s\n", t.Pos, t.Type, t.Lexeme)
	}
	return b.String()
}
