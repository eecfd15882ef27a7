package parser

import (
	"github.com/google/uuid"

	"github.com/funvibe/godel/internal/ast"
	"github.com/funvibe/godel/internal/config"
	"github.com/funvibe/godel/internal/diagnostics"
	"github.com/funvibe/godel/internal/lexer"
	"github.com/funvibe/godel/internal/logger"
	"github.com/funvibe/godel/internal/token"
	"github.com/funvibe/godel/internal/typesystem"
)

// TypeResolver is the read side of the type system the parser consults for
// annotations and symbol signatures.
type TypeResolver interface {
	LookupType(name string) (typesystem.Type, bool)
	Signature(symbol string) (typesystem.Type, bool)
	Instantiate(name string, args ...typesystem.Type) (typesystem.TApp, error)
}

// Parser is a recursive-descent parser for formulas.
//
// All state is reset at the start of every Parse call. A Parser must not be
// used from more than one goroutine at a time.
type Parser struct {
	types TypeResolver

	tokens  []token.Token
	pos     int
	errors  diagnostics.List
	nextID  int
	depth   int
	scope   *scope
	free    map[string]*ast.Variable
	session string

	inRecursionRecovery bool
}

// scope holds the variables bound by one quantifier or lambda.
type scope struct {
	vars  map[string]*ast.Variable
	outer *scope
}

func (s *scope) lookup(name string) (*ast.Variable, bool) {
	for sc := s; sc != nil; sc = sc.outer {
		if v, ok := sc.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

func New(types TypeResolver) *Parser {
	return &Parser{types: types}
}

// Session is the id of the most recent parse.
func (p *Parser) Session() string { return p.session }

func (p *Parser) reset(tokens []token.Token) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != token.EOF {
		tokens = append(tokens[:len(tokens):len(tokens)], token.Token{Type: token.EOF})
	}
	p.tokens = tokens
	p.pos = 0
	p.errors = nil
	p.nextID = 0
	p.depth = 0
	p.scope = nil
	p.free = make(map[string]*ast.Variable)
	p.session = uuid.NewString()
	p.inRecursionRecovery = false
}

// Parse tokenizes and parses text. The error result is set only for a lexical
// failure; every other problem is reported in the diagnostics list. The node
// is nil when a parse error occurred.
func (p *Parser) Parse(text string) (ast.Node, diagnostics.List, error) {
	tokens, err := lexer.Tokenize(text)
	if err != nil {
		return nil, nil, err
	}
	node, errs := p.ParseTokens(tokens)
	return node, errs, nil
}

// ParseTokens parses an already tokenized formula or definition.
func (p *Parser) ParseTokens(tokens []token.Token) (ast.Node, diagnostics.List) {
	p.reset(tokens)

	if p.curTokenIs(token.EOF) {
		p.addError(diagnostics.ErrP003, p.curToken(), "empty expression")
		return nil, p.errors
	}

	var node ast.Node
	if p.curTokenIs(token.DEFINE) {
		node = p.parseDefinition()
	} else {
		node = p.parseExpression()
	}

	if node != nil && !p.curTokenIs(token.EOF) {
		p.addError(diagnostics.ErrP004, p.curToken(), "unexpected %s after complete expression", p.curToken())
	}
	if p.errors.HasKind(diagnostics.KindParse) {
		node = nil
	}
	if node != nil {
		node = node.WithMetadata(config.MetaSession, p.session)
	}

	logger.Named("parser").Debugw("parsed",
		logger.FieldSession, p.session,
		logger.FieldTokens, len(p.tokens),
		logger.FieldErrors, len(p.errors))
	return node, p.errors
}

// ParseType parses a standalone type expression such as "(Entity, Agent) -> Boolean".
func (p *Parser) ParseType(text string) (typesystem.Type, diagnostics.List, error) {
	tokens, err := lexer.Tokenize(text)
	if err != nil {
		return nil, nil, err
	}
	p.reset(tokens)
	if p.curTokenIs(token.EOF) {
		p.addError(diagnostics.ErrP003, p.curToken(), "empty type")
		return nil, p.errors, nil
	}
	t := p.parseType()
	if t != nil && !p.curTokenIs(token.EOF) {
		p.addError(diagnostics.ErrP004, p.curToken(), "unexpected %s after type", p.curToken())
	}
	if len(p.errors) > 0 {
		t = nil
	}
	return t, p.errors, nil
}

func (p *Parser) curToken() token.Token { return p.tokens[p.pos] }

func (p *Parser) curTokenIs(t token.TokenType) bool { return p.tokens[p.pos].Type == t }

func (p *Parser) nextToken() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

// expect consumes a token of type t or records P002.
func (p *Parser) expect(t token.TokenType, what string) bool {
	if !p.curTokenIs(t) {
		p.addError(diagnostics.ErrP002, p.curToken(), "expected %s, got %s", what, p.curToken())
		return false
	}
	p.nextToken()
	return true
}

func (p *Parser) addError(code diagnostics.ErrorCode, tok token.Token, format string, args ...any) {
	p.errors = append(p.errors, diagnostics.NewError(code, tok, format, args...))
}

func (p *Parser) newID() int {
	p.nextID++
	return p.nextID
}

// enter guards recursion depth. It returns false once the limit is hit.
func (p *Parser) enter() bool {
	p.depth++
	if p.depth > config.MaxRecursionDepth {
		if !p.inRecursionRecovery {
			p.addError(diagnostics.ErrP006, p.curToken(), "expression too complex: nesting depth limit exceeded")
			p.inRecursionRecovery = true
		}
		return false
	}
	return true
}

func (p *Parser) leave() { p.depth-- }
