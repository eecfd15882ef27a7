package parser

import (
	"github.com/funvibe/godel/internal/ast"
	"github.com/funvibe/godel/internal/config"
	"github.com/funvibe/godel/internal/diagnostics"
	"github.com/funvibe/godel/internal/token"
	"github.com/funvibe/godel/internal/typesystem"
)

var connectives = map[token.TokenType]ast.ConnectiveKind{
	token.AND:     ast.And,
	token.OR:      ast.Or,
	token.IMPLIES: ast.Implies,
	token.EQUIV:   ast.Equiv,
}

var modals = map[token.TokenType]ast.ModalOperator{
	token.KNOWS:      ast.Knows,
	token.BELIEVES:   ast.Believes,
	token.POSSIBLE:   ast.Possible,
	token.NECESSARY:  ast.Necessary,
	token.PROB:       ast.Probability,
	token.DEFEASIBLE: ast.Defeasible,
}

// parseExpression parses the lowest precedence level: a left-associative
// chain of binary connectives over unary operands.
func (p *Parser) parseExpression() ast.Node {
	left := p.parseUnary()
	if left == nil {
		return nil
	}
	for p.curToken().Type.IsBinaryConnective() {
		kind := connectives[p.curToken().Type]
		p.nextToken()
		right := p.parseUnary()
		if right == nil {
			return nil
		}
		left = ast.NewConnective(kind, []ast.Node{left, right}, p.boolean())
	}
	return left
}

func (p *Parser) parseUnary() ast.Node {
	defer p.leave()
	if !p.enter() {
		return nil
	}

	tok := p.curToken()
	switch {
	case tok.Type == token.NOT:
		p.nextToken()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return ast.NewConnective(ast.Not, []ast.Node{operand}, p.boolean())

	case tok.Type == token.PROB:
		return p.parseProbability()

	case tok.Type.IsModal():
		p.nextToken()
		var qualifier ast.Node
		if tok.Type != token.DEFEASIBLE && p.curTokenIs(token.LBRACKET) {
			p.nextToken()
			if qualifier = p.parseExpression(); qualifier == nil {
				return nil
			}
			if !p.expect(token.RBRACKET, "']'") {
				return nil
			}
		}
		prop := p.parseUnary()
		if prop == nil {
			return nil
		}
		return ast.NewModalOp(modals[tok.Type], prop, p.boolean(), qualifier, ast.Metadata{})
	}
	return p.parseQuantified()
}

// parseProbability parses prob [value] unary. The optional value must lie in
// [0, 1] and is kept in the node's metadata.
func (p *Parser) parseProbability() ast.Node {
	p.nextToken()
	meta := ast.Metadata{}
	if p.curTokenIs(token.LBRACKET) {
		p.nextToken()
		numTok := p.curToken()
		if !p.expect(token.NUMBER, "probability value") {
			return nil
		}
		var value float64
		switch v := numTok.Literal.(type) {
		case int64:
			value = float64(v)
		case float64:
			value = v
		}
		if value < 0 || value > 1 {
			p.addError(diagnostics.ErrP007, numTok, "probability %s is outside [0, 1]", numTok.Lexeme)
		}
		meta = meta.With(config.MetaProbability, value)
		if !p.expect(token.RBRACKET, "']'") {
			return nil
		}
	}
	prop := p.parseUnary()
	if prop == nil {
		return nil
	}
	return ast.NewModalOp(ast.Probability, prop, p.boolean(), nil, meta)
}

func (p *Parser) parseQuantified() ast.Node {
	tok := p.curToken()
	switch tok.Type {
	case token.FORALL, token.EXISTS:
		kind := ast.Forall
		if tok.Type == token.EXISTS {
			kind = ast.Exists
		}
		vars, body := p.parseBinder(tok)
		if body == nil {
			return nil
		}
		return ast.NewQuantifier(kind, vars, body, p.boolean())

	case token.LAMBDA:
		vars, body := p.parseBinder(tok)
		if body == nil {
			return nil
		}
		params := make([]typesystem.Type, len(vars))
		for i, v := range vars {
			params[i] = v.Type()
		}
		return ast.NewLambda(vars, body, typesystem.NewTFunc(body.Type(), params...))
	}
	return p.parseApplication()
}

// parseBinder parses "(VAR [":" type])+ . expr" after a binder keyword. The
// variables are visible only inside the body.
func (p *Parser) parseBinder(kw token.Token) ([]*ast.Variable, ast.Node) {
	p.nextToken()

	var vars []*ast.Variable
	bound := &scope{vars: make(map[string]*ast.Variable), outer: p.scope}
	for p.curTokenIs(token.VAR) {
		name := p.curToken().Literal.(string)
		p.nextToken()
		t := p.named(config.DefaultTermTypeName)
		if p.curTokenIs(token.COLON) {
			p.nextToken()
			if t = p.parseTypeAtom(); t == nil {
				return nil, nil
			}
		}
		v := ast.NewVariable(name, p.newID(), t)
		vars = append(vars, v)
		bound.vars[name] = v
		if p.curTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	if len(vars) == 0 {
		p.addError(diagnostics.ErrP005, p.curToken(), "%s requires at least one variable, got %s", kw.Lexeme, p.curToken())
		return nil, nil
	}
	if !p.expect(token.DOT, "'.' after bound variables") {
		return nil, nil
	}

	p.scope = bound
	body := p.parseExpression()
	p.scope = bound.outer
	return vars, body
}

// parseApplication parses a primary followed by any number of argument lists.
func (p *Parser) parseApplication() ast.Node {
	node := p.parsePrimary()
	for node != nil && p.curTokenIs(token.LPAREN) {
		p.nextToken()
		var args []ast.Node
		if !p.curTokenIs(token.RPAREN) {
			for {
				arg := p.parseExpression()
				if arg == nil {
					return nil
				}
				args = append(args, arg)
				if !p.curTokenIs(token.COMMA) {
					break
				}
				p.nextToken()
			}
		}
		if !p.expect(token.RPAREN, "')'") {
			return nil
		}

		result := p.named(config.DefaultPredicateResultName)
		if fn, ok := node.Type().(typesystem.TFunc); ok {
			result = fn.Return
		}
		node = ast.NewApplication(node, args, result)
	}
	return node
}

func (p *Parser) parsePrimary() ast.Node {
	tok := p.curToken()
	switch tok.Type {
	case token.LPAREN:
		p.nextToken()
		inner := p.parseExpression()
		if inner == nil || !p.expect(token.RPAREN, "')'") {
			return nil
		}
		return inner

	case token.VAR:
		p.nextToken()
		return p.parseVariable(tok)

	case token.IDENT:
		p.nextToken()
		return p.parseConstant(tok)

	case token.NUMBER:
		p.nextToken()
		typeName := config.IntegerTypeName
		if _, isReal := tok.Literal.(float64); isReal {
			typeName = config.RealTypeName
		}
		return ast.NewConstant(tok.Lexeme, p.named(typeName), tok.Literal)

	case token.STRING:
		p.nextToken()
		return ast.NewConstant(tok.Lexeme, p.named(config.StringTypeName), tok.Literal)

	case token.TRUE, token.FALSE:
		p.nextToken()
		value := tok.Type == token.TRUE
		name := "false"
		if value {
			name = "true"
		}
		return ast.NewConstant(name, p.boolean(), value)

	case token.EOF:
		p.addError(diagnostics.ErrP002, tok, "expected expression, got end of input")
		return nil
	}

	p.addError(diagnostics.ErrP001, tok, "unexpected %s", tok)
	return nil
}

// parseVariable resolves ?name against the enclosing binders. Unbound
// variables with the same name share one variable within a formula.
func (p *Parser) parseVariable(tok token.Token) ast.Node {
	name := tok.Literal.(string)
	var annotation typesystem.Type
	annTok := p.curToken()
	if p.curTokenIs(token.COLON) {
		p.nextToken()
		annTok = p.curToken()
		if annotation = p.parseTypeAtom(); annotation == nil {
			return nil
		}
	}

	if v, ok := p.scope.lookup(name); ok {
		p.checkAnnotation(v, annotation, annTok)
		return v
	}
	if v, ok := p.free[name]; ok {
		p.checkAnnotation(v, annotation, annTok)
		return v
	}

	if annotation == nil {
		v := ast.NewVariable(name, p.newID(), p.named(config.DefaultTermTypeName))
		p.free[name] = v
		return v
	}
	v := ast.NewVariable(name, p.newID(), annotation).WithMetadata(config.MetaAnnotated, true).(*ast.Variable)
	p.free[name] = v
	return v
}

func (p *Parser) checkAnnotation(v *ast.Variable, annotation typesystem.Type, tok token.Token) {
	if annotation != nil && !annotation.Equal(v.Type()) {
		p.addError(diagnostics.ErrT007, tok, "?%s is %s here but was declared %s", v.Name, annotation, v.Type())
	}
}

// parseConstant types a symbol by its annotation, else its registered
// signature, else the default term type.
func (p *Parser) parseConstant(tok token.Token) ast.Node {
	name := tok.Lexeme
	if p.curTokenIs(token.COLON) {
		p.nextToken()
		t := p.parseTypeAtom()
		if t == nil {
			return nil
		}
		return ast.NewConstant(name, t, nil).WithMetadata(config.MetaAnnotated, true)
	}
	if p.types != nil {
		if sig, ok := p.types.Signature(name); ok {
			return ast.NewConstant(name, sig, nil)
		}
	}
	return ast.NewConstant(name, p.named(config.DefaultTermTypeName), nil)
}

// parseDefinition parses "define Name : type := expr".
func (p *Parser) parseDefinition() ast.Node {
	p.nextToken()
	symTok := p.curToken()
	if !p.expect(token.IDENT, "symbol name after define") {
		return nil
	}
	if !p.expect(token.COLON, "':' after defined symbol") {
		return nil
	}
	symType := p.parseType()
	if symType == nil {
		return nil
	}
	if !p.expect(token.ASSIGN, "':='") {
		return nil
	}
	body := p.parseExpression()
	if body == nil {
		return nil
	}
	return ast.NewDefinition(symTok.Lexeme, symType, body, symType)
}

func (p *Parser) boolean() typesystem.Type { return p.named(config.BooleanTypeName) }

// named returns a registered type, or a bare atom when the resolver lacks it.
func (p *Parser) named(name string) typesystem.Type {
	if p.types != nil {
		if t, ok := p.types.LookupType(name); ok {
			return t
		}
	}
	return typesystem.TAtom{Name: name}
}
