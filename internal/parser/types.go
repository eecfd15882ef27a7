package parser

import (
	"slices"

	"github.com/funvibe/godel/internal/config"
	"github.com/funvibe/godel/internal/diagnostics"
	"github.com/funvibe/godel/internal/errors"
	"github.com/funvibe/godel/internal/token"
	"github.com/funvibe/godel/internal/typesystem"
)

// parseType parses
//
//	type     := typeAtom [ IMPLIES type ]
//	typeAtom := NAME [ "[" type ("," type)* "]" ] | TYPEVAR | "(" [ type ("," type)* ] ")"
//
// A parenthesized list is only valid as the parameter list of a function type.
func (p *Parser) parseType() typesystem.Type {
	defer p.leave()
	if !p.enter() {
		return nil
	}

	start := p.curToken()
	params, grouped, ok := p.parseTypeGroup()
	if !ok {
		return nil
	}
	if p.curTokenIs(token.IMPLIES) {
		p.nextToken()
		ret := p.parseType()
		if ret == nil {
			return nil
		}
		return typesystem.NewTFunc(ret, params...)
	}
	return p.single(params, grouped, start)
}

// parseTypeAtom parses a single typeAtom, as used in variable and constant
// annotations. Function types must be parenthesized there.
func (p *Parser) parseTypeAtom() typesystem.Type {
	start := p.curToken()
	params, grouped, ok := p.parseTypeGroup()
	if !ok {
		return nil
	}
	return p.single(params, grouped, start)
}

func (p *Parser) single(types []typesystem.Type, grouped bool, start token.Token) typesystem.Type {
	if grouped && len(types) != 1 {
		p.addError(diagnostics.ErrP002, p.curToken(), "expected '->' after parenthesized type list at %s", start.Pos)
		return nil
	}
	return types[0]
}

// parseTypeGroup parses one typeAtom. For "( ... )" it returns the members.
func (p *Parser) parseTypeGroup() ([]typesystem.Type, bool, bool) {
	tok := p.curToken()
	switch tok.Type {
	case token.IDENT:
		p.nextToken()
		if !p.curTokenIs(token.LBRACKET) {
			return []typesystem.Type{p.resolveNamed(tok)}, false, true
		}
		p.nextToken()
		args, ok := p.parseTypeList()
		if !ok {
			return nil, false, false
		}
		if !p.expect(token.RBRACKET, "']' after type arguments") {
			return nil, false, false
		}
		return []typesystem.Type{p.instantiate(tok, args)}, false, true

	case token.TYPEVAR:
		p.nextToken()
		return []typesystem.Type{typesystem.TVar{Name: tok.Literal.(string)}}, false, true

	case token.LPAREN:
		p.nextToken()
		var members []typesystem.Type
		if !p.curTokenIs(token.RPAREN) {
			var ok bool
			if members, ok = p.parseTypeList(); !ok {
				return nil, false, false
			}
		}
		if !p.expect(token.RPAREN, "')' after types") {
			return nil, false, false
		}
		return members, true, true
	}

	p.addError(diagnostics.ErrP001, tok, "expected type, got %s", tok)
	return nil, false, false
}

func (p *Parser) parseTypeList() ([]typesystem.Type, bool) {
	var out []typesystem.Type
	for {
		t := p.parseType()
		if t == nil {
			return nil, false
		}
		out = append(out, t)
		if !p.curTokenIs(token.COMMA) {
			return out, true
		}
		p.nextToken()
	}
}

// resolveNamed looks up a plain type name. Unknown names are reported and
// replaced by the default term type so parsing can continue. Without a type
// system only the built-in names are known.
func (p *Parser) resolveNamed(tok token.Token) typesystem.Type {
	var t typesystem.Type
	var ok bool
	if p.types != nil {
		t, ok = p.types.LookupType(tok.Lexeme)
	} else if slices.ContainsFunc(config.BuiltinTypes, func(b config.BuiltinType) bool { return b.Name == tok.Lexeme }) {
		t, ok = typesystem.TAtom{Name: tok.Lexeme}, true
	}
	if !ok {
		p.addError(diagnostics.ErrT001, tok, "unknown type %s", tok.Lexeme)
		return p.named(config.DefaultTermTypeName)
	}
	if ctor, isCtor := t.(typesystem.TCtor); isCtor {
		p.addError(diagnostics.ErrT002, tok, "%s expects %d type arguments", ctor.Name, ctor.Arity())
		return p.named(config.DefaultTermTypeName)
	}
	return t
}

func (p *Parser) instantiate(tok token.Token, args []typesystem.Type) typesystem.Type {
	if p.types == nil {
		p.addError(diagnostics.ErrT001, tok, "unknown type %s", tok.Lexeme)
		return p.named(config.DefaultTermTypeName)
	}
	app, err := p.types.Instantiate(tok.Lexeme, args...)
	switch {
	case err == nil:
		return app
	case errors.Is(err, errors.ErrUnknownType):
		p.addError(diagnostics.ErrT001, tok, "unknown type %s", tok.Lexeme)
	default:
		p.addError(diagnostics.ErrT002, tok, "%s", err.Error())
	}
	return p.named(config.DefaultTermTypeName)
}
