package ast

import (
	"strconv"
	"strings"

	"github.com/funvibe/godel/internal/config"
	"github.com/funvibe/godel/internal/typesystem"
)

var modalKeywords = map[ModalOperator]string{
	Knows:       "knows",
	Believes:    "believes",
	Possible:    "possible",
	Necessary:   "necessary",
	Probability: "prob",
	Defeasible:  "defeasibly",
}

var connectiveKeywords = map[ConnectiveKind]string{
	And:     "and",
	Or:      "or",
	Not:     "not",
	Implies: "implies",
	Equiv:   "equiv",
}

// Format renders n in the ASCII surface syntax. Binary connectives and
// binders are parenthesized when nested so the output parses back to the
// same tree.
func Format(n Node) string {
	var b strings.Builder
	writeNode(&b, n, false)
	return b.String()
}

// FormatAnnotation renders t as it may appear after ":" on a variable or
// constant. Function types need parentheses there.
func FormatAnnotation(t typesystem.Type) string {
	if t == nil {
		return config.DefaultTermTypeName
	}
	if _, ok := t.(typesystem.TFunc); ok {
		return "(" + t.String() + ")"
	}
	return t.String()
}

func writeNode(b *strings.Builder, n Node, nested bool) {
	switch n := n.(type) {
	case nil:
		b.WriteString("<nil>")

	case *Constant:
		if lit, ok := formatLiteral(n.Value); ok {
			b.WriteString(lit)
			return
		}
		b.WriteString(n.Name)
		if annotated(n.meta) {
			b.WriteString(":" + FormatAnnotation(n.typ))
		}

	case *Variable:
		b.WriteString("?" + n.Name)
		if annotated(n.meta) {
			b.WriteString(":" + FormatAnnotation(n.typ))
		}

	case *Application:
		writeNode(b, n.Operator, true)
		b.WriteByte('(')
		for i, arg := range n.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			writeNode(b, arg, false)
		}
		b.WriteByte(')')

	case *Quantifier:
		writeBinder(b, n.Kind.Keyword(), n.Vars, n.Scope, nested)

	case *Lambda:
		writeBinder(b, "lambda", n.Vars, n.Body, nested)

	case *Connective:
		if n.Kind == Not && len(n.Operands) == 1 {
			b.WriteString("not ")
			writeNode(b, n.Operands[0], true)
			return
		}
		if nested {
			b.WriteByte('(')
		}
		for i, op := range n.Operands {
			if i > 0 {
				b.WriteString(" " + connectiveKeywords[n.Kind] + " ")
			}
			writeNode(b, op, true)
		}
		if nested {
			b.WriteByte(')')
		}

	case *ModalOp:
		b.WriteString(FormatModalPrefix(n))
		b.WriteByte(' ')
		writeNode(b, n.Proposition, true)

	case *Definition:
		b.WriteString("define " + n.Symbol + " : ")
		if n.SymbolType != nil {
			b.WriteString(n.SymbolType.String())
		}
		b.WriteString(" := ")
		writeNode(b, n.Body, false)
	}
}

// FormatModalPrefix renders the operator keyword of m with its qualifier,
// e.g. "knows[John]" or "prob[0.8]".
func FormatModalPrefix(m *ModalOp) string {
	var b strings.Builder
	b.WriteString(modalKeywords[m.Operator])
	if m.AgentOrWorld != nil {
		b.WriteByte('[')
		writeNode(&b, m.AgentOrWorld, false)
		b.WriteByte(']')
	} else if p, ok := m.Probability(); ok {
		b.WriteString("[" + formatFloat(p) + "]")
	}
	return b.String()
}

// FormatBinder renders a binder keyword with its annotated variables and the
// closing dot, e.g. "forall ?x:Entity ?y:Agent.".
func FormatBinder(keyword string, vars []*Variable) string {
	var b strings.Builder
	b.WriteString(keyword)
	for _, v := range vars {
		b.WriteString(" ?" + v.Name + ":" + FormatAnnotation(v.typ))
	}
	b.WriteByte('.')
	return b.String()
}

// NeedsParens reports whether n is parenthesized when it appears as an
// operand of a connective, modal operator or application.
func NeedsParens(n Node) bool {
	switch n := n.(type) {
	case *Connective:
		return n.Kind != Not || len(n.Operands) != 1
	case *Quantifier, *Lambda:
		return true
	}
	return false
}

func writeBinder(b *strings.Builder, kw string, vars []*Variable, body Node, nested bool) {
	if nested {
		b.WriteByte('(')
	}
	b.WriteString(FormatBinder(kw, vars))
	b.WriteByte(' ')
	writeNode(b, body, false)
	if nested {
		b.WriteByte(')')
	}
}

func annotated(m Metadata) bool {
	v, ok := m.Get(config.MetaAnnotated)
	if !ok {
		return false
	}
	flag, _ := v.(bool)
	return flag
}

func formatLiteral(v any) (string, bool) {
	switch v := v.(type) {
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return formatFloat(v), true
	case string:
		return strconv.Quote(v), true
	case bool:
		return strconv.FormatBool(v), true
	}
	return "", false
}

// formatFloat always keeps a decimal point so the value lexes as Real again.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Keyword is the surface spelling of the connective.
func (k ConnectiveKind) Keyword() string { return connectiveKeywords[k] }

// Keyword is the surface spelling of the quantifier.
func (k QuantifierKind) Keyword() string {
	if k == Exists {
		return "exists"
	}
	return "forall"
}
