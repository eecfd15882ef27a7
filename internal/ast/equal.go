package ast

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/funvibe/godel/internal/typesystem"
)

// Equal reports structural equality of two trees. Node types take part in the
// comparison, metadata does not. Variables match on name, id and type.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if !typesystem.TypesEqual(a.Type(), b.Type()) {
		return false
	}

	switch a := a.(type) {
	case *Constant:
		o, ok := b.(*Constant)
		return ok && a.Name == o.Name && reflect.DeepEqual(a.Value, o.Value)

	case *Variable:
		o, ok := b.(*Variable)
		return ok && a.Name == o.Name && a.ID == o.ID

	case *Application:
		o, ok := b.(*Application)
		return ok && Equal(a.Operator, o.Operator) && equalNodes(a.Args, o.Args)

	case *Quantifier:
		o, ok := b.(*Quantifier)
		return ok && a.Kind == o.Kind && equalVars(a.Vars, o.Vars) && Equal(a.Scope, o.Scope)

	case *Connective:
		o, ok := b.(*Connective)
		return ok && a.Kind == o.Kind && equalNodes(a.Operands, o.Operands)

	case *ModalOp:
		o, ok := b.(*ModalOp)
		if !ok || a.Operator != o.Operator {
			return false
		}
		pa, hasA := a.Probability()
		po, hasO := o.Probability()
		return hasA == hasO && pa == po &&
			Equal(a.AgentOrWorld, o.AgentOrWorld) && Equal(a.Proposition, o.Proposition)

	case *Lambda:
		o, ok := b.(*Lambda)
		return ok && equalVars(a.Vars, o.Vars) && Equal(a.Body, o.Body)

	case *Definition:
		o, ok := b.(*Definition)
		return ok && a.Symbol == o.Symbol &&
			typesystem.TypesEqual(a.SymbolType, o.SymbolType) && Equal(a.Body, o.Body)
	}
	return false
}

func equalNodes(xs, ys []Node) bool {
	if len(xs) != len(ys) {
		return false
	}
	for i := range xs {
		if !Equal(xs[i], ys[i]) {
			return false
		}
	}
	return true
}

func equalVars(xs, ys []*Variable) bool {
	if len(xs) != len(ys) {
		return false
	}
	for i := range xs {
		if !Equal(xs[i], ys[i]) {
			return false
		}
	}
	return true
}

// Key returns a canonical string for n. Two nodes have the same key exactly
// when Equal reports true, so keys can index stores of formulas.
func Key(n Node) string {
	var b strings.Builder
	writeKey(&b, n)
	return b.String()
}

func writeKey(b *strings.Builder, n Node) {
	if n == nil {
		b.WriteString("_")
		return
	}
	switch n := n.(type) {
	case *Constant:
		b.WriteString("C(" + n.Name)
		if n.Value != nil {
			fmt.Fprintf(b, "=%T:%#v", n.Value, n.Value)
		}
	case *Variable:
		b.WriteString("V(" + n.Name + "#" + strconv.Itoa(n.ID))
	case *Application:
		b.WriteString("A(")
		writeKey(b, n.Operator)
		writeKeys(b, n.Args)
	case *Quantifier:
		b.WriteString("Q" + string(n.Kind) + "(")
		writeVarKeys(b, n.Vars)
		b.WriteByte(';')
		writeKey(b, n.Scope)
	case *Connective:
		b.WriteString("N" + string(n.Kind) + "(")
		writeKeys(b, n.Operands)
	case *ModalOp:
		b.WriteString("M" + string(n.Operator))
		if p, ok := n.Probability(); ok {
			b.WriteString("=" + strconv.FormatFloat(p, 'g', -1, 64))
		}
		b.WriteByte('(')
		writeKey(b, n.AgentOrWorld)
		b.WriteByte(';')
		writeKey(b, n.Proposition)
	case *Lambda:
		b.WriteString("L(")
		writeVarKeys(b, n.Vars)
		b.WriteByte(';')
		writeKey(b, n.Body)
	case *Definition:
		b.WriteString("D(" + n.Symbol + ":" + typeKey(n.SymbolType) + ";")
		writeKey(b, n.Body)
	}
	b.WriteString("|" + typeKey(n.Type()) + ")")
}

func writeKeys(b *strings.Builder, nodes []Node) {
	for _, c := range nodes {
		b.WriteByte(';')
		writeKey(b, c)
	}
}

func writeVarKeys(b *strings.Builder, vars []*Variable) {
	for i, v := range vars {
		if i > 0 {
			b.WriteByte(',')
		}
		writeKey(b, v)
	}
}

func typeKey(t typesystem.Type) string {
	if t == nil {
		return "_"
	}
	return t.Key()
}
