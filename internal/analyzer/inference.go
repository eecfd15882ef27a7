package analyzer

import (
	"github.com/funvibe/godel/internal/ast"
	"github.com/funvibe/godel/internal/diagnostics"
	"github.com/funvibe/godel/internal/typeenv"
	"github.com/funvibe/godel/internal/typesystem"
)

// inferrer is the inference visitor. Each Visit method leaves its result in
// typ; a nil typ after a visit means an error was recorded.
type inferrer struct {
	env    *typeenv.Environment
	oracle Oracle
	typ    typesystem.Type
	errs   diagnostics.List
}

func (w *inferrer) infer(n ast.Node) (typesystem.Type, bool) {
	if n == nil {
		w.fail(diagnostics.ErrT006, nil, "missing expression")
		return nil, false
	}
	w.typ = nil
	n.Accept(w)
	return w.typ, w.typ != nil
}

func (w *inferrer) fail(code diagnostics.ErrorCode, n ast.Node, format string, args ...any) {
	w.typ = nil
	w.errs = append(w.errs, diagnostics.NewNodeError(code, n, format, args...))
}

// expect infers n and requires a subtype of want.
func (w *inferrer) expect(n ast.Node, want typesystem.Type, what string) bool {
	t, ok := w.infer(n)
	if !ok {
		return false
	}
	if !w.oracle.IsSubtype(t, want) {
		w.fail(diagnostics.ErrT003, n, "%s must be %s, got %s", what, want, t)
		return false
	}
	return true
}

// bind runs fn in a child scope holding the declared types of vars.
func (w *inferrer) bind(vars []*ast.Variable, fn func()) {
	outer := w.env
	w.env = outer.Extend()
	for _, v := range vars {
		if v.Type() != nil {
			w.env.SetType(v, v.Type())
		}
	}
	fn()
	w.env = outer
}

func (w *inferrer) VisitConstant(n *ast.Constant) {
	if n.Type() == nil {
		w.fail(diagnostics.ErrT006, n, "constant %s has no type", n.Name)
		return
	}
	w.typ = n.Type()
}

func (w *inferrer) VisitVariable(n *ast.Variable) {
	t := w.env.GetType(n)
	if t == nil {
		w.fail(diagnostics.ErrT006, n, "cannot resolve type of ?%s", n.Name)
		return
	}
	w.typ = t
}

func (w *inferrer) VisitApplication(n *ast.Application) {
	opType, ok := w.infer(n.Operator)
	if !ok {
		return
	}
	fn, ok := opType.(typesystem.TFunc)
	if !ok {
		w.fail(diagnostics.ErrT005, n, "%s is not a function: it has type %s", n.Operator, opType)
		return
	}
	if len(fn.Params) != len(n.Args) {
		w.fail(diagnostics.ErrT002, n, "%s expects %d arguments, got %d", n.Operator, len(fn.Params), len(n.Args))
		return
	}
	for i, arg := range n.Args {
		argType, ok := w.infer(arg)
		if !ok {
			return
		}
		if !w.oracle.IsSubtype(argType, fn.Params[i]) {
			w.fail(diagnostics.ErrT003, arg, "argument %d of %s: expected %s, got %s",
				i+1, n.Operator, fn.Params[i], argType)
			return
		}
	}
	w.typ = fn.Return
}

func (w *inferrer) VisitQuantifier(n *ast.Quantifier) {
	ok := false
	w.bind(n.Vars, func() {
		ok = w.expect(n.Scope, booleanType, "quantifier scope")
	})
	if ok {
		w.typ = booleanType
	}
}

func (w *inferrer) VisitConnective(n *ast.Connective) {
	for _, op := range n.Operands {
		if !w.expect(op, booleanType, "operand of "+string(n.Kind)) {
			return
		}
	}
	w.typ = booleanType
}

func (w *inferrer) VisitModalOp(n *ast.ModalOp) {
	if !w.expect(n.Proposition, booleanType, "proposition of "+string(n.Operator)) {
		return
	}
	if n.AgentOrWorld != nil {
		if n.Operator.IsEpistemic() {
			if !w.expect(n.AgentOrWorld, agentType, "agent of "+string(n.Operator)) {
				return
			}
		} else if _, ok := w.infer(n.AgentOrWorld); !ok {
			return
		}
	}
	w.typ = booleanType
}

func (w *inferrer) VisitLambda(n *ast.Lambda) {
	var body typesystem.Type
	w.bind(n.Vars, func() {
		body, _ = w.infer(n.Body)
	})
	if body == nil {
		w.typ = nil
		return
	}
	params := make([]typesystem.Type, len(n.Vars))
	for i, v := range n.Vars {
		params[i] = v.Type()
		if params[i] == nil {
			w.fail(diagnostics.ErrT006, v, "cannot resolve type of ?%s", v.Name)
			return
		}
	}
	w.typ = typesystem.NewTFunc(body, params...)
}

func (w *inferrer) VisitDefinition(n *ast.Definition) {
	if n.SymbolType == nil {
		w.fail(diagnostics.ErrT006, n, "definition of %s has no declared type", n.Symbol)
		return
	}
	if !w.expect(n.Body, n.SymbolType, "body of "+n.Symbol) {
		return
	}
	w.typ = n.SymbolType
}
