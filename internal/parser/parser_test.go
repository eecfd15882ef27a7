package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/godel/internal/ast"
	"github.com/funvibe/godel/internal/config"
	"github.com/funvibe/godel/internal/diagnostics"
	"github.com/funvibe/godel/internal/errors"
	"github.com/funvibe/godel/internal/symbols"
	"github.com/funvibe/godel/internal/typesystem"
)

var (
	entity  = typesystem.TAtom{Name: "Entity"}
	agent   = typesystem.TAtom{Name: "Agent"}
	boolean = typesystem.TAtom{Name: "Boolean"}
	integer = typesystem.TAtom{Name: "Integer"}
)

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	ts := symbols.New()
	_, err := ts.DefineFunctionSignature("Human", []string{"Entity"}, "Boolean")
	require.NoError(t, err)
	_, err = ts.DefineFunctionSignature("Loves", []string{"Agent", "Entity"}, "Boolean")
	require.NoError(t, err)
	_, err = ts.DefineFunctionSignature("Age", []string{"Entity"}, "Integer")
	require.NoError(t, err)
	_, err = ts.DefineConstant("John", "Agent")
	require.NoError(t, err)
	_, err = ts.DefineParametricType("List", "T")
	require.NoError(t, err)
	return New(ts)
}

func mustParse(t *testing.T, p *Parser, input string) ast.Node {
	t.Helper()
	node, errs, err := p.Parse(input)
	require.NoError(t, err)
	require.Empty(t, errs, "input: %s", input)
	require.NotNil(t, node)
	return node
}

func TestParseApplication(t *testing.T) {
	p := newTestParser(t)
	node := mustParse(t, p, "Human(Socrates)")

	app, ok := node.(*ast.Application)
	require.True(t, ok, "expected *ast.Application, got %T", node)
	assert.True(t, boolean.Equal(app.Type()))

	op := app.Operator.(*ast.Constant)
	assert.Equal(t, "Human", op.Name)
	assert.True(t, typesystem.NewTFunc(boolean, entity).Equal(op.Type()))

	require.Len(t, app.Args, 1)
	arg := app.Args[0].(*ast.Constant)
	assert.Equal(t, "Socrates", arg.Name)
	assert.True(t, entity.Equal(arg.Type()))
}

func TestParseApplicationResultTypes(t *testing.T) {
	p := newTestParser(t)

	age := mustParse(t, p, "Age(Socrates)")
	assert.True(t, integer.Equal(age.Type()))

	// unknown operators default to a predicate over an Entity-typed symbol
	unknown := mustParse(t, p, "Mortal(Socrates)").(*ast.Application)
	assert.True(t, boolean.Equal(unknown.Type()))
	assert.True(t, entity.Equal(unknown.Operator.Type()))

	john := mustParse(t, p, "Human(John)").(*ast.Application)
	assert.True(t, agent.Equal(john.Args[0].Type()))

	nullary := mustParse(t, p, "Rain()").(*ast.Application)
	assert.Empty(t, nullary.Args)
}

func TestParseQuantifiedImplication(t *testing.T) {
	p := newTestParser(t)
	node := mustParse(t, p, "forall ?x:Entity. Human(?x) implies Mortal(?x)")

	q, ok := node.(*ast.Quantifier)
	require.True(t, ok)
	assert.Equal(t, ast.Forall, q.Kind)
	require.Len(t, q.Vars, 1)
	assert.Equal(t, "x", q.Vars[0].Name)
	assert.True(t, entity.Equal(q.Vars[0].Type()))

	conn, ok := q.Scope.(*ast.Connective)
	require.True(t, ok)
	assert.Equal(t, ast.Implies, conn.Kind)
	require.Len(t, conn.Operands, 2)

	// both occurrences are the bound variable
	left := conn.Operands[0].(*ast.Application).Args[0].(*ast.Variable)
	right := conn.Operands[1].(*ast.Application).Args[0].(*ast.Variable)
	assert.Equal(t, q.Vars[0].Ref(), left.Ref())
	assert.Equal(t, q.Vars[0].Ref(), right.Ref())
}

func TestBinaryConnectivesAssociateLeft(t *testing.T) {
	p := newTestParser(t)
	node := mustParse(t, p, "A() and B() or C()")

	or := node.(*ast.Connective)
	assert.Equal(t, ast.Or, or.Kind)
	and := or.Operands[0].(*ast.Connective)
	assert.Equal(t, ast.And, and.Kind)
	assert.Equal(t, "C()", or.Operands[1].String())
}

func TestNegationAndModalsBindTightly(t *testing.T) {
	p := newTestParser(t)
	node := mustParse(t, p, "not Human(Socrates) and knows[John] Human(Plato)")

	and := node.(*ast.Connective)
	require.Equal(t, ast.And, and.Kind)
	not := and.Operands[0].(*ast.Connective)
	assert.Equal(t, ast.Not, not.Kind)
	assert.Len(t, not.Operands, 1)

	modal := and.Operands[1].(*ast.ModalOp)
	assert.Equal(t, ast.Knows, modal.Operator)
	require.NotNil(t, modal.AgentOrWorld)
	assert.Equal(t, "John", modal.AgentOrWorld.(*ast.Constant).Name)
	assert.True(t, agent.Equal(modal.AgentOrWorld.Type()))
}

func TestModalOperators(t *testing.T) {
	tests := []struct {
		input    string
		op       ast.ModalOperator
		hasAgent bool
	}{
		{"knows[John] Human(Socrates)", ast.Knows, true},
		{"believes[?a] Human(Socrates)", ast.Believes, true},
		{"possible Human(Socrates)", ast.Possible, false},
		{"<> Human(Socrates)", ast.Possible, false},
		{"necessary[W1] Human(Socrates)", ast.Necessary, true},
		{"□ Human(Socrates)", ast.Necessary, false},
		{"defeasibly Human(Socrates)", ast.Defeasible, false},
		{"prob Human(Socrates)", ast.Probability, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := newTestParser(t)
			m, ok := mustParse(t, p, tt.input).(*ast.ModalOp)
			require.True(t, ok)
			assert.Equal(t, tt.op, m.Operator)
			assert.Equal(t, tt.hasAgent, m.AgentOrWorld != nil)
			assert.True(t, boolean.Equal(m.Type()))
		})
	}
}

func TestProbabilityMetadata(t *testing.T) {
	p := newTestParser(t)

	m := mustParse(t, p, "prob[0.8] Rain()").(*ast.ModalOp)
	v, ok := m.Metadata().Get(config.MetaProbability)
	require.True(t, ok)
	assert.Equal(t, 0.8, v)
	assert.Nil(t, m.AgentOrWorld)

	m = mustParse(t, p, "prob[1] Rain()").(*ast.ModalOp)
	v, _ = m.Metadata().Get(config.MetaProbability)
	assert.Equal(t, 1.0, v)

	low := mustParse(t, p, "prob[0.1] Rain()")
	high := mustParse(t, p, "prob[0.9] Rain()")
	assert.False(t, ast.Equal(low, high))
	assert.NotEqual(t, ast.Key(low), ast.Key(high))
	assert.True(t, ast.Equal(low, mustParse(t, p, "prob[0.1] Rain()")))
}

func TestLiterals(t *testing.T) {
	p := newTestParser(t)
	app := mustParse(t, p, `P(42, 2.5, "hi", true, false)`).(*ast.Application)
	require.Len(t, app.Args, 5)

	tests := []struct {
		typ   string
		value any
	}{
		{"Integer", int64(42)},
		{"Real", 2.5},
		{"String", "hi"},
		{"Boolean", true},
		{"Boolean", false},
	}
	for i, tt := range tests {
		c := app.Args[i].(*ast.Constant)
		assert.Equal(t, tt.typ, c.Type().String())
		assert.Equal(t, tt.value, c.Value)
	}
}

func TestFreeVariablesShareIdentity(t *testing.T) {
	p := newTestParser(t)
	app := mustParse(t, p, "Loves(?x, ?x)").(*ast.Application)
	a := app.Args[0].(*ast.Variable)
	b := app.Args[1].(*ast.Variable)
	assert.Equal(t, a.Ref(), b.Ref())
	assert.True(t, ast.Equal(a, b))
}

func TestBinderShadowing(t *testing.T) {
	p := newTestParser(t)
	outer := mustParse(t, p, "forall ?x. exists ?x:Agent. Loves(?x, ?y)").(*ast.Quantifier)
	inner := outer.Scope.(*ast.Quantifier)
	assert.Equal(t, ast.Exists, inner.Kind)
	assert.NotEqual(t, outer.Vars[0].ID, inner.Vars[0].ID)

	app := inner.Scope.(*ast.Application)
	x := app.Args[0].(*ast.Variable)
	assert.Equal(t, inner.Vars[0].Ref(), x.Ref())
	assert.True(t, agent.Equal(x.Type()))

	// ?y is free and typed by default
	y := app.Args[1].(*ast.Variable)
	assert.True(t, entity.Equal(y.Type()))
	assert.Equal(t, []ast.VarRef{y.Ref()}, refs(ast.FreeVariables(outer)))
}

func refs(vars []*ast.Variable) []ast.VarRef {
	out := make([]ast.VarRef, len(vars))
	for i, v := range vars {
		out[i] = v.Ref()
	}
	return out
}

func TestMultipleBoundVariables(t *testing.T) {
	p := newTestParser(t)
	q := mustParse(t, p, "forall ?a:Agent, ?x. Loves(?a, ?x)").(*ast.Quantifier)
	require.Len(t, q.Vars, 2)
	assert.True(t, agent.Equal(q.Vars[0].Type()))
	assert.True(t, entity.Equal(q.Vars[1].Type()))

	q = mustParse(t, p, "∀ ?a ?x. Loves(?a, ?x)").(*ast.Quantifier)
	assert.Len(t, q.Vars, 2)
}

func TestLambda(t *testing.T) {
	p := newTestParser(t)
	l := mustParse(t, p, "lambda ?x:Agent. Human(?x)").(*ast.Lambda)
	require.Len(t, l.Vars, 1)
	assert.True(t, typesystem.NewTFunc(boolean, agent).Equal(l.Type()))

	// applying a lambda uses its return type
	app := mustParse(t, p, "(λ ?x. Age(?x))(Socrates)").(*ast.Application)
	assert.True(t, integer.Equal(app.Type()))
}

func TestChainedApplication(t *testing.T) {
	p := newTestParser(t)
	app := mustParse(t, p, "F(a)(b)").(*ast.Application)
	inner, ok := app.Operator.(*ast.Application)
	require.True(t, ok)
	assert.Equal(t, "F", inner.Operator.(*ast.Constant).Name)
}

func TestTypeAnnotations(t *testing.T) {
	p := newTestParser(t)
	app := mustParse(t, p, "Member(?x, ?l:List[Agent], f:((Entity) -> Boolean))").(*ast.Application)

	l := app.Args[1].(*ast.Variable)
	assert.Equal(t, "List[Agent]", l.Type().String())
	_, isApp := l.Type().(typesystem.TApp)
	assert.True(t, isApp)

	f := app.Args[2].(*ast.Constant)
	assert.True(t, typesystem.NewTFunc(boolean, entity).Equal(f.Type()))
	flag, ok := f.Metadata().Get(config.MetaAnnotated)
	require.True(t, ok)
	assert.Equal(t, true, flag)
}

func TestDefinition(t *testing.T) {
	p := newTestParser(t)
	d := mustParse(t, p, "define Mortal : (Entity) -> Boolean := lambda ?x. Human(?x)").(*ast.Definition)
	assert.Equal(t, "Mortal", d.Symbol)
	assert.True(t, typesystem.NewTFunc(boolean, entity).Equal(d.SymbolType))
	_, isLambda := d.Body.(*ast.Lambda)
	assert.True(t, isLambda)
}

func TestRecoveredTypeErrorsKeepTree(t *testing.T) {
	p := newTestParser(t)
	node, errs, err := p.Parse("Human(?x:Unicorn)")
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, diagnostics.ErrT001, errs[0].Code)
	require.NotNil(t, node)

	x := node.(*ast.Application).Args[0].(*ast.Variable)
	assert.True(t, entity.Equal(x.Type()))
}

func TestLexicalErrorIsReturned(t *testing.T) {
	p := newTestParser(t)
	node, errs, err := p.Parse("Human($)")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrLexical))
	assert.Nil(t, node)
	assert.Empty(t, errs)
}

func TestSessionIsFreshPerParse(t *testing.T) {
	p := newTestParser(t)
	first := mustParse(t, p, "Human(Socrates)")
	s1 := p.Session()
	second := mustParse(t, p, "Human(Socrates)")
	s2 := p.Session()

	assert.NotEmpty(t, s1)
	assert.NotEqual(t, s1, s2)
	got, _ := first.Metadata().Get(config.MetaSession)
	assert.Equal(t, s1, got)
	got, _ = second.Metadata().Get(config.MetaSession)
	assert.Equal(t, s2, got)
	assert.True(t, ast.Equal(first, second))
}

func TestFormatRoundTrip(t *testing.T) {
	inputs := []string{
		"forall ?x:Entity. Human(?x) implies Mortal(?x)",
		"knows[John] Human(Socrates) and not possible Human(Plato)",
		"exists ?a:Agent. believes[?a] (Human(Socrates) or Human(Plato))",
		"prob[0.5] Rain()",
		"Loves(?who:Agent, ?x)",
		`P(42, 2.5, "a\"b", true)`,
		"define Mortal : (Entity) -> Boolean := lambda ?x:Entity. Human(?x)",
		"(forall ?x:Entity. Human(?x)) equiv Human(Socrates)",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			p := newTestParser(t)
			first := mustParse(t, p, input)
			second := mustParse(t, p, first.String())
			assert.True(t, ast.Equal(first, second), "%s\n%s", first, second)
		})
	}
	p := newTestParser(t)
	assert.Equal(t, "forall ?x:Entity. Human(?x) implies Mortal(?x)",
		mustParse(t, p, "∀ ?x. Human(?x) → Mortal(?x)").String())
}

func TestWithoutResolver(t *testing.T) {
	p := New(nil)
	node, errs, err := p.Parse("Human(?x) and prob[0.3] Rain()")
	require.NoError(t, err)
	require.Empty(t, errs)
	assert.Equal(t, "Boolean", node.Type().String())

	node, errs, err = p.Parse("Human(?x:Agent) and ?y:Entity")
	require.NoError(t, err)
	require.Empty(t, errs)
	x := node.(*ast.Connective).Operands[0].(*ast.Application).Args[0]
	assert.Equal(t, "Agent", x.Type().String())

	_, errs, err = p.Parse("Human(?x:Philosopher)")
	require.NoError(t, err)
	assert.True(t, errs.HasCode(diagnostics.ErrT001))
}

func TestParseType(t *testing.T) {
	tests := []struct {
		input string
		want  typesystem.Type
	}{
		{"Entity", entity},
		{"(Entity, Agent) -> Boolean", typesystem.NewTFunc(boolean, entity, agent)},
		{"Entity -> Boolean", typesystem.NewTFunc(boolean, entity)},
		{"() -> Boolean", typesystem.NewTFunc(boolean)},
		{"Entity -> Entity -> Boolean", typesystem.NewTFunc(typesystem.NewTFunc(boolean, entity), entity)},
		{"(Entity -> Boolean) -> Boolean", typesystem.NewTFunc(boolean, typesystem.NewTFunc(boolean, entity))},
		{"'a", typesystem.TVar{Name: "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := newTestParser(t)
			got, errs, err := p.ParseType(tt.input)
			require.NoError(t, err)
			require.Empty(t, errs)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestParseTypeErrors(t *testing.T) {
	tests := []struct {
		input string
		code  diagnostics.ErrorCode
	}{
		{"", diagnostics.ErrP003},
		{"(Entity, Agent)", diagnostics.ErrP002},
		{"Entity Agent", diagnostics.ErrP004},
		{"Entity ->", diagnostics.ErrP001},
		{"Unicorn", diagnostics.ErrT001},
		{"List", diagnostics.ErrT002},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := newTestParser(t)
			got, errs, err := p.ParseType(tt.input)
			require.NoError(t, err)
			assert.Nil(t, got)
			assert.True(t, errs.HasCode(tt.code), "got %v", errs)
		})
	}
}
