package godel_test

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/godel/pkg/godel"
)

var (
	entity  = godel.TAtom{Name: "Entity"}
	agent   = godel.TAtom{Name: "Agent"}
	boolean = godel.TAtom{Name: "Boolean"}
)

func newEngine(t *testing.T) *godel.Engine {
	t.Helper()
	e := godel.New()
	require.NoError(t, e.DefineType("Human", "Agent"))
	require.NoError(t, e.DefineSignature("Human", "(Entity) -> Boolean"))
	require.NoError(t, e.DefineSignature("Mortal", "(Entity) -> Boolean"))
	require.NoError(t, e.DefineSignature("Socrates", "Human"))
	return e
}

func TestParseHumanSocrates(t *testing.T) {
	e := newEngine(t)
	node, diags, err := e.Parse("Human(Socrates)")
	require.NoError(t, err)
	assert.Empty(t, diags)

	app, ok := node.(*godel.Application)
	require.True(t, ok)
	assert.True(t, boolean.Equal(app.Type()))

	typ, diags := e.Infer(node)
	assert.Empty(t, diags)
	assert.True(t, boolean.Equal(typ))
}

func TestParseUniversalImplication(t *testing.T) {
	e := newEngine(t)
	node, diags, err := e.Parse("forall ?x:Entity. Human(?x) implies Mortal(?x)")
	require.NoError(t, err)
	require.Empty(t, diags)

	q, ok := node.(*godel.Quantifier)
	require.True(t, ok)
	assert.Equal(t, godel.Forall, q.Kind)
	scope, ok := q.Scope.(*godel.Connective)
	require.True(t, ok)
	assert.Equal(t, godel.Implies, scope.Kind)

	assert.Empty(t, e.Check(node, boolean))
}

func TestParseRecovery(t *testing.T) {
	e := newEngine(t)
	node, diags, err := e.Parse("Human(Socrates")
	require.NoError(t, err)
	assert.Nil(t, node)
	require.NotEmpty(t, diags)
	assert.True(t, diags.HasCode(godel.ErrP002))
}

func TestAgentIsEntity(t *testing.T) {
	e := newEngine(t)
	assert.True(t, e.IsSubtype(agent, entity))
	assert.False(t, e.IsSubtype(entity, agent))
	assert.True(t, e.IsSubtype(godel.TAtom{Name: "Human"}, entity))

	f := godel.NewTFunc(boolean, entity)
	g := godel.NewTFunc(boolean, agent)
	assert.True(t, e.IsSubtype(f, g), "parameters are contravariant")
	assert.False(t, e.IsSubtype(g, f))
}

func TestUnifyBindsTypeVariable(t *testing.T) {
	list := godel.TCtor{Name: "List", Params: []godel.TVar{{Name: "T"}}}
	a, err := godel.NewTApp(list, godel.TVar{Name: "T"})
	require.NoError(t, err)
	b, err := godel.NewTApp(list, entity)
	require.NoError(t, err)

	s, err := godel.Unify(a, b)
	require.NoError(t, err)
	assert.True(t, s.Equal(godel.Subst{"T": entity}))

	_, err = godel.Unify(godel.TVar{Name: "T"}, godel.NewTFunc(boolean, godel.TVar{Name: "T"}))
	assert.True(t, errors.Is(err, godel.ErrOccursCheck))
}

func TestSubstituteAvoidsCapture(t *testing.T) {
	e := newEngine(t)
	node, _, err := e.Parse("exists ?y. Loves(?x, ?y)")
	require.NoError(t, err)

	free := godel.FreeVariables(node)
	require.Len(t, free, 1)
	x := free[0]
	y := node.(*godel.Quantifier).Vars[0]

	out := godel.Substitute(node, godel.Substitution{}.Bind(x, y))
	q := out.(*godel.Quantifier)
	assert.NotEqual(t, "y", q.Vars[0].Name, "binder must be renamed")

	args := q.Scope.(*godel.Application).Args
	assert.Equal(t, y.Ref(), args[0].(*godel.Variable).Ref())
	assert.Equal(t, q.Vars[0].Ref(), args[1].(*godel.Variable).Ref())
}

func TestAnalyze(t *testing.T) {
	e := newEngine(t)

	r := e.Analyze("knows[Socrates] Mortal(Socrates)", "dialogues.gdl", nil)
	require.True(t, r.OK(), r.Diagnostics.Error())
	assert.True(t, boolean.Equal(r.Type))
	assert.NotEmpty(t, r.Session)
	src, ok := r.Node.Metadata().Get("source")
	require.True(t, ok)
	assert.Equal(t, "dialogues.gdl", src)

	r = e.Analyze("knows[Rain] Mortal(Socrates)", "", nil)
	assert.False(t, r.OK())
	assert.True(t, r.Diagnostics.HasCode(godel.ErrT003))

	r = e.Analyze("Socrates", "", agent)
	assert.True(t, r.OK(), r.Diagnostics.Error())
	r = e.Analyze("Plato", "", agent)
	assert.True(t, r.Diagnostics.HasCode(godel.ErrT003))
}

func TestRegistrationErrors(t *testing.T) {
	e := newEngine(t)
	assert.True(t, errors.Is(e.DefineType("Human"), godel.ErrDuplicateType))
	assert.True(t, errors.Is(e.DefineType("Robot", "Machine"), godel.ErrUnknownSupertype))
	assert.True(t, errors.Is(e.DefineSignature("Human", "Entity"), godel.ErrDuplicateSignature))
	assert.Error(t, e.DefineSignature("Flies", "(Bird) -> Boolean"))
	assert.Error(t, e.DefineSignature("Broken", "(Entity"))

	require.NoError(t, e.DefineParametricType("List", "T"))
	require.NoError(t, e.DeclareSubtype("List[Human]", "List[Agent]"))
	assert.True(t, errors.Is(e.DeclareSubtype("List[Agent]", "List[Human]"), godel.ErrCyclicHierarchy))
}

func TestLoadOntology(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zoo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
types:
  - name: Penguin
    supertypes: [Bird]
  - name: Bird
signatures:
  - symbol: Flies
    type: (Bird) -> Boolean
  - symbol: Pingu
    type: Penguin
`), 0o644))

	e := godel.New()
	require.NoError(t, e.LoadOntology(path))

	r := e.Analyze("not Flies(Pingu)", "", boolean)
	assert.True(t, r.OK(), r.Diagnostics.Error())

	require.Error(t, e.LoadOntologyBytes([]byte("types: [}"), "inline"))
}

func TestConcurrentParsing(t *testing.T) {
	e := newEngine(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				r := e.Analyze("forall ?x. Human(?x) implies Mortal(?x)", "", boolean)
				assert.True(t, r.OK())
			}
		}()
	}
	wg.Wait()
}

func TestParseSourceAndRegister(t *testing.T) {
	e := newEngine(t)

	r := e.ParseSource("Human(Socrates) $", "")
	assert.True(t, r.Diagnostics.HasCode(godel.ErrL001))
	assert.Nil(t, r.Node)

	r = e.ParseSource("define Wise : (Human) -> Boolean := lambda ?h:Human. Mortal(?h)", "")
	require.True(t, r.OK(), r.Diagnostics.Error())
	assert.Nil(t, r.Type)
	def := r.Node.(*godel.Definition)
	require.Empty(t, e.Check(def, def.SymbolType))
	require.NoError(t, e.Register(def))

	r = e.Analyze("Wise(Socrates)", "", boolean)
	assert.True(t, r.OK(), r.Diagnostics.Error())
	r = e.Analyze("Wise(Athens)", "", nil)
	assert.True(t, r.Diagnostics.HasCode(godel.ErrT003))
}
