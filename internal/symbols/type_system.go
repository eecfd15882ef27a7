package symbols

import (
	"sync"

	"go.uber.org/zap"

	"github.com/funvibe/godel/internal/config"
	"github.com/funvibe/godel/internal/logger"
	"github.com/funvibe/godel/internal/typesystem"
)

// TypeSystem is the registry of named types, the subtype hierarchy and the
// symbol signature table.
//
// Registration takes the write lock; every query takes the read lock, so
// after bootstrap any number of goroutines may parse and check concurrently.
type TypeSystem struct {
	mu         sync.RWMutex
	types      map[string]typesystem.Type // atoms and parametric constructors
	signatures map[string]typesystem.Type // symbol -> TFunc or TAtom
	graph      *typesystem.Graph
}

// New returns a type system holding the built-in hierarchy.
func New() *TypeSystem {
	ts := &TypeSystem{
		types:      make(map[string]typesystem.Type),
		signatures: make(map[string]typesystem.Type),
		graph:      typesystem.NewGraph(),
	}
	ts.initBuiltins()
	return ts
}

func (ts *TypeSystem) initBuiltins() {
	for _, b := range config.BuiltinTypes {
		if _, err := ts.defineAtomicType(b.Name, b.Supertypes); err != nil {
			panic("symbols: invalid builtin hierarchy: " + err.Error())
		}
	}
}

func (ts *TypeSystem) log() *zap.SugaredLogger {
	return logger.Named("symbols")
}

// hierarchyView answers subtype queries for typesystem.Type.IsSubtypeOf while
// the caller already holds the read lock.
type hierarchyView struct {
	ts *TypeSystem
}

func (h hierarchyView) IsSubtype(sub, super typesystem.Type) bool { return h.ts.isSubtype(sub, super) }
func (h hierarchyView) Reachable(sub, super typesystem.Type) bool {
	return h.ts.graph.Reachable(sub, super)
}
