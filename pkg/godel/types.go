package godel

import (
	"github.com/funvibe/godel/internal/ast"
	"github.com/funvibe/godel/internal/diagnostics"
	"github.com/funvibe/godel/internal/errors"
	"github.com/funvibe/godel/internal/symbols"
	"github.com/funvibe/godel/internal/typeenv"
	"github.com/funvibe/godel/internal/typesystem"
)

// Node aliases
type Node = ast.Node
type Constant = ast.Constant
type Variable = ast.Variable
type Application = ast.Application
type Quantifier = ast.Quantifier
type Connective = ast.Connective
type ModalOp = ast.ModalOp
type Lambda = ast.Lambda
type Definition = ast.Definition
type Metadata = ast.Metadata
type Visitor = ast.Visitor
type Substitution = ast.Substitution
type VarRef = ast.VarRef

// Type aliases
type Type = typesystem.Type
type TAtom = typesystem.TAtom
type TFunc = typesystem.TFunc
type TVar = typesystem.TVar
type TCtor = typesystem.TCtor
type TApp = typesystem.TApp
type Subst = typesystem.Subst
type TypeSystem = symbols.TypeSystem
type Environment = typeenv.Environment

// Diagnostics
type Diagnostic = diagnostics.DiagnosticError
type Diagnostics = diagnostics.List
type ErrorCode = diagnostics.ErrorCode

// Node constructors and tree operations
var (
	NewConstant    = ast.NewConstant
	NewVariable    = ast.NewVariable
	NewApplication = ast.NewApplication
	NewQuantifier  = ast.NewQuantifier
	NewConnective  = ast.NewConnective
	NewModalOp     = ast.NewModalOp
	NewLambda      = ast.NewLambda
	NewDefinition  = ast.NewDefinition
	NewMetadata    = ast.NewMetadata

	Equal         = ast.Equal
	Key           = ast.Key
	Substitute    = ast.Substitute
	FreeVariables = ast.FreeVariables
	Format        = ast.Format
)

// Type constructors
var (
	NewTFunc       = typesystem.NewTFunc
	NewTApp        = typesystem.NewTApp
	Unify          = typesystem.Unify
	NewEnvironment = typeenv.New
)

// Sentinel errors returned by registration and unification.
var (
	ErrLexical            = errors.ErrLexical
	ErrDuplicateType      = errors.ErrDuplicateType
	ErrUnknownSupertype   = errors.ErrUnknownSupertype
	ErrUnknownType        = errors.ErrUnknownType
	ErrDuplicateSignature = errors.ErrDuplicateSignature
	ErrArityMismatch      = errors.ErrArityMismatch
	ErrUnification        = errors.ErrUnification
	ErrOccursCheck        = errors.ErrOccursCheck
	ErrCyclicHierarchy    = errors.ErrCyclicHierarchy
)

// Node kinds
const (
	Forall = ast.Forall
	Exists = ast.Exists

	And     = ast.And
	Or      = ast.Or
	Not     = ast.Not
	Implies = ast.Implies
	Equiv   = ast.Equiv

	Knows       = ast.Knows
	Believes    = ast.Believes
	Possible    = ast.Possible
	Necessary   = ast.Necessary
	Probability = ast.Probability
	Defeasible  = ast.Defeasible
)
