// Package errors provides error handling for godel.
//
// It re-exports github.com/cockroachdb/errors so every package wraps, annotates
// and inspects errors the same way, and declares the sentinel errors returned
// by registration, unification and tokenization.
//
//	if _, err := ts.DefineAtomicType("Person", "Agent"); err != nil {
//	    if errors.Is(err, errors.ErrDuplicateType) { ... }
//	}
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint      = crdb.WithHint
	WithHintf     = crdb.WithHintf
	WithDetail    = crdb.WithDetail
	WithDetailf   = crdb.WithDetailf
	GetAllHints   = crdb.GetAllHints
	FlattenHints  = crdb.FlattenHints
	GetAllDetails = crdb.GetAllDetails
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Sentinel errors. Wrap them with context; callers match with Is.
var (
	// ErrLexical marks input the lexer cannot tokenize. Always fatal.
	ErrLexical = New("unrecognized input")

	// ErrDuplicateType is returned when a type name is registered twice.
	ErrDuplicateType = New("duplicate type")

	// ErrUnknownSupertype is returned when a supertype is unregistered or not atomic.
	ErrUnknownSupertype = New("unknown supertype")

	// ErrUnknownType is returned when a referenced type name is not registered.
	ErrUnknownType = New("unknown type")

	// ErrDuplicateSignature is returned when a symbol already has a signature.
	ErrDuplicateSignature = New("duplicate signature")

	// ErrArityMismatch is returned when a parametric type receives the wrong number of arguments.
	ErrArityMismatch = New("arity mismatch")

	// ErrUnification is returned when two types have no unifier.
	ErrUnification = New("cannot unify")

	// ErrOccursCheck is returned when binding a type variable would build an infinite type.
	ErrOccursCheck = New("occurs check failed")

	// ErrCyclicHierarchy is returned when a subtype fact would close a cycle.
	ErrCyclicHierarchy = New("cyclic subtype relation")
)

// IsRegistrationError reports whether err came from an invalid registration call.
func IsRegistrationError(err error) bool {
	return err != nil && IsAny(err, ErrDuplicateType, ErrUnknownSupertype, ErrUnknownType,
		ErrDuplicateSignature, ErrArityMismatch, ErrCyclicHierarchy)
}
