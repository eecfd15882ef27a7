package diagnostics

import (
	"fmt"
	"strings"

	"github.com/funvibe/godel/internal/ast"
	"github.com/funvibe/godel/internal/token"
)

type ErrorCode string

// Kind groups codes into the error taxonomy.
type Kind string

const (
	KindLexical        Kind = "lexical"
	KindParse          Kind = "parse"
	KindTypeDefinition Kind = "type-definition"
	KindType           Kind = "type"
)

const (
	// Lexical
	ErrL001 ErrorCode = "L001" // unrecognized input

	// Parse
	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // expected token missing
	ErrP003 ErrorCode = "P003" // empty expression
	ErrP004 ErrorCode = "P004" // unconsumed trailing tokens
	ErrP005 ErrorCode = "P005" // malformed binder list
	ErrP006 ErrorCode = "P006" // nesting too deep
	ErrP007 ErrorCode = "P007" // probability out of range

	// Type definitions
	ErrD001 ErrorCode = "D001" // duplicate type or signature
	ErrD002 ErrorCode = "D002" // unknown type referenced by a definition

	// Types
	ErrT001 ErrorCode = "T001" // unknown type name in annotation
	ErrT002 ErrorCode = "T002" // arity mismatch
	ErrT003 ErrorCode = "T003" // subtype violation
	ErrT004 ErrorCode = "T004" // unification failure
	ErrT005 ErrorCode = "T005" // operator is not a function
	ErrT006 ErrorCode = "T006" // unresolved variable
	ErrT007 ErrorCode = "T007" // conflicting annotation
)

// Kind maps a code to its taxonomy group by prefix.
func (c ErrorCode) Kind() Kind {
	switch {
	case strings.HasPrefix(string(c), "L"):
		return KindLexical
	case strings.HasPrefix(string(c), "P"):
		return KindParse
	case strings.HasPrefix(string(c), "D"):
		return KindTypeDefinition
	default:
		return KindType
	}
}

// DiagnosticError is one accumulated problem, located either by a source
// position, an offending node, or both.
type DiagnosticError struct {
	Code    ErrorCode
	Kind    Kind
	Message string
	Pos     token.Position
	Node    ast.Node
}

func (e *DiagnosticError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	if e.Pos.IsValid() {
		b.WriteString(" at " + e.Pos.String())
	}
	b.WriteString(": " + e.Message)
	if e.Node != nil && !e.Pos.IsValid() {
		b.WriteString(" in " + e.Node.String())
	}
	return b.String()
}

// NewError creates a diagnostic positioned at tok.
func NewError(code ErrorCode, tok token.Token, format string, args ...any) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Kind:    code.Kind(),
		Message: sprintf(format, args...),
		Pos:     tok.Pos,
	}
}

// NewNodeError creates a diagnostic about node.
func NewNodeError(code ErrorCode, node ast.Node, format string, args ...any) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Kind:    code.Kind(),
		Message: sprintf(format, args...),
		Node:    node,
	}
}

func sprintf(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// List is an ordered collection of diagnostics.
type List []*DiagnosticError

func (l List) HasKind(k Kind) bool {
	for _, e := range l {
		if e.Kind == k {
			return true
		}
	}
	return false
}

func (l List) HasCode(c ErrorCode) bool {
	for _, e := range l {
		if e.Code == c {
			return true
		}
	}
	return false
}

// Filter returns the diagnostics of kind k.
func (l List) Filter(k Kind) List {
	var out List
	for _, e := range l {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}

func (l List) Error() string {
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// Err returns nil for an empty list and the list itself otherwise.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
