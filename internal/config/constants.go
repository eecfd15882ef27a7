package config

// SourceFileExt is the extension of formula files read by the CLI.
const SourceFileExt = ".gdl"

// SourceFileExtensions are all recognized formula file extensions
var SourceFileExtensions = []string{".gdl", ".logic"}

// Built-in type names registered before any parsing occurs.
const (
	EntityTypeName      = "Entity"
	AgentTypeName       = "Agent"
	EventTypeName       = "Event"
	ActionTypeName      = "Action"
	PropositionTypeName = "Proposition"
	BooleanTypeName     = "Boolean"
	IntegerTypeName     = "Integer"
	StringTypeName      = "String"
	RealTypeName        = "Real"
)

// DefaultTermTypeName is the type given to unannotated variables and unknown
// constants, and the fallback when an annotation names an unknown type.
const DefaultTermTypeName = EntityTypeName

// DefaultPredicateResultName is the result type of an application whose
// operator has no function signature.
const DefaultPredicateResultName = BooleanTypeName

// MaxRecursionDepth bounds parser nesting.
const MaxRecursionDepth = 512

// Metadata keys written by the parser.
const (
	MetaSession     = "session"
	MetaProbability = "probability"
	MetaSource      = "source"
	// MetaAnnotated marks a constant or free variable written with an explicit
	// type annotation, so printing can restore it.
	MetaAnnotated = "annotated"
)

// BuiltinType describes one bootstrap type and its direct supertypes.
type BuiltinType struct {
	Name       string
	Supertypes []string
}

// BuiltinTypes is the bootstrap hierarchy, in registration order.
var BuiltinTypes = []BuiltinType{
	{Name: EntityTypeName},
	{Name: AgentTypeName, Supertypes: []string{EntityTypeName}},
	{Name: EventTypeName},
	{Name: ActionTypeName, Supertypes: []string{EventTypeName}},
	{Name: PropositionTypeName},
	{Name: BooleanTypeName},
	{Name: IntegerTypeName},
	{Name: StringTypeName},
	{Name: RealTypeName},
}
