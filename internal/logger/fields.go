package logger

// Standard field names for structured logging.
const (
	FieldComponent = "component"
	FieldSession   = "session"
	FieldOperation = "operation"

	FieldType      = "type"
	FieldSymbol    = "symbol"
	FieldSignature = "signature"
	FieldSuper     = "supertypes"

	FieldTokens     = "tokens"
	FieldErrors     = "errors"
	FieldDurationUS = "duration_us"
	FieldPath       = "path"
	FieldError      = "error"
)
