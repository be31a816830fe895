package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Composition errors
const (
	// ErrCodeCompositionOrder indicates an append violated source -> transform -> sink ordering.
	ErrCodeCompositionOrder ErrorCode = "COMPOSITION_ORDER"
	// ErrCodeNothingToRun indicates a chain with no sources or no sinks was executed.
	ErrCodeNothingToRun ErrorCode = "NOTHING_TO_RUN"
)

// Resource errors
const (
	// ErrCodeResourceAccess indicates a source could not open its target.
	ErrCodeResourceAccess ErrorCode = "RESOURCE_ACCESS"
	// ErrCodeResourceScope indicates a scoped resource was used outside its open scope.
	ErrCodeResourceScope ErrorCode = "RESOURCE_SCOPE"
)

// Validation errors
const (
	// ErrCodeInvalidItem indicates a stream item carries invalid metadata.
	ErrCodeInvalidItem ErrorCode = "INVALID_ITEM"
	// ErrCodeInvalidPattern indicates a glob or regex pattern failed to compile.
	ErrCodeInvalidPattern ErrorCode = "INVALID_PATTERN"
	// ErrCodeInvalidDefinition indicates a pipeline definition file is malformed.
	ErrCodeInvalidDefinition ErrorCode = "INVALID_DEFINITION"
)

// Execution errors
const (
	// ErrCodeComponentFailure indicates a transform or sink failed while processing an item.
	ErrCodeComponentFailure ErrorCode = "COMPONENT_FAILURE"
	// ErrCodeCanceled indicates the run context was canceled mid-stream.
	ErrCodeCanceled ErrorCode = "CANCELED"
)

// buildTimeCodes are the codes surfaced before any record is produced.
var buildTimeCodes = map[ErrorCode]bool{
	ErrCodeCompositionOrder:  true,
	ErrCodeInvalidItem:       true,
	ErrCodeInvalidPattern:    true,
	ErrCodeInvalidDefinition: true,
}

// IsBuildTimeCode returns true if the code is raised during chain construction
// rather than during a run.
func IsBuildTimeCode(code ErrorCode) bool {
	return buildTimeCodes[code]
}
