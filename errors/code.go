package errors

// Codes classify graph consistency failures. They are not meant to be
// exhaustive: anything unclassified reports CodeInternal.
const (
	CodeInternal = iota + 1
	CodeInvalidState
	CodeProtected
	CodeNotFound
)

func InvalidState() ErrorEnricher { return WithCode(CodeInvalidState) }
func Protected() ErrorEnricher    { return WithCode(CodeProtected) }
func NotFound() ErrorEnricher     { return WithCode(CodeNotFound) }
