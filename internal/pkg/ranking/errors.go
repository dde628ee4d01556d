package ranking

import "errors"

// Stable machine-readable validation codes of the listing contract.
const (
	CodeInvalidStatus   = "INVALID_STATUS"
	CodeInvalidIsland   = "INVALID_ISLAND"
	CodeInvalidCategory = "INVALID_CATEGORY"
	CodeInvalidArea     = "INVALID_AREA"
	CodeInvalidLimit    = "INVALID_LIMIT"
	CodeInvalidCursor   = "INVALID_CURSOR"
)

// ValidationError rejects a request before any query runs.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a typed validation error with a stable code.
func NewValidationError(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

// AsValidationError unwraps err into a ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
