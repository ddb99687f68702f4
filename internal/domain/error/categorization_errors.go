package error

import "errors"

// Categorization domain errors.
var (
	// ErrInvalidAmount is returned when the transaction amount is not positive.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrEmptyDescription is returned when the transaction description is empty.
	ErrEmptyDescription = errors.New("description cannot be empty")

	// ErrDescriptionTooLong is returned when the description exceeds the maximum length.
	ErrDescriptionTooLong = errors.New("description too long")

	// ErrNoTrainingData is returned when training is requested with no samples
	// and the bootstrap dataset is disabled.
	ErrNoTrainingData = errors.New("no training data available")

	// ErrIncompatibleArtifact is returned when a persisted model artifact cannot
	// be decoded or carries an unsupported schema version.
	ErrIncompatibleArtifact = errors.New("incompatible model artifact")
)

// CategorizationErrorCode defines error codes for categorization errors.
// Format: CAT-XXYYYY where XX is category and YYYY is specific error.
type CategorizationErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAmount      CategorizationErrorCode = "CAT-010001"
	ErrCodeEmptyDescription   CategorizationErrorCode = "CAT-010002"
	ErrCodeDescriptionTooLong CategorizationErrorCode = "CAT-010003"

	// Model errors (02XXXX)
	ErrCodeNoTrainingData       CategorizationErrorCode = "CAT-020001"
	ErrCodeIncompatibleArtifact CategorizationErrorCode = "CAT-020002"
)

// CategorizationError represents a categorization error with code and message.
type CategorizationError struct {
	Code    CategorizationErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CategorizationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CategorizationError) Unwrap() error {
	return e.Err
}

// NewCategorizationError creates a new CategorizationError with the given code and message.
func NewCategorizationError(code CategorizationErrorCode, message string, err error) *CategorizationError {
	return &CategorizationError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
