package error

import "errors"

// Ledger domain errors.
var (
	// ErrAccountNotFound is returned when an account is not found in the ledger.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidDateRange is returned when the end of a window precedes its start.
	ErrInvalidDateRange = errors.New("end date must be after start date")

	// ErrInvalidMonths is returned when a trailing-months window is not positive.
	ErrInvalidMonths = errors.New("months must be greater than zero")
)

// LedgerErrorCode defines error codes for ledger errors.
// Format: LGR-XXYYYY where XX is category and YYYY is specific error.
type LedgerErrorCode string

const (
	ErrCodeAccountNotFound  LedgerErrorCode = "LGR-010001"
	ErrCodeInvalidDateRange LedgerErrorCode = "LGR-010002"
	ErrCodeInvalidMonths    LedgerErrorCode = "LGR-010003"
)

// LedgerError represents a ledger error with code and message.
type LedgerError struct {
	Code    LedgerErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LedgerError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// NewLedgerError creates a new LedgerError with the given code and message.
func NewLedgerError(code LedgerErrorCode, message string, err error) *LedgerError {
	return &LedgerError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
