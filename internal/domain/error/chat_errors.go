// Package error defines domain-specific errors for the Finance Assistant application.
package error

import "errors"

// Chat domain errors.
var (
	// ErrEmptyMessage is returned when a chat message is empty.
	ErrEmptyMessage = errors.New("message cannot be empty")

	// ErrMessageTooLong is returned when a chat message exceeds the maximum length.
	ErrMessageTooLong = errors.New("message too long")

	// ErrConversationNotFound is returned when a conversation does not exist.
	ErrConversationNotFound = errors.New("conversation not found")
)

// ChatErrorCode defines error codes for chat errors.
// Format: CHT-XXYYYY where XX is category and YYYY is specific error.
type ChatErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeEmptyMessage         ChatErrorCode = "CHT-010001"
	ErrCodeMessageTooLong       ChatErrorCode = "CHT-010002"
	ErrCodeConversationNotFound ChatErrorCode = "CHT-010003"
)

// ChatError represents a chat error with code and message.
type ChatError struct {
	Code    ChatErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ChatError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ChatError) Unwrap() error {
	return e.Err
}

// NewChatError creates a new ChatError with the given code and message.
func NewChatError(code ChatErrorCode, message string, err error) *ChatError {
	return &ChatError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
