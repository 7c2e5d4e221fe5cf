package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Dataset errors.
	ErrEmptyDataset  = errors.New("dataset is empty")
	ErrMissingColumn = errors.New("required column missing")
	ErrUnknownLevel  = errors.New("categorical value outside declared levels")

	// Trial errors.
	ErrNoTrials   = errors.New("no trial results to select from")
	ErrNotFitted  = errors.New("classifier has not been fitted")
	ErrFoldsRange = errors.New("fold count out of range")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
