package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrAdventureNotFound  = errors.New("adventure not found")
	// ErrAIDisabled is returned by quiz generation when the AI
	// integration is administratively off.
	ErrAIDisabled = errors.New("quiz generation is disabled")
	// ErrUnsafePrompt is returned when input trips the prompt-injection
	// filter before any upstream call is made.
	ErrUnsafePrompt = errors.New("prompt rejected by safety filter")
)

// ValidationError reports missing or malformed caller input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalidInput(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ModerationError rejects a submission whose content failed moderation.
// The reason is surfaced to the caller.
type ModerationError struct {
	Reason string
}

func (e *ModerationError) Error() string {
	return "content rejected by moderation: " + e.Reason
}

// GenerationError reports a quiz generation attempt that could not
// produce a structurally valid question set.
type GenerationError struct {
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
