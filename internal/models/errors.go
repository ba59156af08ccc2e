package models

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrNotAllowed = errors.New("not allowed")
)

type DomainError struct {
	Kind    error
	Message string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *DomainError) Unwrap() error { return e.Kind }

func NotFound(msg string) error   { return &DomainError{Kind: ErrNotFound, Message: msg} }
func NotAllowed(msg string) error { return &DomainError{Kind: ErrNotAllowed, Message: msg} }

// ErrorMessage returns the caller-facing message of a domain error, or the plain error text.
func ErrorMessage(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}
