package service

import (
	"errors"
	"sort"
	"strings"
)

var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrBookingNotLoaded = errors.New("booking is not in the current ticket list")
var ErrDeleteCancelled = errors.New("delete cancelled")

// ValidationError is raised before any network call. Title and Message are
// what the blocking prompt shows; Fields carries inline field errors.
type ValidationError struct {
	Title   string
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Title + ": " + e.Message
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return e.Title + ": " + strings.Join(parts, "; ")
}

func newValidationError(title, message string) *ValidationError {
	return &ValidationError{Title: title, Message: message}
}

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
