package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound covers both a missing record and one owned by another user.
	// Ownership-scoped lookups deliberately do not distinguish the two.
	ErrNotFound = errors.New("not found")

	// ErrSelfDeactivation guards an admin deactivating their own account.
	ErrSelfDeactivation = errors.New("you cannot deactivate your own account")

	// ErrInvalidCredentials covers both an unknown email and a wrong password;
	// login deliberately does not distinguish the two.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAccountDisabled refuses login for deactivated accounts.
	ErrAccountDisabled = errors.New("account is deactivated")

	// ErrEmailTaken refuses signup with an email already on file.
	ErrEmailTaken = errors.New("an account with this email already exists")
)

// FieldError names one offending input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is raised before any mutation is attempted and carries the
// full list of offending fields for the boundary layer to report.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Invalid builds a single-field validation error.
func Invalid(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// AsValidation unwraps err into a ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
