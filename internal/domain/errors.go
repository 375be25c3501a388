package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDefinition signals a custom field definition that failed validation.
	ErrInvalidDefinition = errors.New("invalid custom field definition")
	// ErrMalformedRecord signals a stored definition payload that cannot be decoded.
	ErrMalformedRecord = errors.New("malformed custom field record")
	// ErrUnknownEntityKind signals an entity class the host registry does not know.
	ErrUnknownEntityKind = errors.New("unknown entity kind")
	// ErrUnknownViewKind signals a view target the host registry does not know.
	ErrUnknownViewKind = errors.New("unknown view kind")
	// ErrAccessorCollision signals two definitions attaching the same accessor
	// to the same entity or view kind during one registration pass.
	ErrAccessorCollision = errors.New("accessor collision")
)

// RegistrationError wraps a registration failure with the definition and kind involved.
type RegistrationError struct {
	Field string
	Kind  string
	Err   error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("register field %q on %q: %s", e.Field, e.Kind, e.Err.Error())
}

func (e *RegistrationError) Unwrap() error { return e.Err }
