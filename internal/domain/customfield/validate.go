package customfield

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/customfields/internal/domain"
)

// Attribute names, in validation order.
const (
	AttrName        = "name"
	AttrClass       = "klass"
	AttrType        = "type"
	AttrSerializers = "serializers"
)

// ErrorKind classifies a validation failure.
type ErrorKind string

// Validation error kinds.
const (
	MissingAttribute      ErrorKind = "missing_attribute"
	UnsupportedClass      ErrorKind = "unsupported_class"
	UnsupportedSerializer ErrorKind = "unsupported_serializer"
	UnsupportedType       ErrorKind = "unsupported_type"
	NameTooShort          ErrorKind = "name_too_short"
)

// ValidationError is a single rule violation.
type ValidationError struct {
	Kind      ErrorKind
	Attribute string
	Value     string
}

func (e ValidationError) Error() string {
	switch e.Kind {
	case MissingAttribute:
		return "attribute required: " + e.Attribute
	case UnsupportedClass:
		return "unsupported class: " + e.Value
	case UnsupportedSerializer:
		return "unsupported serializer: " + e.Value
	case UnsupportedType:
		return "unsupported type: " + e.Value
	case NameTooShort:
		return fmt.Sprintf("field name is too short (min %d)", MinNameLength)
	default:
		return string(e.Kind)
	}
}

// Errors is the ordered list of violations found by Validate.
type Errors []ValidationError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, ve := range e {
		parts[i] = ve.Error()
	}
	return domain.ErrInvalidDefinition.Error() + ": " + strings.Join(parts, "; ")
}

// Unwrap lets errors.Is match domain.ErrInvalidDefinition.
func (e Errors) Unwrap() error { return domain.ErrInvalidDefinition }

// Has reports whether any violation of the given kind is present.
func (e Errors) Has(kind ErrorKind) bool {
	for _, ve := range e {
		if ve.Kind == kind {
			return true
		}
	}
	return false
}

// Validate checks every attribute and collects all violations.
// Checks are independent: one definition can report several at once.
func (d Definition) Validate() Errors {
	var errs Errors

	if isBlank(d.name) {
		errs = append(errs, ValidationError{Kind: MissingAttribute, Attribute: AttrName})
	} else if len(d.name) < MinNameLength || len(Normalize(d.name)) < MinNameLength {
		errs = append(errs, ValidationError{Kind: NameTooShort, Attribute: AttrName, Value: d.name})
	}

	if isBlank(string(d.klass)) {
		errs = append(errs, ValidationError{Kind: MissingAttribute, Attribute: AttrClass})
	} else if !d.klass.IsValid() {
		errs = append(errs, ValidationError{Kind: UnsupportedClass, Attribute: AttrClass, Value: string(d.klass)})
	}

	if isBlank(string(d.fieldType)) {
		errs = append(errs, ValidationError{Kind: MissingAttribute, Attribute: AttrType})
	} else if !d.fieldType.IsValid() {
		errs = append(errs, ValidationError{Kind: UnsupportedType, Attribute: AttrType, Value: string(d.fieldType)})
	}

	if !d.serializersSet {
		errs = append(errs, ValidationError{Kind: MissingAttribute, Attribute: AttrSerializers})
	} else if len(d.serializers) > 0 && !intersectsTargets(d.serializers) {
		errs = append(errs, ValidationError{
			Kind:      UnsupportedSerializer,
			Attribute: AttrSerializers,
			Value:     joinTargets(d.serializers),
		})
	}

	return errs
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }

// intersectsTargets reports whether at least one requested target is supported.
func intersectsTargets(targets []ViewTarget) bool {
	for _, t := range targets {
		if t.IsValid() {
			return true
		}
	}
	return false
}

func joinTargets(targets []ViewTarget) string {
	s := make([]string, len(targets))
	for i, t := range targets {
		s[i] = string(t)
	}
	return strings.Join(s, ",")
}
