// Package customfield defines custom field definitions: named, typed metadata
// fields attachable to host entity kinds and exposed on presentation views.
package customfield

import "slices"

// Namespace is the fixed store collection under which definitions are kept.
const Namespace = "custom_wizard_custom_fields"

// MinNameLength is the shortest accepted field name, raw or normalized.
const MinNameLength = 3

// EntityClass names a host entity kind that can carry custom fields.
type EntityClass string

// Supported entity classes.
const (
	ClassTopic    EntityClass = "topic"
	ClassGroup    EntityClass = "group"
	ClassCategory EntityClass = "category"
	ClassPost     EntityClass = "post"
)

// Classes lists the supported entity classes.
var Classes = []EntityClass{ClassTopic, ClassGroup, ClassCategory, ClassPost}

// IsValid checks if the entity class is supported.
func (c EntityClass) IsValid() bool { return slices.Contains(Classes, c) }

// Type is the value type of a custom field. It tells the host entity kind
// how to coerce and store the runtime value.
type Type string

// Supported field types.
const (
	TypeString  Type = "string"
	TypeBoolean Type = "boolean"
	TypeInteger Type = "integer"
	TypeJSON    Type = "json"
)

// Types lists the supported field types.
var Types = []Type{TypeString, TypeBoolean, TypeInteger, TypeJSON}

// IsValid checks if the field type is supported.
func (t Type) IsValid() bool { return slices.Contains(Types, t) }

// ViewTarget names a presentation view that may expose a custom field.
type ViewTarget string

// Supported view targets.
const (
	TargetTopicView     ViewTarget = "topic_view"
	TargetTopicListItem ViewTarget = "topic_list_item"
	TargetPost          ViewTarget = "post"
	TargetBasicCategory ViewTarget = "basic_category"
)

// Targets lists the supported view targets.
var Targets = []ViewTarget{TargetTopicView, TargetTopicListItem, TargetPost, TargetBasicCategory}

// IsValid checks if the view target is supported.
func (v ViewTarget) IsValid() bool { return slices.Contains(Targets, v) }

// Definition is an immutable custom field definition.
//
// Attributes are optional at construction time; Validate reports the ones
// that are missing. serializersSet distinguishes an unset serializer list
// from an explicitly empty one.
type Definition struct {
	name           string
	klass          EntityClass
	fieldType      Type
	serializers    []ViewTarget
	serializersSet bool
}

// New creates an unvalidated Definition from typed attributes.
// A nil serializers slice means the attribute is unset; a non-nil empty
// slice means no view exposure.
func New(name string, klass EntityClass, ft Type, serializers []ViewTarget) Definition {
	d := Definition{
		name:      name,
		klass:     klass,
		fieldType: ft,
	}
	if serializers != nil {
		d.serializers = slices.Clone(serializers)
		d.serializersSet = true
	}
	return d
}

// Reconstruct creates a Definition without validation (storage hydration).
// The serializer list is always considered set.
func Reconstruct(name string, klass EntityClass, ft Type, serializers []ViewTarget) Definition {
	if serializers == nil {
		serializers = []ViewTarget{}
	}
	return Definition{
		name:           name,
		klass:          klass,
		fieldType:      ft,
		serializers:    serializers,
		serializersSet: true,
	}
}

// Name returns the name as entered.
func (d Definition) Name() string { return d.name }

// NormalizedName returns the storage-safe token derived from the name.
func (d Definition) NormalizedName() string { return Normalize(d.name) }

// Class returns the owning entity class.
func (d Definition) Class() EntityClass { return d.klass }

// Type returns the field value type.
func (d Definition) Type() Type { return d.fieldType }

// Serializers returns the requested view targets.
func (d Definition) Serializers() []ViewTarget { return slices.Clone(d.serializers) }

// HasSerializers reports whether the serializer attribute was provided at all.
func (d Definition) HasSerializers() bool { return d.serializersSet }

// IsValid reports whether Validate finds no errors.
func (d Definition) IsValid() bool { return len(d.Validate()) == 0 }
