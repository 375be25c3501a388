package host

import (
	"encoding/json"
	"fmt"
	"maps"
	"sync"

	"github.com/spf13/cast"

	domcf "github.com/kailas-cloud/customfields/internal/domain/customfield"
	"github.com/kailas-cloud/customfields/internal/usecase/registry"
)

var _ registry.EntityKind = (*EntityKind)(nil)

// Record is a host object of some entity kind. It is safe for concurrent use.
type Record struct {
	kind   domcf.EntityClass
	mu     sync.RWMutex
	fields map[string]any
}

// NewRecord creates an empty record of the given kind.
func NewRecord(kind domcf.EntityClass) *Record {
	return &Record{kind: kind, fields: make(map[string]any)}
}

// Kind returns the record's entity class.
func (r *Record) Kind() domcf.EntityClass { return r.kind }

// CustomFields returns a snapshot of the record's stored custom field values.
func (r *Record) CustomFields() map[string]any {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.fields)
}

// EntityKind holds the custom field declarations and accessors of one entity class.
type EntityKind struct {
	class     domcf.EntityClass
	mu        sync.RWMutex
	types     map[string]domcf.Type
	accessors map[string]registry.Accessor
}

// NewEntityKind creates an entity kind with no custom fields.
func NewEntityKind(class domcf.EntityClass) *EntityKind {
	return &EntityKind{
		class:     class,
		types:     make(map[string]domcf.Type),
		accessors: make(map[string]registry.Accessor),
	}
}

// Class returns the entity class this kind serves.
func (k *EntityKind) Class() domcf.EntityClass { return k.class }

// RegisterCustomField declares that records of this kind carry name as ft.
func (k *EntityKind) RegisterCustomField(name string, ft domcf.Type) {
	k.mu.Lock()
	k.types[name] = ft
	k.mu.Unlock()
}

// DefineAccessor attaches a reader under name, replacing any previous one.
func (k *EntityKind) DefineAccessor(name string, fn registry.Accessor) {
	k.mu.Lock()
	k.accessors[name] = fn
	k.mu.Unlock()
}

// FieldType returns the declared type of a custom field.
func (k *EntityKind) FieldType(name string) (domcf.Type, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	ft, ok := k.types[name]
	return ft, ok
}

// Read invokes the accessor named name on rec. ok is false when no
// accessor is defined.
func (k *EntityKind) Read(rec registry.Entity, name string) (any, bool) {
	k.mu.RLock()
	fn, ok := k.accessors[name]
	k.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return fn(rec), true
}

// Set coerces raw to the declared type and stores it on rec.
func (k *EntityKind) Set(rec *Record, name string, raw any) error {
	if rec.kind != k.class {
		return fmt.Errorf("record of kind %q set through %q", rec.kind, k.class)
	}
	ft, ok := k.FieldType(name)
	if !ok {
		return fmt.Errorf("custom field %q is not registered on %q", name, k.class)
	}
	v, err := Coerce(ft, raw)
	if err != nil {
		return fmt.Errorf("custom field %q: %w", name, err)
	}
	rec.mu.Lock()
	rec.fields[name] = v
	rec.mu.Unlock()
	return nil
}

// Coerce converts raw into the Go representation of ft:
// string, bool, int64, or a decoded JSON value.
func Coerce(ft domcf.Type, raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	switch ft {
	case domcf.TypeString:
		return cast.ToStringE(raw)
	case domcf.TypeBoolean:
		return cast.ToBoolE(raw)
	case domcf.TypeInteger:
		return cast.ToInt64E(raw)
	case domcf.TypeJSON:
		s, ok := raw.(string)
		if !ok {
			return raw, nil
		}
		var v any
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			return nil, fmt.Errorf("invalid json value: %w", err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported field type %q", ft)
	}
}
