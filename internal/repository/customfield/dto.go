package customfield

import (
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/customfields/internal/domain"
	domcf "github.com/kailas-cloud/customfields/internal/domain/customfield"
)

// record is the JSON payload stored per definition. The normalized name is
// the hash field, not part of the payload.
type record struct {
	Klass       string   `json:"klass"`
	Type        string   `json:"type"`
	Serializers []string `json:"serializers"`

	// Descriptive spelling, accepted on read only.
	EntityClass string   `json:"entityClass,omitempty"`
	FieldType   string   `json:"fieldType,omitempty"`
	ViewTargets []string `json:"viewTargets,omitempty"`
}

// definitionToRecord serializes a definition payload for HSET.
func definitionToRecord(d domcf.Definition) (string, error) {
	targets := d.Serializers()
	rec := record{
		Klass:       string(d.Class()),
		Type:        string(d.Type()),
		Serializers: make([]string, len(targets)),
	}
	for i, t := range targets {
		rec.Serializers[i] = string(t)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("marshal definition %s: %w", d.NormalizedName(), err)
	}
	return string(data), nil
}

// definitionFromRecord hydrates a definition from one HGETALL entry.
func definitionFromRecord(key, payload string) (domcf.Definition, error) {
	var rec record
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return domcf.Definition{}, fmt.Errorf("%w: key %s: %w", domain.ErrMalformedRecord, key, err)
	}
	klass, ft, serializers := rec.Klass, rec.Type, rec.Serializers
	if klass == "" {
		klass = rec.EntityClass
	}
	if ft == "" {
		ft = rec.FieldType
	}
	if serializers == nil {
		serializers = rec.ViewTargets
	}

	targets := make([]domcf.ViewTarget, len(serializers))
	for i, s := range serializers {
		targets[i] = domcf.ViewTarget(s)
	}
	return domcf.Reconstruct(key, domcf.EntityClass(klass), domcf.Type(ft), targets), nil
}
