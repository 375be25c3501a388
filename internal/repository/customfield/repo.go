package customfield

import (
	"context"
	"fmt"
	"sort"

	domcf "github.com/kailas-cloud/customfields/internal/domain/customfield"
)

// store is the consumer interface for definitions (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
}

// Repo implements usecase/customfield.Repository on a hash store.
// All definitions live in one hash; the field is the normalized name.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates a definition repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// WithKeyPrefix namespaces the definitions hash, e.g. per tenant.
func (r *Repo) WithKeyPrefix(prefix string) *Repo {
	r.keyPrefix = prefix
	return r
}

// Save upserts a definition under its normalized name. Callers validate first.
func (r *Repo) Save(ctx context.Context, def domcf.Definition) error {
	name := def.NormalizedName()
	payload, err := definitionToRecord(def)
	if err != nil {
		return err
	}
	if err := r.store.HSet(ctx, r.hashKey(), map[string]string{name: payload}); err != nil {
		return fmt.Errorf("hset definition %s: %w", name, err)
	}
	return nil
}

// List returns every stored definition ordered by name.
// A single malformed record fails the whole call.
func (r *Repo) List(ctx context.Context) ([]domcf.Definition, error) {
	m, err := r.store.HGetAll(ctx, r.hashKey())
	if err != nil {
		return nil, fmt.Errorf("hgetall definitions: %w", err)
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	defs := make([]domcf.Definition, 0, len(keys))
	for _, k := range keys {
		def, err := definitionFromRecord(k, m[k])
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// Valkey key pattern: {prefix}custom_wizard_custom_fields

func (r *Repo) hashKey() string {
	return r.keyPrefix + domcf.Namespace
}
