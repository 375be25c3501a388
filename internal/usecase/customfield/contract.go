package customfield

import (
	"context"

	domcf "github.com/kailas-cloud/customfields/internal/domain/customfield"
)

// Repository defines the storage contract for custom field definitions.
type Repository interface {
	Save(ctx context.Context, def domcf.Definition) error
	List(ctx context.Context) ([]domcf.Definition, error)
}
