package registry

import (
	"context"

	domcf "github.com/kailas-cloud/customfields/internal/domain/customfield"
)

// DefinitionLister supplies the stored definitions to register.
type DefinitionLister interface {
	List(ctx context.Context) ([]domcf.Definition, error)
}

// Entity is a host object carrying custom field values.
type Entity interface {
	CustomFields() map[string]any
}

// View is a presentation view over a host object.
type View interface {
	Object() Entity
}

// TopicView is a view whose custom fields live on its topic association
// rather than on the view object itself.
type TopicView interface {
	View
	Topic() Entity
}

// Accessor reads a custom field off an entity.
type Accessor func(Entity) any

// ViewAccessor reads a custom field through a view.
type ViewAccessor func(View) any

// EntityKind is the host handle for one entity class.
type EntityKind interface {
	RegisterCustomField(name string, ft domcf.Type)
	DefineAccessor(name string, fn Accessor)
}

// EntityKinds resolves entity classes to host handles.
type EntityKinds interface {
	ResolveEntityKind(class domcf.EntityClass) (EntityKind, bool)
}

// ViewKind is the host handle for one presentation view.
//
// Accessors defined for topic_view expect a TopicView and yield nil for any
// other View.
type ViewKind interface {
	DeclareAttribute(name string)
	DefineAccessor(name string, fn ViewAccessor)
}

// ViewKinds resolves view targets to host handles.
type ViewKinds interface {
	ResolveViewKind(target domcf.ViewTarget) (ViewKind, bool)
}
