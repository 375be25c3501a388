package host

import (
	"slices"
	"sync"

	domcf "github.com/kailas-cloud/customfields/internal/domain/customfield"
	"github.com/kailas-cloud/customfields/internal/usecase/registry"
)

var (
	_ registry.ViewKind  = (*ViewKind)(nil)
	_ registry.View      = SubjectView{}
	_ registry.TopicView = TopicView{}
)

// ViewKind is a presentation schema: an ordered attribute list plus readers.
type ViewKind struct {
	target     domcf.ViewTarget
	mu         sync.RWMutex
	attributes []string
	accessors  map[string]registry.ViewAccessor
}

// NewViewKind creates a view kind with no custom attributes.
func NewViewKind(target domcf.ViewTarget) *ViewKind {
	return &ViewKind{
		target:    target,
		accessors: make(map[string]registry.ViewAccessor),
	}
}

// Target returns the view target this kind serves.
func (k *ViewKind) Target() domcf.ViewTarget { return k.target }

// DeclareAttribute adds name to the output schema. Repeats are ignored.
func (k *ViewKind) DeclareAttribute(name string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if !slices.Contains(k.attributes, name) {
		k.attributes = append(k.attributes, name)
	}
}

// DefineAccessor attaches a reader under name, replacing any previous one.
func (k *ViewKind) DefineAccessor(name string, fn registry.ViewAccessor) {
	k.mu.Lock()
	k.accessors[name] = fn
	k.mu.Unlock()
}

// Attributes returns the declared attributes in declaration order.
func (k *ViewKind) Attributes() []string {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return slices.Clone(k.attributes)
}

// Read invokes the accessor named name on v.
func (k *ViewKind) Read(v registry.View, name string) (any, bool) {
	k.mu.RLock()
	fn, ok := k.accessors[name]
	k.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return fn(v), true
}

// Serialize renders every declared attribute that has an accessor.
func (k *ViewKind) Serialize(v registry.View) map[string]any {
	k.mu.RLock()
	defer k.mu.RUnlock()
	out := make(map[string]any, len(k.attributes))
	for _, name := range k.attributes {
		if fn, ok := k.accessors[name]; ok {
			out[name] = fn(v)
		}
	}
	return out
}

// SubjectView presents a single record directly.
type SubjectView struct {
	object *Record
}

// NewSubjectView wraps rec for serialization.
func NewSubjectView(rec *Record) SubjectView { return SubjectView{object: rec} }

// Object returns the underlying record.
func (v SubjectView) Object() registry.Entity { return v.object }

// TopicView is the full topic page. Its own object carries view-level
// state; custom fields are read off the topic association.
type TopicView struct {
	object *Record
	topic  *Record
}

// NewTopicView creates a topic page view for topic.
func NewTopicView(topic *Record) TopicView {
	return TopicView{object: NewRecord(domcf.EntityClass(domcf.TargetTopicView)), topic: topic}
}

// Object returns the view's own state record.
func (v TopicView) Object() registry.Entity { return v.object }

// Topic returns the topic association.
func (v TopicView) Topic() registry.Entity { return v.topic }
