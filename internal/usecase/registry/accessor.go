package registry

import domcf "github.com/kailas-cloud/customfields/internal/domain/customfield"

// fieldAccessor returns the entity-level reader for name.
func fieldAccessor(name string) Accessor {
	return func(e Entity) any {
		if e == nil {
			return nil
		}
		return e.CustomFields()[name]
	}
}

// viewAccessor returns the view-level reader for name. topic_view goes
// through the view's topic; every other target reads the view's object.
func viewAccessor(target domcf.ViewTarget, read Accessor) ViewAccessor {
	if target == domcf.TargetTopicView {
		return func(v View) any {
			tv, ok := v.(TopicView)
			if !ok {
				return nil
			}
			return read(tv.Topic())
		}
	}
	return func(v View) any {
		if v == nil {
			return nil
		}
		return read(v.Object())
	}
}
