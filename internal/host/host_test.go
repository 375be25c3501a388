package host

import (
	"fmt"
	"sync"
	"testing"

	domcf "github.com/kailas-cloud/customfields/internal/domain/customfield"
	"github.com/kailas-cloud/customfields/internal/usecase/registry"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		name string
		ft   domcf.Type
		raw  any
		want any
	}{
		{"string from int", domcf.TypeString, 42, "42"},
		{"string passthrough", domcf.TypeString, "high", "high"},
		{"bool from string", domcf.TypeBoolean, "true", true},
		{"bool from int", domcf.TypeBoolean, 0, false},
		{"int from string", domcf.TypeInteger, "7", int64(7)},
		{"int from float", domcf.TypeInteger, 3.0, int64(3)},
		{"nil stays nil", domcf.TypeInteger, nil, nil},
		{"json number", domcf.TypeJSON, "12", float64(12)},
		{"json non-string kept", domcf.TypeJSON, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.ft, tt.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Coerce(%q, %v) = %#v, want %#v", tt.ft, tt.raw, got, tt.want)
			}
		})
	}
}

func TestCoerce_JSONObject(t *testing.T) {
	got, err := Coerce(domcf.TypeJSON, `{"a":[1,2]}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("expected object, got %T", got)
	}
	if arr, ok := m["a"].([]any); !ok || len(arr) != 2 {
		t.Errorf("unexpected value: %v", m)
	}
}

func TestCoerce_Errors(t *testing.T) {
	tests := []struct {
		name string
		ft   domcf.Type
		raw  any
	}{
		{"int from word", domcf.TypeInteger, "many"},
		{"bool from word", domcf.TypeBoolean, "maybe"},
		{"bad json", domcf.TypeJSON, "{nope"},
		{"unknown type", domcf.Type("date"), "2024-01-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Coerce(tt.ft, tt.raw); err == nil {
				t.Errorf("expected error for %v", tt.raw)
			}
		})
	}
}

func TestEntityKind_SetAndRead(t *testing.T) {
	k := NewEntityKind(domcf.ClassTopic)
	rec := NewRecord(domcf.ClassTopic)

	if err := k.Set(rec, "priority", "3"); err == nil {
		t.Fatal("expected error for unregistered field")
	}

	k.RegisterCustomField("priority", domcf.TypeInteger)
	k.DefineAccessor("priority", func(e registry.Entity) any { return e.CustomFields()["priority"] })

	if err := k.Set(rec, "priority", "3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := k.Read(rec, "priority")
	if !ok || got != int64(3) {
		t.Errorf("Read = %v, %v; want 3, true", got, ok)
	}
	if _, ok := k.Read(rec, "missing"); ok {
		t.Error("expected no accessor for missing")
	}
}

func TestEntityKind_SetWrongKind(t *testing.T) {
	k := NewEntityKind(domcf.ClassTopic)
	k.RegisterCustomField("priority", domcf.TypeInteger)

	if err := k.Set(NewRecord(domcf.ClassPost), "priority", 1); err == nil {
		t.Fatal("expected error for record of another kind")
	}
}

func TestEntityKind_ConcurrentSetAndRead(t *testing.T) {
	k := NewEntityKind(domcf.ClassTopic)
	k.RegisterCustomField("priority", domcf.TypeInteger)
	k.DefineAccessor("priority", func(e registry.Entity) any { return e.CustomFields()["priority"] })
	rec := NewRecord(domcf.ClassTopic)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			if err := k.Set(rec, "priority", fmt.Sprint(i)); err != nil {
				t.Errorf("Set: %v", err)
			}
		}(i)
		go func() {
			defer wg.Done()
			k.Read(rec, "priority")
		}()
	}
	wg.Wait()

	if _, ok := rec.CustomFields()["priority"].(int64); !ok {
		t.Errorf("expected an int64 value, got %#v", rec.CustomFields()["priority"])
	}
}

func TestRecord_CustomFieldsIsSnapshot(t *testing.T) {
	rec := NewRecord(domcf.ClassPost)
	rec.fields["severity"] = "high"

	rec.CustomFields()["severity"] = "low"
	if rec.fields["severity"] != "high" {
		t.Error("CustomFields() must not expose the live map")
	}
}

func TestRecord_NilCustomFields(t *testing.T) {
	var rec *Record
	if rec.CustomFields() != nil {
		t.Error("nil record should have no fields")
	}
}

func TestViewKind_DeclareAttributeDedup(t *testing.T) {
	k := NewViewKind(domcf.TargetPost)
	k.DeclareAttribute("severity")
	k.DeclareAttribute("priority")
	k.DeclareAttribute("severity")

	got := k.Attributes()
	if len(got) != 2 || got[0] != "severity" || got[1] != "priority" {
		t.Errorf("Attributes() = %v", got)
	}

	got[0] = "mutated"
	if k.Attributes()[0] != "severity" {
		t.Error("Attributes() must return a copy")
	}
}

func TestViewKind_Serialize(t *testing.T) {
	k := NewViewKind(domcf.TargetPost)
	k.DeclareAttribute("severity")
	k.DeclareAttribute("undefined")
	k.DefineAccessor("severity", func(v registry.View) any {
		return v.Object().CustomFields()["severity"]
	})

	rec := NewRecord(domcf.ClassPost)
	rec.fields["severity"] = "high"

	out := k.Serialize(NewSubjectView(rec))
	if len(out) != 1 || out["severity"] != "high" {
		t.Errorf("Serialize() = %v", out)
	}
}

func TestTopicView(t *testing.T) {
	topic := NewRecord(domcf.ClassTopic)
	v := NewTopicView(topic)

	if v.Topic().(*Record) != topic {
		t.Error("Topic() must return the association")
	}
	if v.Object().(*Record) == topic {
		t.Error("Object() must be the view's own record")
	}
}

func TestStandardRegistry(t *testing.T) {
	r := NewStandardRegistry()

	for _, c := range domcf.Classes {
		if _, ok := r.ResolveEntityKind(c); !ok {
			t.Errorf("missing entity kind %q", c)
		}
	}
	for _, target := range domcf.Targets {
		if _, ok := r.ResolveViewKind(target); !ok {
			t.Errorf("missing view kind %q", target)
		}
	}
	if _, ok := r.ResolveEntityKind("user"); ok {
		t.Error("unexpected entity kind user")
	}
	if _, ok := r.ResolveViewKind("bogus_view"); ok {
		t.Error("unexpected view kind bogus_view")
	}
	if got := r.ViewTargets(); len(got) != len(domcf.Targets) || got[0] != domcf.TargetBasicCategory {
		t.Errorf("ViewTargets() = %v", got)
	}
	if r.EntityKind("user") != nil {
		t.Error("EntityKind should return nil for unknown class")
	}
}

func TestRegistry_AddReplaces(t *testing.T) {
	r := NewRegistry()
	first := NewEntityKind(domcf.ClassGroup)
	second := NewEntityKind(domcf.ClassGroup)

	r.AddEntityKind(first)
	r.AddEntityKind(second)

	if r.EntityKind(domcf.ClassGroup) != second {
		t.Error("expected later kind to replace earlier one")
	}
}
