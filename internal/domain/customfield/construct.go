package customfield

import (
	"fmt"
	"sort"
	"strings"
)

// attrAliases maps folded input keys to canonical attribute names.
var attrAliases = map[string]string{
	"name":        AttrName,
	"klass":       AttrClass,
	"class":       AttrClass,
	"entityclass": AttrClass,
	"type":        AttrType,
	"fieldtype":   AttrType,
	"serializers": AttrSerializers,
	"viewtargets": AttrSerializers,
}

// foldKey makes attribute lookup insensitive to case, a leading ":" and
// word separators, so "entity_class", "entityClass" and ":EntityClass" agree.
func foldKey(k string) string {
	k = strings.TrimPrefix(strings.TrimSpace(k), ":")
	k = strings.ToLower(k)
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(k)
}

// Construct builds an unvalidated Definition from raw key/value input.
// Unrecognized keys are ignored. Blank values leave the attribute unset.
// When several aliases of one attribute are present, the lexically first
// key with a non-blank value wins.
func Construct(raw map[string]any) Definition {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var d Definition
	for _, k := range keys {
		attr, ok := attrAliases[foldKey(k)]
		if !ok {
			continue
		}
		v := raw[k]
		switch attr {
		case AttrName:
			if d.name == "" {
				d.name = scalar(v)
			}
		case AttrClass:
			if d.klass == "" {
				d.klass = EntityClass(scalar(v))
			}
		case AttrType:
			if d.fieldType == "" {
				d.fieldType = Type(scalar(v))
			}
		case AttrSerializers:
			if !d.serializersSet {
				d.serializers, d.serializersSet = targetList(v)
			}
		}
	}
	return d
}

// scalar renders a raw value as a trimmed string; nil becomes "".
func scalar(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case fmt.Stringer:
		return strings.TrimSpace(s.String())
	default:
		return strings.TrimSpace(fmt.Sprint(s))
	}
}

// targetList accepts a list of strings, a list of arbitrary scalars or a
// comma-separated string. The second result is false when the value is absent.
// Blank entries are dropped next to real ones; a list made only of blanks is
// kept as blank targets so validation rejects it.
func targetList(v any) ([]ViewTarget, bool) {
	var items []string
	switch s := v.(type) {
	case nil:
		return nil, false
	case []ViewTarget:
		return append([]ViewTarget{}, s...), true
	case []string:
		items = s
	case []any:
		items = make([]string, len(s))
		for i, e := range s {
			items[i] = scalar(e)
		}
	case string:
		if strings.TrimSpace(s) == "" {
			return nil, false
		}
		items = strings.Split(s, ",")
	default:
		items = []string{scalar(s)}
	}

	targets := make([]ViewTarget, 0, len(items))
	blanks := make([]ViewTarget, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			targets = append(targets, ViewTarget(it))
		} else {
			blanks = append(blanks, "")
		}
	}
	if len(targets) == 0 {
		return blanks, true
	}
	return targets, true
}
