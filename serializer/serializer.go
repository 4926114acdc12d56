// Package serializer converts schema-described domain objects to and
// from generic JSON trees. Marshal and Unmarshal are duals: for every
// registered type T and instance x, Unmarshal(Marshal(x), T) equals x
// modulo attributes that are nil on x, which round-trip to absence.
package serializer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/otterscale/kubeclient/apierrors"
	"github.com/otterscale/kubeclient/scheme"
)

const (
	dateLayout = "2006-01-02"
)

// Marshal converts a value to its wire form, a tree of JSON-encodable
// values. nil stays nil, primitives pass through, dates and datetimes
// become ISO-8601 strings, sequences and string-keyed maps recurse in
// order, and domain objects become maps keyed by wire name with nil
// attributes pruned.
func Marshal(v any) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case bool, string, int, int32, int64, float32, float64, []byte:
		return t, nil
	case time.Time:
		return t.Format(time.RFC3339), nil
	case []string:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = e
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			m, err := Marshal(e)
			if err != nil {
				return nil, err
			}
			out[i] = m
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			m, err := Marshal(e)
			if err != nil {
				return nil, err
			}
			out[k] = m
		}
		return out, nil
	case *scheme.Object:
		return marshalObject(t)
	default:
		return nil, &apierrors.SerializationError{
			Reason: fmt.Sprintf("cannot serialize value of type %T", v),
		}
	}
}

func marshalObject(o *scheme.Object) (map[string]any, error) {
	desc := o.Descriptor()
	out := make(map[string]any, len(desc.Attrs))
	for _, a := range desc.Attrs {
		v := o.Get(a.Name)
		if v == nil {
			continue
		}
		m, err := marshalAttr(v, a.Type)
		if err != nil {
			return nil, err
		}
		out[a.Wire] = m
	}
	return out, nil
}

// marshalAttr applies the date-only layout when the declared type asks
// for it; everything else defers to Marshal.
func marshalAttr(v any, declared string) (any, error) {
	if declared == "date" {
		if t, ok := v.(time.Time); ok {
			return t.Format(dateLayout), nil
		}
	}
	return Marshal(v)
}

// Unmarshal converts a wire tree to the declared type. The declared
// type is a primitive tag, a registered type name, "list[T]", or
// "dict(K, V)". nil input stays nil. Missing wire fields leave the
// attribute nil; unknown wire fields are ignored; map keys are taken
// verbatim as strings.
func Unmarshal(tree any, declared string) (any, error) {
	if tree == nil {
		return nil, nil
	}

	if elem, ok := listElem(declared); ok {
		seq, ok := tree.([]any)
		if !ok {
			return nil, &apierrors.SerializationError{
				Reason: fmt.Sprintf("expected array for %s, got %T", declared, tree),
			}
		}
		out := make([]any, len(seq))
		for i, e := range seq {
			v, err := Unmarshal(e, elem)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}

	if elem, ok := dictValue(declared); ok {
		m, ok := tree.(map[string]any)
		if !ok {
			return nil, &apierrors.SerializationError{
				Reason: fmt.Sprintf("expected object for %s, got %T", declared, tree),
			}
		}
		out := make(map[string]any, len(m))
		for k, e := range m {
			v, err := Unmarshal(e, elem)
			if err != nil {
				return nil, err
			}
			out[k] = v
		}
		return out, nil
	}

	switch declared {
	case "object":
		return tree, nil
	case "str":
		return toString(tree)
	case "bool":
		return toBool(tree)
	case "int", "long":
		return toInt(tree)
	case "float":
		return toFloat(tree)
	case "date":
		return parseDate(tree)
	case "datetime":
		return parseDatetime(tree)
	}

	return unmarshalNamed(tree, declared)
}

func unmarshalNamed(tree any, typeName string) (any, error) {
	desc, ok := scheme.Lookup(typeName)
	if !ok {
		return nil, &apierrors.ValidationError{Reason: fmt.Sprintf("unknown type %q", typeName)}
	}

	m, ok := tree.(map[string]any)
	if !ok {
		return nil, &apierrors.SerializationError{
			Reason: fmt.Sprintf("expected object for %s, got %T", typeName, tree),
		}
	}

	// Polymorphic types dispatch on their discriminator before any
	// attribute is read.
	if desc.Discriminator != "" && desc.ResolveSubtype != nil {
		if sub := desc.ResolveSubtype(m); sub != "" && sub != typeName {
			return Unmarshal(tree, sub)
		}
	}

	obj, err := scheme.New(typeName)
	if err != nil {
		return nil, err
	}
	for _, a := range desc.Attrs {
		raw, ok := m[a.Wire]
		if !ok {
			continue
		}
		v, err := Unmarshal(raw, a.Type)
		if err != nil {
			return nil, err
		}
		if err := obj.Set(a.Name, v); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

// UnmarshalObject is Unmarshal constrained to named types; it is the
// common case for decoding response bodies.
func UnmarshalObject(tree any, typeName string) (*scheme.Object, error) {
	v, err := Unmarshal(tree, typeName)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	obj, ok := v.(*scheme.Object)
	if !ok {
		return nil, &apierrors.SerializationError{
			Reason: fmt.Sprintf("%s decoded to %T, not an object", typeName, v),
		}
	}
	return obj, nil
}

func listElem(declared string) (string, bool) {
	if strings.HasPrefix(declared, "list[") && strings.HasSuffix(declared, "]") {
		return declared[len("list[") : len(declared)-1], true
	}
	return "", false
}

// dictValue extracts V from "dict(K, V)". Only the value type is
// used: wire keys are always strings and are kept verbatim.
func dictValue(declared string) (string, bool) {
	if !strings.HasPrefix(declared, "dict(") || !strings.HasSuffix(declared, ")") {
		return "", false
	}
	inner := declared[len("dict(") : len(declared)-1]
	_, value, ok := strings.Cut(inner, ",")
	if !ok {
		return "", false
	}
	return strings.TrimSpace(value), true
}

func toString(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case bool:
		return strconv.FormatBool(t), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	}
	return "", &apierrors.SerializationError{Reason: fmt.Sprintf("cannot convert %T to str", v)}
}

func toBool(v any) (bool, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	return false, &apierrors.SerializationError{Reason: fmt.Sprintf("cannot convert %T to bool", v)}
}

func toInt(v any) (int64, error) {
	switch t := v.(type) {
	case float64:
		return int64(t), nil
	case int64:
		return t, nil
	case int:
		return int64(t), nil
	}
	return 0, &apierrors.SerializationError{Reason: fmt.Sprintf("cannot convert %T to int", v)}
}

func toFloat(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case int64:
		return float64(t), nil
	case int:
		return float64(t), nil
	}
	return 0, &apierrors.SerializationError{Reason: fmt.Sprintf("cannot convert %T to float", v)}
}

func parseDate(v any) (time.Time, error) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, &apierrors.SerializationError{Reason: fmt.Sprintf("cannot parse %T as date", v)}
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, &apierrors.SerializationError{Reason: fmt.Sprintf("failed to parse %q as date", s), Err: err}
	}
	return t, nil
}

func parseDatetime(v any) (time.Time, error) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, &apierrors.SerializationError{Reason: fmt.Sprintf("cannot parse %T as datetime", v)}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, &apierrors.SerializationError{Reason: fmt.Sprintf("failed to parse %q as datetime", s), Err: err}
	}
	return t, nil
}
