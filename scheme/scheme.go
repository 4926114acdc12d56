// Package scheme holds the schema registry: a lookup table from type
// name to a descriptor mapping in-process attribute names to wire names
// and declared types. The registry is populated at process
// initialization (by the api package) and is immutable afterwards.
//
// Declared types use a compact grammar: the primitive tags "int",
// "long", "float", "str", "bool", "date", "datetime" and "object", a
// registered type name such as "V1Pod", "list[T]" for sequences, and
// "dict(str, T)" for string-keyed maps.
package scheme

import (
	"fmt"
	"sync"
	"time"

	"github.com/otterscale/kubeclient/apierrors"
)

// Attr describes one attribute of a schema-described type.
type Attr struct {
	// Name is the in-process attribute name (snake_case). It is the
	// only name used by callers.
	Name string
	// Wire is the JSON key on the wire (camelCase).
	Wire string
	// Type is the declared type of the attribute value.
	Type string
	// Required marks attributes that must be non-nil on construction.
	Required bool
}

// Descriptor is the schema of one named type: an ordered attribute
// list plus an optional discriminator for polymorphic resolution.
type Descriptor struct {
	// Name is the registered type name, e.g. "V1Pod".
	Name string
	// Attrs is the ordered attribute list. Wire names and attribute
	// names are each unique within a descriptor.
	Attrs []Attr
	// Discriminator names the attribute whose wire value selects a
	// concrete subtype. Empty for non-polymorphic types.
	Discriminator string
	// ResolveSubtype maps a raw wire tree to the concrete subtype
	// name, or "" to keep this type. Only consulted when
	// Discriminator is set.
	ResolveSubtype func(tree map[string]any) string
}

// Attr returns the attribute with the given in-process name.
func (d *Descriptor) Attr(name string) (Attr, bool) {
	for _, a := range d.Attrs {
		if a.Name == name {
			return a, true
		}
	}
	return Attr{}, false
}

// WireAttr returns the attribute with the given wire name.
func (d *Descriptor) WireAttr(wire string) (Attr, bool) {
	for _, a := range d.Attrs {
		if a.Wire == wire {
			return a, true
		}
	}
	return Attr{}, false
}

func (d *Descriptor) validate() error {
	names := make(map[string]bool, len(d.Attrs))
	wires := make(map[string]bool, len(d.Attrs))
	for _, a := range d.Attrs {
		if names[a.Name] {
			return fmt.Errorf("type %s: duplicate attribute %q", d.Name, a.Name)
		}
		if wires[a.Wire] {
			return fmt.Errorf("type %s: duplicate wire name %q", d.Name, a.Wire)
		}
		names[a.Name] = true
		wires[a.Wire] = true
	}
	if d.Discriminator != "" {
		if _, ok := d.Attr(d.Discriminator); !ok {
			return fmt.Errorf("type %s: discriminator %q is not an attribute", d.Name, d.Discriminator)
		}
	}
	return nil
}

var (
	mu       sync.RWMutex
	registry = make(map[string]*Descriptor)
)

// Register adds a descriptor to the registry. Registering the same
// name twice or a descriptor with duplicate attribute or wire names
// is an error.
func Register(d *Descriptor) error {
	if err := d.validate(); err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()

	if _, ok := registry[d.Name]; ok {
		return fmt.Errorf("type %s already registered", d.Name)
	}
	registry[d.Name] = d
	return nil
}

// MustRegister is Register for init-time use; it panics on error.
func MustRegister(d *Descriptor) {
	if err := Register(d); err != nil {
		panic(err)
	}
}

// Lookup returns the descriptor registered under name.
func Lookup(name string) (*Descriptor, bool) {
	mu.RLock()
	defer mu.RUnlock()
	d, ok := registry[name]
	return d, ok
}

// Object is a schema-described domain value: a descriptor reference
// plus one slot per attribute. A slot holds nil, a primitive (bool,
// int64, float64, string, time.Time), another *Object, an []any of
// the same, or a map[string]any of the same. An attribute absent from
// the wire is nil.
type Object struct {
	desc  *Descriptor
	slots map[string]any
}

// New returns an empty instance of the named type. Unknown type names
// fail with a ValidationError.
func New(typeName string) (*Object, error) {
	d, ok := Lookup(typeName)
	if !ok {
		return nil, &apierrors.ValidationError{Reason: fmt.Sprintf("unknown type %q", typeName)}
	}
	return &Object{desc: d, slots: make(map[string]any, len(d.Attrs))}, nil
}

// Build constructs an instance of the named type from attribute
// values, then verifies that every required attribute is set.
func Build(typeName string, attrs map[string]any) (*Object, error) {
	o, err := New(typeName)
	if err != nil {
		return nil, err
	}
	for name, v := range attrs {
		if err := o.Set(name, v); err != nil {
			return nil, err
		}
	}
	for _, a := range o.desc.Attrs {
		if a.Required && o.slots[a.Name] == nil {
			return nil, &apierrors.ValidationError{
				Reason: fmt.Sprintf("%s: required attribute %q is not set", typeName, a.Name),
			}
		}
	}
	return o, nil
}

// MustBuild is Build for statically known literals; it panics on error.
func MustBuild(typeName string, attrs map[string]any) *Object {
	o, err := Build(typeName, attrs)
	if err != nil {
		panic(err)
	}
	return o
}

// Descriptor returns the schema of this object.
func (o *Object) Descriptor() *Descriptor { return o.desc }

// TypeName returns the registered name of this object's type.
func (o *Object) TypeName() string { return o.desc.Name }

// Get returns the value of the named attribute, or nil when unset.
// Unknown attribute names also return nil; use Set for validation.
func (o *Object) Get(name string) any { return o.slots[name] }

// Set assigns the named attribute. Unknown attribute names fail with
// a ValidationError. Setting nil clears the slot so the attribute
// round-trips to absence on the wire.
func (o *Object) Set(name string, v any) error {
	if _, ok := o.desc.Attr(name); !ok {
		return &apierrors.ValidationError{
			Reason: fmt.Sprintf("%s has no attribute %q", o.desc.Name, name),
		}
	}
	if v == nil {
		delete(o.slots, name)
		return nil
	}
	o.slots[name] = normalize(v)
	return nil
}

// normalize widens numeric slot values so that an object built from Go
// literals compares equal to the same object decoded from the wire.
func normalize(v any) any {
	switch t := v.(type) {
	case int:
		return int64(t)
	case int32:
		return int64(t)
	case float32:
		return float64(t)
	}
	return v
}

// String returns the named attribute as a string, or "" when it is
// unset or not a string.
func (o *Object) String(name string) string {
	s, _ := o.slots[name].(string)
	return s
}

// Int returns the named attribute as an int64, accepting the float64
// produced by JSON decoding. Zero when unset or non-numeric.
func (o *Object) Int(name string) int64 {
	switch v := o.slots[name].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

// Bool returns the named attribute as a bool, false when unset.
func (o *Object) Bool(name string) bool {
	b, _ := o.slots[name].(bool)
	return b
}

// Object returns the named attribute as a nested *Object, nil when it
// is unset or not an object.
func (o *Object) Object(name string) *Object {
	n, _ := o.slots[name].(*Object)
	return n
}

// List returns the named attribute as a slice, nil when unset.
func (o *Object) List(name string) []any {
	l, _ := o.slots[name].([]any)
	return l
}

// Map returns the named attribute as a string-keyed map, nil when
// unset.
func (o *Object) Map(name string) map[string]any {
	m, _ := o.slots[name].(map[string]any)
	return m
}

// Equal reports deep equality of two objects: same type and equal
// attribute values. nil slots equal absent slots.
func (o *Object) Equal(other *Object) bool {
	if o == nil || other == nil {
		return o == other
	}
	if o.desc.Name != other.desc.Name {
		return false
	}
	for _, a := range o.desc.Attrs {
		if !valueEqual(o.slots[a.Name], other.slots[a.Name]) {
			return false
		}
	}
	return true
}

func valueEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case *Object:
		bv, ok := b.(*Object)
		return ok && av.Equal(bv)
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valueEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k := range av {
			if !valueEqual(av[k], bv[k]) {
				return false
			}
		}
		return true
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Equal(bv)
	default:
		return a == b
	}
}
