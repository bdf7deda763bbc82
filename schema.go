package argbind

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/arikkfir/argbind/seqs"
)

// InitParam describes one parameter of the owning type's initializer,
// excluding the implicit receiver.
type InitParam struct {
	Name       string
	HasDefault bool
}

// Args carries initializer-bound attribute values, keyed by attribute name.
type Args map[string]any

// Initializer is implemented by owning types that require construction
// arguments. InitParams declares the initializer's parameter surface; Init is
// invoked on a freshly created instance with the parsed values of every
// initializer-bound attribute. Go reflection exposes no function parameter
// names, so the parameter list is declared explicitly rather than mined from
// a signature.
type Initializer interface {
	InitParams() []InitParam
	Init(args Args) error
}

// schema is the immutable, validated attribute surface of one owning type.
// All per-invocation state lives in the binding produced by parse, never on
// the schema or its attributes, so concurrent parses of the same type are
// safe.
type schema struct {
	typ    reflect.Type
	name   string
	attrs  []*Attribute
	params []InitParam
}

var schemas sync.Map // reflect.Type -> *schema

func schemaOf(typ reflect.Type) (*schema, error) {
	if s, ok := schemas.Load(typ); ok {
		return s.(*schema), nil
	}

	if typ.Kind() != reflect.Struct {
		return nil, &ErrConfiguration{Cause: fmt.Errorf("owning type must be a struct, got %s", typ)}
	}

	attrs, err := discoverAttributes(typ, typ, nil)
	if err != nil {
		return nil, err
	}
	sort.Slice(attrs, func(i, j int) bool { return attrs[i].name < attrs[j].name })
	for i := 1; i < len(attrs); i++ {
		if attrs[i].name == attrs[i-1].name {
			return nil, &ErrConfiguration{Attribute: attrs[i].name, Cause: fmt.Errorf("attribute is declared more than once")}
		}
	}

	var params []InitParam
	if init, ok := reflect.New(typ).Interface().(Initializer); ok {
		params = init.InitParams()
	}
	reconcile(attrs, params)

	for _, a := range attrs {
		if !a.writable && !a.required {
			return nil, &ErrConfiguration{
				Attribute: a.name,
				Cause:     fmt.Errorf("attribute must have a write accessor or a non-default initializer parameter"),
			}
		}
	}

	s := &schema{typ: typ, name: fieldNameToFlagName(typ.Name()), attrs: attrs, params: params}
	actual, _ := schemas.LoadOrStore(typ, s)
	return actual.(*schema), nil
}

// attribute looks up an attribute by its flag name.
func (s *schema) attribute(name string) (*Attribute, bool) {
	return seqs.First(s.attrs, func(a *Attribute) bool { return a.name == name })
}

// discoverAttributes walks the struct's fields, flattening struct-typed
// container fields (embedded or named) so that inherited members are
// discovered too.
func discoverAttributes(owner, typ reflect.Type, index []int) ([]*Attribute, error) {
	var attrs []*Attribute
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue
		}
		fieldIndex := append(append([]int{}, index...), i)

		if field.Type.Kind() == reflect.Struct {
			// Struct fields are only containers for other fields
			for _, tag := range attributeTags {
				if value, ok := field.Tag.Lookup(string(tag)); ok {
					cause := &ErrInvalidTag{Cause: fmt.Errorf("cannot be used on container struct fields"), Tag: tag, Value: value}
					return nil, &ErrConfiguration{Attribute: fieldNameToFlagName(field.Name), Cause: cause}
				}
			}
			nested, err := discoverAttributes(owner, field.Type, fieldIndex)
			if err != nil {
				return nil, err
			}
			attrs = append(attrs, nested...)
			continue
		}

		a, err := newAttribute(owner, field, fieldIndex)
		if err != nil {
			return nil, &ErrConfiguration{Attribute: fieldNameToFlagName(field.Name), Cause: err}
		}
		if a != nil {
			attrs = append(attrs, a)
		}
	}
	return attrs, nil
}

// reconcile derives requiredness and initializer binding from the owning
// type's initializer parameters: every parameter lacking a default marks the
// attribute of the same name as initializer-bound, and required unless the
// attribute declares a default. It is a pure function of its inputs -
// running it again leaves the attributes in the same state.
func reconcile(attrs []*Attribute, params []InitParam) {
	for _, p := range params {
		if p.HasDefault {
			continue
		}
		name := fieldNameToFlagName(p.Name)
		for _, a := range attrs {
			if a.name == name || a.name == p.Name {
				a.hasInit = true
				a.required = a.requiredTag || !a.defaultSet
			}
		}
	}
}
