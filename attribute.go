package argbind

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/arikkfir/argbind/seqs"
)

type Tag string

const (
	TagFlag        Tag = "flag"
	TagName        Tag = "name"
	TagDescription Tag = "desc"
	TagValueName   Tag = "value-name"
	TagDefault     Tag = "default"
	TagConst       Tag = "const"
	TagChoices     Tag = "choices"
	TagRequired    Tag = "required"
	TagReadOnly    Tag = "readonly"
	TagArity       Tag = "arity"
)

var attributeTags = []Tag{
	TagFlag, TagName, TagDescription, TagValueName, TagDefault, TagConst, TagChoices, TagRequired, TagReadOnly, TagArity,
}

type ErrInvalidTag struct {
	Cause error
	Tag   Tag
	Value string
}

func (e *ErrInvalidTag) Error() string {
	return fmt.Sprintf("invalid tag '%s=%s': %s", e.Tag, e.Value, e.Cause)
}

func (e *ErrInvalidTag) Unwrap() error {
	return e.Cause
}

type actionKind string

const (
	actionScalar     actionKind = "scalar"
	actionSwitch     actionKind = "switch"
	actionAccumulate actionKind = "accumulate"
)

// Attribute is the metadata descriptor of one bindable attribute: its name,
// resolved type, action kind, defaults and constraints, plus the accessor
// bindings used to read and write it on an instance of the owning type.
// Attributes are immutable once their schema has been built; parsed values
// are never stored on them.
type Attribute struct {
	name         string
	declaredType reflect.Type
	elemType     reflect.Type
	action       actionKind
	defaultValue any
	defaultSet   bool
	constValue   any
	choices      []string
	metavar      string
	help         string
	arity        int
	required     bool
	requiredTag  bool
	hasInit      bool
	index        []int
	setter       int
	writable     bool
}

// Name returns the attribute's flag name.
func (a *Attribute) Name() string {
	return a.name
}

// newAttribute resolves one struct field into an attribute descriptor. Fields
// carrying no attribute tags (or tagged with "flag=false") resolve to nil.
func newAttribute(owner reflect.Type, field reflect.StructField, index []int) (*Attribute, error) {
	a := &Attribute{
		name:   fieldNameToFlagName(field.Name),
		index:  index,
		setter: -1,
	}

	// Read field tags
	tagged := false
	var readOnly bool
	var defaultRaw, constRaw *string
	if tag, ok := field.Tag.Lookup(string(TagFlag)); ok {
		if v, err := strconv.ParseBool(tag); err != nil {
			return nil, &ErrInvalidTag{Cause: numErrCause(err), Tag: TagFlag, Value: tag}
		} else if !v {
			return nil, nil
		}
		tagged = true
	}
	if tag, ok := field.Tag.Lookup(string(TagName)); ok {
		if tag == "" {
			return nil, &ErrInvalidTag{Cause: fmt.Errorf("must not be empty"), Tag: TagName, Value: tag}
		}
		tagged = true
		a.name = tag
	}
	if tag, ok := field.Tag.Lookup(string(TagDescription)); ok {
		tagged = true
		a.help = tag
	}
	if tag, ok := field.Tag.Lookup(string(TagValueName)); ok {
		if tag == "" {
			return nil, &ErrInvalidTag{Cause: fmt.Errorf("must not be empty"), Tag: TagValueName, Value: tag}
		} else if field.Type.Kind() == reflect.Bool {
			return nil, &ErrInvalidTag{Cause: fmt.Errorf("not supported for switch attributes"), Tag: TagValueName, Value: tag}
		}
		tagged = true
		a.metavar = tag
	}
	if tag, ok := field.Tag.Lookup(string(TagRequired)); ok {
		if v, err := strconv.ParseBool(tag); err != nil {
			return nil, &ErrInvalidTag{Cause: numErrCause(err), Tag: TagRequired, Value: tag}
		} else {
			tagged = true
			a.required = v
			a.requiredTag = v
		}
	}
	if tag, ok := field.Tag.Lookup(string(TagReadOnly)); ok {
		if v, err := strconv.ParseBool(tag); err != nil {
			return nil, &ErrInvalidTag{Cause: numErrCause(err), Tag: TagReadOnly, Value: tag}
		} else {
			tagged = true
			readOnly = v
		}
	}
	if tag, ok := field.Tag.Lookup(string(TagChoices)); ok {
		choices := seqs.Split(tag, ",")
		if len(choices) == 0 {
			return nil, &ErrInvalidTag{Cause: fmt.Errorf("must not be empty"), Tag: TagChoices, Value: tag}
		}
		tagged = true
		a.choices = choices
	}
	if tag, ok := field.Tag.Lookup(string(TagArity)); ok {
		if n, err := strconv.Atoi(tag); err != nil {
			return nil, &ErrInvalidTag{Cause: numErrCause(err), Tag: TagArity, Value: tag}
		} else if n <= 0 {
			return nil, &ErrInvalidTag{Cause: fmt.Errorf("must be positive"), Tag: TagArity, Value: tag}
		} else {
			tagged = true
			a.arity = n
		}
	}
	if tag, ok := field.Tag.Lookup(string(TagDefault)); ok {
		tagged = true
		defaultRaw = ptrOf(tag)
	}
	if tag, ok := field.Tag.Lookup(string(TagConst)); ok {
		tagged = true
		constRaw = ptrOf(tag)
	}
	if !tagged {
		return nil, nil
	}

	// Resolve the declared type, element type and action kind
	a.declaredType = field.Type
	switch field.Type.Kind() {
	case reflect.Bool:
		a.action = actionSwitch
		a.elemType = field.Type
	case reflect.Slice:
		a.action = actionAccumulate
		a.elemType = field.Type.Elem()
		if !isSupportedKind(a.elemType.Kind()) {
			return nil, fmt.Errorf("unsupported element type: %s", a.elemType.Kind())
		}
	default:
		a.action = actionScalar
		a.elemType = field.Type
		if !isSupportedKind(a.elemType.Kind()) {
			return nil, fmt.Errorf("unsupported field type: %s", field.Type.Kind())
		}
	}
	if a.metavar == "" && a.action != actionSwitch {
		a.metavar = strings.ToUpper(a.elemType.Name())
	}

	// Tags that only make sense for specific action kinds
	if a.arity > 0 && a.action != actionAccumulate {
		return nil, &ErrInvalidTag{Cause: fmt.Errorf("only supported for repeatable attributes"), Tag: TagArity, Value: strconv.Itoa(a.arity)}
	}
	if constRaw != nil && a.action != actionSwitch {
		return nil, &ErrInvalidTag{Cause: fmt.Errorf("only supported for switch attributes"), Tag: TagConst, Value: *constRaw}
	}
	if len(a.choices) > 0 && a.elemType.Kind() != reflect.String {
		return nil, &ErrInvalidTag{Cause: fmt.Errorf("only supported for string attributes"), Tag: TagChoices, Value: field.Tag.Get(string(TagChoices))}
	}

	// Resolve the default and const values against the declared type
	if defaultRaw != nil {
		var v any
		var err error
		if a.action == actionAccumulate {
			v, err = convertSlice(a.declaredType, a.name, seqs.Split(*defaultRaw, ","))
		} else {
			v, err = convertValue(a.declaredType, a.name, *defaultRaw)
		}
		if err != nil {
			return nil, &ErrInvalidTag{Cause: err, Tag: TagDefault, Value: *defaultRaw}
		}
		a.defaultValue = v
		a.defaultSet = true
	}
	if a.action == actionSwitch {
		a.constValue = reflect.ValueOf(true).Convert(a.declaredType).Interface()
		if constRaw != nil {
			v, err := convertValue(a.declaredType, a.name, *constRaw)
			if err != nil {
				return nil, &ErrInvalidTag{Cause: err, Tag: TagConst, Value: *constRaw}
			}
			a.constValue = v
		}
	}

	// Resolve the write accessor: a "Set<Field>" method when declared, else
	// direct field assignment unless the attribute is read-only
	if m, ok := reflect.PointerTo(owner).MethodByName("Set" + field.Name); ok {
		if readOnly {
			return nil, &ErrInvalidTag{Cause: fmt.Errorf("attribute also declares method %s", m.Name), Tag: TagReadOnly, Value: "true"}
		}
		if m.Type.NumIn() != 2 || m.Type.In(1) != field.Type || m.Type.NumOut() != 0 {
			return nil, fmt.Errorf("method %s has an incompatible signature: want func(%s)", m.Name, field.Type)
		}
		a.setter = m.Index
		a.writable = true
	} else {
		a.writable = !readOnly
	}

	return a, nil
}

// Read invokes the attribute's read accessor on the given instance, which
// must be a non-nil pointer to the owning struct type.
func (a *Attribute) Read(instance any) (any, error) {
	if a.declaredType == nil {
		return nil, &ErrAttributeAccess{Attribute: a.name, Op: "read"}
	}
	rv, err := a.instanceValue(instance)
	if err != nil {
		return nil, err
	}
	return rv.Elem().FieldByIndex(a.index).Interface(), nil
}

// Write invokes the attribute's write accessor on the given instance, which
// must be a non-nil pointer to the owning struct type.
func (a *Attribute) Write(instance, value any) error {
	if !a.writable || a.declaredType == nil {
		return &ErrAttributeAccess{Attribute: a.name, Op: "write"}
	}
	rv, err := a.instanceValue(instance)
	if err != nil {
		return err
	}

	v := reflect.ValueOf(value)
	if !v.IsValid() {
		v = reflect.Zero(a.declaredType)
	} else if !v.Type().ConvertibleTo(a.declaredType) {
		return fmt.Errorf("cannot assign value of type %T to attribute '%s' (%s)", value, a.name, a.declaredType)
	}
	v = v.Convert(a.declaredType)

	if a.setter >= 0 {
		rv.Method(a.setter).Call([]reflect.Value{v})
	} else {
		rv.Elem().FieldByIndex(a.index).Set(v)
	}
	return nil
}

func (a *Attribute) instanceValue(instance any) (reflect.Value, error) {
	rv := reflect.ValueOf(instance)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("instance must be a non-nil struct pointer, got %T", instance)
	}
	return rv, nil
}

func isSupportedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return true
	default:
		return false
	}
}

func numErrCause(err error) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return ne.Err
	}
	return err
}
