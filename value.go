package argbind

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// convertValue converts a raw flag token into a value of the given type. The
// returned value's type is exactly t.
func convertValue(t reflect.Type, flagName, raw string) (any, error) {
	switch t.Kind() {
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, invalidValueError(err, flagName, raw)
		}
		return reflect.ValueOf(b).Convert(t).Interface(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(raw, 10, t.Bits())
		if err != nil {
			return nil, invalidValueError(err, flagName, raw)
		}
		return reflect.ValueOf(i).Convert(t).Interface(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		ui, err := strconv.ParseUint(raw, 10, t.Bits())
		if err != nil {
			return nil, invalidValueError(err, flagName, raw)
		}
		return reflect.ValueOf(ui).Convert(t).Interface(), nil
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, t.Bits())
		if err != nil {
			return nil, invalidValueError(err, flagName, raw)
		}
		return reflect.ValueOf(f).Convert(t).Interface(), nil
	case reflect.String:
		return reflect.ValueOf(raw).Convert(t).Interface(), nil
	default:
		return nil, fmt.Errorf("%w: type is '%s'", errors.ErrUnsupported, t)
	}
}

// convertSlice converts raw flag tokens into a slice of the given slice type,
// preserving token order.
func convertSlice(sliceType reflect.Type, flagName string, raw []string) (any, error) {
	elemType := sliceType.Elem()
	out := reflect.MakeSlice(sliceType, len(raw), len(raw))
	for i, token := range raw {
		elem, err := convertValue(elemType, flagName, token)
		if err != nil {
			return nil, err
		}
		out.Index(i).Set(reflect.ValueOf(elem))
	}
	return out.Interface(), nil
}

func invalidValueError(err error, flagName, raw string) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return &ErrInvalidValue{Cause: ne.Err, Value: ne.Num, Flag: flagName}
	}
	return &ErrInvalidValue{Cause: err, Value: raw, Flag: flagName}
}

// formatValue renders a typed value the way it would be written on the
// command line; slices render as comma-joined elements.
func formatValue(v any) string {
	if v == nil {
		return ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64)
	case reflect.String:
		return rv.String()
	case reflect.Slice:
		var parts []string
		for i := 0; i < rv.Len(); i++ {
			parts = append(parts, formatValue(rv.Index(i).Interface()))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v)
	}
}
