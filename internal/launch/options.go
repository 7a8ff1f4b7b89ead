package launch

import (
	"fmt"
	"reflect"

	"google.golang.org/protobuf/types/known/structpb"
)

// Options is the opaque mapping a host hands to the process at launch.
// Values are expected to be JSON-like: nil, bool, string, numbers,
// []any, map[string]any or Options. Typed maps and slices such as
// map[string]string or []map[string]any are accepted too. The holder never
// inspects them.
type Options map[string]any

// Clone returns a deep copy. Nested maps and slices of any element type are
// copied, scalars and pointers are shared. A nil receiver yields nil.
func (o Options) Clone() Options {
	if o == nil {
		return nil
	}
	out := make(Options, len(o))
	for k, v := range o {
		out[k] = cloneValue(v)
	}
	return out
}

// Empty reports whether the mapping carries no entries.
func (o Options) Empty() bool {
	return len(o) == 0
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Options:
		return t.Clone()
	case map[string]any:
		return map[string]any(Options(t).Clone())
	case []any:
		if t == nil {
			return []any(nil)
		}
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	case []byte:
		return append([]byte(nil), t...)
	default:
		return cloneContainer(v)
	}
}

func cloneContainer(v any) any {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.IsNil() {
			return v
		}
		elem := rv.Type().Elem()
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), cloneElem(iter.Value(), elem))
		}
		return out.Interface()
	case reflect.Slice:
		if rv.IsNil() {
			return v
		}
		elem := rv.Type().Elem()
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out.Index(i).Set(cloneElem(rv.Index(i), elem))
		}
		return out.Interface()
	default:
		return v
	}
}

func cloneElem(e reflect.Value, typ reflect.Type) reflect.Value {
	if e.Kind() == reflect.Interface {
		if e.IsNil() {
			return reflect.Zero(typ)
		}
		e = e.Elem()
	}
	c := cloneValue(e.Interface())
	if c == nil {
		return reflect.Zero(typ)
	}
	return reflect.ValueOf(c)
}

// ToStruct converts the mapping into its protobuf wire form. Values outside
// the JSON-like set are rejected here, not in the holder.
func (o Options) ToStruct() (*structpb.Struct, error) {
	fields := make(map[string]any, len(o))
	for k, v := range o {
		fields[k] = plainValue(v)
	}
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("encode launch options: %w", err)
	}
	return s, nil
}

// FromStruct converts the wire form back into Options. Numbers come back as
// float64. A nil struct yields an empty, non-nil mapping.
func FromStruct(s *structpb.Struct) Options {
	if s == nil {
		return Options{}
	}
	return Options(s.AsMap())
}

// plainValue rewrites Options and typed containers into map[string]any and
// []any so structpb recognises them.
func plainValue(v any) any {
	switch t := v.(type) {
	case Options:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = plainValue(e)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = plainValue(e)
		}
		return m
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plainValue(e)
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = e
		}
		return out
	default:
		return plainContainer(v)
	}
}

func plainContainer(v any) any {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = plainValue(iter.Value().Interface())
		}
		return m
	case reflect.Slice:
		// structpb encodes []byte itself.
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return v
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = plainValue(rv.Index(i).Interface())
		}
		return out
	default:
		return v
	}
}
