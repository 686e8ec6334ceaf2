package rpcargs

import (
	"encoding/json"
	"reflect"
)

// String includes non-empty strings.
func String(v any) Result {
	s, ok := v.(string)
	if !ok || s == "" {
		return Omit
	}
	return Include(s)
}

// Number includes values of any numeric kind.
func Number(v any) Result {
	if isNumber(v) {
		return Include(v)
	}
	return Omit
}

// Bool includes true and false alike. Only nil and Unset leave the argument out.
func Bool(v any) Result {
	b, ok := v.(bool)
	if !ok {
		return Omit
	}
	return Include(b)
}

// Array includes slices, arrays and JSON arrays as an ordered []any.
func Array(v any) Result {
	l, ok := toList(v)
	if !ok {
		return Omit
	}
	return Include(l)
}

// Object includes any value that is present, without looking at its shape.
func Object(v any) Result {
	if IsUnset(v) {
		return Omit
	}
	return Include(v)
}

// Strings includes a sequence whose every element is a string.
func Strings(v any) Result {
	if IsUnset(v) || v == false {
		return Omit
	}
	if ss, ok := v.([]string); ok {
		if ss == nil {
			ss = []string{}
		}
		return Include(ss)
	}
	l, ok := toList(v)
	if !ok {
		return Omit
	}
	ss := make([]string, 0, len(l))
	for _, e := range l {
		s, ok := e.(string)
		if !ok {
			return Omit
		}
		ss = append(ss, s)
	}
	return Include(ss)
}

func isNumber(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.(json.Number); ok {
		return true
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// toList converts sequences to []any keeping the order of elements.
// Nil slices become empty lists. Strings and byte slices are not sequences.
func toList(v any) ([]any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case []any:
		if t == nil {
			return []any{}, true
		}
		return t, true
	case json.RawMessage:
		var l []any
		if err := json.Unmarshal(t, &l); err != nil || l == nil {
			return nil, false
		}
		return l, true
	case []byte:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
	default:
		return nil, false
	}
	l := make([]any, rv.Len())
	for i := range l {
		l[i] = rv.Index(i).Interface()
	}
	return l, true
}

func isNilSlice(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Slice && rv.IsNil()
}
