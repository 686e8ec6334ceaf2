package rpcargs

import (
	"encoding/hex"
	"encoding/json"
	"math"
	"reflect"
)

// RecentlyActive selects the torrents that were active recently.
const RecentlyActive = "recently-active"

// HashLength is the length of a hex encoded info hash.
const HashLength = 40

// ID includes a single torrent id: a non-negative integer or a hex encoded info hash.
func ID(v any) Result {
	if isID(v) {
		return Include(v)
	}
	return Omit
}

// IDs includes a torrent selector.
//
// nil and Unset select all torrents and are omitted.
// RecentlyActive and hash strings are included as is.
// A single integer id is wrapped in a list.
// A list is included unchanged only if every element is a valid id,
// otherwise the whole argument is omitted. An empty or nil list selects no torrents.
func IDs(v any) Result {
	if IsUnset(v) {
		return Omit
	}
	if s, ok := v.(string); ok {
		if s == RecentlyActive || isHash(s) {
			return Include(s)
		}
		return Omit
	}
	if isInteger(v) {
		return Include([]any{v})
	}
	if raw, ok := v.(json.RawMessage); ok {
		return Then(Array, All(ID))(raw)
	}
	if _, ok := toList(v); !ok {
		return Omit
	}
	if !All(ID)(v).Included() {
		return Omit
	}
	if isNilSlice(v) {
		// A nil slice is encoded as null which the daemon reads as all torrents.
		return Include([]any{})
	}
	return Include(v)
}

// All runs elem on every element of a sequence.
// The sequence is included as a []any of coerced elements only if elem includes all of them.
func All(elem Validator) Validator {
	return func(v any) Result {
		l, ok := toList(v)
		if !ok {
			return Omit
		}
		out := make([]any, len(l))
		for i, e := range l {
			r := elem(e)
			if !r.ok {
				return Omit
			}
			out[i] = r.value
		}
		return Include(out)
	}
}

func isID(v any) bool {
	if s, ok := v.(string); ok {
		return isHash(s)
	}
	return isInteger(v)
}

func isHash(s string) bool {
	if len(s) != HashLength {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// isInteger returns true for non-negative integral numbers.
func isInteger(v any) bool {
	if v == nil {
		return false
	}
	if n, ok := v.(json.Number); ok {
		i, err := n.Int64()
		return err == nil && i >= 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() >= 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f >= 0 && f == math.Trunc(f) && !math.IsInf(f, 0)
	}
	return false
}
