// Package rpcargs turns loosely typed caller values into RPC arguments.
//
// Every validator is a total function deciding whether a value is included in the
// arguments object (possibly after coercion) or omitted from it.
package rpcargs

// Result is the outcome of validating a single argument value.
type Result struct {
	key   string
	value any
	ok    bool
}

// Omit is the Result for a value that must not appear in the arguments object.
var Omit = Result{}

// Include returns a Result that puts v into the arguments object under the key of the parameter.
func Include(v any) Result {
	return Result{value: v, ok: true}
}

// IncludeAs is like Include but overrides the key of the parameter.
func IncludeAs(key string, v any) Result {
	return Result{key: key, value: v, ok: true}
}

// Value returns the coerced value and whether it is included.
func (r Result) Value() (any, bool) {
	return r.value, r.ok
}

// Included reports whether the value is included.
func (r Result) Included() bool {
	return r.ok
}

// Key returns the overridden key, or def if the validator did not override it.
func (r Result) Key(def string) string {
	if r.key != "" {
		return r.key
	}
	return def
}

// Validator decides whether a raw value is included and what it is coerced to.
type Validator func(v any) Result

// Then composes stages into a single Validator.
// The value included by a stage is the input of the next one.
// Once a stage omits, the remaining stages are not run.
func Then(stages ...Validator) Validator {
	return func(v any) Result {
		r := Include(v)
		for _, stage := range stages {
			r2 := stage(r.value)
			if !r2.ok {
				return Omit
			}
			if r2.key == "" {
				r2.key = r.key
			}
			r = r2
		}
		return r
	}
}

type unset struct{}

func (unset) String() string { return "<unset>" }

// Unset is the sentinel for "no opinion".
// Use it instead of false to leave a boolean argument out of the request.
var Unset any = unset{}

// IsUnset returns true for nil and Unset.
func IsUnset(v any) bool {
	if v == nil {
		return true
	}
	_, ok := v.(unset)
	return ok
}
