package rpcclient

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/cenkalti/transmissionrpc/rpcargs"
)

// TagOption is the name of the option that sets the tag of a request. It is accepted by every method.
const TagOption = "tag"

// Param describes a single parameter of a method.
type Param struct {
	// Name of the parameter as used in Args.
	Name string
	// Key in the arguments object. Name is used if empty.
	Key string
	// Used when an optional parameter is not present in Args.
	Default any
	Validate rpcargs.Validator
}

func (p Param) key() string {
	if p.Key != "" {
		return p.Key
	}
	return p.Name
}

// Descriptor describes a method of the RPC interface.
type Descriptor struct {
	Method   string
	Required []Param
	Optional []Param
}

// Args holds optional parameters of a call keyed by parameter name.
type Args map[string]any

func param(name, key string, v rpcargs.Validator) Param {
	return Param{Name: name, Key: key, Validate: v}
}

// opt is a Param whose name and key are the same.
func opt(name string, v rpcargs.Validator) Param {
	return Param{Name: name, Validate: v}
}

// flag is an optional boolean Param that is left out unless given.
func flag(name, key string) Param {
	return Param{Name: name, Key: key, Default: rpcargs.Unset, Validate: rpcargs.Bool}
}

// idsMethod returns the Descriptor of a method that takes nothing but a torrent selector.
func idsMethod(method string) *Descriptor {
	return &Descriptor{
		Method:   method,
		Optional: []Param{opt("ids", rpcargs.IDs)},
	}
}

// Build validates the parameters and returns the arguments object and the tag.
// Keys of the arguments object are in declaration order, required parameters first.
func (d *Descriptor) Build(required []any, opts Args) (*Arguments, any, error) {
	if len(required) != len(d.Required) {
		return nil, nil, &ValidationError{
			Method: d.Method,
			Param:  strings.Join(d.requiredNames(), ", "),
			Reason: fmt.Sprintf("expected %d required arguments, got %d", len(d.Required), len(required)),
		}
	}
	if err := d.checkOptions(opts); err != nil {
		return nil, nil, err
	}
	args := NewArguments()
	for i, p := range d.Required {
		r := p.Validate(required[i])
		v, ok := r.Value()
		if !ok {
			return nil, nil, &ValidationError{Method: d.Method, Param: p.Name, Reason: fmt.Sprintf("rejected value %#v", required[i])}
		}
		args.Set(r.Key(p.key()), v)
	}
	for _, p := range d.Optional {
		raw, ok := opts[p.Name]
		if !ok {
			raw = p.Default
		}
		r := p.Validate(raw)
		if v, ok := r.Value(); ok {
			args.Set(r.Key(p.key()), v)
		}
	}
	return args, opts[TagOption], nil
}

func (d *Descriptor) checkOptions(opts Args) error {
	var unknown []string
	for name := range opts {
		if name == TagOption || d.hasOption(name) {
			continue
		}
		unknown = append(unknown, name)
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return &ValidationError{Method: d.Method, Param: strings.Join(unknown, ", "), Reason: "unknown option"}
}

func (d *Descriptor) hasOption(name string) bool {
	for _, p := range d.Optional {
		if p.Name == name {
			return true
		}
	}
	return false
}

func (d *Descriptor) requiredNames() []string {
	names := make([]string, len(d.Required))
	for i, p := range d.Required {
		names[i] = p.Name
	}
	return names
}

// Invoke validates the parameters against d and calls the method.
// Nothing is sent if a required parameter is rejected.
func (c *Client) Invoke(ctx context.Context, d *Descriptor, required []any, opts Args) (*Reply, error) {
	args, tag, err := d.Build(required, opts)
	if err != nil {
		return nil, err
	}
	return c.Call(ctx, d.Method, args, tag)
}
