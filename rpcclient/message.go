package rpcclient

import (
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ResultSuccess is the result string of a successful reply.
const ResultSuccess = "success"

// ResultInvalidConfig is the result of a Reply for a call that was not sent
// because the Config is not valid.
const ResultInvalidConfig = "invalid configuration"

// Arguments is the arguments object of a request. Keys keep insertion order.
type Arguments = orderedmap.OrderedMap[string, any]

// NewArguments returns an empty Arguments.
func NewArguments() *Arguments {
	return orderedmap.New[string, any]()
}

// Message is the request envelope.
type Message struct {
	Method    string     `json:"method"`
	Arguments *Arguments `json:"arguments,omitempty"`
	Tag       any        `json:"tag,omitempty"`
}

// Encode returns the wire form of the message.
// Arguments are left out when empty and the tag when nil.
func (m *Message) Encode() ([]byte, error) {
	msg := *m
	if msg.Arguments != nil && msg.Arguments.Len() == 0 {
		msg.Arguments = nil
	}
	return json.Marshal(&msg)
}

// Reply is the response envelope.
type Reply struct {
	Result    string          `json:"result"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
	Tag       json.RawMessage `json:"tag,omitempty"`
}

// DecodeReply parses the wire form of a reply.
func DecodeReply(b []byte) (*Reply, error) {
	var r Reply
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("cannot decode reply: %w", err)
	}
	return &r, nil
}

// Success returns true if the daemon has completed the call.
func (r *Reply) Success() bool {
	return r.Result == ResultSuccess
}

// Err returns a *ResultError if the reply is not successful.
func (r *Reply) Err() error {
	if r.Success() {
		return nil
	}
	return &ResultError{Result: r.Result}
}

// DecodeArguments unmarshals the arguments object of the reply into v.
func (r *Reply) DecodeArguments(v any) error {
	if len(r.Arguments) == 0 {
		return nil
	}
	return json.Unmarshal(r.Arguments, v)
}
