package rpcclient

import (
	"fmt"
	"net/http"
)

// ValidationError is returned when a required argument is rejected.
// No request is sent to the daemon.
type ValidationError struct {
	Method string
	Param  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid argument %q: %s", e.Method, e.Param, e.Reason)
}

// StatusError is returned from Transport when the daemon responds with a non-2xx status.
type StatusError struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status not 2xx (status: %d body: %q)", e.StatusCode, string(e.Body))
}

// Conflict returns true if the daemon rejected the session token.
func (e *StatusError) Conflict() bool {
	return e.StatusCode == http.StatusConflict
}

// ResultError contains the error message in a reply.
type ResultError struct {
	Result string
}

func (e *ResultError) Error() string {
	return "rpc error: " + e.Result
}
