package rpcclient

import (
	"io"
	"net"
	"net/http"
	"time"
)

// Transport sends a request and returns the response body.
// Responses with a non-2xx status must be returned as *StatusError.
type Transport interface {
	Send(req *http.Request) ([]byte, error)
}

// HTTPTransport is the Transport that sends requests with net/http.
type HTTPTransport struct {
	http      *http.Client
	transport *http.Transport
}

var _ Transport = (*HTTPTransport)(nil)

// NewHTTPTransport returns a new HTTPTransport.
// timeout limits the total time of a request including reading the body.
func NewHTTPTransport(timeout time.Duration) *HTTPTransport {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: timeout,
		}).DialContext,
		TLSHandshakeTimeout: timeout,
		DisableKeepAlives:   true,
	}
	return &HTTPTransport{
		transport: transport,
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// Send implements Transport.
func (t *HTTPTransport) Send(req *http.Request) ([]byte, error) {
	resp, err := t.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       data,
		}
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Close closes idle connections.
func (t *HTTPTransport) Close() error {
	t.transport.CloseIdleConnections()
	return nil
}
