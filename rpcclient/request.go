package rpcclient

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// SessionIDHeader carries the session token on requests and on conflict responses.
const SessionIDHeader = "X-Transmission-Session-Id"

// URL returns the address of the RPC endpoint.
// Credentials are included only when both username and password are set.
func (c *Config) URL() *url.URL {
	u := &url.URL{
		Scheme: c.scheme,
		Host:   net.JoinHostPort(c.host, strconv.Itoa(c.port)),
		Path:   "/" + strings.Join(c.path, "/"),
	}
	if c.hasUsername && c.hasPassword {
		u.User = url.UserPassword(c.username, c.password)
	}
	return u
}

// newRequest builds the POST request for body with the given session token.
func newRequest(ctx context.Context, cfg *Config, token string, body []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.URL().String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(SessionIDHeader, token)
	return req, nil
}
