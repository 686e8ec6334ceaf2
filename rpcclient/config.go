package rpcclient

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Defaults of a new Config.
const (
	DefaultScheme = "http"
	DefaultHost   = "localhost"
	DefaultPort   = 9091
)

// DefaultPath is the RPC endpoint of the daemon, split into segments.
var DefaultPath = []string{"transmission", "rpc"}

// Config holds the settings for connecting to the daemon.
// The session token is updated in place whenever the daemon issues a new one,
// so every call made with the same Config sees the latest token.
type Config struct {
	scheme      string
	host        string
	port        int
	path        []string
	username    string
	hasUsername bool
	password    string
	hasPassword bool

	mToken sync.RWMutex
	token  string
}

// NewConfig returns a Config with default values.
func NewConfig() *Config {
	return &Config{
		scheme: DefaultScheme,
		host:   DefaultHost,
		port:   DefaultPort,
		path:   append([]string(nil), DefaultPath...),
	}
}

// Scheme returns the URL scheme of the endpoint.
func (c *Config) Scheme() string { return c.scheme }

// SetScheme accepts "http" and "https".
func (c *Config) SetScheme(s string) error {
	switch s {
	case "http", "https":
		c.scheme = s
		return nil
	}
	return fmt.Errorf("invalid scheme: %q", s)
}

// Host returns the hostname or IP address of the daemon.
func (c *Config) Host() string { return c.host }

// SetHost sets the hostname or IP address of the daemon.
// An empty host is accepted here but no call is made until it is set.
func (c *Config) SetHost(h string) error {
	if strings.ContainsAny(h, "/ \t\r\n") {
		return fmt.Errorf("invalid host: %q", h)
	}
	c.host = h
	return nil
}

// Port returns the TCP port of the daemon.
func (c *Config) Port() int { return c.port }

// SetPort sets the TCP port of the daemon. Zero unsets the port.
func (c *Config) SetPort(p int) error {
	if p < 0 || p > 65535 {
		return fmt.Errorf("invalid port: %d", p)
	}
	c.port = p
	return nil
}

// Path returns a copy of the path segments.
func (c *Config) Path() []string {
	return append([]string(nil), c.path...)
}

// SetPath sets the path segments of the RPC endpoint.
func (c *Config) SetPath(segments []string) error {
	for _, s := range segments {
		if s == "" || strings.Contains(s, "/") {
			return fmt.Errorf("invalid path segment: %q", s)
		}
	}
	c.path = append([]string(nil), segments...)
	return nil
}

// Username returns the RPC username and whether it is set.
func (c *Config) Username() (string, bool) { return c.username, c.hasUsername }

// SetUsername sets the RPC username. It must not contain a colon.
func (c *Config) SetUsername(u string) error {
	if strings.ContainsAny(u, ":") {
		return errors.New("username must not contain ':'")
	}
	c.username, c.hasUsername = u, true
	return nil
}

// ClearUsername unsets the RPC username.
func (c *Config) ClearUsername() { c.username, c.hasUsername = "", false }

// Password returns the RPC password and whether it is set.
func (c *Config) Password() (string, bool) { return c.password, c.hasPassword }

// SetPassword sets the RPC password. Any value is accepted.
func (c *Config) SetPassword(p string) error {
	c.password, c.hasPassword = p, true
	return nil
}

// ClearPassword unsets the RPC password.
func (c *Config) ClearPassword() { c.password, c.hasPassword = "", false }

// SessionToken returns the last token issued by the daemon.
func (c *Config) SessionToken() string {
	c.mToken.RLock()
	defer c.mToken.RUnlock()
	return c.token
}

// SetSessionToken replaces the token sent with every request.
func (c *Config) SetSessionToken(t string) {
	c.mToken.Lock()
	c.token = t
	c.mToken.Unlock()
}

// Valid returns true if host, port and path are set
// and username and password are either both set or both unset.
func (c *Config) Valid() bool {
	return c.validate() == nil
}

func (c *Config) validate() error {
	if c.host == "" {
		return errors.New("host is not set")
	}
	if c.port == 0 {
		return errors.New("port is not set")
	}
	if c.path == nil {
		return errors.New("path is not set")
	}
	if c.hasUsername != c.hasPassword {
		return errors.New("username and password must be set together")
	}
	return nil
}
