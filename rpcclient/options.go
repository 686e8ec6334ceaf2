package rpcclient

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v2"
)

// Options for connecting to the daemon as read from a config file or the environment.
// Empty username and password are treated as not set.
type Options struct {
	Scheme   string        `yaml:"scheme" env:"TRANSMISSION_SCHEME"`
	Host     string        `yaml:"host" env:"TRANSMISSION_HOST"`
	Port     int           `yaml:"port" env:"TRANSMISSION_PORT"`
	Path     string        `yaml:"path" env:"TRANSMISSION_PATH"`
	Username string        `yaml:"username" env:"TRANSMISSION_USERNAME"`
	Password string        `yaml:"password" env:"TRANSMISSION_PASSWORD"`
	Timeout  time.Duration `yaml:"timeout" env:"TRANSMISSION_TIMEOUT"`
}

// DefaultOptions for connecting to a daemon on the local machine.
var DefaultOptions = Options{
	Scheme:  DefaultScheme,
	Host:    DefaultHost,
	Port:    DefaultPort,
	Path:    "/" + strings.Join(DefaultPath, "/"),
	Timeout: DefaultTimeout,
}

// LoadOptions reads options from a YAML file over DefaultOptions.
// Missing file is not an error.
func LoadOptions(filename string) (*Options, error) {
	o := DefaultOptions
	filename, err := homedir.Expand(filename)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return &o, nil
	}
	if err != nil {
		return nil, err
	}
	if err = yaml.Unmarshal(b, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// FromEnv overrides options with TRANSMISSION_* environment variables that are set.
func (o *Options) FromEnv() error {
	err := envdecode.Decode(o)
	if errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil
	}
	return err
}

// NewConfig returns a Config built from the options.
func (o *Options) NewConfig() (*Config, error) {
	c := NewConfig()
	if err := c.SetScheme(o.Scheme); err != nil {
		return nil, err
	}
	if err := c.SetHost(o.Host); err != nil {
		return nil, err
	}
	if err := c.SetPort(o.Port); err != nil {
		return nil, err
	}
	if err := c.SetPath(splitPath(o.Path)); err != nil {
		return nil, err
	}
	if o.Username != "" {
		if err := c.SetUsername(o.Username); err != nil {
			return nil, err
		}
	}
	if o.Password != "" {
		if err := c.SetPassword(o.Password); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// NewClient returns a Client for the options with a Transport using the configured timeout.
func (o *Options) NewClient() (*Client, error) {
	cfg, err := o.NewConfig()
	if err != nil {
		return nil, err
	}
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return NewWithTransport(cfg, NewHTTPTransport(timeout)), nil
}

func splitPath(p string) []string {
	var segments []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}
