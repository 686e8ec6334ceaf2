// Package rpcclient implements a client for the JSON-RPC interface of a Transmission daemon.
package rpcclient

import (
	"context"
	"io"
	"time"

	"github.com/cenkalti/transmissionrpc/internal/logger"
	"github.com/rcrowley/go-metrics"
)

// DefaultTimeout is the request timeout of the Transport created by New.
const DefaultTimeout = 30 * time.Second

// Client makes RPC calls to a daemon. Calls are synchronous.
// The session token is shared through the Config, so a Config may be used by many clients.
type Client struct {
	config    *Config
	transport Transport
	log       logger.Logger
	metrics   *clientMetrics
}

type clientMetrics struct {
	registry metrics.Registry

	Calls         metrics.Counter
	Renewals      metrics.Counter
	Errors        metrics.Counter
	InvalidConfig metrics.Counter
	Latency       metrics.Histogram // nanoseconds
}

func newMetrics() *clientMetrics {
	r := metrics.NewRegistry()
	return &clientMetrics{
		registry:      r,
		Calls:         metrics.NewRegisteredCounter("calls", r),
		Renewals:      metrics.NewRegisteredCounter("renewals", r),
		Errors:        metrics.NewRegisteredCounter("errors", r),
		InvalidConfig: metrics.NewRegisteredCounter("invalid_config", r),
		Latency:       metrics.NewRegisteredHistogram("latency", r, metrics.NewExpDecaySample(1028, 0.015)),
	}
}

func (m *clientMetrics) Close() {
	m.registry.UnregisterAll()
}

// New returns a Client that sends requests over HTTP.
func New(cfg *Config) *Client {
	return NewWithTransport(cfg, NewHTTPTransport(DefaultTimeout))
}

// NewWithTransport returns a Client that sends requests with t.
func NewWithTransport(cfg *Config, t Transport) *Client {
	return &Client{
		config:    cfg,
		transport: t,
		log:       logger.New("rpc client"),
		metrics:   newMetrics(),
	}
}

// Config returns the Config of the client.
func (c *Client) Config() *Config {
	return c.config
}

// Metrics returns the registry holding call counters and latency of the client.
func (c *Client) Metrics() metrics.Registry {
	return c.metrics.registry
}

// Close releases the metrics of the client and closes the Transport if it is an io.Closer.
// A Config shared with other clients is not affected.
func (c *Client) Close() error {
	c.metrics.Close()
	if cl, ok := c.transport.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}

// Call sends a request for method with args and tag and returns the reply.
//
// If the Config is not valid, nothing is sent and the returned Reply has
// ResultInvalidConfig as result. The error is nil in that case.
// Errors from the Transport are returned unchanged.
func (c *Client) Call(ctx context.Context, method string, args *Arguments, tag any) (*Reply, error) {
	if err := c.config.validate(); err != nil {
		c.log.Warningf("not calling %s: invalid configuration: %s", method, err)
		c.metrics.InvalidConfig.Inc(1)
		return &Reply{Result: ResultInvalidConfig}, nil
	}
	if args != nil && args.Len() == 0 {
		args = nil
	}
	msg := &Message{Method: method, Arguments: args, Tag: tag}
	body, err := msg.Encode()
	if err != nil {
		return nil, err
	}
	c.log.Debugf("calling %s: %s", method, body)
	c.metrics.Calls.Inc(1)
	start := time.Now()
	data, err := c.send(ctx, body)
	c.metrics.Latency.Update(int64(time.Since(start)))
	if err != nil {
		c.metrics.Errors.Inc(1)
		return nil, err
	}
	reply, err := DecodeReply(data)
	if err != nil {
		c.metrics.Errors.Inc(1)
		return nil, err
	}
	if !reply.Success() {
		c.log.Debugf("%s returned error: %s", method, reply.Result)
	}
	return reply, nil
}
