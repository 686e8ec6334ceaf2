package rpcclient

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v3"
)

// send posts body to the daemon.
// If the daemon rejects the session token with 409 Conflict, the token issued in the
// response is saved into the Config and the same body is sent once more.
// A missing header is saved as an empty token.
// The result of the second attempt is final.
func (c *Client) send(ctx context.Context, body []byte) ([]byte, error) {
	var (
		reply   []byte
		attempt int
		token   = c.config.SessionToken()
	)
	operation := func() error {
		attempt++
		req, err := newRequest(ctx, c.config, token, body)
		if err != nil {
			return backoff.Permanent(err)
		}
		reply, err = c.transport.Send(req)
		if err == nil {
			return nil
		}
		var serr *StatusError
		if attempt > 1 || !errors.As(err, &serr) || !serr.Conflict() {
			return backoff.Permanent(err)
		}
		token = serr.Header.Get(SessionIDHeader)
		c.config.SetSessionToken(token)
		c.metrics.Renewals.Inc(1)
		return err
	}
	notify := func(err error, _ time.Duration) {
		c.log.Debugf("session token renewed, resending request: %s", err)
	}
	b := backoff.WithContext(backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 1), ctx)
	err := backoff.RetryNotify(operation, b, notify)
	if err != nil {
		return nil, err
	}
	return reply, nil
}
