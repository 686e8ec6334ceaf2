package rpcclient

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/fortytw2/leaktest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentRequest struct {
	URL   string
	Token string
	Body  string
}

type response struct {
	body string
	err  error
}

// fakeTransport records requests and replies with queued responses.
// When the queue is empty it replies with success.
type fakeTransport struct {
	requests  []sentRequest
	responses []response
}

func (t *fakeTransport) Send(req *http.Request) ([]byte, error) {
	b, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, err
	}
	t.requests = append(t.requests, sentRequest{
		URL:   req.URL.String(),
		Token: req.Header.Get(SessionIDHeader),
		Body:  string(b),
	})
	if len(t.responses) == 0 {
		return []byte(`{"result":"success"}`), nil
	}
	r := t.responses[0]
	t.responses = t.responses[1:]
	if r.err != nil {
		return nil, r.err
	}
	return []byte(r.body), nil
}

func conflict(token string) response {
	h := make(http.Header)
	h.Add(SessionIDHeader, token)
	h.Add(SessionIDHeader, "ignored")
	return response{err: &StatusError{StatusCode: http.StatusConflict, Header: h}}
}

func newTestClient() (*Client, *fakeTransport) {
	ft := new(fakeTransport)
	return NewWithTransport(NewConfig(), ft), ft
}

func TestCallEmptyHostSendsNothing(t *testing.T) {
	c, ft := newTestClient()
	require.NoError(t, c.Config().SetHost(""))

	reply, err := c.Call(context.Background(), "session-get", nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, ResultInvalidConfig, reply.Result)
	assert.False(t, reply.Success())
	assert.Empty(t, ft.requests)
	assert.Equal(t, int64(1), c.metrics.InvalidConfig.Count())
}

func TestCallUnpairedCredentialsSendsNothing(t *testing.T) {
	c, ft := newTestClient()
	require.NoError(t, c.Config().SetUsername("user"))
	reply, err := c.SessionStats(context.Background(), nil)
	assert.NoError(t, err)
	assert.Equal(t, ResultInvalidConfig, reply.Result)

	c.Config().ClearUsername()
	require.NoError(t, c.Config().SetPassword("pass"))
	reply, err = c.SessionStats(context.Background(), nil)
	assert.NoError(t, err)
	assert.Equal(t, ResultInvalidConfig, reply.Result)

	assert.Empty(t, ft.requests)
}

func TestCallEmptyArgumentsAreLeftOut(t *testing.T) {
	c, ft := newTestClient()
	_, err := c.Call(context.Background(), "session-stats", NewArguments(), nil)
	require.NoError(t, err)
	require.Len(t, ft.requests, 1)
	assert.Equal(t, `{"method":"session-stats"}`, ft.requests[0].Body)
	assert.Equal(t, "http://localhost:9091/transmission/rpc", ft.requests[0].URL)
}

func TestCallRenewsSessionOnce(t *testing.T) {
	c, ft := newTestClient()
	c.Config().SetSessionToken("old")
	ft.responses = []response{
		conflict("new"),
		{body: `{"result":"success","arguments":{"size-bytes":10},"tag":7}`},
	}

	reply, err := c.FreeSpace(context.Background(), "/data", Args{"tag": 7})
	require.NoError(t, err)
	assert.True(t, reply.Success())
	assert.JSONEq(t, `7`, string(reply.Tag))

	require.Len(t, ft.requests, 2)
	assert.Equal(t, "old", ft.requests[0].Token)
	assert.Equal(t, "new", ft.requests[1].Token)
	assert.Equal(t, ft.requests[0].Body, ft.requests[1].Body)
	assert.Equal(t, "new", c.Config().SessionToken())
	assert.Equal(t, int64(1), c.metrics.Renewals.Count())

	// Later calls use the renewed token.
	_, err = c.SessionStats(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, ft.requests, 3)
	assert.Equal(t, "new", ft.requests[2].Token)
}

func TestCallSecondConflictIsFinal(t *testing.T) {
	c, ft := newTestClient()
	second := conflict("newer")
	ft.responses = []response{conflict("new"), second, {body: `{"result":"success"}`}}

	_, err := c.SessionStats(context.Background(), nil)
	assert.Equal(t, second.err, err)
	assert.Len(t, ft.requests, 2)
	assert.Equal(t, "new", c.Config().SessionToken())
}

func TestCallOtherErrorsAreNotRetried(t *testing.T) {
	c, ft := newTestClient()
	unauthorized := &StatusError{StatusCode: http.StatusUnauthorized, Header: make(http.Header)}
	ft.responses = []response{{err: unauthorized}}

	_, err := c.SessionStats(context.Background(), nil)
	assert.Equal(t, unauthorized, err)
	assert.Len(t, ft.requests, 1)

	netErr := errors.New("connection refused")
	ft.responses = []response{{err: netErr}}
	_, err = c.SessionStats(context.Background(), nil)
	assert.Equal(t, netErr, err)
	assert.Len(t, ft.requests, 2)
	assert.Equal(t, int64(2), c.metrics.Errors.Count())
}

func TestCallRetryFailureIsReturned(t *testing.T) {
	c, ft := newTestClient()
	netErr := errors.New("connection reset")
	ft.responses = []response{conflict("new"), {err: netErr}}

	_, err := c.SessionStats(context.Background(), nil)
	assert.Equal(t, netErr, err)
	assert.Len(t, ft.requests, 2)
}

func TestCallConflictWithoutToken(t *testing.T) {
	c, ft := newTestClient()
	c.Config().SetSessionToken("old")
	ft.responses = []response{{err: &StatusError{StatusCode: http.StatusConflict, Header: make(http.Header)}}}

	reply, err := c.SessionStats(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, reply.Success())
	require.Len(t, ft.requests, 2)
	assert.Equal(t, "old", ft.requests[0].Token)
	assert.Equal(t, "", ft.requests[1].Token)
	assert.Equal(t, ft.requests[0].Body, ft.requests[1].Body)
	assert.Equal(t, "", c.Config().SessionToken())
}

func TestCallBadReply(t *testing.T) {
	c, ft := newTestClient()
	ft.responses = []response{{body: "<html>"}}
	_, err := c.SessionStats(context.Background(), nil)
	assert.Error(t, err)
}

func TestCallErrorResult(t *testing.T) {
	c, ft := newTestClient()
	ft.responses = []response{{body: `{"result":"no such torrent"}`}}
	reply, err := c.TorrentStart(context.Background(), Args{"ids": 4})
	require.NoError(t, err)
	assert.False(t, reply.Success())
	var rerr *ResultError
	require.True(t, errors.As(reply.Err(), &rerr))
	assert.Equal(t, "no such torrent", rerr.Result)
}

// daemon is a fake RPC endpoint that requires a session token and basic auth.
type daemon struct {
	token    string
	requests int32
}

func (d *daemon) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&d.requests, 1)
	user, pass, ok := r.BasicAuth()
	if !ok || user != "user" || pass != "pass" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if r.Header.Get(SessionIDHeader) != d.token {
		w.Header().Set(SessionIDHeader, d.token)
		w.WriteHeader(http.StatusConflict)
		return
	}
	_, _ = io.WriteString(w, `{"result":"success","arguments":{"torrents":[{"id":1,"name":"debian.iso"}]}}`)
}

func TestHTTPTransport(t *testing.T) {
	defer leaktest.Check(t)()

	d := &daemon{token: "abc"}
	srv := httptest.NewServer(d)
	defer srv.Close()

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	host, portStr, _ := net.SplitHostPort(u.Host)
	port, _ := strconv.Atoi(portStr)

	o := DefaultOptions
	o.Host = host
	o.Port = port
	o.Username = "user"
	o.Password = "pass"
	c, err := o.NewClient()
	require.NoError(t, err)
	defer c.Close()

	reply, err := c.TorrentGet(context.Background(), []string{"id", "name"}, nil)
	require.NoError(t, err)
	assert.True(t, reply.Success())
	assert.Equal(t, int32(2), atomic.LoadInt32(&d.requests))
	assert.Equal(t, "abc", c.Config().SessionToken())

	var resp struct {
		Torrents []struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"torrents"`
	}
	require.NoError(t, reply.DecodeArguments(&resp))
	require.Len(t, resp.Torrents, 1)
	assert.Equal(t, "debian.iso", resp.Torrents[0].Name)

	o.Password = "wrong"
	c2, err := o.NewClient()
	require.NoError(t, err)
	defer c2.Close()
	_, err = c2.SessionStats(context.Background(), nil)
	var serr *StatusError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, http.StatusUnauthorized, serr.StatusCode)
}

func TestClientClose(t *testing.T) {
	defer leaktest.Check(t)()

	c, ft := newTestClient()
	_, err := c.SessionStats(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.metrics.Latency.Count())
	assert.NotNil(t, c.Metrics().Get("latency"))
	assert.Len(t, ft.requests, 1)

	require.NoError(t, c.Close())
	assert.Nil(t, c.Metrics().Get("latency"))
	assert.Nil(t, c.Metrics().Get("calls"))
}
