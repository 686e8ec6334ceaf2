package rpcclient

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cenkalti/transmissionrpc/rpcargs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageEncodeMethodOnly(t *testing.T) {
	b, err := (&Message{Method: "session-stats"}).Encode()
	require.NoError(t, err)
	assert.Equal(t, `{"method":"session-stats"}`, string(b))

	b, err = (&Message{Method: "session-stats", Arguments: NewArguments()}).Encode()
	require.NoError(t, err)
	assert.Equal(t, `{"method":"session-stats"}`, string(b))
}

func TestMessageEncodeOrder(t *testing.T) {
	args := NewArguments()
	args.Set("z", 1)
	args.Set("a", "x")
	b, err := (&Message{Method: "m", Arguments: args, Tag: 3}).Encode()
	require.NoError(t, err)
	assert.Equal(t, `{"method":"m","arguments":{"z":1,"a":"x"},"tag":3}`, string(b))
}

func lastBody(t *testing.T, ft *fakeTransport) string {
	t.Helper()
	require.NotEmpty(t, ft.requests)
	return ft.requests[len(ft.requests)-1].Body
}

func TestTorrentGet(t *testing.T) {
	c, ft := newTestClient()
	_, err := c.TorrentGet(context.Background(), []string{"id", "name"}, Args{"ids": []int{1, 2}})
	require.NoError(t, err)
	assert.Equal(t, `{"method":"torrent-get","arguments":{"fields":["id","name"],"ids":[1,2]}}`, lastBody(t, ft))
}

func TestTorrentAddFilename(t *testing.T) {
	c, ft := newTestClient()
	_, err := c.TorrentAdd(context.Background(), rpcargs.Filename("magnet:?xt=urn:btih:XYZ"), nil)
	require.NoError(t, err)
	assert.Equal(t, `{"method":"torrent-add","arguments":{"filename":"magnet:?xt=urn:btih:XYZ"}}`, lastBody(t, ft))
}

func TestTorrentAddMetainfoWithOptions(t *testing.T) {
	c, ft := newTestClient()
	_, err := c.TorrentAdd(context.Background(), rpcargs.Metainfo("ZGU="), Args{
		"paused":             false,
		"download-dir":       "/data",
		"bandwidth-priority": 1,
		"labels":             []string{"linux"},
		"tag":                12,
	})
	require.NoError(t, err)
	assert.Equal(t,
		`{"method":"torrent-add","arguments":{"metainfo":"ZGU=","download-dir":"/data","labels":["linux"],"paused":false,"bandwidthPriority":1},"tag":12}`,
		lastBody(t, ft))
}

func TestTorrentAddUntaggedSourceFails(t *testing.T) {
	c, ft := newTestClient()
	_, err := c.Invoke(context.Background(), TorrentAddMethod, []any{"file.torrent"}, nil)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "source", verr.Param)
	assert.Equal(t, "torrent-add", verr.Method)

	_, err = c.TorrentAdd(context.Background(), rpcargs.Source{Value: "file.torrent"}, nil)
	assert.True(t, errors.As(err, &verr))
	assert.Empty(t, ft.requests)
}

func TestRequiredArgumentFailsBeforeIO(t *testing.T) {
	c, ft := newTestClient()
	_, err := c.FreeSpace(context.Background(), "", nil)
	assert.Error(t, err)
	_, err = c.TorrentGet(context.Background(), []any{"id", 3}, nil)
	assert.Error(t, err)
	_, err = c.Invoke(context.Background(), TorrentRenamePathMethod, []any{"a"}, nil)
	assert.Error(t, err)
	assert.Empty(t, ft.requests)
}

func TestUnknownOption(t *testing.T) {
	c, ft := newTestClient()
	_, err := c.TorrentStart(context.Background(), Args{"idz": 1, "foo": 2})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "foo, idz", verr.Param)
	assert.Empty(t, ft.requests)
}

func TestBooleanOptionPresence(t *testing.T) {
	c, ft := newTestClient()

	_, err := c.TorrentRemove(context.Background(), Args{"ids": 1, "delete-local-data": false})
	require.NoError(t, err)
	assert.Equal(t, `{"method":"torrent-remove","arguments":{"ids":[1],"delete-local-data":false}}`, lastBody(t, ft))

	_, err = c.TorrentRemove(context.Background(), Args{"ids": 1, "delete-local-data": true})
	require.NoError(t, err)
	assert.Equal(t, `{"method":"torrent-remove","arguments":{"ids":[1],"delete-local-data":true}}`, lastBody(t, ft))

	_, err = c.TorrentRemove(context.Background(), Args{"ids": 1})
	require.NoError(t, err)
	assert.Equal(t, `{"method":"torrent-remove","arguments":{"ids":[1]}}`, lastBody(t, ft))

	_, err = c.TorrentRemove(context.Background(), Args{"ids": 1, "delete-local-data": rpcargs.Unset})
	require.NoError(t, err)
	assert.Equal(t, `{"method":"torrent-remove","arguments":{"ids":[1]}}`, lastBody(t, ft))
}

func TestInvalidIDsAreOmitted(t *testing.T) {
	c, ft := newTestClient()
	_, err := c.TorrentStop(context.Background(), Args{"ids": []any{1, "bad"}})
	require.NoError(t, err)
	assert.Equal(t, `{"method":"torrent-stop"}`, lastBody(t, ft))

	hash := strings.Repeat("0f", 20)
	_, err = c.TorrentStop(context.Background(), Args{"ids": []any{hash, 2}})
	require.NoError(t, err)
	assert.Equal(t, `{"method":"torrent-stop","arguments":{"ids":["`+hash+`",2]}}`, lastBody(t, ft))

	_, err = c.QueueMoveUp(context.Background(), Args{"ids": rpcargs.RecentlyActive})
	require.NoError(t, err)
	assert.Equal(t, `{"method":"queue-move-up","arguments":{"ids":"recently-active"}}`, lastBody(t, ft))
}

func TestNilListsAreEncodedEmpty(t *testing.T) {
	c, ft := newTestClient()
	var ids []int
	_, err := c.TorrentRemove(context.Background(), Args{"ids": ids, "delete-local-data": true})
	require.NoError(t, err)
	assert.Equal(t, `{"method":"torrent-remove","arguments":{"ids":[],"delete-local-data":true}}`, lastBody(t, ft))

	var fields []string
	_, err = c.TorrentGet(context.Background(), fields, nil)
	require.NoError(t, err)
	assert.Equal(t, `{"method":"torrent-get","arguments":{"fields":[]}}`, lastBody(t, ft))
}

func TestMixedCaseKeys(t *testing.T) {
	c, ft := newTestClient()
	_, err := c.TorrentSet(context.Background(), Args{
		"ids":              []int{1},
		"upload-limited":   true,
		"seed-ratio-limit": 1.5,
		"tracker-add":      []string{"http://t/announce"},
		"location":         false,
	})
	require.NoError(t, err)
	assert.Equal(t,
		`{"method":"torrent-set","arguments":{"ids":[1],"seedRatioLimit":1.5,"trackerAdd":["http://t/announce"],"uploadLimited":true}}`,
		lastBody(t, ft))

	_, err = c.SessionSet(context.Background(), Args{"seed-ratio-limited": true, "speed-limit-down": 100})
	require.NoError(t, err)
	assert.Equal(t,
		`{"method":"session-set","arguments":{"seedRatioLimited":true,"speed-limit-down":100}}`,
		lastBody(t, ft))
}

func TestSetLocationAndRename(t *testing.T) {
	c, ft := newTestClient()
	_, err := c.TorrentSetLocation(context.Background(), "/new", Args{"ids": 3, "move": true})
	require.NoError(t, err)
	assert.Equal(t, `{"method":"torrent-set-location","arguments":{"location":"/new","ids":[3],"move":true}}`, lastBody(t, ft))

	_, err = c.TorrentRenamePath(context.Background(), "a/b", "c", Args{"ids": 3})
	require.NoError(t, err)
	assert.Equal(t, `{"method":"torrent-rename-path","arguments":{"path":"a/b","name":"c","ids":[3]}}`, lastBody(t, ft))
}

func TestNoArgumentMethods(t *testing.T) {
	c, ft := newTestClient()
	ctx := context.Background()
	calls := map[string]func(context.Context, Args) (*Reply, error){
		"session-stats":    c.SessionStats,
		"blocklist-update": c.BlocklistUpdate,
		"port-test":        c.PortTest,
		"session-close":    c.SessionClose,
		"session-get":      c.SessionGet,
	}
	for method, call := range calls {
		_, err := call(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, `{"method":"`+method+`"}`, lastBody(t, ft))
	}
}

func TestIDsMethods(t *testing.T) {
	c, ft := newTestClient()
	ctx := context.Background()
	calls := map[string]func(context.Context, Args) (*Reply, error){
		"torrent-start":      c.TorrentStart,
		"torrent-start-now":  c.TorrentStartNow,
		"torrent-stop":       c.TorrentStop,
		"torrent-verify":     c.TorrentVerify,
		"torrent-reannounce": c.TorrentReannounce,
		"queue-move-top":     c.QueueMoveTop,
		"queue-move-up":      c.QueueMoveUp,
		"queue-move-down":    c.QueueMoveDown,
		"queue-move-bottom":  c.QueueMoveBottom,
	}
	for method, call := range calls {
		_, err := call(ctx, Args{"ids": []int{}})
		require.NoError(t, err)
		assert.Equal(t, `{"method":"`+method+`","arguments":{"ids":[]}}`, lastBody(t, ft))
	}
}

func TestLookup(t *testing.T) {
	for _, d := range Methods {
		assert.Equal(t, d, Lookup(d.Method))
	}
	assert.Nil(t, Lookup("torrent-explode"))
	assert.Len(t, Methods, 22)
}
