package rpcclient

import (
	"context"

	"github.com/cenkalti/transmissionrpc/rpcargs"
)

// Method descriptors. Parameter names are lowercase with dashes;
// keys are the field names of the daemon's protocol.
var (
	TorrentStartMethod      = idsMethod("torrent-start")
	TorrentStartNowMethod   = idsMethod("torrent-start-now")
	TorrentStopMethod       = idsMethod("torrent-stop")
	TorrentVerifyMethod     = idsMethod("torrent-verify")
	TorrentReannounceMethod = idsMethod("torrent-reannounce")

	QueueMoveTopMethod    = idsMethod("queue-move-top")
	QueueMoveUpMethod     = idsMethod("queue-move-up")
	QueueMoveDownMethod   = idsMethod("queue-move-down")
	QueueMoveBottomMethod = idsMethod("queue-move-bottom")

	TorrentSetMethod = &Descriptor{
		Method: "torrent-set",
		Optional: []Param{
			opt("ids", rpcargs.IDs),
			param("bandwidth-priority", "bandwidthPriority", rpcargs.Number),
			param("download-limit", "downloadLimit", rpcargs.Number),
			flag("download-limited", "downloadLimited"),
			opt("files-wanted", rpcargs.Array),
			opt("files-unwanted", rpcargs.Array),
			opt("group", rpcargs.String),
			flag("honors-session-limits", "honorsSessionLimits"),
			opt("labels", rpcargs.Strings),
			opt("location", rpcargs.String),
			opt("peer-limit", rpcargs.Number),
			opt("priority-high", rpcargs.Array),
			opt("priority-low", rpcargs.Array),
			opt("priority-normal", rpcargs.Array),
			param("queue-position", "queuePosition", rpcargs.Number),
			param("seed-idle-limit", "seedIdleLimit", rpcargs.Number),
			param("seed-idle-mode", "seedIdleMode", rpcargs.Number),
			param("seed-ratio-limit", "seedRatioLimit", rpcargs.Number),
			param("seed-ratio-mode", "seedRatioMode", rpcargs.Number),
			param("tracker-add", "trackerAdd", rpcargs.Array),
			param("tracker-list", "trackerList", rpcargs.String),
			param("tracker-remove", "trackerRemove", rpcargs.Array),
			param("tracker-replace", "trackerReplace", rpcargs.Array),
			param("upload-limit", "uploadLimit", rpcargs.Number),
			flag("upload-limited", "uploadLimited"),
		},
	}

	TorrentGetMethod = &Descriptor{
		Method:   "torrent-get",
		Required: []Param{opt("fields", rpcargs.Strings)},
		Optional: []Param{
			opt("ids", rpcargs.IDs),
			opt("format", rpcargs.String),
		},
	}

	TorrentAddMethod = &Descriptor{
		Method:   "torrent-add",
		Required: []Param{opt("source", rpcargs.SourceArg)},
		Optional: []Param{
			opt("cookies", rpcargs.String),
			opt("download-dir", rpcargs.String),
			opt("labels", rpcargs.Strings),
			flag("paused", "paused"),
			opt("peer-limit", rpcargs.Number),
			param("bandwidth-priority", "bandwidthPriority", rpcargs.Number),
			opt("files-wanted", rpcargs.Array),
			opt("files-unwanted", rpcargs.Array),
			opt("priority-high", rpcargs.Array),
			opt("priority-low", rpcargs.Array),
			opt("priority-normal", rpcargs.Array),
		},
	}

	TorrentRemoveMethod = &Descriptor{
		Method: "torrent-remove",
		Optional: []Param{
			opt("ids", rpcargs.IDs),
			flag("delete-local-data", "delete-local-data"),
		},
	}

	TorrentSetLocationMethod = &Descriptor{
		Method:   "torrent-set-location",
		Required: []Param{opt("location", rpcargs.String)},
		Optional: []Param{
			opt("ids", rpcargs.IDs),
			flag("move", "move"),
		},
	}

	TorrentRenamePathMethod = &Descriptor{
		Method: "torrent-rename-path",
		Required: []Param{
			opt("path", rpcargs.String),
			opt("name", rpcargs.String),
		},
		Optional: []Param{opt("ids", rpcargs.IDs)},
	}

	SessionSetMethod = &Descriptor{
		Method: "session-set",
		Optional: []Param{
			opt("alt-speed-down", rpcargs.Number),
			flag("alt-speed-enabled", "alt-speed-enabled"),
			opt("alt-speed-time-begin", rpcargs.Number),
			opt("alt-speed-time-day", rpcargs.Number),
			flag("alt-speed-time-enabled", "alt-speed-time-enabled"),
			opt("alt-speed-time-end", rpcargs.Number),
			opt("alt-speed-up", rpcargs.Number),
			flag("blocklist-enabled", "blocklist-enabled"),
			opt("blocklist-url", rpcargs.String),
			opt("cache-size-mb", rpcargs.Number),
			flag("dht-enabled", "dht-enabled"),
			opt("download-dir", rpcargs.String),
			flag("download-queue-enabled", "download-queue-enabled"),
			opt("download-queue-size", rpcargs.Number),
			opt("encryption", rpcargs.String),
			flag("idle-seeding-limit-enabled", "idle-seeding-limit-enabled"),
			opt("idle-seeding-limit", rpcargs.Number),
			opt("incomplete-dir", rpcargs.String),
			flag("incomplete-dir-enabled", "incomplete-dir-enabled"),
			flag("lpd-enabled", "lpd-enabled"),
			opt("peer-limit-global", rpcargs.Number),
			opt("peer-limit-per-torrent", rpcargs.Number),
			opt("peer-port", rpcargs.Number),
			flag("peer-port-random-on-start", "peer-port-random-on-start"),
			flag("pex-enabled", "pex-enabled"),
			flag("port-forwarding-enabled", "port-forwarding-enabled"),
			flag("queue-stalled-enabled", "queue-stalled-enabled"),
			opt("queue-stalled-minutes", rpcargs.Number),
			flag("rename-partial-files", "rename-partial-files"),
			flag("script-torrent-done-enabled", "script-torrent-done-enabled"),
			opt("script-torrent-done-filename", rpcargs.String),
			flag("seed-queue-enabled", "seed-queue-enabled"),
			opt("seed-queue-size", rpcargs.Number),
			param("seed-ratio-limit", "seedRatioLimit", rpcargs.Number),
			flag("seed-ratio-limited", "seedRatioLimited"),
			opt("speed-limit-down", rpcargs.Number),
			flag("speed-limit-down-enabled", "speed-limit-down-enabled"),
			opt("speed-limit-up", rpcargs.Number),
			flag("speed-limit-up-enabled", "speed-limit-up-enabled"),
			flag("start-added-torrents", "start-added-torrents"),
			flag("trash-original-torrent-files", "trash-original-torrent-files"),
			opt("units", rpcargs.Object),
			flag("utp-enabled", "utp-enabled"),
		},
	}

	SessionGetMethod = &Descriptor{
		Method:   "session-get",
		Optional: []Param{opt("fields", rpcargs.Strings)},
	}

	SessionStatsMethod    = &Descriptor{Method: "session-stats"}
	BlocklistUpdateMethod = &Descriptor{Method: "blocklist-update"}
	PortTestMethod        = &Descriptor{Method: "port-test"}
	SessionCloseMethod    = &Descriptor{Method: "session-close"}

	FreeSpaceMethod = &Descriptor{
		Method:   "free-space",
		Required: []Param{opt("path", rpcargs.String)},
	}
)

// Methods lists the descriptors of all supported methods.
var Methods = []*Descriptor{
	TorrentStartMethod,
	TorrentStartNowMethod,
	TorrentStopMethod,
	TorrentVerifyMethod,
	TorrentReannounceMethod,
	TorrentSetMethod,
	TorrentGetMethod,
	TorrentAddMethod,
	TorrentRemoveMethod,
	TorrentSetLocationMethod,
	TorrentRenamePathMethod,
	SessionSetMethod,
	SessionGetMethod,
	SessionStatsMethod,
	BlocklistUpdateMethod,
	PortTestMethod,
	SessionCloseMethod,
	QueueMoveTopMethod,
	QueueMoveUpMethod,
	QueueMoveDownMethod,
	QueueMoveBottomMethod,
	FreeSpaceMethod,
}

// Lookup returns the descriptor of method or nil if it is not supported.
func Lookup(method string) *Descriptor {
	for _, d := range Methods {
		if d.Method == method {
			return d
		}
	}
	return nil
}

// TorrentStart starts the selected torrents. Options: ids.
func (c *Client) TorrentStart(ctx context.Context, opts Args) (*Reply, error) {
	return c.Invoke(ctx, TorrentStartMethod, nil, opts)
}

// TorrentStartNow starts the selected torrents bypassing the queue. Options: ids.
func (c *Client) TorrentStartNow(ctx context.Context, opts Args) (*Reply, error) {
	return c.Invoke(ctx, TorrentStartNowMethod, nil, opts)
}

// TorrentStop stops the selected torrents. Options: ids.
func (c *Client) TorrentStop(ctx context.Context, opts Args) (*Reply, error) {
	return c.Invoke(ctx, TorrentStopMethod, nil, opts)
}

// TorrentVerify verifies local data of the selected torrents. Options: ids.
func (c *Client) TorrentVerify(ctx context.Context, opts Args) (*Reply, error) {
	return c.Invoke(ctx, TorrentVerifyMethod, nil, opts)
}

// TorrentReannounce asks trackers for more peers. Options: ids.
func (c *Client) TorrentReannounce(ctx context.Context, opts Args) (*Reply, error) {
	return c.Invoke(ctx, TorrentReannounceMethod, nil, opts)
}

// TorrentSet changes properties of the selected torrents.
func (c *Client) TorrentSet(ctx context.Context, opts Args) (*Reply, error) {
	return c.Invoke(ctx, TorrentSetMethod, nil, opts)
}

// TorrentGet returns the fields of the selected torrents. Options: ids, format.
func (c *Client) TorrentGet(ctx context.Context, fields any, opts Args) (*Reply, error) {
	return c.Invoke(ctx, TorrentGetMethod, []any{fields}, opts)
}

// TorrentAdd adds a new torrent from src.
func (c *Client) TorrentAdd(ctx context.Context, src rpcargs.Source, opts Args) (*Reply, error) {
	return c.Invoke(ctx, TorrentAddMethod, []any{src}, opts)
}

// TorrentRemove removes the selected torrents. Options: ids, delete-local-data.
func (c *Client) TorrentRemove(ctx context.Context, opts Args) (*Reply, error) {
	return c.Invoke(ctx, TorrentRemoveMethod, nil, opts)
}

// TorrentSetLocation changes the download directory of the selected torrents. Options: ids, move.
func (c *Client) TorrentSetLocation(ctx context.Context, location string, opts Args) (*Reply, error) {
	return c.Invoke(ctx, TorrentSetLocationMethod, []any{location}, opts)
}

// TorrentRenamePath renames a file or directory of a torrent. Options: ids.
func (c *Client) TorrentRenamePath(ctx context.Context, path, name string, opts Args) (*Reply, error) {
	return c.Invoke(ctx, TorrentRenamePathMethod, []any{path, name}, opts)
}

// SessionSet changes session settings.
func (c *Client) SessionSet(ctx context.Context, opts Args) (*Reply, error) {
	return c.Invoke(ctx, SessionSetMethod, nil, opts)
}

// SessionGet returns session settings. Options: fields.
func (c *Client) SessionGet(ctx context.Context, opts Args) (*Reply, error) {
	return c.Invoke(ctx, SessionGetMethod, nil, opts)
}

// SessionStats returns transfer statistics of the session.
func (c *Client) SessionStats(ctx context.Context, opts Args) (*Reply, error) {
	return c.Invoke(ctx, SessionStatsMethod, nil, opts)
}

// BlocklistUpdate makes the daemon download its blocklist again.
func (c *Client) BlocklistUpdate(ctx context.Context, opts Args) (*Reply, error) {
	return c.Invoke(ctx, BlocklistUpdateMethod, nil, opts)
}

// PortTest asks the daemon to test whether its peer port is reachable.
func (c *Client) PortTest(ctx context.Context, opts Args) (*Reply, error) {
	return c.Invoke(ctx, PortTestMethod, nil, opts)
}

// SessionClose shuts the daemon down.
func (c *Client) SessionClose(ctx context.Context, opts Args) (*Reply, error) {
	return c.Invoke(ctx, SessionCloseMethod, nil, opts)
}

// QueueMoveTop moves the selected torrents to the front of the queue. Options: ids.
func (c *Client) QueueMoveTop(ctx context.Context, opts Args) (*Reply, error) {
	return c.Invoke(ctx, QueueMoveTopMethod, nil, opts)
}

// QueueMoveUp moves the selected torrents one position up in the queue. Options: ids.
func (c *Client) QueueMoveUp(ctx context.Context, opts Args) (*Reply, error) {
	return c.Invoke(ctx, QueueMoveUpMethod, nil, opts)
}

// QueueMoveDown moves the selected torrents one position down in the queue. Options: ids.
func (c *Client) QueueMoveDown(ctx context.Context, opts Args) (*Reply, error) {
	return c.Invoke(ctx, QueueMoveDownMethod, nil, opts)
}

// QueueMoveBottom moves the selected torrents to the end of the queue. Options: ids.
func (c *Client) QueueMoveBottom(ctx context.Context, opts Args) (*Reply, error) {
	return c.Invoke(ctx, QueueMoveBottomMethod, nil, opts)
}

// FreeSpace returns the free space in path on the daemon's filesystem.
func (c *Client) FreeSpace(ctx context.Context, path string, opts Args) (*Reply, error) {
	return c.Invoke(ctx, FreeSpaceMethod, []any{path}, opts)
}
