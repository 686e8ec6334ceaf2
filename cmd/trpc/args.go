package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cenkalti/transmissionrpc/internal/magnet"
	"github.com/cenkalti/transmissionrpc/internal/metainfo"
	"github.com/cenkalti/transmissionrpc/rpcargs"
	"github.com/cenkalti/transmissionrpc/rpcclient"
)

// parseIDs converts command line arguments into a torrent selector.
// No arguments select all torrents.
// Invalid ids are reported here because the client would silently drop the selector.
func parseIDs(args []string) (any, error) {
	if len(args) == 0 {
		return nil, nil
	}
	if len(args) == 1 {
		switch args[0] {
		case "all":
			return nil, nil
		case "active", rpcargs.RecentlyActive:
			return rpcargs.RecentlyActive, nil
		}
	}
	ids := make([]any, 0, len(args))
	for _, a := range args {
		id, err := parseID(a)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// requireIDs is like parseIDs but does not allow selecting all torrents implicitly.
func requireIDs(args []string) (any, error) {
	if len(args) == 0 {
		return nil, errors.New("give torrent ids or \"all\"")
	}
	return parseIDs(args)
}

func parseID(s string) (any, error) {
	if magnet.Is(s) {
		m, err := magnet.New(s)
		if err != nil {
			return nil, err
		}
		return m.HashString(), nil
	}
	if i, err := strconv.Atoi(s); err == nil {
		if !rpcargs.ID(i).Included() {
			return nil, fmt.Errorf("invalid torrent id: %s", s)
		}
		return i, nil
	}
	s = strings.ToLower(s)
	if !rpcargs.ID(s).Included() {
		return nil, fmt.Errorf("invalid torrent id: %s", s)
	}
	return s, nil
}

// parseSource returns a Source for a local torrent file, a magnet link or a URL.
// Local files are sent as content because the daemon may run on another machine.
func parseSource(s string) (rpcargs.Source, error) {
	if magnet.Is(s) {
		m, err := magnet.New(s)
		if err != nil {
			return rpcargs.Source{}, err
		}
		lg.Debugf("adding magnet %s (%s)", m.HashString(), m.Name)
		return rpcargs.Filename(s), nil
	}
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return rpcargs.Filename(s), nil
	}
	if _, err := os.Stat(s); err != nil {
		return rpcargs.Source{}, err
	}
	mi, err := metainfo.Load(s)
	if err != nil {
		return rpcargs.Source{}, fmt.Errorf("invalid torrent file: %w", err)
	}
	lg.Debugf("adding torrent file %s (%s)", mi.HashString(), mi.Name)
	return mi.Source(), nil
}

// parseSettings converts "name=value" arguments into call options.
// Values are parsed as JSON and used as plain strings if that fails.
func parseSettings(args []string) (rpcclient.Args, error) {
	opts := make(rpcclient.Args, len(args))
	for _, a := range args {
		name, value, ok := strings.Cut(a, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid setting %q, must be name=value", a)
		}
		var v any
		if err := json.Unmarshal([]byte(value), &v); err != nil {
			v = value
		}
		opts[name] = v
	}
	return opts, nil
}
