package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/cenkalti/log"
	"github.com/rcrowley/go-metrics"
	"github.com/urfave/cli"

	"github.com/cenkalti/transmissionrpc/internal/jsonutil"
	"github.com/cenkalti/transmissionrpc/internal/logger"
	"github.com/cenkalti/transmissionrpc/rpcclient"
	"github.com/cenkalti/transmissionrpc/rpctypes"
)

const defaultConfig = "~/.trpc.yaml"

var (
	clt *rpcclient.Client
	ctx = context.Background()
	lg  = logger.New("trpc")
)

func main() {
	app := cli.NewApp()
	app.Name = "trpc"
	app.Usage = "Transmission RPC client"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "config, c", Value: defaultConfig, Usage: "read connection options from `FILE`"},
		cli.StringFlag{Name: "host", Usage: "daemon host"},
		cli.IntFlag{Name: "port", Usage: "daemon port"},
		cli.StringFlag{Name: "path", Usage: "RPC endpoint path"},
		cli.StringFlag{Name: "username, u", Usage: "RPC username"},
		cli.StringFlag{Name: "password, p", Usage: "RPC password", EnvVar: "TRPC_PASSWORD"},
		cli.DurationFlag{Name: "timeout", Usage: "request timeout"},
		cli.IntFlag{Name: "tag", Usage: "tag to attach to the request"},
		cli.StringFlag{Name: "log-level", Value: "notice", Usage: "one of debug, info, notice, warning, error"},
		cli.BoolFlag{Name: "debug, d", Usage: "enable debug log"},
		cli.BoolFlag{Name: "metrics", Usage: "print call metrics to stderr on exit"},
		cli.BoolFlag{Name: "no-color", Usage: "disable colored output"},
	}
	app.Before = setup
	app.After = func(c *cli.Context) error {
		if clt == nil {
			return nil
		}
		if c.GlobalBool("metrics") {
			metrics.WriteOnce(clt.Metrics(), os.Stderr)
		}
		return clt.Close()
	}
	app.Commands = []cli.Command{
		{
			Name:   "list",
			Usage:  "list torrents",
			Action: handleList,
		},
		{
			Name:      "info",
			Usage:     "show details of torrents",
			ArgsUsage: "ID...",
			Flags: []cli.Flag{
				cli.StringSliceFlag{Name: "field, f", Usage: "fetch only the given fields"},
			},
			Action: handleInfo,
		},
		{
			Name:      "add",
			Usage:     "add a torrent file, URL or magnet link",
			ArgsUsage: "FILE|URL|MAGNET",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "download-dir"},
				cli.BoolFlag{Name: "paused"},
				cli.StringSliceFlag{Name: "label"},
				cli.StringFlag{Name: "cookies"},
			},
			Action: handleAdd,
		},
		{
			Name:      "remove",
			Usage:     "remove torrents",
			ArgsUsage: "ID...",
			Flags: []cli.Flag{
				cli.BoolFlag{Name: "delete-data", Usage: "delete downloaded files"},
			},
			Action: handleRemove,
		},
		{
			Name:      "start",
			Usage:     "start torrents",
			ArgsUsage: "ID...",
			Flags: []cli.Flag{
				cli.BoolFlag{Name: "now", Usage: "bypass the download queue"},
			},
			Action: handleStart,
		},
		idsCommand("stop", "stop torrents", (*rpcclient.Client).TorrentStop),
		idsCommand("verify", "verify torrent data", (*rpcclient.Client).TorrentVerify),
		idsCommand("reannounce", "ask trackers for more peers", (*rpcclient.Client).TorrentReannounce),
		{
			Name:  "queue",
			Usage: "move torrents in the queue",
			Subcommands: []cli.Command{
				idsCommand("top", "move to the top", (*rpcclient.Client).QueueMoveTop),
				idsCommand("up", "move up", (*rpcclient.Client).QueueMoveUp),
				idsCommand("down", "move down", (*rpcclient.Client).QueueMoveDown),
				idsCommand("bottom", "move to the bottom", (*rpcclient.Client).QueueMoveBottom),
			},
		},
		{
			Name:      "set",
			Usage:     "change torrent properties",
			ArgsUsage: "ID... [name=value...]",
			Action:    handleTorrentSet,
		},
		{
			Name:      "move",
			Usage:     "change the location of torrent data",
			ArgsUsage: "LOCATION ID...",
			Flags: []cli.Flag{
				cli.BoolFlag{Name: "move", Usage: "move the data from the old location"},
			},
			Action: handleMove,
		},
		{
			Name:      "rename",
			Usage:     "rename a file or directory of a torrent",
			ArgsUsage: "ID PATH NAME",
			Action:    handleRename,
		},
		{
			Name:  "session",
			Usage: "show session settings",
			Flags: []cli.Flag{
				cli.StringSliceFlag{Name: "field, f", Usage: "fetch only the given fields"},
			},
			Action: handleSessionGet,
		},
		{
			Name:      "session-set",
			Usage:     "change session settings",
			ArgsUsage: "name=value...",
			Action:    handleSessionSet,
		},
		{
			Name:   "stats",
			Usage:  "show session statistics",
			Action: handleStats,
		},
		{
			Name:   "blocklist-update",
			Usage:  "update the peer blocklist",
			Action: handleBlocklistUpdate,
		},
		{
			Name:   "port-test",
			Usage:  "test whether the peer port is reachable",
			Action: handlePortTest,
		},
		{
			Name:      "free-space",
			Usage:     "show free space in a directory",
			ArgsUsage: "PATH",
			Action:    handleFreeSpace,
		},
		{
			Name:   "close",
			Usage:  "shut down the daemon",
			Action: handleClose,
		},
		{
			Name:      "call",
			Usage:     "call a method with a JSON arguments object",
			ArgsUsage: "METHOD [ARGUMENTS]",
			Action:    handleCall,
		},
	}
	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func setup(c *cli.Context) error {
	level := c.GlobalString("log-level")
	if c.GlobalBool("debug") {
		level = "debug"
	}
	l, err := logger.ParseLevel(level)
	if err != nil {
		return err
	}
	logger.SetLevel(l)
	if c.GlobalBool("no-color") {
		jsonutil.DisableColor()
	}
	opt, err := rpcclient.LoadOptions(c.GlobalString("config"))
	if err != nil {
		return err
	}
	if err = opt.FromEnv(); err != nil {
		return err
	}
	if c.GlobalIsSet("host") {
		opt.Host = c.GlobalString("host")
	}
	if c.GlobalIsSet("port") {
		opt.Port = c.GlobalInt("port")
	}
	if c.GlobalIsSet("path") {
		opt.Path = c.GlobalString("path")
	}
	if c.GlobalIsSet("username") {
		opt.Username = c.GlobalString("username")
	}
	if c.GlobalIsSet("password") {
		opt.Password = c.GlobalString("password")
	}
	if c.GlobalIsSet("timeout") {
		opt.Timeout = c.GlobalDuration("timeout")
	}
	clt, err = opt.NewClient()
	return err
}

// args returns the options of a call with the global tag added.
func args(c *cli.Context, opts rpcclient.Args) rpcclient.Args {
	if opts == nil {
		opts = rpcclient.Args{}
	}
	if c.GlobalIsSet("tag") {
		opts[rpcclient.TagOption] = c.GlobalInt("tag")
	}
	return opts
}

// check converts replies that are not successful into errors.
func check(reply *rpcclient.Reply, err error) (*rpcclient.Reply, error) {
	if err != nil {
		return nil, err
	}
	if reply.Result == rpcclient.ResultInvalidConfig {
		return nil, fmt.Errorf("invalid connection options for %s", clt.Config().URL().Redacted())
	}
	if err = reply.Err(); err != nil {
		return nil, err
	}
	return reply, nil
}

func printRaw(raw json.RawMessage) error {
	if len(raw) == 0 {
		return nil
	}
	b, err := jsonutil.MarshalRaw(raw)
	if err != nil {
		return err
	}
	_, _ = os.Stdout.Write(b)
	return nil
}

func printStruct(v any) error {
	b, err := jsonutil.MarshalCompactPretty(v)
	if err != nil {
		return err
	}
	_, _ = os.Stdout.Write(b)
	return nil
}

func handleList(c *cli.Context) error {
	reply, err := check(clt.TorrentGet(ctx, rpctypes.TorrentFields, args(c, nil)))
	if err != nil {
		return err
	}
	var resp rpctypes.TorrentGetResponse
	if err = reply.DecodeArguments(&resp); err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDone\tDown\tUp\tRatio\tStatus\tName")
	for _, t := range resp.Torrents {
		fmt.Fprintf(w, "%d\t%.0f%%\t%s\t%s\t%.2f\t%s\t%s\n",
			t.ID, t.PercentDone*100, speed(t.RateDownload), speed(t.RateUpload), t.UploadRatio, t.StatusString(), t.Name)
	}
	return w.Flush()
}

func speed(bps int64) string {
	return fmt.Sprintf("%d kB/s", bps/1000)
}

func handleInfo(c *cli.Context) error {
	ids, err := parseIDs(c.Args())
	if err != nil {
		return err
	}
	fields := c.StringSlice("field")
	if len(fields) > 0 {
		reply, err2 := check(clt.TorrentGet(ctx, fields, args(c, rpcclient.Args{"ids": ids})))
		if err2 != nil {
			return err2
		}
		return printRaw(reply.Arguments)
	}
	reply, err := check(clt.TorrentGet(ctx, rpctypes.TorrentFields, args(c, rpcclient.Args{"ids": ids})))
	if err != nil {
		return err
	}
	var resp rpctypes.TorrentGetResponse
	if err = reply.DecodeArguments(&resp); err != nil {
		return err
	}
	for i := range resp.Torrents {
		if i > 0 {
			fmt.Println()
		}
		if err = printStruct(&resp.Torrents[i]); err != nil {
			return err
		}
	}
	return nil
}

func handleAdd(c *cli.Context) error {
	if len(c.Args()) != 1 {
		return cli.NewExitError("give a torrent file, URL or magnet link as first argument", 1)
	}
	src, err := parseSource(c.Args().First())
	if err != nil {
		return err
	}
	opts := rpcclient.Args{
		"download-dir": c.String("download-dir"),
		"cookies":      c.String("cookies"),
	}
	if labels := c.StringSlice("label"); len(labels) > 0 {
		opts["labels"] = labels
	}
	if c.IsSet("paused") {
		opts["paused"] = c.Bool("paused")
	}
	reply, err := check(clt.TorrentAdd(ctx, src, args(c, opts)))
	if err != nil {
		return err
	}
	var resp rpctypes.TorrentAddResponse
	if err = reply.DecodeArguments(&resp); err != nil {
		return err
	}
	if resp.Duplicate != nil {
		lg.Warningf("torrent is already added: %s", resp.Duplicate.Name)
	}
	if t := resp.Torrent(); t != nil {
		return printStruct(t)
	}
	return nil
}

func handleRemove(c *cli.Context) error {
	ids, err := requireIDs(c.Args())
	if err != nil {
		return err
	}
	_, err = check(clt.TorrentRemove(ctx, args(c, rpcclient.Args{"ids": ids, "delete-local-data": c.Bool("delete-data")})))
	return err
}

func handleStart(c *cli.Context) error {
	ids, err := parseIDs(c.Args())
	if err != nil {
		return err
	}
	start := clt.TorrentStart
	if c.Bool("now") {
		start = clt.TorrentStartNow
	}
	_, err = check(start(ctx, args(c, rpcclient.Args{"ids": ids})))
	return err
}

func idsCommand(name, usage string, call func(*rpcclient.Client, context.Context, rpcclient.Args) (*rpcclient.Reply, error)) cli.Command {
	return cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "ID...",
		Action: func(c *cli.Context) error {
			ids, err := parseIDs(c.Args())
			if err != nil {
				return err
			}
			_, err = check(call(clt, ctx, args(c, rpcclient.Args{"ids": ids})))
			return err
		},
	}
}

func handleTorrentSet(c *cli.Context) error {
	var idArgs, settings []string
	for _, a := range c.Args() {
		if strings.Contains(a, "=") {
			settings = append(settings, a)
		} else {
			idArgs = append(idArgs, a)
		}
	}
	ids, err := requireIDs(idArgs)
	if err != nil {
		return err
	}
	opts, err := parseSettings(settings)
	if err != nil {
		return err
	}
	opts["ids"] = ids
	_, err = check(clt.TorrentSet(ctx, args(c, opts)))
	return err
}

func handleMove(c *cli.Context) error {
	if len(c.Args()) < 2 {
		return cli.NewExitError("give a location and torrent ids", 1)
	}
	ids, err := requireIDs(c.Args().Tail())
	if err != nil {
		return err
	}
	opts := rpcclient.Args{"ids": ids}
	if c.IsSet("move") {
		opts["move"] = c.Bool("move")
	}
	_, err = check(clt.TorrentSetLocation(ctx, c.Args().First(), args(c, opts)))
	return err
}

func handleRename(c *cli.Context) error {
	if len(c.Args()) != 3 {
		return cli.NewExitError("give a torrent id, a path and a new name", 1)
	}
	ids, err := requireIDs(c.Args()[:1])
	if err != nil {
		return err
	}
	reply, err := check(clt.TorrentRenamePath(ctx, c.Args().Get(1), c.Args().Get(2), args(c, rpcclient.Args{"ids": ids})))
	if err != nil {
		return err
	}
	var resp rpctypes.RenamePath
	if err = reply.DecodeArguments(&resp); err != nil {
		return err
	}
	return printStruct(&resp)
}

func handleSessionGet(c *cli.Context) error {
	opts := rpcclient.Args{}
	if fields := c.StringSlice("field"); len(fields) > 0 {
		opts["fields"] = fields
	}
	reply, err := check(clt.SessionGet(ctx, args(c, opts)))
	if err != nil {
		return err
	}
	return printRaw(reply.Arguments)
}

func handleSessionSet(c *cli.Context) error {
	opts, err := parseSettings(c.Args())
	if err != nil {
		return err
	}
	_, err = check(clt.SessionSet(ctx, args(c, opts)))
	return err
}

func handleStats(c *cli.Context) error {
	reply, err := check(clt.SessionStats(ctx, args(c, nil)))
	if err != nil {
		return err
	}
	var stats rpctypes.SessionStats
	if err = reply.DecodeArguments(&stats); err != nil {
		return err
	}
	return printStruct(&stats)
}

func handleBlocklistUpdate(c *cli.Context) error {
	reply, err := check(clt.BlocklistUpdate(ctx, args(c, nil)))
	if err != nil {
		return err
	}
	var resp rpctypes.BlocklistUpdate
	if err = reply.DecodeArguments(&resp); err != nil {
		return err
	}
	return printStruct(&resp)
}

func handlePortTest(c *cli.Context) error {
	reply, err := check(clt.PortTest(ctx, args(c, nil)))
	if err != nil {
		return err
	}
	var resp rpctypes.PortTest
	if err = reply.DecodeArguments(&resp); err != nil {
		return err
	}
	return printStruct(&resp)
}

func handleFreeSpace(c *cli.Context) error {
	if len(c.Args()) != 1 {
		return cli.NewExitError("give a directory as first argument", 1)
	}
	reply, err := check(clt.FreeSpace(ctx, c.Args().First(), args(c, nil)))
	if err != nil {
		return err
	}
	var resp rpctypes.FreeSpace
	if err = reply.DecodeArguments(&resp); err != nil {
		return err
	}
	return printStruct(&resp)
}

func handleClose(c *cli.Context) error {
	_, err := check(clt.SessionClose(ctx, args(c, nil)))
	return err
}

func handleCall(c *cli.Context) error {
	if len(c.Args()) < 1 || len(c.Args()) > 2 {
		return cli.NewExitError("give a method name and an optional arguments object", 1)
	}
	method := c.Args().First()
	if rpcclient.Lookup(method) == nil {
		lg.Warningf("%s is not a known method, sending anyway", method)
	}
	arguments := rpcclient.NewArguments()
	if len(c.Args()) == 2 {
		if err := json.Unmarshal([]byte(c.Args().Get(1)), arguments); err != nil {
			return fmt.Errorf("invalid arguments object: %w", err)
		}
	}
	var tag any
	if c.GlobalIsSet("tag") {
		tag = c.GlobalInt("tag")
	}
	start := time.Now()
	reply, err := check(clt.Call(ctx, method, arguments, tag))
	if err != nil {
		return err
	}
	lg.Debugf("%s completed in %s", method, time.Since(start))
	return printRaw(reply.Arguments)
}
