package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/pflag"

	"github.com/nhle/chckd/internal/model"
	"github.com/nhle/chckd/internal/store"
)

const VERSION = "0.3.0"

const usage = `chckd - checklists on the command line

Usage:
  chckd [flags] <command> [args]

Commands:
  list [--group ID]            print groups, checklists and items
  check ITEM_ID                toggle an item
  reset CHECKLIST_ID           uncheck every item of a checklist
  reset --group GROUP_ID       uncheck every item of a group
  seed [--clear]               load the starter templates
  export [--out FILE]          write CSV (stdout by default)
  import [--overwrite] FILE    read CSV written by export
  backend                      show which storage backend is active

Flags:
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("chckd", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.StringP("config", "c", model.DefaultConfigPath(), "path to config file")
	backend := fs.String("backend", "", `override storage.backend ("auto" or "flat")`)
	dataDir := fs.String("data-dir", "", "override storage.data_dir")
	verbose := fs.BoolP("verbose", "v", false, "enable debug logging")
	version := fs.Bool("version", false, "print version and exit")
	yes := fs.BoolP("yes", "y", false, "do not ask before destructive commands")
	fs.SetInterspersed(false)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *version {
		fmt.Fprintf(stdout, "chckd v%s\n", VERSION)
		return 0
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "loading config: %v\n", err)
		return 1
	}
	if *backend != "" {
		cfg.Storage.Backend = *backend
	}
	if *dataDir != "" {
		cfg.Storage.DataDir = *dataDir
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "invalid flags: %v\n", err)
		return 2
	}

	logger := newLogger(cfg.Log, *verbose, stderr)
	slog.SetDefault(logger)

	s := store.Open(cfg.Storage, logger)
	defer func() {
		if err := s.Close(); err != nil {
			logger.Warn("closing store", "error", err)
		}
	}()

	c := &cli{store: s, cfg: cfg, out: stdout, logger: logger, confirm: huhConfirm}
	if *yes {
		c.confirm = alwaysConfirm
	}
	if err := c.dispatch(ctx, fs.Arg(0), fs.Args()[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "%v\n\n", err)
			fs.Usage()
			return 2
		}
		logger.Error("command failed", "command", fs.Arg(0), "error", err)
		return 1
	}
	return 0
}

// newLogger builds the process logger from config. --verbose wins over
// log.level.
func newLogger(cfg model.LogConfig, verbose bool, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
