// cmd/tide-nvim/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bethropolis/tide-nvim/internal/app"
	"github.com/bethropolis/tide-nvim/internal/config"
	"github.com/bethropolis/tide-nvim/internal/logger"
	"github.com/bethropolis/tide-nvim/internal/nvim"
	"github.com/bethropolis/tide-nvim/internal/syntax"
	"github.com/bethropolis/tide-nvim/internal/syntax/lang"
	"github.com/bethropolis/tide-nvim/internal/watcher"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// --- Flags & Config ---
	flags := config.NewFlags(flag.CommandLine)
	if _, err := flags.Parse(os.Args[1:]); err != nil {
		return 2
	}
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		return 0
	}
	logger.SetDebugFilter(*flags.DebugLog)

	cfg, err := config.Load(*flags.ConfigFilePath, flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		return 1
	}

	// --- Logger ---
	logFile, err := logger.Setup(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		return 1
	}
	defer logFile.Close()

	logger.Infof("Starting %s %s", config.AppName, version)
	logger.Debugf("Config file: %q, socket: %s, buffer: %d, topics: %v",
		cfg.Path(), cfg.Nvim.Socket, cfg.Nvim.Buffer, cfg.Nvim.Topics)

	// --- Collaborators ---
	lang.RegisterDefaults()
	parser := syntax.NewTreeSitterParser()
	defer parser.Close()

	dial := func(ctx context.Context) (app.Editor, error) {
		session, err := nvim.Dial(ctx, cfg.Nvim.Socket, cfg.Nvim.QueueSize)
		if err != nil {
			return nil, err
		}
		return session, nil
	}
	highlighter := app.New(cfg, dial, parser)

	if cfg.Highlight.WatchConfig && cfg.Path() != "" {
		w, err := watcher.New(cfg.Path(), watcher.DefaultDebounce)
		if err == nil {
			var changes <-chan struct{}
			changes, err = w.Start()
			if err == nil {
				defer w.Stop()
				highlighter.WatchConfig(changes)
			}
		}
		if err != nil {
			logger.Warnf("Config watching disabled: %v", err)
		}
	}

	// --- Run ---
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := highlighter.Run(ctx); err != nil {
		logger.Errorf("Exited with error: %v", err)
		if errors.Is(err, app.ErrConnect) {
			fmt.Fprintf(os.Stderr, "%s: couldn't connect to neovim at %s: %v\n", config.AppName, cfg.Nvim.Socket, err)
		} else {
			fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		}
		return 1
	}

	logger.Infof("%s finished.", config.AppName)
	return 0
}
