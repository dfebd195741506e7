package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/stripwm/stripwm/internal/config"
	"github.com/stripwm/stripwm/internal/engine"
	"github.com/stripwm/stripwm/internal/event"
	"github.com/stripwm/stripwm/internal/hotkeys"
	"github.com/stripwm/stripwm/internal/ipc"
	"github.com/stripwm/stripwm/internal/x11"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the window management daemon",
	Long: `Run the daemon: connect to the X server, adopt existing windows into
per-monitor strips, and serve hotkeys, IPC commands and config reloads
until stopped.`,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}

func runDaemon(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	cfgPath, _ := cmd.Flags().GetString("config")
	var cfg *config.Config
	if cfgPath != "" {
		cfg, err = config.LoadFromPath(cfgPath)
	} else {
		cfg, err = config.Load()
		if p, perr := config.DefaultConfigPath(); perr == nil {
			cfgPath = p
		}
	}
	if err != nil {
		return err
	}

	conn, err := x11.NewConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	eng := engine.New(x11.NewBackend(conn), cfg, logger)

	bridge := x11.NewBridge(conn, logger, eng.Enqueue)
	if err := bridge.Subscribe(); err != nil {
		return err
	}

	hk := hotkeys.NewHandler(conn, logger, eng.Enqueue)
	hk.Apply(cfg)
	eng.OnConfigChange(hk.Apply)

	server, err := ipc.NewServer(eng, cfgPath, logger)
	if err != nil {
		return err
	}
	if err := server.Start(); err != nil {
		return err
	}
	defer server.Stop()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	runCtx, cancelRun := context.WithCancel(gctx)
	defer cancelRun()

	g.Go(func() error {
		defer cancelRun()
		return eng.Run(runCtx)
	})

	g.Go(func() error {
		ticker := time.NewTicker(engine.TickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-runCtx.Done():
				return runCtx.Err()
			case now := <-ticker.C:
				eng.Enqueue(event.Tick{At: now})
			}
		}
	})

	g.Go(func() error {
		return bridge.RunPointerPoll(runCtx)
	})

	if cfgPath != "" {
		watcher := config.NewWatcher(cfgPath, logger, func(next *config.Config) {
			eng.Enqueue(event.ConfigReloaded{Config: next})
		})
		g.Go(func() error {
			return watcher.Run(runCtx)
		})
	}

	// The X event loop has no context; closing the connection unblocks it.
	go conn.EventLoop()

	logger.Info("daemon started")

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
