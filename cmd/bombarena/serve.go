package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/bomb-arena/internal/arena"
	"github.com/vovakirdan/bomb-arena/internal/config"
	"github.com/vovakirdan/bomb-arena/internal/platform/ws"
	"github.com/vovakirdan/bomb-arena/internal/storage"
)

var (
	flagAddr   string
	flagPreset string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the websocket game server",
	Long: `Start the game server. Clients connect to ws://<addr>/ws and talk
the JSON envelope protocol.

Configuration is loaded from --config, then ~/.bombarena/arena.yaml,
then ./configs/arena.yaml, then built-in defaults. A preset tweaks the
loaded values.

Examples:
  bombarena serve
  bombarena serve --addr :9000
  bombarena serve --preset chaos
  bombarena serve --config ./arena.yaml --db ./results.db`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (overrides config)")
	serveCmd.Flags().StringVar(&flagPreset, "preset", "", "Gameplay preset: classic, chaos, endurance")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "bombarena",
	})

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagPreset != "" {
		if !config.ValidPreset(flagPreset) {
			return fmt.Errorf("unknown preset %q", flagPreset)
		}
		config.ApplyPreset(&cfg, config.Preset(flagPreset))
		logger.Info("preset applied", "preset", flagPreset)
	}
	if flagAddr != "" {
		cfg.Server.Addr = flagAddr
	}
	if flagDBPath != "" {
		cfg.Server.DBPath = flagDBPath
	}

	var results arena.ResultStore
	if cfg.Server.DBPath != "" {
		store, err := storage.Open(cfg.Server.DBPath)
		if err != nil {
			logger.Warn("could not open results database, continuing without persistence", "err", err)
		} else {
			defer store.Close()
			results = store
		}
	}

	coord := arena.NewCoordinator(cfg.RoomConfig(), logger, results)
	go coord.Run()
	defer coord.Stop()

	server := ws.NewServer(cfg.Server.Addr, coord, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	}
}
