package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"fpsrig/internal/config"
	"fpsrig/internal/game"
	"fpsrig/internal/logging"
	"fpsrig/internal/metrics"

	"github.com/rs/zerolog/log"
)

const defaultConfig = "fpsrig.yaml"

func main() {
	configPath := flag.String("config", defaultConfig, "config file")
	level := flag.String("level", "", "level file, overrides the config's scene")
	logLevel := flag.String("log-level", "", "log level, overrides the config")
	metricsAddr := flag.String("metrics", "", "serve Prometheus metrics on this address")
	noWatch := flag.Bool("no-watch", false, "do not reload the config file on change")
	flag.Parse()

	// user paths are relative to where we were started, not to the binary
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			*configPath = absPath(*configPath)
		}
	})
	*level = absPath(*level)

	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	if err := run(*configPath, *level, *logLevel, *metricsAddr, !*noWatch); err != nil {
		log.Error().Err(err).Msg("fpsrig stopped")
		os.Exit(1)
	}
}

func absPath(p string) string {
	if p == "" {
		return p
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}

func run(configPath, level, logLevel, metricsAddr string, watch bool) error {
	// a missing default config just means defaults
	if configPath == defaultConfig {
		if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
			configPath = ""
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	// flags win over the file, including on hot reload
	override := func(c *config.Config) {
		if level != "" {
			c.Scene = level
		}
		if logLevel != "" {
			c.Log.Level = logLevel
		}
		if metricsAddr != "" {
			c.Metrics.Addr = metricsAddr
		}
	}
	override(&cfg)

	logging.Setup(cfg.Log.Level, cfg.Log.Pretty)
	log.Info().Str("config", configPath).Str("scene", cfg.Scene).Msg("starting fpsrig")

	srv, err := metrics.Serve(cfg.Metrics.Addr)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("metrics shutdown")
		}
	}()

	g, err := game.New(cfg)
	if err != nil {
		return err
	}

	if watch && configPath != "" {
		err := config.Watch(func(c config.Config) {
			override(&c)
			g.QueueConfig(c)
		})
		if err != nil {
			log.Warn().Err(err).Msg("config watch disabled")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return g.Run(ctx)
}
