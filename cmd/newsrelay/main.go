package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"NewsRelay/internal/app"
	"NewsRelay/internal/config"
	"NewsRelay/internal/logging"
)

type options struct {
	Config  string `short:"c" long:"config" env:"NEWS_RELAY_CONFIG" description:"Path to YAML configuration file"`
	EnvFile string `long:"env-file" default:".env" description:"Dotenv file loaded before configuration"`
	Once    bool   `long:"once" description:"Run a single polling cycle and exit"`
}

func main() {
	var opts options
	if _, err := flags.NewParser(&opts, flags.Default).Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}

	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Printf("env: cannot load %s: %v", opts.EnvFile, err)
		}
	}

	cfg := config.Load(opts.Config)
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("application setup failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.Once {
		err = application.RunOnce(ctx)
	} else {
		err = application.Run(ctx)
	}
	if err != nil {
		logger.Error("application stopped", "error", err)
		stop()
		os.Exit(1)
	}
}
