package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sqladmin/sqladmin/adapters"
	"github.com/sqladmin/sqladmin/config"
	"github.com/sqladmin/sqladmin/core"
	"github.com/sqladmin/sqladmin/core/format"
	"github.com/sqladmin/sqladmin/logging"
	"github.com/sqladmin/sqladmin/shell"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var logOut io.Writer = os.Stderr
	if cfg.Logging.File != "" {
		file, err := logging.OpenFile(cfg.Logging.File)
		if err != nil {
			return fmt.Errorf("logging.OpenFile: %w", err)
		}
		defer file.Close()
		logOut = file
	}
	logger := logging.Setup(logOut, cfg.Logging.Level, cfg.Logging.Format)
	logger.Debug("configuration loaded", "config", cfg.String())

	formatter, err := format.New(cfg.Shell.OutputFormat)
	if err != nil {
		return fmt.Errorf("format.New: %w", err)
	}

	dsn, err := cfg.Database.DSN()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	params := &core.ConnectionParams{
		Name:           cfg.Database.Name,
		Type:           cfg.Database.Type,
		URL:            dsn,
		Database:       cfg.Database.Name,
		ConnectTimeout: cfg.Database.ConnectTimeout,
	}

	conn, err := adapters.NewConnection(ctx, params, core.WithLogger(logger))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Connection Error")
		return err
	}
	defer func() {
		fmt.Println("Closing Connection")
		conn.Close()
		fmt.Println("Connection Closed Successfully")
	}()

	ctx = logging.NewContext(ctx, logger.With(slog.String("connection_id", string(conn.GetID()))))

	sh := shell.New(conn, os.Stdin, os.Stdout, os.Stderr,
		shell.WithFormatter(formatter),
		shell.WithClearScreen(cfg.Shell.ClearScreen),
	)

	err = sh.Run(ctx)
	if errors.Is(err, context.Canceled) {
		fmt.Println()
		return nil
	}
	return err
}
