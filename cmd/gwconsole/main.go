// Package main is the entry point for the channel console metadata server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gwconsole/config"
	"gwconsole/internal/app"
	"gwconsole/internal/logging"
	"gwconsole/internal/version"
)

func main() {
	versionFlag := flag.Bool("version", false, "Print version information")
	flag.Parse()

	if *versionFlag {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	// JSON until the configured handler is known
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	result, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := logging.Setup(logging.Options{
		Format: result.Config.Log.Format,
		Level:  result.Config.Log.Level,
	}); err != nil {
		slog.Error("failed to configure logging", "error", err)
		os.Exit(1)
	}

	slog.Info("starting gwconsole",
		"version", version.Version,
		"commit", version.Commit,
		"build_date", version.Date,
	)

	application, err := app.New(context.Background(), app.Config{AppConfig: result})
	if err != nil {
		slog.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	// Handle graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := application.Shutdown(ctx); err != nil {
			slog.Error("application shutdown error", "error", err)
		}
	}()

	if err := application.Start(":" + result.Config.Server.Port); err != nil {
		slog.Error("server failed", "error", err)
		_ = application.Shutdown(context.Background())
		os.Exit(1)
	}
	<-done
}
