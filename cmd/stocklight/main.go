package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stocklight/stocklight"
	"github.com/stocklight/stocklight/internal/config"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigFilename, "path to the configuration file")
	mcpMode := flag.Bool("mcp", false, "serve MCP tools on stdio instead of the HTTP API")
	flag.Parse()

	cfg, err := config.InitGlobal(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		os.Exit(1)
	}

	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)

	logger.Info("Stocklight starting", "config", *configPath, "mcp", *mcpMode)

	srv, err := stocklight.NewServer(stocklight.ServerOptions{
		Config: cfg,
		Logger: logger,
	})
	if err != nil {
		logger.Error("Failed to initialize server", "error", err)
		os.Exit(1)
	}

	setupSignalHandler(srv, logger)

	if *mcpMode {
		if err := srv.StartMCP(); err != nil {
			logger.Error("MCP server failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := srv.Start(); err != nil {
		logger.Error("HTTP server failed", "error", err)
		os.Exit(1)
	}
}

// setupSignalHandler stops the server gracefully on SIGINT/SIGTERM.
func setupSignalHandler(srv *stocklight.Server, logger *slog.Logger) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Info("Received shutdown signal, terminating gracefully...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Stop(ctx); err != nil {
			logger.Error("Error during shutdown", "error", err)
			os.Exit(1)
		}

		logger.Info("Shutdown complete")
		os.Exit(0)
	}()
}
