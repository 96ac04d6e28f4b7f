package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/server"

	mcpadapter "videovault/internal/adapters/mcp"
	"videovault/internal/app"
	"videovault/internal/config"
	"videovault/internal/logging"
)

func main() {
	configFlag := flag.String("config", "", "path to the config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFlag)
	if err != nil {
		log.Fatalf("videovault-mcp: %v", err)
	}

	// Stdout carries the protocol, so logs only go to the file
	logger, err := logging.SetupLogger(&cfg.Logging)
	if err != nil {
		logger = logging.NullLogger()
	}
	slog.SetDefault(logger)

	ctx := context.Background()
	lib, err := app.Open(ctx, cfg, logger, nil)
	if err != nil {
		log.Fatalf("videovault-mcp: %v", err)
	}
	if err := lib.ScanIfNeeded(ctx); err != nil {
		log.Fatalf("videovault-mcp: %v", err)
	}

	mcpServer := server.NewMCPServer(
		"videovault-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	svc := mcpadapter.Services{
		Mutator: lib.Mutator,
		Items:   lib.Store,
		Index:   lib.Index,
		Logger:  logger,
	}
	mcpadapter.RegisterPing(mcpServer)
	mcpadapter.RegisterReadTools(mcpServer, svc)
	mcpadapter.RegisterWriteTools(mcpServer, svc)

	serveErr := server.ServeStdio(mcpServer)

	closeCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := lib.Close(closeCtx); err != nil {
		logger.Error("failed to close library", "error", err)
	}

	if serveErr != nil {
		log.Fatalf("videovault-mcp: %v", serveErr)
	}
}
