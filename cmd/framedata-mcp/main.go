package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	mcpadapter "framedata/internal/adapters/mcp"
	"framedata/internal/app"
	"framedata/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("framedata-mcp: %v", err)
	}
	prefsFlag := flag.String("prefs", cfg.PrefsPath, "path to the preferences file")
	eventsFlag := flag.String("events", "", "JSON-lines event log to replay at startup")
	flag.Parse()
	cfg.PrefsPath = *prefsFlag

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("framedata-mcp: %v", err)
	}
	defer a.Close()

	if *eventsFlag != "" {
		n, err := a.ReplayFile(context.Background(), *eventsFlag)
		if err != nil {
			a.Logger.Fatal("startup replay failed", zap.Error(err))
		}
		a.Logger.Info("startup replay done", zap.Int("events", n))
	}

	mcpServer := server.NewMCPServer(
		"framedata-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	svc := mcpadapter.Services{Host: a.Host, Registry: a.Registry, Prefs: a.Prefs}
	mcpadapter.RegisterReadTools(mcpServer, svc)
	mcpadapter.RegisterWriteTools(mcpServer, svc)

	a.Logger.Info("serving MCP over stdio", zap.String("prefs", a.Prefs.Path()))
	if err := server.ServeStdio(mcpServer); err != nil {
		a.Logger.Error("server stopped", zap.Error(err))
	}
}
