package mcp

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"framedata/internal/application/commands"
)

// RegisterWriteTools adds all mutating tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, svc Services) {
	s.AddTool(replayTool(), replayHandler(svc))
	s.AddTool(cycleModeTool(), cycleModeHandler(svc))
	s.AddTool(setModeTool(), setModeHandler(svc))
	s.AddTool(cycleProxyTool(), cycleProxyHandler(svc))
	s.AddTool(setProxyTool(), setProxyHandler(svc))
}

// --- replay ---

func replayTool() mcp.Tool {
	return mcp.NewTool("replay",
		mcp.WithDescription("Apply browser host events (JSON lines) to the window registry. Pass the events inline or a path to an event log."),
		mcp.WithString("events",
			mcp.Description("JSON-lines events, one per line"),
		),
		mcp.WithString("path",
			mcp.Description("Path to a JSON-lines event log"),
		),
	)
}

func replayHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		events := req.GetString("events", "")
		path := req.GetString("path", "")

		var source io.Reader
		switch {
		case events != "" && path != "":
			return toolError(fmt.Errorf("pass either events or path, not both"))
		case events != "":
			source = strings.NewReader(events)
		case path != "":
			f, err := os.Open(path)
			if err != nil {
				return toolError(fmt.Errorf("opening event log: %w", err))
			}
			defer f.Close()
			source = f
		default:
			return toolError(fmt.Errorf("events or path is required"))
		}

		res, err := commands.NewReplayCommand(svc.Host, svc.Registry, source).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Applied %d events. Records: %d (%d detached), tracked nodes: %d",
			res.Events, res.Stats.Records, res.Stats.Detached, res.Stats.Nodes)), nil
	}
}

// --- proxy mode ---

func cycleModeTool() mcp.Tool {
	return mcp.NewTool("cycle_mode",
		mcp.WithDescription("Switch to the next proxy mode (auto, global, disabled)."),
	)
}

func cycleModeHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := commands.NewCycleProxyModeCommand(svc.Prefs).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(res.Message), nil
	}
}

func setModeTool() mcp.Tool {
	return mcp.NewTool("set_mode",
		mcp.WithDescription("Set the proxy mode."),
		mcp.WithString("mode",
			mcp.Description("Proxy mode"),
			mcp.Enum("auto", "global", "disabled"),
			mcp.Required(),
		),
	)
}

func setModeHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := commands.NewSwitchProxyModeCommand(svc.Prefs, req.GetString("mode", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(res.Message), nil
	}
}

// --- default proxy ---

func cycleProxyTool() mcp.Tool {
	return mcp.NewTool("cycle_proxy",
		mcp.WithDescription("Select the next configured proxy as default proxy."),
	)
}

func cycleProxyHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := commands.NewCycleDefaultProxyCommand(svc.Prefs).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(res.Message), nil
	}
}

func setProxyTool() mcp.Tool {
	return mcp.NewTool("set_proxy",
		mcp.WithDescription("Select a configured proxy by name as default proxy."),
		mcp.WithString("name",
			mcp.Description("Proxy name"),
			mcp.Required(),
		),
	)
}

func setProxyHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := commands.NewSwitchDefaultProxyCommand(svc.Prefs, req.GetString("name", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(res.Message), nil
	}
}
