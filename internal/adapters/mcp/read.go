// Package mcp exposes the registry query surface and the proxy preferences as
// MCP tools.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"framedata/internal/application/commands"
	"framedata/internal/domain"
	"framedata/internal/ports"
)

// Services bundles the collaborators the tools work on
type Services struct {
	Host     ports.BrowserHost
	Registry ports.WindowRegistry
	Prefs    ports.PrefsStore
}

// RegisterReadTools adds all read-only tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, svc Services) {
	s.AddTool(locationsTool(), locationsHandler(svc))
	s.AddTool(locationTool(), locationHandler(svc))
	s.AddTool(treeTool(), treeHandler(svc))
	s.AddTool(tooltipTool(), tooltipHandler(svc))
}

// --- locations ---

func locationsTool() mcp.Tool {
	return mcp.NewTool("locations",
		mcp.WithDescription("List the resource locations tracked for a window. With all=true the locations of its subdocuments follow, depth first."),
		mcp.WithString("window",
			mcp.Description("Window ID"),
			mcp.Required(),
		),
		mcp.WithBoolean("all",
			mcp.Description("Include the locations of subdocuments"),
		),
	)
}

func locationsHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewListLocationsCommand(svc.Host, svc.Registry,
			req.GetString("window", ""), req.GetBool("all", false))
		locs, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(locs) == 0 {
			return mcp.NewToolResultText("No locations."), nil
		}

		var sb strings.Builder
		for _, loc := range locs {
			sb.WriteString(formatLocation(loc))
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- location ---

func locationTool() mcp.Tool {
	return mcp.NewTool("location",
		mcp.WithDescription("Look up one location by content type and URL in a window and its subdocuments."),
		mcp.WithString("window",
			mcp.Description("Window ID"),
			mcp.Required(),
		),
		mcp.WithString("content_type",
			mcp.Description("Content type name or number (e.g. IMAGE or 3)"),
			mcp.Required(),
		),
		mcp.WithString("url",
			mcp.Description("Location URL"),
			mcp.Required(),
		),
	)
}

func locationHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		typ, err := domain.ParseContentType(req.GetString("content_type", ""))
		if err != nil {
			return toolError(err)
		}

		cmd := commands.NewGetLocationCommand(svc.Host, svc.Registry,
			req.GetString("window", ""), typ, req.GetString("url", ""))
		loc, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(formatLocation(loc)), nil
	}
}

// --- tree ---

func treeTool() mcp.Tool {
	return mcp.NewTool("tree",
		mcp.WithDescription("Display the window records of every tab with their subdocuments."),
	)
}

func treeHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		roots, err := commands.NewWindowTreeCommand(svc.Host, svc.Registry).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(roots) == 0 {
			return mcp.NewToolResultText("No windows."), nil
		}
		return mcp.NewToolResultText(commands.FormatTree(roots)), nil
	}
}

// --- tooltip ---

func tooltipTool() mcp.Tool {
	return mcp.NewTool("tooltip",
		mcp.WithDescription("Show the status tooltip of a window's tab: proxy mode, default proxy, proxied count and the most frequent rules."),
		mcp.WithString("window",
			mcp.Description("Window ID"),
			mcp.Required(),
		),
	)
}

func tooltipHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewTooltipCommand(svc.Host, svc.Registry, svc.Prefs, req.GetString("window", ""))
		tip, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(tip.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatLocation(loc *domain.LocationRecord) string {
	line := fmt.Sprintf("%-12s %s  nodes=%d", loc.Key.Type, loc.Key.URL, len(loc.Nodes()))
	if loc.Match == nil {
		return line
	}
	kind := "proxy"
	if loc.Match.Whitelist {
		kind = "whitelist"
	}
	return fmt.Sprintf("%s  %s=%s", line, kind, loc.Match.Rule)
}
