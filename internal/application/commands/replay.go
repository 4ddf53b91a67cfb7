package commands

import (
	"context"
	"fmt"
	"io"

	"framedata/internal/ports"
	"framedata/internal/registry"
)

// ReplayResult contains the outcome of a replay
type ReplayResult struct {
	Events int
	Stats  registry.Stats
}

// ReplayCommand feeds a recorded event stream into the browser host
type ReplayCommand struct {
	host   ports.BrowserHost
	reg    ports.WindowRegistry
	source io.Reader
}

// NewReplayCommand creates a new ReplayCommand
func NewReplayCommand(host ports.BrowserHost, reg ports.WindowRegistry, source io.Reader) *ReplayCommand {
	return &ReplayCommand{host: host, reg: reg, source: source}
}

// Execute runs the replay command. On failure the result still reports the
// events applied before the failing one.
func (c *ReplayCommand) Execute(ctx context.Context) (*ReplayResult, error) {
	n, err := c.host.Replay(ctx, c.source)
	result := &ReplayResult{Events: n, Stats: c.reg.Stats()}
	if err != nil {
		return result, fmt.Errorf("replay stopped after %d events: %w", n, err)
	}
	return result, nil
}
