package ports

import (
	"context"
	"io"

	"framedata/internal/domain"
)

// BrowserHost owns the live windows and documents of a browser and feeds
// their lifecycle events into the registry.
type BrowserHost interface {
	// Window resolves a window by id
	Window(id string) (*domain.Window, bool)

	// TopWindows returns every top-level window in creation order
	TopWindows() []*domain.Window

	// Replay applies a JSON-lines event stream and returns the number of
	// events applied
	Replay(ctx context.Context, r io.Reader) (int, error)
}
