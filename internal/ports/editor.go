package ports

import (
	"context"
	"os/exec"
)

// EditorOpener opens files in an external editor
type EditorOpener interface {
	// OpenFile opens path and waits for the editor to exit
	OpenFile(ctx context.Context, path string) error

	// Command returns the editor command for path without running it
	Command(ctx context.Context, path string) (*exec.Cmd, error)
}
