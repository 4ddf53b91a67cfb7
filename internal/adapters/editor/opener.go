package editor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"framedata/internal/ports"
)

// fallbackEditors are tried in order when neither $EDITOR nor $VISUAL is set
var fallbackEditors = []string{"nvim", "vim", "vi", "nano"}

// Opener implements ports.EditorOpener
type Opener struct {
	logger *zap.Logger
}

// Ensure Opener implements EditorOpener
var _ ports.EditorOpener = (*Opener)(nil)

// NewOpener creates a new editor opener
func NewOpener(logger *zap.Logger) *Opener {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Opener{logger: logger.With(zap.String("component", "editor"))}
}

// OpenFile opens a file in the user's preferred editor
func (o *Opener) OpenFile(ctx context.Context, path string) error {
	cmd, err := o.Command(ctx, path)
	if err != nil {
		return err
	}
	o.logger.Debug("opening editor", zap.Strings("args", cmd.Args))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %s failed: %w", cmd.Args[0], err)
	}
	return nil
}

// Command returns an exec.Cmd attached to the terminal. $EDITOR and $VISUAL
// may carry arguments, e.g. "code --wait".
func (o *Opener) Command(ctx context.Context, path string) (*exec.Cmd, error) {
	argv := findEditor()
	if len(argv) == 0 {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	cmd := exec.CommandContext(ctx, argv[0], append(argv[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd, nil
}

func findEditor() []string {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if fields := strings.Fields(os.Getenv(env)); len(fields) > 0 {
			return fields
		}
	}
	for _, editor := range fallbackEditors {
		if path, err := exec.LookPath(editor); err == nil {
			return []string{path}
		}
	}
	return nil
}
