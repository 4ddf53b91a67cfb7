package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"framedata/internal/domain"
	"framedata/internal/ports"
)

// EditPrefsCommand opens the preferences file in an editor and validates the
// result
type EditPrefsCommand struct {
	prefs  ports.PrefsStore
	editor ports.EditorOpener
}

// NewEditPrefsCommand creates a new EditPrefsCommand
func NewEditPrefsCommand(prefs ports.PrefsStore, editor ports.EditorOpener) *EditPrefsCommand {
	return &EditPrefsCommand{prefs: prefs, editor: editor}
}

// Execute runs the edit preferences command. A missing file is created with
// the defaults first so the editor starts from a complete file.
func (c *EditPrefsCommand) Execute(ctx context.Context) (domain.Prefs, error) {
	path := c.prefs.Path()
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := c.prefs.Save(domain.DefaultPrefs()); err != nil {
			return domain.Prefs{}, err
		}
	}

	if err := c.editor.OpenFile(ctx, path); err != nil {
		return domain.Prefs{}, err
	}

	prefs, err := c.prefs.Load()
	if err != nil {
		return domain.Prefs{}, fmt.Errorf("edited preferences are invalid: %w", err)
	}
	return prefs, nil
}
