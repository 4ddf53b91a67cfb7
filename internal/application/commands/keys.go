package commands

import (
	"context"
	"slices"
	"strings"

	"framedata/internal/domain"
	"framedata/internal/ports"
)

const keyPrefSuffix = "_key"

// KeysResult contains the parsed key bindings
type KeysResult struct {
	Bindings []domain.KeyBinding
	// Invalid lists the commands whose spec named no key
	Invalid []string
}

// ConfigureKeysCommand parses every <command>_key preference into a binding
type ConfigureKeysCommand struct {
	prefs ports.PrefsStore
}

// NewConfigureKeysCommand creates a new ConfigureKeysCommand
func NewConfigureKeysCommand(prefs ports.PrefsStore) *ConfigureKeysCommand {
	return &ConfigureKeysCommand{prefs: prefs}
}

// Execute runs the configure keys command. Results are ordered by command name.
func (c *ConfigureKeysCommand) Execute(ctx context.Context) (*KeysResult, error) {
	prefs, err := c.prefs.Load()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(prefs.Keys))
	for name := range prefs.Keys {
		if strings.HasSuffix(name, keyPrefSuffix) && len(name) > len(keyPrefSuffix) {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	result := &KeysResult{}
	for _, name := range names {
		command := strings.TrimSuffix(name, keyPrefSuffix)
		kb, ok := domain.ParseKeyBinding(command, prefs.Keys[name])
		if !ok {
			result.Invalid = append(result.Invalid, command)
			continue
		}
		result.Bindings = append(result.Bindings, kb)
	}
	return result, nil
}
