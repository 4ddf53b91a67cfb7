package commands

import (
	"context"
	"fmt"
	"slices"

	"framedata/internal/application"
	"framedata/internal/domain"
	"framedata/internal/ports"
)

// ProxyModeResult contains the result of a proxy mode change
type ProxyModeResult struct {
	Previous domain.ProxyMode
	Mode     domain.ProxyMode
	Message  string
}

// CycleProxyModeCommand moves to the next proxy mode: auto, global, disabled
type CycleProxyModeCommand struct {
	prefs ports.PrefsStore
}

// NewCycleProxyModeCommand creates a new CycleProxyModeCommand
func NewCycleProxyModeCommand(prefs ports.PrefsStore) *CycleProxyModeCommand {
	return &CycleProxyModeCommand{prefs: prefs}
}

// Execute runs the cycle proxy mode command
func (c *CycleProxyModeCommand) Execute(ctx context.Context) (*ProxyModeResult, error) {
	prefs, err := c.prefs.Load()
	if err != nil {
		return nil, err
	}
	return saveMode(c.prefs, prefs, prefs.ProxyMode.Next())
}

// SwitchProxyModeCommand sets an explicit proxy mode
type SwitchProxyModeCommand struct {
	prefs ports.PrefsStore
	Mode  string
}

// NewSwitchProxyModeCommand creates a new SwitchProxyModeCommand
func NewSwitchProxyModeCommand(prefs ports.PrefsStore, mode string) *SwitchProxyModeCommand {
	return &SwitchProxyModeCommand{prefs: prefs, Mode: mode}
}

// Validate checks the requested mode
func (c *SwitchProxyModeCommand) Validate() (domain.ProxyMode, error) {
	if err := application.ValidateRequired("mode", c.Mode); err != nil {
		return "", err
	}
	return application.ValidateProxyMode("mode", c.Mode)
}

// Execute runs the switch proxy mode command. Switching to the current mode
// does not rewrite the preferences.
func (c *SwitchProxyModeCommand) Execute(ctx context.Context) (*ProxyModeResult, error) {
	mode, err := c.Validate()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", application.ErrInvalidMode, err)
	}
	prefs, err := c.prefs.Load()
	if err != nil {
		return nil, err
	}
	if prefs.ProxyMode == mode {
		return &ProxyModeResult{
			Previous: mode,
			Mode:     mode,
			Message:  fmt.Sprintf("Proxy mode already %s", mode),
		}, nil
	}
	return saveMode(c.prefs, prefs, mode)
}

func saveMode(store ports.PrefsStore, prefs domain.Prefs, mode domain.ProxyMode) (*ProxyModeResult, error) {
	previous := prefs.ProxyMode
	prefs.ProxyMode = mode
	if err := store.Save(prefs); err != nil {
		return nil, fmt.Errorf("failed to save proxy mode: %w", err)
	}
	return &ProxyModeResult{
		Previous: previous,
		Mode:     mode,
		Message:  fmt.Sprintf("Proxy mode %s -> %s", previous, mode),
	}, nil
}

// DefaultProxyResult contains the selected default proxy
type DefaultProxyResult struct {
	Index   int
	Name    string
	Message string
}

// CycleDefaultProxyCommand selects the next configured proxy as default
type CycleDefaultProxyCommand struct {
	prefs ports.PrefsStore
}

// NewCycleDefaultProxyCommand creates a new CycleDefaultProxyCommand
func NewCycleDefaultProxyCommand(prefs ports.PrefsStore) *CycleDefaultProxyCommand {
	return &CycleDefaultProxyCommand{prefs: prefs}
}

// Execute runs the cycle default proxy command
func (c *CycleDefaultProxyCommand) Execute(ctx context.Context) (*DefaultProxyResult, error) {
	prefs, err := c.prefs.Load()
	if err != nil {
		return nil, err
	}
	if len(prefs.Proxies) == 0 {
		return nil, application.ErrNoProxies
	}

	next := (prefs.DefaultProxy + 1) % len(prefs.Proxies)
	if next < 0 {
		next = 0
	}
	return saveDefaultProxy(c.prefs, prefs, next)
}

// SwitchDefaultProxyCommand selects a configured proxy by name
type SwitchDefaultProxyCommand struct {
	prefs ports.PrefsStore
	Name  string
}

// NewSwitchDefaultProxyCommand creates a new SwitchDefaultProxyCommand
func NewSwitchDefaultProxyCommand(prefs ports.PrefsStore, name string) *SwitchDefaultProxyCommand {
	return &SwitchDefaultProxyCommand{prefs: prefs, Name: name}
}

// Execute runs the switch default proxy command. Selecting the current
// default does not rewrite the preferences.
func (c *SwitchDefaultProxyCommand) Execute(ctx context.Context) (*DefaultProxyResult, error) {
	if err := application.ValidateRequired("proxy", c.Name); err != nil {
		return nil, err
	}
	prefs, err := c.prefs.Load()
	if err != nil {
		return nil, err
	}
	if len(prefs.Proxies) == 0 {
		return nil, application.ErrNoProxies
	}

	idx := slices.Index(prefs.Proxies, c.Name)
	if idx < 0 {
		return nil, fmt.Errorf("%w: proxy %s", application.ErrNotFound, c.Name)
	}
	if idx == prefs.DefaultProxy {
		return &DefaultProxyResult{
			Index:   idx,
			Name:    c.Name,
			Message: fmt.Sprintf("Default proxy already %s", c.Name),
		}, nil
	}
	return saveDefaultProxy(c.prefs, prefs, idx)
}

func saveDefaultProxy(store ports.PrefsStore, prefs domain.Prefs, idx int) (*DefaultProxyResult, error) {
	prefs.DefaultProxy = idx
	if err := store.Save(prefs); err != nil {
		return nil, fmt.Errorf("failed to save default proxy: %w", err)
	}
	name := prefs.DefaultProxyName()
	return &DefaultProxyResult{
		Index:   idx,
		Name:    name,
		Message: fmt.Sprintf("Default proxy: %s", name),
	}, nil
}
