package domain

import (
	"fmt"
	"slices"
	"strings"
)

// ProxyMode selects how requests are routed
type ProxyMode string

const (
	ModeAuto     ProxyMode = "auto"
	ModeGlobal   ProxyMode = "global"
	ModeDisabled ProxyMode = "disabled"
)

// ProxyModes is the cycling order of proxy modes
var ProxyModes = []ProxyMode{ModeAuto, ModeGlobal, ModeDisabled}

// ParseProxyMode validates a proxy mode name
func ParseProxyMode(s string) (ProxyMode, error) {
	m := ProxyMode(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(ProxyModes, m) {
		return "", fmt.Errorf("unknown proxy mode: %q", s)
	}
	return m, nil
}

// Next returns the mode following m in the cycling order. Unknown modes
// cycle to the first mode.
func (m ProxyMode) Next() ProxyMode {
	i := slices.Index(ProxyModes, m)
	return ProxyModes[(i+1)%len(ProxyModes)]
}

// Prefs holds the user preferences the chrome UI reads and writes
type Prefs struct {
	ProxyMode     ProxyMode         `yaml:"proxy_mode"`
	DefaultProxy  int               `yaml:"default_proxy"`
	FallbackProxy int               `yaml:"fallback_proxy"`
	Proxies       []string          `yaml:"proxies"`
	Keys          map[string]string `yaml:"keys,omitempty"`
}

// DefaultPrefs returns the preferences used when none are stored
func DefaultPrefs() Prefs {
	return Prefs{
		ProxyMode:     ModeAuto,
		DefaultProxy:  0,
		FallbackProxy: -1,
		Proxies:       []string{"direct"},
	}
}

// DefaultProxyName returns the name of the selected default proxy, or an
// empty string when the index is out of range.
func (p Prefs) DefaultProxyName() string {
	if p.DefaultProxy < 0 || p.DefaultProxy >= len(p.Proxies) {
		return ""
	}
	return p.Proxies[p.DefaultProxy]
}
