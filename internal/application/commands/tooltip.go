package commands

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"framedata/internal/application"
	"framedata/internal/domain"
	"framedata/internal/ports"
)

// maxTooltipRules is the number of rules listed before the truncation marker
const maxTooltipRules = 3

// RuleCount is a rule together with the number of locations it matched
type RuleCount struct {
	Rule  string
	Count int
}

// Tooltip is the status summary shown for a browser window
type Tooltip struct {
	Mode domain.ProxyMode

	// Proxy is the default proxy name, empty when ProxyHidden
	Proxy       string
	ProxyHidden bool

	// The counts and rules are only filled in auto mode
	ShowCounts bool
	Proxied    int
	Total      int
	Rules      []RuleCount
	Truncated  bool
}

// String renders the tooltip as plain text lines
func (t *Tooltip) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Mode: %s\n", t.Mode)
	if !t.ProxyHidden {
		fmt.Fprintf(&b, "Proxy: %s\n", t.Proxy)
	}
	if t.ShowCounts {
		fmt.Fprintf(&b, "Proxied: %d of %d\n", t.Proxied, t.Total)
	}
	if len(t.Rules) > 0 {
		b.WriteString("Rules:\n")
		for _, r := range t.Rules {
			fmt.Fprintf(&b, "  %s (%d)\n", r.Rule, r.Count)
		}
		if t.Truncated {
			b.WriteString("  ...\n")
		}
	}
	return b.String()
}

// TooltipCommand builds the tooltip of a window's tab
type TooltipCommand struct {
	host     ports.BrowserHost
	reg      ports.WindowRegistry
	prefs    ports.PrefsStore
	WindowID string
}

// NewTooltipCommand creates a new TooltipCommand
func NewTooltipCommand(host ports.BrowserHost, reg ports.WindowRegistry, prefs ports.PrefsStore, windowID string) *TooltipCommand {
	return &TooltipCommand{
		host:     host,
		reg:      reg,
		prefs:    prefs,
		WindowID: windowID,
	}
}

// Execute runs the tooltip command
func (c *TooltipCommand) Execute(ctx context.Context) (*Tooltip, error) {
	w, err := resolveWindow(c.host, c.WindowID)
	if err != nil {
		return nil, err
	}
	prefs, err := c.prefs.Load()
	if err != nil {
		return nil, err
	}

	t := &Tooltip{
		Mode:        prefs.ProxyMode,
		Proxy:       prefs.DefaultProxyName(),
		ProxyHidden: prefs.ProxyMode == domain.ModeDisabled,
	}
	if prefs.ProxyMode != domain.ModeAuto {
		return t, nil
	}

	t.ShowCounts = true
	var locations []*domain.LocationRecord
	if rec, ok := c.reg.Lookup(w.Top()); ok {
		locations = rec.AllLocations()
	}
	t.Total = len(locations)
	t.Proxied, t.Rules = countRules(locations)
	if len(t.Rules) > maxTooltipRules {
		t.Rules = t.Rules[:maxTooltipRules]
		t.Truncated = true
	}
	return t, nil
}

// countRules returns the number of proxied locations and the hit count of
// every matching rule, most frequent first.
func countRules(locations []*domain.LocationRecord) (int, []RuleCount) {
	proxied := 0
	counts := make(map[string]int)
	for _, loc := range locations {
		if loc.Proxied() {
			proxied++
		}
		if loc.Match != nil {
			counts[loc.Match.Rule]++
		}
	}

	rules := make([]RuleCount, 0, len(counts))
	for rule, n := range counts {
		rules = append(rules, RuleCount{Rule: rule, Count: n})
	}
	slices.SortFunc(rules, func(a, b RuleCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Rule, b.Rule)
	})
	return proxied, rules
}

func resolveWindow(host ports.BrowserHost, id string) (*domain.Window, error) {
	if err := application.ValidateRequired("windowID", id); err != nil {
		return nil, err
	}
	w, ok := host.Window(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", application.ErrUnknownWindow, id)
	}
	return w, nil
}
