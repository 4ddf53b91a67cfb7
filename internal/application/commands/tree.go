package commands

import (
	"context"
	"fmt"
	"strings"

	"framedata/internal/ports"
	"framedata/internal/registry"
)

// RecordNode is one record in the window tree
type RecordNode struct {
	Record    registry.RecordID
	WindowID  string
	URL       string
	Detached  bool
	Locations int
	Children  []*RecordNode
}

// WindowTreeCommand renders the record of every top window with its
// subdocuments
type WindowTreeCommand struct {
	host ports.BrowserHost
	reg  ports.WindowRegistry
}

// NewWindowTreeCommand creates a new WindowTreeCommand
func NewWindowTreeCommand(host ports.BrowserHost, reg ports.WindowRegistry) *WindowTreeCommand {
	return &WindowTreeCommand{host: host, reg: reg}
}

// Execute runs the window tree command. Top windows without a record are left out.
func (c *WindowTreeCommand) Execute(ctx context.Context) ([]*RecordNode, error) {
	var roots []*RecordNode
	for _, w := range c.host.TopWindows() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, ok := c.reg.Lookup(w)
		if !ok {
			continue
		}
		roots = append(roots, buildRecordNode(rec, make(map[registry.RecordID]bool)))
	}
	return roots, nil
}

func buildRecordNode(rec *registry.WindowRecord, seen map[registry.RecordID]bool) *RecordNode {
	seen[rec.ID()] = true
	node := &RecordNode{
		Record:    rec.ID(),
		WindowID:  rec.WindowID(),
		URL:       rec.URL(),
		Detached:  rec.Detached(),
		Locations: len(rec.Locations()),
	}
	for _, sub := range rec.Subdocuments() {
		if seen[sub.ID()] {
			continue
		}
		node.Children = append(node.Children, buildRecordNode(sub, seen))
	}
	return node
}

// FormatTree renders roots as an indented listing
func FormatTree(roots []*RecordNode) string {
	var b strings.Builder
	var walk func(n *RecordNode, depth int)
	walk = func(n *RecordNode, depth int) {
		indent := strings.Repeat("  ", depth)
		state := ""
		if n.Detached {
			state = " [detached]"
		}
		fmt.Fprintf(&b, "%s#%d %s %s (%d locations)%s\n", indent, n.Record, n.WindowID, n.URL, n.Locations, state)
		for _, child := range n.Children {
			walk(child, depth+1)
		}
	}
	for _, root := range roots {
		walk(root, 0)
	}
	return b.String()
}
