// Package browserhost mirrors a browser's windows, documents and DOM nodes
// from a JSON-lines event stream and drives the registry with them.
package browserhost

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"

	"framedata/internal/application"
	"framedata/internal/domain"
	"framedata/internal/ports"
	"framedata/internal/registry"
)

const maxLineSize = 1 << 20

// Host owns the mirrored windows and nodes. Events are applied one at a
// time; mu guards the host maps and is never held while the registry
// notifies subscribers, so subscribers may resolve windows and nodes.
type Host struct {
	apply   sync.Mutex
	mu      sync.Mutex
	reg     *registry.Registry
	logger  *zap.Logger
	windows map[string]*domain.Window
	order   []string
	nodes   map[string]*domain.Node
}

// Ensure Host implements BrowserHost
var _ ports.BrowserHost = (*Host)(nil)

// New creates an empty host feeding reg
func New(reg *registry.Registry, logger *zap.Logger) *Host {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Host{
		reg:     reg,
		logger:  logger.With(zap.String("component", "browserhost")),
		windows: make(map[string]*domain.Window),
		nodes:   make(map[string]*domain.Node),
	}
}

// Window resolves a window by id
func (h *Host) Window(id string) (*domain.Window, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	w, ok := h.windows[id]
	return w, ok
}

// Node resolves a node by id
func (h *Host) Node(id string) (*domain.Node, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	n, ok := h.nodes[id]
	return n, ok
}

// TopWindows returns the top-level windows in creation order
func (h *Host) TopWindows() []*domain.Window {
	h.mu.Lock()
	defer h.mu.Unlock()
	var tops []*domain.Window
	for _, id := range h.order {
		if w := h.windows[id]; w.IsTop() {
			tops = append(tops, w)
		}
	}
	return tops
}

// Replay applies every event of r in order. Blank lines and lines starting
// with # are skipped. It stops at the first failing event or when ctx is done.
func (h *Host) Replay(ctx context.Context, r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	applied := 0
	line := 0
	for scanner.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return applied, err
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		var ev Event
		if err := json.Unmarshal([]byte(text), &ev); err != nil {
			return applied, &application.EventError{Line: line, Err: fmt.Errorf("failed to decode: %w", err)}
		}
		if err := h.Apply(ev); err != nil {
			return applied, &application.EventError{Line: line, Type: ev.Type, Err: err}
		}
		applied++
	}
	if err := scanner.Err(); err != nil {
		return applied, fmt.Errorf("failed to read events: %w", err)
	}

	h.logger.Info("replay finished", zap.Int("events", applied))
	return applied, nil
}

// Apply applies a single event
func (h *Host) Apply(ev Event) error {
	h.apply.Lock()
	defer h.apply.Unlock()

	switch ev.Type {
	case EventWindowOpen:
		var w *domain.Window
		if err := h.locked(func() (err error) { w, err = h.openWindow(ev); return }); err != nil {
			return err
		}
		_, err := h.reg.GetOrCreate(w)
		return err
	case EventNavigate:
		var w *domain.Window
		if err := h.locked(func() (err error) { w, err = h.window(ev.Window); return }); err != nil {
			return err
		}
		hideErr := h.reg.WindowHidden(w)
		h.mu.Lock()
		h.navigate(w, ev.URL)
		h.mu.Unlock()
		_, err := h.reg.GetOrCreate(w)
		return errors.Join(hideErr, err)
	case EventNodeAdd:
		return h.locked(func() error { return h.addNode(ev) })
	case EventReparent:
		return h.locked(func() error { return h.reparent(ev) })
	case EventWindowClose:
		return h.closeWindow(ev)
	case EventLoad:
		return h.load(ev)
	case EventNodeRemove:
		return h.removeNode(ev)
	case EventPageHide:
		var w *domain.Window
		if err := h.locked(func() (err error) { w, err = h.window(ev.Window); return }); err != nil {
			return err
		}
		return h.reg.WindowHidden(w)
	case EventPageShow:
		var w *domain.Window
		if err := h.locked(func() (err error) { w, err = h.window(ev.Window); return }); err != nil {
			return err
		}
		return h.reg.WindowShown(w)
	default:
		return fmt.Errorf("%w: %q", application.ErrUnknownEvent, ev.Type)
	}
}

func (h *Host) locked(fn func() error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return fn()
}

func (h *Host) window(id string) (*domain.Window, error) {
	if err := application.ValidateRequired("windowID", id); err != nil {
		return nil, err
	}
	w, ok := h.windows[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", application.ErrUnknownWindow, id)
	}
	return w, nil
}

func (h *Host) node(id string) (*domain.Node, error) {
	n, ok := h.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", application.ErrUnknownNode, id)
	}
	return n, nil
}

func (h *Host) openWindow(ev Event) (*domain.Window, error) {
	if err := application.ValidateRequired("windowID", ev.Window); err != nil {
		return nil, err
	}
	if _, exists := h.windows[ev.Window]; exists {
		return nil, &application.ValidationError{Field: "windowID", Message: "window already open: " + ev.Window}
	}

	w := domain.NewWindow(ev.Window, ev.URL)
	if ev.Parent != "" {
		parent, err := h.window(ev.Parent)
		if err != nil {
			return nil, err
		}
		parent.AppendFrame(w)
	}
	h.windows[w.ID] = w
	h.order = append(h.order, w.ID)
	h.logger.Debug("window opened", zap.String("window", w.ID), zap.String("parent", ev.Parent))
	return w, nil
}

func (h *Host) navigate(w *domain.Window, url string) {
	h.forgetNodes(w.Document().Root)
	w.Navigate(url)
	h.logger.Debug("window navigated", zap.String("window", w.ID), zap.String("url", url))
}

func (h *Host) addNode(ev Event) error {
	if err := application.ValidateRequired("nodeID", ev.Node); err != nil {
		return err
	}
	if _, exists := h.nodes[ev.Node]; exists {
		return &application.ValidationError{Field: "nodeID", Message: "node already exists: " + ev.Node}
	}

	w, err := h.window(ev.Window)
	if err != nil {
		return err
	}
	parent := w.Document().Root
	if ev.Parent != "" {
		if parent, err = h.node(ev.Parent); err != nil {
			return err
		}
	}

	n := domain.NewNode(ev.Node, ev.Tag)
	parent.AppendChild(n)
	h.nodes[n.ID] = n
	return nil
}

func (h *Host) load(ev Event) error {
	var (
		w    *domain.Window
		node *domain.Node
	)
	err := h.locked(func() (err error) {
		if w, err = h.window(ev.Window); err != nil {
			return err
		}
		if err = application.ValidateRequired("url", ev.URL); err != nil {
			return err
		}
		if ev.Node != "" {
			node, err = h.node(ev.Node)
		}
		return err
	})
	if err != nil {
		return err
	}

	typ := domain.ContentType(ev.ContentType)
	if typ == 0 {
		typ = domain.TypeOther
	}
	_, err = h.reg.Track(w, typ, ev.URL, node, ev.match())
	return err
}

func (h *Host) removeNode(ev Event) error {
	var n *domain.Node
	err := h.locked(func() (err error) {
		if n, err = h.node(ev.Node); err != nil {
			return err
		}
		if parent := n.Parent(); parent != nil {
			parent.RemoveChild(n)
		}
		h.forgetNodes(n)
		return nil
	})
	if err != nil {
		return err
	}
	h.reg.NodeRemoved(n)
	return nil
}

func (h *Host) reparent(ev Event) error {
	w, err := h.window(ev.Window)
	if err != nil {
		return err
	}
	if ev.Parent == "" {
		w.Detach()
		return nil
	}
	parent, err := h.window(ev.Parent)
	if err != nil {
		return err
	}
	for p := parent; p != nil; p = p.Parent() {
		if p == w {
			return &application.ValidationError{Field: "parent", Message: "window cannot be embedded in its own frame"}
		}
	}
	parent.AppendFrame(w)
	return nil
}

// closeWindow unloads w and its frames, top first, then forgets them.
func (h *Host) closeWindow(ev Event) error {
	var w *domain.Window
	if err := h.locked(func() (err error) { w, err = h.window(ev.Window); return }); err != nil {
		return err
	}

	var errs []error
	for _, win := range subtree(w) {
		if err := h.reg.WindowHidden(win); err != nil {
			errs = append(errs, err)
		}
	}

	h.mu.Lock()
	w.Detach()
	h.forgetWindow(w)
	h.mu.Unlock()
	return errors.Join(errs...)
}

// subtree lists w and all of its frames in pre-order
func subtree(w *domain.Window) []*domain.Window {
	out := []*domain.Window{w}
	for _, f := range w.Frames() {
		out = append(out, subtree(f)...)
	}
	return out
}

// forgetWindow drops w and its frames. Their records go away together with
// their documents.
func (h *Host) forgetWindow(w *domain.Window) {
	for _, f := range w.Frames() {
		h.forgetWindow(f)
	}
	h.forgetNodes(w.Document().Root)
	delete(h.windows, w.ID)
	h.order = slices.DeleteFunc(h.order, func(id string) bool { return id == w.ID })
}

func (h *Host) forgetNodes(root *domain.Node) {
	root.Walk(func(n *domain.Node) {
		if n.ID != "" {
			delete(h.nodes, n.ID)
		}
	})
}
