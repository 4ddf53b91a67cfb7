package domain

import "slices"

// Document is the content currently loaded into a window. Every navigation
// replaces the window's Document, so anything keyed by document identity
// starts fresh after a navigation.
type Document struct {
	URL  string
	Root *Node
}

// NewDocument creates a document with an empty root node
func NewDocument(url string) *Document {
	return &Document{
		URL:  url,
		Root: NewNode("", "#document"),
	}
}

// Window is a browser window or a frame nested inside one
type Window struct {
	ID       string
	parent   *Window
	frames   []*Window
	document *Document
}

// NewWindow creates a top-level window showing url
func NewWindow(id, url string) *Window {
	return &Window{
		ID:       id,
		document: NewDocument(url),
	}
}

// Parent returns the window this frame is embedded in, or nil for a top window
func (w *Window) Parent() *Window {
	return w.parent
}

// Top returns the root window of the frame hierarchy (w itself for a top window)
func (w *Window) Top() *Window {
	top := w
	for top.parent != nil {
		top = top.parent
	}
	return top
}

// IsTop reports whether w has no parent frame
func (w *Window) IsTop() bool {
	return w.parent == nil
}

// Document returns the document currently loaded in the window
func (w *Window) Document() *Document {
	return w.document
}

// Frames returns the direct child frames in insertion order
func (w *Window) Frames() []*Window {
	return slices.Clone(w.frames)
}

// Navigate loads a new document into the window and returns it
func (w *Window) Navigate(url string) *Document {
	w.document = NewDocument(url)
	return w.document
}

// AppendFrame embeds child as the last frame of w, detaching it from its
// previous parent first.
func (w *Window) AppendFrame(child *Window) {
	child.Detach()
	child.parent = w
	w.frames = append(w.frames, child)
}

// Detach removes w from its parent, turning it into a top window
func (w *Window) Detach() {
	if w.parent == nil {
		return
	}
	w.parent.frames = slices.DeleteFunc(w.parent.frames, func(f *Window) bool {
		return f == w
	})
	w.parent = nil
}

// Node is an element of a document tree
type Node struct {
	ID       string
	Tag      string
	parent   *Node
	children []*Node
}

// NewNode creates a detached node
func NewNode(id, tag string) *Node {
	return &Node{ID: id, Tag: tag}
}

// Parent returns the parent node, or nil for a root or a detached node
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the direct children in document order
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// AppendChild inserts child as the last child of n, removing it from its
// previous parent first.
func (n *Node) AppendChild(child *Node) {
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child from n. It reports whether child was a child of n.
func (n *Node) RemoveChild(child *Node) bool {
	if child.parent != n {
		return false
	}
	n.children = slices.DeleteFunc(n.children, func(c *Node) bool {
		return c == child
	})
	child.parent = nil
	return true
}

// Walk visits n and all of its descendants, parents before children
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, child := range n.children {
		child.Walk(fn)
	}
}
