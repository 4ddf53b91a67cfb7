package registry

import (
	"runtime"
	"weak"

	"go.uber.org/zap"

	"framedata/internal/domain"
)

// RegisterSubdocument adds child to the subdocuments of the record owning
// top. Registering a child twice is a no-op. Unless the owner is detached,
// subscribers get a refresh for top.
func (r *Registry) RegisterSubdocument(top *domain.Window, child *WindowRecord) error {
	var pending []notification
	r.mu.Lock()
	owner := r.getOrCreateLocked(top, &pending)
	r.registerLocked(top, owner, child, &pending)
	r.mu.Unlock()
	return r.dispatch(pending)
}

// UnregisterSubdocument removes child from the subdocuments of the record
// owning top. Removing an absent child is a no-op.
func (r *Registry) UnregisterSubdocument(top *domain.Window, child *WindowRecord) error {
	var pending []notification
	r.mu.Lock()
	if owner := r.lookupLocked(top); owner != nil {
		r.unregisterLocked(top, owner, child, &pending)
	}
	r.mu.Unlock()
	return r.dispatch(pending)
}

func (r *Registry) registerLocked(top *domain.Window, owner, child *WindowRecord, pending *[]notification) {
	if owner == child || owner.hasSubdoc(child.id) {
		return
	}
	owner.subdocs = append(owner.subdocs, child.id)
	r.logger.Debug("subdocument registered",
		zap.Uint64("owner", uint64(owner.id)),
		zap.Uint64("child", uint64(child.id)))
	if !owner.detached {
		*pending = append(*pending, notification{window: top, event: domain.EventRefresh, record: owner})
	}
}

func (r *Registry) unregisterLocked(top *domain.Window, owner, child *WindowRecord, pending *[]notification) {
	if !owner.removeSubdoc(child.id) {
		return
	}
	r.logger.Debug("subdocument unregistered",
		zap.Uint64("owner", uint64(owner.id)),
		zap.Uint64("child", uint64(child.id)))
	if !owner.detached {
		*pending = append(*pending, notification{window: top, event: domain.EventRefresh, record: owner})
	}
}

// Track records that node in window w requested url as content of type typ,
// creating the location record on first sight. The location is attached to
// node so LookupByNode can find it; a node tracked again under another
// location leaves the previous one. Track does not notify subscribers other
// than through the record creation it may trigger.
func (r *Registry) Track(w *domain.Window, typ domain.ContentType, url string, node *domain.Node, match *domain.Match) (*domain.LocationRecord, error) {
	var pending []notification
	r.mu.Lock()
	rec := r.getOrCreateLocked(w, &pending)

	key := domain.LocationKey{Type: typ, URL: url}
	loc, ok := rec.locations[key]
	if !ok {
		loc = domain.NewLocationRecord(key, match)
		rec.locations[key] = loc
		rec.order = append(rec.order, key)
	} else if loc.Match == nil && match != nil {
		loc.Match = match
	}

	if node != nil {
		loc.AddNode(node)
		r.attachLocked(node, loc)
	}
	r.mu.Unlock()
	return loc, r.dispatch(pending)
}

func (r *Registry) attachLocked(node *domain.Node, loc *domain.LocationRecord) {
	key := weak.Make(node)
	old, ok := r.nodes[key]
	if !ok {
		runtime.AddCleanup(node, r.releaseNode, key)
	} else if old != loc {
		old.RemoveNode(node)
	}
	r.nodes[key] = loc
}

// LookupByNode walks from node towards the document root and returns the
// first node carrying a location together with that location. With
// stopAtFirstMiss only node itself is checked.
func (r *Registry) LookupByNode(node *domain.Node, stopAtFirstMiss bool) (*domain.Node, *domain.LocationRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for n := node; n != nil; n = n.Parent() {
		if loc, ok := r.nodes[weak.Make(n)]; ok {
			return n, loc, true
		}
		if stopAtFirstMiss {
			break
		}
	}
	return nil, nil, false
}

// RemoveNode drops node from the node list of the location attached to it
func (r *Registry) RemoveNode(node *domain.Node) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeNodeLocked(node)
}

func (r *Registry) removeNodeLocked(node *domain.Node) {
	if loc, ok := r.nodes[weak.Make(node)]; ok {
		loc.RemoveNode(node)
	}
}

// NodeRemoved handles the structural removal of node from its document:
// node and all of its descendants leave their location node lists.
func (r *Registry) NodeRemoved(node *domain.Node) {
	r.mu.Lock()
	defer r.mu.Unlock()
	node.Walk(r.removeNodeLocked)
}
