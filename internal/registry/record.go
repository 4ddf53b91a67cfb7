package registry

import (
	"slices"
	"weak"

	"framedata/internal/domain"
)

// WindowRecord is the tracking state of one window or frame document
type WindowRecord struct {
	id       RecordID
	reg      *Registry
	windowID string
	window   weak.Pointer[domain.Window]
	url      string

	locations map[domain.LocationKey]*domain.LocationRecord
	order     []domain.LocationKey
	subdocs   []RecordID
	top       RecordID
	detached  bool
}

// ID returns the record handle
func (rec *WindowRecord) ID() RecordID {
	return rec.id
}

// WindowID returns the id of the window the record was created for
func (rec *WindowRecord) WindowID() string {
	return rec.windowID
}

// URL returns the address of the document the record decorates
func (rec *WindowRecord) URL() string {
	return rec.url
}

// IsTop reports whether the record is the top of its hierarchy
func (rec *WindowRecord) IsTop() bool {
	rec.reg.mu.Lock()
	defer rec.reg.mu.Unlock()
	return rec.top == rec.id
}

// Top returns the record of the hierarchy's top window. It returns nil once
// the top document has been released.
func (rec *WindowRecord) Top() *WindowRecord {
	rec.reg.mu.Lock()
	defer rec.reg.mu.Unlock()
	if rec.top == rec.id {
		return rec
	}
	return rec.reg.records[rec.top]
}

// Detached reports whether the window is hidden
func (rec *WindowRecord) Detached() bool {
	rec.reg.mu.Lock()
	defer rec.reg.mu.Unlock()
	return rec.detached
}

// Subdocuments returns the registered frame records in registration order
func (rec *WindowRecord) Subdocuments() []*WindowRecord {
	rec.reg.mu.Lock()
	defer rec.reg.mu.Unlock()
	out := make([]*WindowRecord, 0, len(rec.subdocs))
	for _, id := range rec.subdocs {
		if sub, ok := rec.reg.records[id]; ok {
			out = append(out, sub)
		}
	}
	return out
}

// Locations returns the record's own locations in insertion order
func (rec *WindowRecord) Locations() []*domain.LocationRecord {
	rec.reg.mu.Lock()
	defer rec.reg.mu.Unlock()
	out := make([]*domain.LocationRecord, 0, len(rec.order))
	for _, key := range rec.order {
		out = append(out, rec.locations[key])
	}
	return out
}

// Location finds the record for (typ, url) in this window, then in each
// subdocument depth-first in registration order.
func (rec *WindowRecord) Location(typ domain.ContentType, url string) (*domain.LocationRecord, bool) {
	rec.reg.mu.Lock()
	defer rec.reg.mu.Unlock()
	loc := rec.reg.locationLocked(rec, domain.LocationKey{Type: typ, URL: url}, map[RecordID]bool{})
	return loc, loc != nil
}

// AllLocations collects this window's locations followed by those of every
// subdocument, depth-first in registration order.
func (rec *WindowRecord) AllLocations() []*domain.LocationRecord {
	rec.reg.mu.Lock()
	defer rec.reg.mu.Unlock()
	var out []*domain.LocationRecord
	rec.reg.allLocationsLocked(rec, &out, map[RecordID]bool{})
	return out
}

func (r *Registry) locationLocked(rec *WindowRecord, key domain.LocationKey, seen map[RecordID]bool) *domain.LocationRecord {
	// a reparented top record can end up listed under its former frame
	if seen[rec.id] {
		return nil
	}
	seen[rec.id] = true

	if loc, ok := rec.locations[key]; ok {
		return loc
	}
	for _, id := range rec.subdocs {
		sub, ok := r.records[id]
		if !ok {
			continue
		}
		if loc := r.locationLocked(sub, key, seen); loc != nil {
			return loc
		}
	}
	return nil
}

func (r *Registry) allLocationsLocked(rec *WindowRecord, out *[]*domain.LocationRecord, seen map[RecordID]bool) {
	if seen[rec.id] {
		return
	}
	seen[rec.id] = true

	for _, key := range rec.order {
		*out = append(*out, rec.locations[key])
	}
	for _, id := range rec.subdocs {
		if sub, ok := r.records[id]; ok {
			r.allLocationsLocked(sub, out, seen)
		}
	}
}

func (rec *WindowRecord) hasSubdoc(id RecordID) bool {
	return slices.Contains(rec.subdocs, id)
}

func (rec *WindowRecord) removeSubdoc(id RecordID) bool {
	before := len(rec.subdocs)
	rec.subdocs = slices.DeleteFunc(rec.subdocs, func(x RecordID) bool {
		return x == id
	})
	return len(rec.subdocs) != before
}
