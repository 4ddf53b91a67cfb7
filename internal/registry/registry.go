// Package registry attaches tracking records to browser windows and frames,
// keeps the subdocument tree of every window hierarchy, and notifies
// subscribers about lifecycle changes.
//
// Records are keyed by document identity through weak pointers: a record lives
// exactly as long as the document it decorates and is released by a runtime
// cleanup afterwards. Nothing outside the package can reach the side tables.
package registry

import (
	"runtime"
	"sync"
	"weak"

	"go.uber.org/zap"

	"framedata/internal/domain"
)

// RecordID is the stable handle of a WindowRecord
type RecordID uint64

// Registry is the single owner of all window records
type Registry struct {
	mu       sync.Mutex
	notifier *Notifier
	logger   *zap.Logger

	nextID  RecordID
	records map[RecordID]*WindowRecord
	docs    map[weak.Pointer[domain.Document]]RecordID
	nodes   map[weak.Pointer[domain.Node]]*domain.LocationRecord
}

// Stats is a point-in-time view of the registry size
type Stats struct {
	Records  int
	Detached int
	Nodes    int
}

type notification struct {
	window *domain.Window
	event  domain.EventType
	record *WindowRecord
}

type docRelease struct {
	id  RecordID
	key weak.Pointer[domain.Document]
}

// New creates an empty registry publishing to notifier. A nil notifier gets a
// private one.
func New(notifier *Notifier, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = NewNotifier(logger)
	}
	return &Registry{
		notifier: notifier,
		logger:   logger.With(zap.String("component", "registry")),
		records:  make(map[RecordID]*WindowRecord),
		docs:     make(map[weak.Pointer[domain.Document]]RecordID),
		nodes:    make(map[weak.Pointer[domain.Node]]*domain.LocationRecord),
	}
}

// Notifier returns the notifier the registry publishes to
func (r *Registry) Notifier() *Notifier {
	return r.notifier
}

// GetOrCreate returns the record of the window's current document, creating
// it on first use. A new record of a frame is linked to the record of its top
// window, which is created as well when needed. The returned error comes from
// a subscriber; the record is valid either way.
func (r *Registry) GetOrCreate(w *domain.Window) (*WindowRecord, error) {
	var pending []notification
	r.mu.Lock()
	rec := r.getOrCreateLocked(w, &pending)
	r.mu.Unlock()
	return rec, r.dispatch(pending)
}

// Lookup returns the record of the window's current document without creating one
func (r *Registry) Lookup(w *domain.Window) (*WindowRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec := r.lookupLocked(w)
	return rec, rec != nil
}

// Stats returns the current registry size
func (r *Registry) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := Stats{Records: len(r.records), Nodes: len(r.nodes)}
	for _, rec := range r.records {
		if rec.detached {
			s.Detached++
		}
	}
	return s
}

func (r *Registry) lookupLocked(w *domain.Window) *WindowRecord {
	id, ok := r.docs[weak.Make(w.Document())]
	if !ok {
		return nil
	}
	return r.records[id]
}

func (r *Registry) getOrCreateLocked(w *domain.Window, pending *[]notification) *WindowRecord {
	if rec := r.lookupLocked(w); rec != nil {
		return rec
	}

	doc := w.Document()
	r.nextID++
	rec := &WindowRecord{
		id:        r.nextID,
		reg:       r,
		windowID:  w.ID,
		window:    weak.Make(w),
		url:       doc.URL,
		locations: make(map[domain.LocationKey]*domain.LocationRecord),
	}
	rec.top = rec.id
	r.records[rec.id] = rec

	key := weak.Make(doc)
	r.docs[key] = rec.id
	runtime.AddCleanup(doc, r.releaseDocument, docRelease{id: rec.id, key: key})

	r.logger.Debug("record created",
		zap.Uint64("record", uint64(rec.id)),
		zap.String("window", w.ID),
		zap.String("url", doc.URL))

	if top := w.Top(); top != w {
		topRec := r.getOrCreateLocked(top, pending)
		rec.top = topRec.id
		r.registerLocked(top, topRec, rec, pending)
	}
	return rec
}

// ownerWindowLocked returns the window whose current document rec decorates,
// or nil once that window is gone or shows another document.
func (r *Registry) ownerWindowLocked(rec *WindowRecord) *domain.Window {
	w := rec.window.Value()
	if w == nil || r.lookupLocked(w) != rec {
		return nil
	}
	return w
}

// releaseDocument runs after a document has been collected
func (r *Registry) releaseDocument(d docRelease) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.docs[d.key]; ok && id == d.id {
		delete(r.docs, d.key)
	}
	rec, ok := r.records[d.id]
	if !ok {
		return
	}
	delete(r.records, d.id)
	if top, ok := r.records[rec.top]; ok && rec.top != rec.id {
		top.removeSubdoc(rec.id)
	}
	r.logger.Debug("record released",
		zap.Uint64("record", uint64(d.id)),
		zap.String("window", rec.windowID))
}

func (r *Registry) releaseNode(key weak.Pointer[domain.Node]) {
	r.mu.Lock()
	delete(r.nodes, key)
	r.mu.Unlock()
}

// dispatch delivers notifications collected under the lock. It must be called
// without holding r.mu so subscribers can query the registry.
func (r *Registry) dispatch(pending []notification) error {
	for _, n := range pending {
		if err := r.notifier.Notify(n.window, n.event, n.record); err != nil {
			return err
		}
	}
	return nil
}
