package registry

import (
	"go.uber.org/zap"

	"framedata/internal/domain"
)

// WindowHidden moves the window's record to the detached state. A frame
// leaves its top record's subdocuments and the refresh names the window
// owning that record, which may differ from the frame's current top after a
// reparent. A top window publishes a clear.
// Hiding a detached or unknown window is a no-op.
func (r *Registry) WindowHidden(w *domain.Window) error {
	var pending []notification
	r.mu.Lock()
	rec := r.lookupLocked(w)
	if rec == nil || rec.detached {
		r.mu.Unlock()
		return nil
	}

	if rec.top != rec.id {
		if owner, ok := r.records[rec.top]; ok {
			if top := r.ownerWindowLocked(owner); top != nil {
				r.unregisterLocked(top, owner, rec, &pending)
			} else {
				owner.removeSubdoc(rec.id)
			}
		}
	} else {
		pending = append(pending, notification{window: w, event: domain.EventClear, record: rec})
	}
	rec.detached = true
	r.logger.Debug("window hidden",
		zap.Uint64("record", uint64(rec.id)),
		zap.String("window", w.ID))
	r.mu.Unlock()
	return r.dispatch(pending)
}

// WindowShown moves the window's record back to the attached state. The top
// record is resolved again from the window's current hierarchy, so a frame
// moved to another tab registers with its new top. A top window publishes a
// select. Showing an attached or unknown window is a no-op.
func (r *Registry) WindowShown(w *domain.Window) error {
	var pending []notification
	r.mu.Lock()
	rec := r.lookupLocked(w)
	if rec == nil || !rec.detached {
		r.mu.Unlock()
		return nil
	}

	rec.detached = false
	if top := w.Top(); top != w {
		owner := r.getOrCreateLocked(top, &pending)
		rec.top = owner.id
		r.registerLocked(top, owner, rec, &pending)
	} else {
		rec.top = rec.id
		pending = append(pending, notification{window: w, event: domain.EventSelect, record: rec})
	}
	r.logger.Debug("window shown",
		zap.Uint64("record", uint64(rec.id)),
		zap.String("window", w.ID))
	r.mu.Unlock()
	return r.dispatch(pending)
}
