package ports

import (
	"framedata/internal/domain"
	"framedata/internal/registry"
)

// WindowRegistry is the query surface chrome collaborators use
type WindowRegistry interface {
	GetOrCreate(w *domain.Window) (*registry.WindowRecord, error)
	Lookup(w *domain.Window) (*registry.WindowRecord, bool)
	LookupByNode(node *domain.Node, stopAtFirstMiss bool) (*domain.Node, *domain.LocationRecord, bool)
	Stats() registry.Stats
}

var _ WindowRegistry = (*registry.Registry)(nil)
