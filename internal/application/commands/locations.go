package commands

import (
	"context"
	"fmt"

	"framedata/internal/application"
	"framedata/internal/domain"
	"framedata/internal/ports"
)

// ListLocationsCommand lists the locations tracked for a window
type ListLocationsCommand struct {
	host     ports.BrowserHost
	reg      ports.WindowRegistry
	WindowID string
	// All includes the locations of every subdocument, depth first
	All bool
}

// NewListLocationsCommand creates a new ListLocationsCommand
func NewListLocationsCommand(host ports.BrowserHost, reg ports.WindowRegistry, windowID string, all bool) *ListLocationsCommand {
	return &ListLocationsCommand{
		host:     host,
		reg:      reg,
		WindowID: windowID,
		All:      all,
	}
}

// Execute runs the list locations command. A window without a record has no
// locations.
func (c *ListLocationsCommand) Execute(ctx context.Context) ([]*domain.LocationRecord, error) {
	w, err := resolveWindow(c.host, c.WindowID)
	if err != nil {
		return nil, err
	}
	rec, ok := c.reg.Lookup(w)
	if !ok {
		return nil, nil
	}
	if c.All {
		return rec.AllLocations(), nil
	}
	return rec.Locations(), nil
}

// GetLocationCommand finds one location in a window hierarchy
type GetLocationCommand struct {
	host     ports.BrowserHost
	reg      ports.WindowRegistry
	WindowID string
	Type     domain.ContentType
	URL      string
}

// NewGetLocationCommand creates a new GetLocationCommand
func NewGetLocationCommand(host ports.BrowserHost, reg ports.WindowRegistry, windowID string, typ domain.ContentType, url string) *GetLocationCommand {
	return &GetLocationCommand{
		host:     host,
		reg:      reg,
		WindowID: windowID,
		Type:     typ,
		URL:      url,
	}
}

// Validate checks the lookup key
func (c *GetLocationCommand) Validate() error {
	if err := application.ValidateRequired("url", c.URL); err != nil {
		return err
	}
	if !c.Type.Valid() {
		return &application.ValidationError{
			Field:   "contentType",
			Message: fmt.Sprintf("unknown content type: %d", c.Type),
		}
	}
	return nil
}

// Execute runs the get location command
func (c *GetLocationCommand) Execute(ctx context.Context) (*domain.LocationRecord, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	w, err := resolveWindow(c.host, c.WindowID)
	if err != nil {
		return nil, err
	}

	key := domain.LocationKey{Type: c.Type, URL: c.URL}
	rec, ok := c.reg.Lookup(w)
	if !ok {
		return nil, fmt.Errorf("%w: %s", application.ErrNotFound, key)
	}
	loc, ok := rec.Location(c.Type, c.URL)
	if !ok {
		return nil, fmt.Errorf("%w: %s", application.ErrNotFound, key)
	}
	return loc, nil
}
