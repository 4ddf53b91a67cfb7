package browserhost

import (
	"bytes"
	"encoding/json"
	"strconv"

	"framedata/internal/domain"
)

// Event types understood by the host
const (
	EventWindowOpen  = "window_open"
	EventNavigate    = "navigate"
	EventNodeAdd     = "node_add"
	EventLoad        = "load"
	EventNodeRemove  = "node_remove"
	EventPageHide    = "page_hide"
	EventPageShow    = "page_show"
	EventReparent    = "reparent"
	EventWindowClose = "window_close"
)

// Event is one line of a host event stream
type Event struct {
	Type        string      `json:"type"`
	Window      string      `json:"window,omitempty"`
	Parent      string      `json:"parent,omitempty"`
	Node        string      `json:"node,omitempty"`
	Tag         string      `json:"tag,omitempty"`
	URL         string      `json:"url,omitempty"`
	ContentType ContentType `json:"content_type,omitempty"`
	Rule        string      `json:"rule,omitempty"`
	Whitelist   bool        `json:"whitelist,omitempty"`
}

// ContentType decodes a content type given either as a number or as a name
type ContentType domain.ContentType

func (c *ContentType) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	raw := string(data)
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = unquoted
	}
	t, err := domain.ParseContentType(raw)
	if err != nil {
		return err
	}
	*c = ContentType(t)
	return nil
}

func (c ContentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(domain.ContentType(c).String())
}

// match returns the rule outcome carried by a load event
func (e Event) match() *domain.Match {
	if e.Rule == "" {
		return nil
	}
	return &domain.Match{Rule: e.Rule, Whitelist: e.Whitelist}
}
