package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ContentType classifies a resource load, using the browser content-policy numbering
type ContentType int

const (
	TypeOther            ContentType = 1
	TypeScript           ContentType = 2
	TypeImage            ContentType = 3
	TypeStylesheet       ContentType = 4
	TypeObject           ContentType = 5
	TypeDocument         ContentType = 6
	TypeSubdocument      ContentType = 7
	TypeRefresh          ContentType = 8
	TypeXBL              ContentType = 9
	TypePing             ContentType = 10
	TypeXMLHTTPRequest   ContentType = 11
	TypeObjectSubrequest ContentType = 12
	TypeDTD              ContentType = 13
	TypeFont             ContentType = 14
	TypeMedia            ContentType = 15
)

var contentTypeNames = map[ContentType]string{
	TypeOther:            "OTHER",
	TypeScript:           "SCRIPT",
	TypeImage:            "IMAGE",
	TypeStylesheet:       "STYLESHEET",
	TypeObject:           "OBJECT",
	TypeDocument:         "DOCUMENT",
	TypeSubdocument:      "SUBDOCUMENT",
	TypeRefresh:          "REFRESH",
	TypeXBL:              "XBL",
	TypePing:             "PING",
	TypeXMLHTTPRequest:   "XMLHTTPREQUEST",
	TypeObjectSubrequest: "OBJECT_SUBREQUEST",
	TypeDTD:              "DTD",
	TypeFont:             "FONT",
	TypeMedia:            "MEDIA",
}

func (t ContentType) String() string {
	if name, ok := contentTypeNames[t]; ok {
		return name
	}
	return "TYPE(" + strconv.Itoa(int(t)) + ")"
}

// Valid reports whether t is one of the known content types
func (t ContentType) Valid() bool {
	_, ok := contentTypeNames[t]
	return ok
}

// ParseContentType accepts either a content type name (case-insensitive) or its number
func ParseContentType(s string) (ContentType, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		t := ContentType(n)
		if !t.Valid() {
			return 0, fmt.Errorf("unknown content type: %d", n)
		}
		return t, nil
	}
	upper := strings.ToUpper(s)
	for t, name := range contentTypeNames {
		if name == upper {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown content type: %q", s)
}

// LocationKey identifies a resource load within a window
type LocationKey struct {
	Type ContentType
	URL  string
}

func (k LocationKey) String() string {
	return k.Type.String() + " " + k.URL
}

// Match is the rule that matched a location
type Match struct {
	Rule      string
	Whitelist bool
}

// LocationRecord describes one resource location requested from a window and
// the nodes that requested it. Its node list is maintained by the registry.
type LocationRecord struct {
	Key   LocationKey
	Match *Match
	nodes []*Node
}

// NewLocationRecord creates a record without nodes
func NewLocationRecord(key LocationKey, match *Match) *LocationRecord {
	return &LocationRecord{Key: key, Match: match}
}

// Nodes returns a snapshot of the nodes that requested this location
func (l *LocationRecord) Nodes() []*Node {
	return slices.Clone(l.nodes)
}

// Proxied reports whether a non-whitelist rule matched the location
func (l *LocationRecord) Proxied() bool {
	return l.Match != nil && !l.Match.Whitelist
}

// AddNode appends n unless it is already listed. It reports whether n was added.
func (l *LocationRecord) AddNode(n *Node) bool {
	if slices.Contains(l.nodes, n) {
		return false
	}
	l.nodes = append(l.nodes, n)
	return true
}

// RemoveNode drops every occurrence of n and returns how many were dropped
func (l *LocationRecord) RemoveNode(n *Node) int {
	before := len(l.nodes)
	l.nodes = slices.DeleteFunc(l.nodes, func(x *Node) bool {
		return x == n
	})
	return before - len(l.nodes)
}
