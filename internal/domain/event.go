package domain

// EventType is the kind of notification sent to registry subscribers
type EventType string

const (
	// EventRefresh means the location list of a window hierarchy changed
	EventRefresh EventType = "refresh"
	// EventSelect means a top window became visible again
	EventSelect EventType = "select"
	// EventClear means a top window was hidden
	EventClear EventType = "clear"
)

// EventTypes lists every notification kind
var EventTypes = []EventType{EventRefresh, EventSelect, EventClear}
