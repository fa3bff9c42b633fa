package reports

// EventType tags one entry in a request's progress stream.
type EventType string

const (
	EventProgress EventType = "progress"
	EventComplete EventType = "complete"
	EventError    EventType = "error"
)

// Event is one streamed progress entry. A stream carries zero or more
// progress events followed by exactly one complete or error event.
type Event struct {
	Type    EventType `json:"type"`
	Message string    `json:"message,omitempty"`
	Data    any       `json:"data,omitempty"`
}
