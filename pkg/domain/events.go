package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventRunStart EventType = "run_start"
	EventStep     EventType = "step"
	EventRunEnd   EventType = "run_end"
)

// EventBase contains common fields for all events.
// Labels are rendered with fmt so observers do not depend on the label types.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Machine   string    `json:"machine,omitempty"`
}

// RunEvent marks the start or the end of a run.
type RunEvent struct {
	EventBase
	InputLength int           `json:"input_length"`
	Steps       int           `json:"steps"`
	Terminal    string        `json:"terminal,omitempty"`
	Accepted    bool          `json:"accepted"`
	Duration    time.Duration `json:"duration,omitempty"`
	Err         error         `json:"-"`
}

// StepEvent is emitted after every successful transition.
type StepEvent struct {
	EventBase
	Index  int    `json:"index"`
	From   string `json:"from"`
	Symbol string `json:"symbol"`
	To     string `json:"to"`
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks observe a run; they cannot alter its result.
type LifecycleHooks struct {
	OnRunStart func(*RunEvent)
	OnStep     func(*StepEvent)
	OnRunEnd   func(*RunEvent)
}
