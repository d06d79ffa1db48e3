package messaging

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	// MVR evaluation events
	EventEvaluationCompleted   = "mvr.evaluation.completed"
	EventDriverDisqualified    = "mvr.driver.disqualified"
	EventEvaluationLogExported = "mvr.evaluation.log.exported"
)

// Exchange names
const (
	ExchangeMVREvents = "mvr.events"
)

// Event is the base event structure
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent creates a new event with the given type and data
func NewEvent(eventType, source, correlationID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            GenerateEventID(),
		Type:          eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          dataBytes,
	}, nil
}

// UnmarshalData unmarshals the event data into the provided struct
func (e *Event) UnmarshalData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// GenerateEventID returns a unique identifier for a new event
func GenerateEventID() string {
	return uuid.New().String()
}

// EvaluationCompletedEvent is published after every MVR evaluation
type EvaluationCompletedEvent struct {
	EvaluationID   string   `json:"evaluation_id"`
	DriverName     string   `json:"driver_name"`
	DriverType     string   `json:"driver_type"`
	Jurisdiction   string   `json:"jurisdiction"`
	Classification string   `json:"classification"`
	FinalVerdict   string   `json:"final_verdict"`
	ViolationCount int      `json:"violation_count"`
	AccidentCount  int      `json:"accident_count"`
	PolicyVersion  string   `json:"policy_version"`
	Reasons        []string `json:"reasons,omitempty"`
}

// DriverDisqualifiedEvent is published when an evaluation ends in disqualification
type DriverDisqualifiedEvent struct {
	EvaluationID string   `json:"evaluation_id"`
	DriverName   string   `json:"driver_name"`
	DriverType   string   `json:"driver_type"`
	Reasons      []string `json:"reasons"`
}
