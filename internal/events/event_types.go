package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventEmployeeCreated EventType = "employee_created"
	EventEmployeeUpdated EventType = "employee_updated"
	EventEmployeeDeleted EventType = "employee_deleted"
	EventListingCreated  EventType = "listing_created"
	EventListingUpdated  EventType = "listing_updated"
	EventListingDeleted  EventType = "listing_deleted"
)

// RecordEventTypes lists every record change event.
var RecordEventTypes = []EventType{
	EventEmployeeCreated,
	EventEmployeeUpdated,
	EventEmployeeDeleted,
	EventListingCreated,
	EventListingUpdated,
	EventListingDeleted,
}

// Resource names the record kind an event refers to.
type Resource string

const (
	ResourceEmployee Resource = "employee"
	ResourceListing  Resource = "listing"
)

// Event represents a record change emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Resource  Resource  `json:"resource"`
	RecordID  string    `json:"record_id"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// EmployeeChangedPayload payload.
type EmployeeChangedPayload struct {
	Name       string   `json:"name"`
	Department string   `json:"department"`
	Fields     []string `json:"fields,omitempty"`
}

// ListingChangedPayload payload.
type ListingChangedPayload struct {
	AppID  string   `json:"app_id,omitempty"`
	Name   string   `json:"name,omitempty"`
	Fields []string `json:"fields,omitempty"`
}
