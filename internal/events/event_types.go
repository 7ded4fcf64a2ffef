package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventContactMessageReceived EventType = "contact_message_received"
	EventSessionsReaped         EventType = "sessions_reaped"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ContactMessagePayload carries a contact-form submission bound for the
// support mailbox.
type ContactMessagePayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	To      string `json:"to"`
}

// SessionsReapedPayload reports one reaper sweep.
type SessionsReapedPayload struct {
	Deleted int64     `json:"deleted"`
	SweptAt time.Time `json:"swept_at"`
}
