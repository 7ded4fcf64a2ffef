package domain

import "time"

// MessageDirection marks who authored a message in a user's thread.
type MessageDirection string

const (
	DirectionFromUser    MessageDirection = "fromUser"
	DirectionFromTeacher MessageDirection = "fromTeacher"
)

// Message is one entry in the per-user teacher/student message log.
type Message struct {
	ID        string
	UserID    string
	Text      string
	Direction MessageDirection
	CreatedAt time.Time
}
