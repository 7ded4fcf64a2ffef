package domain

import "time"

// LessonLink is a standalone shareable room link minted by an operator,
// outside the session flow. The link carries the fully resolved call URL;
// no capability token guards it.
type LessonLink struct {
	ID           string
	Room         string
	URL          string
	Participants []string
	CreatedBy    string
	ExpiresAt    *time.Time
	CreatedAt    time.Time
}
