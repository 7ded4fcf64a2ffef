package domain

import "time"

// Note is a personal annotation a learner keeps, optionally pinned to a material.
type Note struct {
	ID         string
	UserID     string
	MaterialID *string
	Content    string
	IsPinned   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
