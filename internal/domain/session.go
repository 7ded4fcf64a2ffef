package domain

import "time"

// ParticipantRole enumerates who a participant is in a lesson.
type ParticipantRole string

const (
	RoleTeacher ParticipantRole = "teacher"
	RoleStudent ParticipantRole = "student"
)

// ValidRole reports whether r belongs to the closed role set.
func ValidRole(r ParticipantRole) bool {
	return r == RoleTeacher || r == RoleStudent
}

// Participant is a role-tagged identity attached to a session at creation time.
type Participant struct {
	UserID      *string
	DisplayName string
	Role        ParticipantRole
}

// Session is one scheduled or ad-hoc video lesson bound to a single call room.
// Room is generated once, immutable and never reused. ExpiresAt, when set,
// is the authoritative boundary for both reaping and join eligibility.
type Session struct {
	ID           string
	Room         string
	CourseLevel  string
	Unit         int
	Lesson       int
	Participants []Participant
	CreatedBy    string
	StartsAt     *time.Time
	ExpiresAt    *time.Time
	CreatedAt    time.Time
}

// Expired reports whether the session has logically expired at now.
// Absence of ExpiresAt means the session never auto-expires.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && !now.Before(*s.ExpiresAt)
}
