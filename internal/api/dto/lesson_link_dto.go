package dto

import "time"

// CreateLessonLinkRequest payload.
type CreateLessonLinkRequest struct {
	TeacherID   *string `json:"teacherId"`
	StudentID   *string `json:"studentId"`
	DisplayName string  `json:"displayName"`
	TTLMinutes  *int    `json:"ttlMinutes"`
}

// LessonLinkResponse is the minted or looked-up link.
type LessonLinkResponse struct {
	Room      string     `json:"room"`
	URL       string     `json:"url"`
	ExpiresAt *time.Time `json:"expiresAt"`
}
