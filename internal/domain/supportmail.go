package domain

import "time"

// SupportMailStatus tracks delivery of a logged mail.
type SupportMailStatus string

const (
	SupportMailQueued SupportMailStatus = "queued"
	SupportMailSent   SupportMailStatus = "sent"
	SupportMailFailed SupportMailStatus = "failed"
)

// MailDirectionOutgoing marks mail originating from this service.
const MailDirectionOutgoing = "outgoing"

// SupportMail is the durable log row for one support-channel message. Rows
// start queued and move to sent or failed after the SMTP attempt.
type SupportMail struct {
	ID        string
	Direction string
	To        []string
	From      string
	Subject   string
	Text      string
	Status    SupportMailStatus
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
