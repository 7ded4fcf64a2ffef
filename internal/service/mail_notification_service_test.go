package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/gottaspeak/backend/internal/domain"
	"github.com/gottaspeak/backend/internal/events"
	"github.com/gottaspeak/backend/internal/mail"
)

type fakeMailSender struct {
	configured bool
	sendErr    error
	sent       []mail.SendInput
}

func (f *fakeMailSender) Configured() bool { return f.configured }

func (f *fakeMailSender) Send(input mail.SendInput) error {
	f.sent = append(f.sent, input)
	return f.sendErr
}

type fakeSupportMailRepo struct {
	created []*domain.SupportMail
	status  map[string]domain.SupportMailStatus
	errMsg  map[string]string
}

func newFakeSupportMailRepo() *fakeSupportMailRepo {
	return &fakeSupportMailRepo{
		status: map[string]domain.SupportMailStatus{},
		errMsg: map[string]string{},
	}
}

func (f *fakeSupportMailRepo) Create(_ context.Context, m *domain.SupportMail) error {
	m.ID = fmt.Sprintf("mail-%d", len(f.created)+1)
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	stored := *m
	f.created = append(f.created, &stored)
	f.status[m.ID] = m.Status
	return nil
}

func (f *fakeSupportMailRepo) UpdateStatus(_ context.Context, id string, status domain.SupportMailStatus, sendError string) error {
	f.status[id] = status
	f.errMsg[id] = sendError
	return nil
}

func contactEvent() events.Event {
	return events.Event{
		ID:        "evt-1",
		Type:      events.EventContactMessageReceived,
		Timestamp: time.Now(),
		Payload: events.ContactMessagePayload{
			Name:    "Ola",
			Email:   "ola@example.com",
			Subject: "Lesson question",
			Message: "How do I book?",
			To:      "support@gottaspeak.com",
		},
	}
}

func TestContactMailLoggedAsSent(t *testing.T) {
	sender := &fakeMailSender{configured: true}
	repo := newFakeSupportMailRepo()
	svc := NewMailNotificationService(nil, sender, repo, zap.NewNop())

	if err := svc.handleContactMessage(context.Background(), contactEvent()); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if len(repo.created) != 1 {
		t.Fatalf("created = %d, want 1", len(repo.created))
	}
	row := repo.created[0]
	if row.Status != domain.SupportMailQueued {
		t.Errorf("initial status = %q, want queued", row.Status)
	}
	if row.Direction != domain.MailDirectionOutgoing {
		t.Errorf("direction = %q", row.Direction)
	}
	if len(row.To) != 1 || row.To[0] != "support@gottaspeak.com" {
		t.Errorf("recipients = %v", row.To)
	}
	if repo.status[row.ID] != domain.SupportMailSent {
		t.Errorf("final status = %q, want sent", repo.status[row.ID])
	}
	if len(sender.sent) != 1 {
		t.Fatalf("sent = %d, want 1", len(sender.sent))
	}
	if sender.sent[0].To != "support@gottaspeak.com" {
		t.Errorf("to = %q", sender.sent[0].To)
	}
}

func TestContactMailLoggedAsFailed(t *testing.T) {
	sender := &fakeMailSender{configured: true, sendErr: errors.New("connection refused")}
	repo := newFakeSupportMailRepo()
	svc := NewMailNotificationService(nil, sender, repo, zap.NewNop())

	if err := svc.handleContactMessage(context.Background(), contactEvent()); err == nil {
		t.Fatal("expected send error")
	}

	id := repo.created[0].ID
	if repo.status[id] != domain.SupportMailFailed {
		t.Errorf("status = %q, want failed", repo.status[id])
	}
	if repo.errMsg[id] != "connection refused" {
		t.Errorf("send error = %q", repo.errMsg[id])
	}
}

func TestContactMailStaysQueuedWithoutSMTP(t *testing.T) {
	sender := &fakeMailSender{configured: false}
	repo := newFakeSupportMailRepo()
	svc := NewMailNotificationService(nil, sender, repo, zap.NewNop())

	if err := svc.handleContactMessage(context.Background(), contactEvent()); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if len(sender.sent) != 0 {
		t.Errorf("sent = %d, want 0", len(sender.sent))
	}
	id := repo.created[0].ID
	if repo.status[id] != domain.SupportMailQueued {
		t.Errorf("status = %q, want queued", repo.status[id])
	}
}
