package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/gottaspeak/backend/internal/domain"
	"github.com/gottaspeak/backend/internal/events"
	"github.com/gottaspeak/backend/internal/mail"
	"github.com/gottaspeak/backend/internal/repository"
)

// MailSender is the outbound mail surface; satisfied by *mail.Mailer.
type MailSender interface {
	Configured() bool
	Send(input mail.SendInput) error
}

// MailNotificationService turns contact events into outbound mail, keeping a
// durable log row per message with its delivery outcome.
type MailNotificationService struct {
	dispatcher events.Dispatcher
	mailer     MailSender
	mails      repository.SupportMailRepository
	logger     *zap.Logger
}

// NewMailNotificationService creates the service. mails may be nil, disabling
// the durable log.
func NewMailNotificationService(dispatcher events.Dispatcher, mailer MailSender, mails repository.SupportMailRepository, logger *zap.Logger) *MailNotificationService {
	return &MailNotificationService{dispatcher: dispatcher, mailer: mailer, mails: mails, logger: logger}
}

// RegisterHandlers subscribes to events.
func (n *MailNotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventContactMessageReceived, n.handleContactMessage)
}

func (n *MailNotificationService) handleContactMessage(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ContactMessagePayload)
	if !ok {
		n.logger.Warn("unexpected contact payload", zap.String("event_id", event.ID))
		return nil
	}

	body := "From: " + payload.Name + " <" + payload.Email + ">\n\n" + payload.Message
	record := &domain.SupportMail{
		Direction: domain.MailDirectionOutgoing,
		To:        []string{payload.To},
		From:      payload.Email,
		Subject:   payload.Subject,
		Text:      body,
		Status:    domain.SupportMailQueued,
	}
	if n.mails != nil {
		if err := n.mails.Create(ctx, record); err != nil {
			n.logger.Error("support mail log write failed",
				zap.String("event_id", event.ID), zap.Error(err))
		}
	}

	if !n.mailer.Configured() {
		// Row stays queued; an operator can replay it once SMTP is up.
		n.logger.Info("smtp not configured, contact mail left queued",
			zap.String("event_id", event.ID), zap.String("to", payload.To))
		return nil
	}

	err := n.mailer.Send(mail.SendInput{
		To:      payload.To,
		Subject: payload.Subject,
		Text:    body,
		ReplyTo: payload.Name + " <" + payload.Email + ">",
	})
	if err != nil {
		n.markStatus(ctx, record.ID, domain.SupportMailFailed, err.Error())
		n.logger.Error("contact mail send failed", zap.String("event_id", event.ID), zap.Error(err))
		return err
	}
	n.markStatus(ctx, record.ID, domain.SupportMailSent, "")
	n.logger.Info("contact mail sent", zap.String("event_id", event.ID), zap.String("to", payload.To))
	return nil
}

func (n *MailNotificationService) markStatus(ctx context.Context, id string, status domain.SupportMailStatus, sendError string) {
	if n.mails == nil || id == "" {
		return
	}
	if err := n.mails.UpdateStatus(ctx, id, status, sendError); err != nil {
		n.logger.Error("support mail status update failed",
			zap.String("mail_id", id), zap.Error(err))
	}
}
