package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/gottaspeak/backend/internal/events"
	apperrors "github.com/gottaspeak/backend/pkg/util"
)

const (
	contactRateWindow = time.Hour
	contactRateLimit  = 5
)

// ContactService accepts contact-form submissions and hands them to the mail
// pipeline through the event dispatcher. Submissions are rate limited
// per-sender via Redis.
type ContactService struct {
	dispatcher events.Dispatcher
	limiter    *redis.Client
	supportTo  string
	helloTo    string
	logger     *zap.Logger
}

// NewContactService constructs the service. limiter may be nil, disabling
// rate limiting. helloTo falls back to supportTo when empty.
func NewContactService(dispatcher events.Dispatcher, limiter *redis.Client, supportTo, helloTo string, logger *zap.Logger) *ContactService {
	if helloTo == "" {
		helloTo = supportTo
	}
	return &ContactService{dispatcher: dispatcher, limiter: limiter, supportTo: supportTo, helloTo: helloTo, logger: logger}
}

// ContactInput describes a contact-form submission. Channel picks the
// destination mailbox: "support" (default) or "hello".
type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
	Channel string
}

// SendContactMessage validates, rate limits and publishes the submission.
func (s *ContactService) SendContactMessage(ctx context.Context, input ContactInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" || len(name) > 80 {
		return apperrors.NewValidationError("name is required (max 80 chars)", nil)
	}
	email := strings.TrimSpace(input.Email)
	if !strings.Contains(email, "@") || strings.ContainsAny(email, " \t") {
		return apperrors.NewValidationError("email must be a valid address", nil)
	}
	message := strings.TrimSpace(input.Message)
	if message == "" || len(message) > 2000 {
		return apperrors.NewValidationError("message is required (max 2000 chars)", nil)
	}
	if len(input.Subject) > 120 {
		return apperrors.NewValidationError("subject too long (max 120 chars)", nil)
	}
	to := s.supportTo
	switch input.Channel {
	case "", "support":
	case "hello":
		to = s.helloTo
	default:
		return apperrors.NewValidationError("channel must be hello or support", nil)
	}

	if err := s.checkRate(ctx, email); err != nil {
		return err
	}

	subject := input.Subject
	if subject == "" {
		subject = fmt.Sprintf("Contact form: %s", name)
	}

	event := events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventContactMessageReceived,
		Timestamp: time.Now(),
		Payload: events.ContactMessagePayload{
			Name:    name,
			Email:   email,
			Subject: subject,
			Message: message,
			To:      to,
		},
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		return apperrors.NewInternalError(err)
	}
	s.logger.Info("contact message accepted", zap.String("event_id", event.ID))
	return nil
}

func (s *ContactService) checkRate(ctx context.Context, email string) error {
	if s.limiter == nil {
		return nil
	}
	key := "contact:" + strings.ToLower(email)
	count, err := s.limiter.Incr(ctx, key).Result()
	if err != nil {
		s.logger.Warn("contact rate limiter unavailable", zap.Error(err))
		return nil
	}
	if count == 1 {
		if err := s.limiter.Expire(ctx, key, contactRateWindow).Err(); err != nil {
			s.logger.Warn("contact rate limiter expire failed", zap.Error(err))
		}
	}
	if count > contactRateLimit {
		return apperrors.NewDomainError("RATE_LIMITED", "too many messages, try again later",
			http.StatusTooManyRequests, nil)
	}
	return nil
}
