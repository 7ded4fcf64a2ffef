package worker

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gottaspeak/backend/internal/events"
	"github.com/gottaspeak/backend/internal/repository"
)

// SessionReaper deletes expired session rows on an interval. Best-effort
// storage reclamation only: join eligibility is always re-derived from
// expiresAt, never from a row's absence.
type SessionReaper struct {
	sessions   repository.SessionRepository
	dispatcher events.Dispatcher
	interval   time.Duration
	logger     *zap.Logger
	stop       chan struct{}
	done       chan struct{}
}

// NewSessionReaper constructs the reaper.
func NewSessionReaper(sessions repository.SessionRepository, dispatcher events.Dispatcher, interval time.Duration, logger *zap.Logger) *SessionReaper {
	return &SessionReaper{
		sessions:   sessions,
		dispatcher: dispatcher,
		interval:   interval,
		logger:     logger,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Start launches the sweep loop.
func (r *SessionReaper) Start(ctx context.Context) {
	go r.run(ctx)
}

// Stop halts the loop and waits for the current sweep to finish.
func (r *SessionReaper) Stop() {
	close(r.stop)
	<-r.done
}

func (r *SessionReaper) run(ctx context.Context) {
	defer close(r.done)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.sweep(ctx)
		case <-r.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (r *SessionReaper) sweep(ctx context.Context) {
	now := time.Now()
	deleted, err := r.sessions.DeleteExpired(ctx, now)
	if err != nil {
		r.logger.Warn("session reap failed", zap.Error(err))
		return
	}
	if deleted == 0 {
		return
	}
	r.logger.Info("reaped expired sessions", zap.Int64("deleted", deleted))
	if r.dispatcher != nil {
		_ = r.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventSessionsReaped,
			Timestamp: now,
			Payload:   events.SessionsReapedPayload{Deleted: deleted, SweptAt: now},
		})
	}
}
