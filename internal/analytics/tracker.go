// Package analytics records interaction events. Tracking is strictly
// fire-and-forget: nothing downstream ever reads events on the hot path, and a
// tracking failure never propagates to the caller.
package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/starkeae/divarkhaf-bot/internal/listing/domain"
)

const subjectPrefix = "interactions."

type Publisher interface {
	Publish(ctx context.Context, subject string, data any) error
}

type Tracker struct {
	repo   domain.InteractionRepository
	pub    Publisher
	logger *zap.Logger
}

// NewTracker accepts a nil publisher; events then only land in the store.
func NewTracker(repo domain.InteractionRepository, pub Publisher, logger *zap.Logger) *Tracker {
	return &Tracker{repo: repo, pub: pub, logger: logger}
}

func (t *Tracker) Track(ctx context.Context, userID int64, action string, payload map[string]any) {
	event := &domain.Interaction{
		ID:        uuid.NewString(),
		UserID:    userID,
		Action:    action,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}

	if err := t.repo.Insert(ctx, event); err != nil {
		t.logger.Warn("interaction insert failed",
			zap.String("action", action), zap.Int64("user_id", userID), zap.Error(err))
	}

	if t.pub == nil {
		return
	}
	if err := t.pub.Publish(ctx, subjectPrefix+action, event); err != nil {
		t.logger.Warn("interaction publish failed",
			zap.String("action", action), zap.Int64("user_id", userID), zap.Error(err))
	}
}
