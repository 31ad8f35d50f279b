package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/starkeae/divarkhaf-bot/internal/listing/domain"
)

type UserUsecase struct {
	repo   domain.UserRepository
	logger *zap.Logger
}

func NewUserUsecase(repo domain.UserRepository, logger *zap.Logger) *UserUsecase {
	return &UserUsecase{repo: repo, logger: logger}
}

// Touch upserts the user on every inbound interaction, refreshing the
// last-active timestamp.
func (uc *UserUsecase) Touch(ctx context.Context, user *domain.User) {
	user.LastActive = time.Now().UTC()
	if err := uc.repo.Upsert(ctx, user); err != nil {
		uc.logger.Warn("user upsert failed", zap.Int64("user_id", user.ID), zap.Error(err))
	}
}

func (uc *UserUsecase) All(ctx context.Context) ([]*domain.User, error) {
	return uc.repo.FindAll(ctx)
}

// MarkBlocked flags a user whose chat rejected a delivery.
func (uc *UserUsecase) MarkBlocked(ctx context.Context, userID int64) {
	if err := uc.repo.SetBlocked(ctx, userID, true); err != nil {
		uc.logger.Warn("user block flag failed", zap.Int64("user_id", userID), zap.Error(err))
	}
}
