package usecase

import (
	"context"

	"github.com/starkeae/divarkhaf-bot/internal/listing/domain"
)

type StatsUsecase struct {
	repo domain.StatsRepository
	auth Authorizer
}

func NewStatsUsecase(repo domain.StatsRepository, auth Authorizer) *StatsUsecase {
	return &StatsUsecase{repo: repo, auth: auth}
}

func (uc *StatsUsecase) Collect(ctx context.Context, actorID int64) (*domain.Stats, error) {
	if !uc.auth.IsAdmin(actorID) {
		return nil, domain.ErrUnauthorized
	}
	return uc.repo.Collect(ctx)
}
