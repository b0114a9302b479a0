package usecase

import (
	"context"

	"coderr/internal/domain/entity"
)

// StatsUsecase computes the public platform statistics.
type StatsUsecase interface {
	GetBaseInfo(ctx context.Context) (*entity.BaseInfo, error)
}
