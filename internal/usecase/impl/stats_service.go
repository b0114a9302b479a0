package impl

import (
	"context"
	"log/slog"

	deliverycontext "coderr/internal/delivery/context"
	"coderr/internal/domain/entity"
	"coderr/internal/domain/repository"
	"coderr/internal/errors"
	"coderr/internal/usecase"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// Decimal places of the published average rating.
const averageRatingPlaces = 1

// statsService implements the StatsUsecase interface.
type statsService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// StatsServiceParams holds dependencies for StatsService, injected by Fx.
type StatsServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Logger    *slog.Logger
}

// NewStatsService is the constructor for statsService.
func NewStatsService(params StatsServiceParams) usecase.StatsUsecase {
	return &statsService{
		txManager: params.TxManager,
		logger:    params.Logger,
	}
}

// GetBaseInfo aggregates the platform counters. The average is 0 when there are no reviews.
func (srv *statsService) GetBaseInfo(ctx context.Context) (*entity.BaseInfo, error) {
	info := &entity.BaseInfo{}
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		stats, err := repoFactory.NewReviewRepository().Stats(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to compute review stats")
		}
		info.ReviewCount = stats.Count
		info.AverageRating = roundRating(stats.Average)

		info.BusinessProfileCount, err = repoFactory.NewUserRepository().CountByProfileType(ctx, entity.ProfileTypeBusiness)
		if err != nil {
			return errors.Wrap(err, "failed to count business profiles")
		}

		info.OfferCount, err = repoFactory.NewOfferRepository().Count(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to count offers")
		}

		return nil
	})
	if err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Error("Failed to compute base info", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to get base info")
	}

	return info, nil
}

func roundRating(average float64) float64 {
	return decimal.NewFromFloat(average).Round(averageRatingPlaces).InexactFloat64()
}
