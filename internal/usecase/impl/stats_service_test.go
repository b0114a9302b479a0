package impl

import (
	"context"
	"testing"

	"coderr/internal/domain/entity"
	"coderr/internal/domain/repository"
	"coderr/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsService_GetBaseInfo(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		stats *repository.ReviewStats
		want  *entity.BaseInfo
	}{
		{
			name:  "rounds the average to one place",
			stats: &repository.ReviewStats{Count: 3, Average: 4.6666},
			want:  &entity.BaseInfo{ReviewCount: 3, AverageRating: 4.7, BusinessProfileCount: 2, OfferCount: 5},
		},
		{
			name:  "no reviews",
			stats: &repository.ReviewStats{},
			want:  &entity.BaseInfo{BusinessProfileCount: 2, OfferCount: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := newServiceMocks(t)
			srv := NewStatsService(StatsServiceParams{TxManager: mocks.txManager, Logger: newDiscardLogger()})

			mocks.reviewRepo.EXPECT().Stats(ctx).Return(tt.stats, nil)
			mocks.userRepo.EXPECT().CountByProfileType(ctx, entity.ProfileTypeBusiness).Return(int64(2), nil)
			mocks.offerRepo.EXPECT().Count(ctx).Return(int64(5), nil)

			got, err := srv.GetBaseInfo(ctx)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("storage failure", func(t *testing.T) {
		mocks := newServiceMocks(t)
		srv := NewStatsService(StatsServiceParams{TxManager: mocks.txManager, Logger: newDiscardLogger()})

		mocks.reviewRepo.EXPECT().Stats(ctx).Return(nil, errors.New("timeout"))

		_, err := srv.GetBaseInfo(ctx)

		require.Error(t, err)
	})
}
