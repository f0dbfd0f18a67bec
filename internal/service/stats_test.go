package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/antonkor/logboard/internal/domain"
	repository_mock "github.com/antonkor/logboard/internal/mocks/repository"
	"github.com/antonkor/logboard/internal/repo/repotypes"
	"github.com/antonkor/logboard/internal/service"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestStatsService_Dashboard(t *testing.T) {
	ctx := context.Background()

	levels := []domain.LevelCount{
		{Level: domain.LevelInfo, Count: 1},
		{Level: domain.LevelWarning, Count: 1},
		{Level: domain.LevelError, Count: 1},
	}
	channels := []domain.ChannelCount{
		{Channel: "app", Count: 2},
		{Channel: "security", Count: 1},
	}
	daily := []domain.DailyCount{
		{Day: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), Count: 2},
		{Day: time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC), Count: 1},
	}

	t.Run("error rate and health", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := repository_mock.NewMockLog(ctrl)
		mockRepo.EXPECT().
			LevelCounts(ctx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, from, to time.Time) ([]domain.LevelCount, error) {
				assert.WithinDuration(t, time.Now().UTC(), to, time.Minute)
				assert.WithinDuration(t, to.AddDate(0, 0, -30), from, time.Minute)
				return levels, nil
			})
		mockRepo.EXPECT().ChannelCounts(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(channels, nil)
		mockRepo.EXPECT().DailyCounts(ctx, gomock.Any(), gomock.Any()).Return(daily, nil)
		mockRepo.EXPECT().
			CountWithFilters(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, filter repotypes.LogFilter) (int64, error) {
				assert.WithinDuration(t, time.Now().UTC().Add(-24*time.Hour), filter.DateFrom, time.Minute)
				return int64(2), nil
			})

		got, err := service.NewStatsService(mockRepo).Dashboard(ctx)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), got.TotalLogs)
		assert.Equal(t, int64(2), got.TodayLogs)
		assert.InDelta(t, 33.33, got.ErrorRate, 0.001)
		assert.InDelta(t, 66.67, got.SystemHealth, 0.001)
		assert.Equal(t, levels, got.Levels)
		assert.Equal(t, channels, got.TopChannels)
		assert.Equal(t, daily, got.Daily)
	})

	t.Run("critical counts toward error rate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := repository_mock.NewMockLog(ctrl)
		mockRepo.EXPECT().LevelCounts(ctx, gomock.Any(), gomock.Any()).Return([]domain.LevelCount{
			{Level: domain.LevelInfo, Count: 2},
			{Level: domain.LevelCritical, Count: 1},
			{Level: domain.LevelError, Count: 1},
		}, nil)
		mockRepo.EXPECT().ChannelCounts(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		mockRepo.EXPECT().DailyCounts(ctx, gomock.Any(), gomock.Any()).Return(nil, nil)
		mockRepo.EXPECT().CountWithFilters(ctx, gomock.Any()).Return(int64(0), nil)

		got, err := service.NewStatsService(mockRepo).Dashboard(ctx)

		assert.NoError(t, err)
		assert.InDelta(t, 50.0, got.ErrorRate, 0.001)
		assert.InDelta(t, 50.0, got.SystemHealth, 0.001)
	})

	t.Run("no logs means zero rate and full health", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := repository_mock.NewMockLog(ctrl)
		mockRepo.EXPECT().LevelCounts(ctx, gomock.Any(), gomock.Any()).Return(nil, nil)
		mockRepo.EXPECT().ChannelCounts(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		mockRepo.EXPECT().DailyCounts(ctx, gomock.Any(), gomock.Any()).Return(nil, nil)
		mockRepo.EXPECT().CountWithFilters(ctx, gomock.Any()).Return(int64(0), nil)

		got, err := service.NewStatsService(mockRepo).Dashboard(ctx)

		assert.NoError(t, err)
		assert.Zero(t, got.TotalLogs)
		assert.Zero(t, got.ErrorRate)
		assert.Equal(t, 100.0, got.SystemHealth)
	})

	t.Run("repository error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := repository_mock.NewMockLog(ctrl)
		mockRepo.EXPECT().LevelCounts(ctx, gomock.Any(), gomock.Any()).Return(nil, errors.New("db error"))

		_, err := service.NewStatsService(mockRepo).Dashboard(ctx)

		assert.Error(t, err)
	})
}
