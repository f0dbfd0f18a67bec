package service

import (
	"context"
	"math"
	"time"

	"github.com/antonkor/logboard/internal/domain"
	"github.com/antonkor/logboard/internal/repo"
	"github.com/antonkor/logboard/internal/repo/repotypes"
	errorsUtils "github.com/antonkor/logboard/pkg/errors"
)

const (
	statsWindowDays  = 30
	topChannelsLimit = 10
)

type StatsService struct {
	logRepo repo.Log
	// now is swappable for tests
	now func() time.Time
}

func NewStatsService(lr repo.Log) *StatsService {
	return &StatsService{
		logRepo: lr,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Dashboard aggregates the last 30 days. TodayLogs deliberately uses
// its own trailing 24h window and is not a subset of the 30 day
// window's metrics.
func (s *StatsService) Dashboard(ctx context.Context) (domain.DashboardStats, error) {
	now := s.now()
	from := now.AddDate(0, 0, -statsWindowDays)

	levels, err := s.logRepo.LevelCounts(ctx, from, now)
	if err != nil {
		return domain.DashboardStats{}, errorsUtils.WrapPathErr(err)
	}

	channels, err := s.logRepo.ChannelCounts(ctx, from, now, topChannelsLimit)
	if err != nil {
		return domain.DashboardStats{}, errorsUtils.WrapPathErr(err)
	}

	daily, err := s.logRepo.DailyCounts(ctx, from, now)
	if err != nil {
		return domain.DashboardStats{}, errorsUtils.WrapPathErr(err)
	}

	today, err := s.logRepo.CountWithFilters(ctx, sinceFilter(now.Add(-24*time.Hour)))
	if err != nil {
		return domain.DashboardStats{}, errorsUtils.WrapPathErr(err)
	}

	var total, errorCount int64
	for _, lc := range levels {
		total += lc.Count
		if domain.IsErrorLevel(lc.Level) {
			errorCount += lc.Count
		}
	}

	errorRate := 0.0
	if total > 0 {
		errorRate = roundTwo(float64(errorCount) / float64(total) * 100)
	}

	return domain.DashboardStats{
		From:         from,
		To:           now,
		TotalLogs:    total,
		TodayLogs:    today,
		ErrorRate:    errorRate,
		SystemHealth: math.Max(0, 100-errorRate),
		Levels:       levels,
		TopChannels:  channels,
		Daily:        daily,
		GeneratedAt:  now,
	}, nil
}

func sinceFilter(t time.Time) repotypes.LogFilter {
	return repotypes.LogFilter{DateFrom: t}
}

func roundTwo(v float64) float64 {
	return math.Round(v*100) / 100
}
