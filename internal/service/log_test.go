package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/antonkor/logboard/internal/domain"
	"github.com/antonkor/logboard/internal/metrics"
	repository_mock "github.com/antonkor/logboard/internal/mocks/repository"
	"github.com/antonkor/logboard/internal/repo/repotypes"
	"github.com/antonkor/logboard/internal/service"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type txStub struct{}

func (txStub) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newLogService(r *repository_mock.MockLog) *service.LogService {
	return service.NewLogService(r, txStub{}, metrics.NewTestCounters(), nil, 0)
}

func TestLogService_CreateLog(t *testing.T) {
	type mockBehavior func(r *repository_mock.MockLog)

	ctx := context.Background()

	testCases := []struct {
		name         string
		input        service.CreateLogInput
		mockBehavior mockBehavior
		wantID       int64
		wantLevel    string
		wantChannel  string
		wantErr      error
	}{
		{
			name: "success",
			input: service.CreateLogInput{
				Level:   "ERROR",
				Message: "payment failed",
				Channel: "billing",
			},
			mockBehavior: func(r *repository_mock.MockLog) {
				r.EXPECT().
					Create(ctx, gomock.Any()).
					Return(int64(42), nil)
			},
			wantID:      42,
			wantLevel:   domain.LevelError,
			wantChannel: "billing",
		},
		{
			name: "default channel",
			input: service.CreateLogInput{
				Level:   "info",
				Message: "started",
			},
			mockBehavior: func(r *repository_mock.MockLog) {
				r.EXPECT().
					Create(ctx, gomock.Any()).
					Return(int64(7), nil)
			},
			wantID:      7,
			wantLevel:   domain.LevelInfo,
			wantChannel: domain.DefaultChannel,
		},
		{
			name: "invalid level",
			input: service.CreateLogInput{
				Level:   "verbose",
				Message: "something",
			},
			mockBehavior: func(r *repository_mock.MockLog) {},
			wantErr:      service.ErrInvalidLevel,
		},
		{
			name: "empty message",
			input: service.CreateLogInput{
				Level:   "info",
				Message: "   ",
			},
			mockBehavior: func(r *repository_mock.MockLog) {},
			wantErr:      service.ErrEmptyMessage,
		},
		{
			name: "repository error",
			input: service.CreateLogInput{
				Level:   "warning",
				Message: "disk almost full",
			},
			mockBehavior: func(r *repository_mock.MockLog) {
				r.EXPECT().
					Create(ctx, gomock.Any()).
					Return(int64(0), errors.New("db error"))
			},
			wantErr: service.ErrCannotCreateLog,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := repository_mock.NewMockLog(ctrl)
			tc.mockBehavior(mockRepo)

			s := newLogService(mockRepo)

			got, err := s.CreateLog(ctx, tc.input)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.wantID, got.ID)
			assert.Equal(t, tc.wantLevel, got.Level)
			assert.Equal(t, tc.wantChannel, got.Channel)
			assert.WithinDuration(t, time.Now().UTC(), got.CreatedAt, time.Minute)
		})
	}
}

func TestLogService_LevelWrappers(t *testing.T) {
	ctx := context.Background()

	wrappers := []struct {
		name      string
		call      func(s *service.LogService) (domain.LogRecord, error)
		wantLevel string
	}{
		{
			name: "debug",
			call: func(s *service.LogService) (domain.LogRecord, error) {
				return s.LogDebug(ctx, "msg", nil, "worker")
			},
			wantLevel: domain.LevelDebug,
		},
		{
			name: "info",
			call: func(s *service.LogService) (domain.LogRecord, error) {
				return s.LogInfo(ctx, "msg", nil, "worker")
			},
			wantLevel: domain.LevelInfo,
		},
		{
			name: "warning",
			call: func(s *service.LogService) (domain.LogRecord, error) {
				return s.LogWarning(ctx, "msg", nil, "worker")
			},
			wantLevel: domain.LevelWarning,
		},
		{
			name: "error",
			call: func(s *service.LogService) (domain.LogRecord, error) {
				return s.LogError(ctx, "msg", nil, "worker")
			},
			wantLevel: domain.LevelError,
		},
		{
			name: "critical",
			call: func(s *service.LogService) (domain.LogRecord, error) {
				return s.LogCritical(ctx, "msg", nil, "worker")
			},
			wantLevel: domain.LevelCritical,
		},
	}

	for _, tc := range wrappers {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := repository_mock.NewMockLog(ctrl)
			mockRepo.EXPECT().
				Create(ctx, gomock.Any()).
				DoAndReturn(func(_ context.Context, rec *domain.LogRecord) (int64, error) {
					assert.Equal(t, tc.wantLevel, rec.Level)
					assert.Equal(t, "worker", rec.Source)
					return int64(1), nil
				})

			got, err := tc.call(newLogService(mockRepo))

			assert.NoError(t, err)
			assert.Equal(t, tc.wantLevel, got.Level)
		})
	}
}

func TestLogService_FindWithFilters(t *testing.T) {
	ctx := context.Background()
	filter := repotypes.LogFilter{Level: domain.LevelError, Channel: "billing"}

	records := []domain.LogRecord{
		{ID: 2, Level: domain.LevelError, Message: "second"},
		{ID: 1, Level: domain.LevelError, Message: "first"},
	}

	testCases := []struct {
		name         string
		filter       repotypes.LogFilter
		mockBehavior func(r *repository_mock.MockLog)
		want         []domain.LogRecord
		wantTotal    int64
		wantErr      error
	}{
		{
			name:   "success",
			filter: filter,
			mockBehavior: func(r *repository_mock.MockLog) {
				r.EXPECT().FindWithFilters(ctx, filter, 1, 10).Return(records, nil)
				r.EXPECT().CountWithFilters(ctx, filter).Return(int64(25), nil)
			},
			want:      records,
			wantTotal: 25,
		},
		{
			name:         "invalid filter level",
			filter:       repotypes.LogFilter{Level: "trace"},
			mockBehavior: func(r *repository_mock.MockLog) {},
			wantErr:      service.ErrInvalidLevel,
		},
		{
			name:   "count error",
			filter: filter,
			mockBehavior: func(r *repository_mock.MockLog) {
				r.EXPECT().FindWithFilters(ctx, filter, 1, 10).Return(records, nil)
				r.EXPECT().CountWithFilters(ctx, filter).Return(int64(0), errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := repository_mock.NewMockLog(ctrl)
			tc.mockBehavior(mockRepo)

			got, total, err := newLogService(mockRepo).FindWithFilters(ctx, tc.filter, 1, 10)

			if tc.wantErr != nil {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantTotal, total)
		})
	}
}

func TestLogService_Export(t *testing.T) {
	ctx := context.Background()

	t.Run("streams every record", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		records := []domain.LogRecord{{ID: 1}, {ID: 2}, {ID: 3}}

		mockRepo := repository_mock.NewMockLog(ctrl)
		mockRepo.EXPECT().
			ExportWithFilters(ctx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ repotypes.LogFilter, yield func(domain.LogRecord) error) error {
				for _, r := range records {
					if err := yield(r); err != nil {
						return err
					}
				}
				return nil
			})

		var got []domain.LogRecord
		err := newLogService(mockRepo).Export(ctx, repotypes.LogFilter{}, func(r domain.LogRecord) error {
			got = append(got, r)
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, records, got)
	})

	t.Run("row cap stops the stream cleanly", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := repository_mock.NewMockLog(ctrl)
		mockRepo.EXPECT().
			ExportWithFilters(ctx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ repotypes.LogFilter, yield func(domain.LogRecord) error) error {
				for i := int64(1); i <= 10; i++ {
					if err := yield(domain.LogRecord{ID: i}); err != nil {
						return err
					}
				}
				return nil
			})

		capped := service.NewLogService(mockRepo, txStub{}, metrics.NewTestCounters(), nil, 3)

		var got []domain.LogRecord
		err := capped.Export(ctx, repotypes.LogFilter{}, func(r domain.LogRecord) error {
			got = append(got, r)
			return nil
		})

		assert.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("invalid filter level", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := repository_mock.NewMockLog(ctrl)

		err := newLogService(mockRepo).Export(ctx, repotypes.LogFilter{Level: "fatal2"}, func(domain.LogRecord) error {
			t.Fatal("yield must not be called")
			return nil
		})

		assert.ErrorIs(t, err, service.ErrInvalidLevel)
	})
}

func TestLogService_DeleteByIDs(t *testing.T) {
	ctx := context.Background()
	ids := []int64{1, 2, 3}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repository_mock.NewMockLog(ctrl)
	mockRepo.EXPECT().DeleteByIDs(ctx, ids).Return(int64(3), nil)

	deleted, err := newLogService(mockRepo).DeleteByIDs(ctx, ids)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
}

func TestLogService_ArchiveOlderThan(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repository_mock.NewMockLog(ctrl)
	mockRepo.EXPECT().
		DeleteOlderThan(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, cutoff time.Time) (int64, error) {
			assert.WithinDuration(t, time.Now().UTC().AddDate(0, 0, -90), cutoff, time.Minute)
			return int64(120), nil
		})

	deleted, err := newLogService(mockRepo).ArchiveOlderThan(ctx, 90)

	assert.NoError(t, err)
	assert.Equal(t, int64(120), deleted)
}
