package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/antonkor/logboard/internal/domain"
	"github.com/antonkor/logboard/internal/metrics"
	"github.com/antonkor/logboard/internal/repo"
	"github.com/antonkor/logboard/internal/repo/repotypes"
	errorsUtils "github.com/antonkor/logboard/pkg/errors"
)

type LogService struct {
	logRepo       repo.Log
	tx            Transactor
	counters      *metrics.Counters
	publisher     EventPublisher
	exportMaxRows int64
}

func NewLogService(lr repo.Log, tx Transactor, cnt *metrics.Counters, pub EventPublisher, exportMaxRows int64) *LogService {
	return &LogService{
		logRepo:       lr,
		tx:            tx,
		counters:      cnt,
		publisher:     pub,
		exportMaxRows: exportMaxRows,
	}
}

func (s *LogService) CreateLog(ctx context.Context, input CreateLogInput) (domain.LogRecord, error) {
	level := domain.NormalizeLevel(input.Level)
	if !domain.ValidLevel(level) {
		return domain.LogRecord{}, ErrInvalidLevel
	}
	if strings.TrimSpace(input.Message) == "" {
		return domain.LogRecord{}, ErrEmptyMessage
	}

	channel := input.Channel
	if channel == "" {
		channel = domain.DefaultChannel
	}

	record := domain.LogRecord{
		Level:     level,
		Message:   input.Message,
		Context:   input.Context,
		Channel:   channel,
		Source:    input.Source,
		CreatedAt: time.Now().UTC(),
		IPAddress: input.IPAddress,
		UserAgent: input.UserAgent,
		Extra:     input.Extra,
		UserID:    input.UserID,
	}

	id, err := s.logRepo.Create(ctx, &record)
	if err != nil {
		return domain.LogRecord{}, errorsUtils.WrapPathErr(ErrCannotCreateLog)
	}
	record.ID = id

	s.counters.LogsCreated.Inc(record.Channel, record.Level)
	s.publish(ctx, record)

	return record, nil
}

func (s *LogService) LogDebug(ctx context.Context, message string, logCtx map[string]any, source string) (domain.LogRecord, error) {
	return s.createWithLevel(ctx, domain.LevelDebug, message, logCtx, source)
}

func (s *LogService) LogInfo(ctx context.Context, message string, logCtx map[string]any, source string) (domain.LogRecord, error) {
	return s.createWithLevel(ctx, domain.LevelInfo, message, logCtx, source)
}

func (s *LogService) LogWarning(ctx context.Context, message string, logCtx map[string]any, source string) (domain.LogRecord, error) {
	return s.createWithLevel(ctx, domain.LevelWarning, message, logCtx, source)
}

func (s *LogService) LogError(ctx context.Context, message string, logCtx map[string]any, source string) (domain.LogRecord, error) {
	return s.createWithLevel(ctx, domain.LevelError, message, logCtx, source)
}

func (s *LogService) LogCritical(ctx context.Context, message string, logCtx map[string]any, source string) (domain.LogRecord, error) {
	return s.createWithLevel(ctx, domain.LevelCritical, message, logCtx, source)
}

func (s *LogService) createWithLevel(ctx context.Context, level, message string, logCtx map[string]any, source string) (domain.LogRecord, error) {
	return s.CreateLog(ctx, CreateLogInput{
		Level:   level,
		Message: message,
		Context: logCtx,
		Channel: domain.DefaultChannel,
		Source:  source,
	})
}

func (s *LogService) FindWithFilters(ctx context.Context, filter repotypes.LogFilter, page, limit int) ([]domain.LogRecord, int64, error) {
	if filter.Level != "" && !domain.ValidLevel(filter.Level) {
		return nil, 0, ErrInvalidLevel
	}

	logs, err := s.logRepo.FindWithFilters(ctx, filter, page, limit)
	if err != nil {
		return nil, 0, errorsUtils.WrapPathErr(err)
	}

	total, err := s.logRepo.CountWithFilters(ctx, filter)
	if err != nil {
		return nil, 0, errorsUtils.WrapPathErr(err)
	}

	return logs, total, nil
}

// errExportLimit stops the repo stream once the configured row cap is
// reached; it never escapes Export.
var errExportLimit = errors.New("export row limit reached")

func (s *LogService) Export(ctx context.Context, filter repotypes.LogFilter, yield func(domain.LogRecord) error) error {
	if filter.Level != "" && !domain.ValidLevel(filter.Level) {
		return ErrInvalidLevel
	}

	var count int64
	err := s.logRepo.ExportWithFilters(ctx, filter, func(record domain.LogRecord) error {
		if s.exportMaxRows > 0 && count >= s.exportMaxRows {
			return errExportLimit
		}
		count++
		return yield(record)
	})
	if errors.Is(err, errExportLimit) {
		return nil
	}
	return err
}

// FindByUser returns the newest records attributed to one account.
func (s *LogService) FindByUser(ctx context.Context, userID int64, limit int) ([]domain.LogRecord, error) {
	logs, err := s.logRepo.FindByUser(ctx, userID, limit)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	return logs, nil
}

func (s *LogService) Channels(ctx context.Context) ([]string, error) {
	return s.logRepo.UniqueChannels(ctx)
}

func (s *LogService) Sources(ctx context.Context) ([]string, error) {
	return s.logRepo.UniqueSources(ctx)
}

// ArchiveOlderThan removes everything older than the cutoff inside a
// single transaction so readers never observe a half-deleted set.
func (s *LogService) ArchiveOlderThan(ctx context.Context, days int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	var deleted int64
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		var err error
		deleted, err = s.logRepo.DeleteOlderThan(ctx, cutoff)
		return err
	})
	if err != nil {
		return 0, errorsUtils.WrapPathErr(err)
	}

	log.WithFields(log.Fields{
		"days_to_keep":  days,
		"deleted_count": deleted,
	}).Info("Archived old logs")

	return deleted, nil
}

func (s *LogService) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	var deleted int64
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		var err error
		deleted, err = s.logRepo.DeleteByIDs(ctx, ids)
		return err
	})
	if err != nil {
		return 0, errorsUtils.WrapPathErr(err)
	}
	return deleted, nil
}

// publish is best-effort fan-out: a broker failure is logged and never
// fails the request.
func (s *LogService) publish(ctx context.Context, record domain.LogRecord) {
	if s.publisher == nil {
		return
	}

	payload, err := json.Marshal(record)
	if err != nil {
		log.WithField("error", err).Warn("Failed to encode log event")
		return
	}

	if err := s.publisher.SendMessage(ctx, payload); err != nil {
		log.WithFields(log.Fields{
			"id":    record.ID,
			"error": err,
		}).Warn("Failed to publish log event")
	}
}
