package pgdb

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/antonkor/logboard/internal/domain"
	"github.com/antonkor/logboard/internal/repo/repotypes"
	errorsUtils "github.com/antonkor/logboard/pkg/errors"
	"github.com/antonkor/logboard/pkg/postgres"
)

// logColumns uses COALESCE so NULL text and jsonb columns scan into
// plain struct fields.
var logColumns = []string{
	"id",
	"level",
	"message",
	"COALESCE(context, '{}'::jsonb) AS context",
	"COALESCE(channel, '') AS channel",
	"COALESCE(source, '') AS source",
	"created_at",
	"COALESCE(ip_address, '') AS ip_address",
	"COALESCE(user_agent, '') AS user_agent",
	"COALESCE(extra, '{}'::jsonb) AS extra",
	"user_id",
}

type LogRepo struct {
	*postgres.Postgres
}

func NewLogRepo(pg *postgres.Postgres) *LogRepo {
	return &LogRepo{pg}
}

func (r *LogRepo) Create(ctx context.Context, logObj *domain.LogRecord) (int64, error) {
	sql, args, _ := r.Builder.
		Insert("logs").
		Columns("level", "message", "context", "channel", "source", "created_at", "ip_address", "user_agent", "extra", "user_id").
		Values(
			logObj.Level,
			logObj.Message,
			logObj.Context,
			nullIfEmpty(logObj.Channel),
			nullIfEmpty(logObj.Source),
			logObj.CreatedAt,
			nullIfEmpty(logObj.IPAddress),
			nullIfEmpty(logObj.UserAgent),
			logObj.Extra,
			logObj.UserID,
		).
		Suffix("RETURNING id").
		ToSql()

	var id int64
	err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		return 0, errorsUtils.WrapPathErr(err)
	}
	return id, nil
}

func (r *LogRepo) FindWithFilters(ctx context.Context, filter repotypes.LogFilter, page, limit int) ([]domain.LogRecord, error) {
	conds := BuildLogQueryFilters(filter)

	query := r.Builder.
		Select(logColumns...).
		From("logs").
		OrderBy("created_at DESC", "id DESC").
		Offset(uint64((page - 1) * limit)).
		Limit(uint64(limit))

	if len(conds) > 0 {
		query = query.Where(sq.And(conds))
	}

	sql, args, _ := query.ToSql()
	rows, err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Query(ctx, sql, args...)
	if err != nil {
		return []domain.LogRecord{}, errorsUtils.WrapPathErr(err)
	}
	defer rows.Close()

	logs, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.LogRecord])
	if err != nil {
		return []domain.LogRecord{}, errorsUtils.WrapPathErr(err)
	}

	return logs, nil
}

func (r *LogRepo) CountWithFilters(ctx context.Context, filter repotypes.LogFilter) (int64, error) {
	conds := BuildLogQueryFilters(filter)

	query := r.Builder.
		Select("COUNT(*)").
		From("logs")

	if len(conds) > 0 {
		query = query.Where(sq.And(conds))
	}

	sql, args, _ := query.ToSql()

	var count int64
	err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).QueryRow(ctx, sql, args...).Scan(&count)
	if err != nil {
		return 0, errorsUtils.WrapPathErr(err)
	}
	return count, nil
}

// ExportWithFilters streams every matching record through yield in
// created_at descending order. Rows are decoded one at a time so an
// arbitrarily large result set is never buffered.
func (r *LogRepo) ExportWithFilters(ctx context.Context, filter repotypes.LogFilter, yield func(domain.LogRecord) error) error {
	conds := BuildLogQueryFilters(filter)

	query := r.Builder.
		Select(logColumns...).
		From("logs").
		OrderBy("created_at DESC", "id DESC")

	if len(conds) > 0 {
		query = query.Where(sq.And(conds))
	}

	sql, args, _ := query.ToSql()
	rows, err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Query(ctx, sql, args...)
	if err != nil {
		return errorsUtils.WrapPathErr(err)
	}
	defer rows.Close()

	for rows.Next() {
		record, err := pgx.RowToStructByName[domain.LogRecord](rows)
		if err != nil {
			return errorsUtils.WrapPathErr(err)
		}
		if err := yield(record); err != nil {
			return err
		}
	}

	return errorsUtils.WrapPathErr(rows.Err())
}

func (r *LogRepo) FindByUser(ctx context.Context, userID int64, limit int) ([]domain.LogRecord, error) {
	sql, args, _ := r.Builder.
		Select(logColumns...).
		From("logs").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()

	rows, err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Query(ctx, sql, args...)
	if err != nil {
		return []domain.LogRecord{}, errorsUtils.WrapPathErr(err)
	}
	defer rows.Close()

	logs, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.LogRecord])
	if err != nil {
		return []domain.LogRecord{}, errorsUtils.WrapPathErr(err)
	}
	return logs, nil
}

func (r *LogRepo) LevelCounts(ctx context.Context, from, to time.Time) ([]domain.LevelCount, error) {
	sql, args, _ := r.Builder.
		Select("level", "COUNT(*) AS count_logs").
		From("logs").
		Where(sq.And{
			sq.GtOrEq{"created_at": from},
			sq.LtOrEq{"created_at": to},
		}).
		GroupBy("level").
		ToSql()

	rows, err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	defer rows.Close()

	counts, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.LevelCount])
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	return counts, nil
}

func (r *LogRepo) ChannelCounts(ctx context.Context, from, to time.Time, limit int) ([]domain.ChannelCount, error) {
	sql, args, _ := r.Builder.
		Select("channel", "COUNT(*) AS count_logs").
		From("logs").
		Where(sq.And{
			sq.NotEq{"channel": nil},
			sq.GtOrEq{"created_at": from},
			sq.LtOrEq{"created_at": to},
		}).
		GroupBy("channel").
		OrderBy("count_logs DESC").
		Limit(uint64(limit)).
		ToSql()

	rows, err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	defer rows.Close()

	counts, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.ChannelCount])
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	return counts, nil
}

// DailyCounts returns one row per calendar day that has records; the
// series is sparse, days without logs are absent.
func (r *LogRepo) DailyCounts(ctx context.Context, from, to time.Time) ([]domain.DailyCount, error) {
	sql, args, _ := r.Builder.
		Select("DATE_TRUNC('day', created_at) AS day", "COUNT(*) AS count_logs").
		From("logs").
		Where(sq.And{
			sq.GtOrEq{"created_at": from},
			sq.LtOrEq{"created_at": to},
		}).
		GroupBy("day").
		OrderBy("day ASC").
		ToSql()

	rows, err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	defer rows.Close()

	counts, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.DailyCount])
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	return counts, nil
}

func (r *LogRepo) UniqueChannels(ctx context.Context) ([]string, error) {
	sql, args, _ := r.Builder.
		Select("DISTINCT channel").
		From("logs").
		Where(sq.NotEq{"channel": nil}).
		OrderBy("channel ASC").
		ToSql()

	return r.collectStrings(ctx, sql, args)
}

func (r *LogRepo) UniqueSources(ctx context.Context) ([]string, error) {
	sql, args, _ := r.Builder.
		Select("DISTINCT source").
		From("logs").
		Where(sq.NotEq{"source": nil}).
		OrderBy("source ASC").
		Limit(50).
		ToSql()

	return r.collectStrings(ctx, sql, args)
}

func (r *LogRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	sql, args, _ := r.Builder.
		Delete("logs").
		Where(sq.Lt{"created_at": cutoff}).
		ToSql()

	tag, err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Exec(ctx, sql, args...)
	if err != nil {
		return 0, errorsUtils.WrapPathErr(err)
	}
	return tag.RowsAffected(), nil
}

func (r *LogRepo) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	sql, args, _ := r.Builder.
		Delete("logs").
		Where(sq.Eq{"id": ids}).
		ToSql()

	tag, err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Exec(ctx, sql, args...)
	if err != nil {
		return 0, errorsUtils.WrapPathErr(err)
	}
	return tag.RowsAffected(), nil
}

func (r *LogRepo) collectStrings(ctx context.Context, sql string, args []any) ([]string, error) {
	rows, err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	defer rows.Close()

	values, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	return values, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
