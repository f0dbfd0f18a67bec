package pgdb_test

import (
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonkor/logboard/internal/repo/pgdb"
	"github.com/antonkor/logboard/internal/repo/repotypes"
)

func renderFilters(t *testing.T, filter repotypes.LogFilter) (string, []any) {
	t.Helper()

	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("id").
		From("logs")
	for _, cond := range pgdb.BuildLogQueryFilters(filter) {
		builder = builder.Where(cond)
	}

	query, args, err := builder.ToSql()
	require.NoError(t, err)
	return query, args
}

func TestBuildLogQueryFilters(t *testing.T) {
	t.Run("empty filter adds no conditions", func(t *testing.T) {
		query, args := renderFilters(t, repotypes.LogFilter{})

		assert.Equal(t, "SELECT id FROM logs", query)
		assert.Empty(t, args)
	})

	t.Run("level is normalized", func(t *testing.T) {
		query, args := renderFilters(t, repotypes.LogFilter{Level: "ERROR"})

		assert.Contains(t, query, "level = $1")
		assert.Equal(t, []any{"error"}, args)
	})

	t.Run("search matches message or source", func(t *testing.T) {
		query, args := renderFilters(t, repotypes.LogFilter{Search: "timeout"})

		assert.Contains(t, query, "message ILIKE $1 OR source ILIKE $2")
		assert.Equal(t, []any{"%timeout%", "%timeout%"}, args)
	})

	t.Run("date range is inclusive on both ends", func(t *testing.T) {
		from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)

		query, args := renderFilters(t, repotypes.LogFilter{DateFrom: from, DateTo: to})

		assert.Contains(t, query, "created_at >= $1")
		assert.Contains(t, query, "created_at <= $2")
		assert.Equal(t, []any{from, to}, args)
	})

	t.Run("all fields combine", func(t *testing.T) {
		query, args := renderFilters(t, repotypes.LogFilter{
			Level:     "warning",
			Channel:   "billing",
			Source:    "worker",
			UserID:    7,
			IPAddress: "10.0.0.1",
			Search:    "retry",
		})

		assert.Contains(t, query, "level = $1")
		assert.Contains(t, query, "channel = $2")
		assert.Contains(t, query, "source ILIKE $3")
		assert.Contains(t, query, "user_id = $4")
		assert.Contains(t, query, "ip_address = $5")
		assert.Contains(t, query, "message ILIKE $6 OR source ILIKE $7")
		assert.Len(t, args, 7)
	})
}
