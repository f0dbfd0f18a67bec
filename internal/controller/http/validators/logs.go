package validators

import (
	"errors"
	"strconv"
	"time"

	"github.com/antonkor/logboard/internal/domain"
	"github.com/antonkor/logboard/internal/repo/repotypes"
)

const (
	DateLayout = "2006-01-02"

	DefaultPageSize = 10
	MaxPageSize     = 100
	// MaxPage keeps page*limit far below integer overflow when it
	// becomes an OFFSET.
	MaxPage = 1_000_000
)

var (
	ErrInvalidLogLevel = errors.New("invalid log level")
	ErrInvalidDate     = errors.New("invalid date, expected YYYY-MM-DD")
)

type LogQuery struct {
	Filter repotypes.LogFilter
	Page   int
	Limit  int
	Export bool
}

// ParseLogQuery validates the /logs query parameters. Page and limit
// are clamped, never rejected; an unknown level is a validation error.
func ParseLogQuery(get func(string) string) (LogQuery, error) {
	q := LogQuery{Page: 1, Limit: DefaultPageSize}

	if page, err := strconv.Atoi(get("page")); err == nil && page > 1 {
		if page > MaxPage {
			page = MaxPage
		}
		q.Page = page
	}

	if limit, err := strconv.Atoi(get("limit")); err == nil {
		q.Limit = ClampPageSize(limit)
	}

	q.Export, _ = strconv.ParseBool(get("export"))

	if level := get("level"); level != "" {
		if !domain.ValidLevel(level) {
			return LogQuery{}, ErrInvalidLogLevel
		}
		q.Filter.Level = domain.NormalizeLevel(level)
	}

	q.Filter.Channel = get("channel")
	q.Filter.Source = get("source")
	q.Filter.Search = get("search")
	q.Filter.IPAddress = get("ipAddress")

	if userID, err := strconv.ParseInt(get("userId"), 10, 64); err == nil && userID > 0 {
		q.Filter.UserID = userID
	}

	var err error
	q.Filter.DateFrom, q.Filter.DateTo, err = ParseDateRange(get("dateFrom"), get("dateTo"))
	if err != nil {
		return LogQuery{}, err
	}

	return q, nil
}

// ParseDateRange interprets dateFrom as start-of-day and dateTo as
// inclusive through 23:59:59 of the given day.
func ParseDateRange(from, to string) (time.Time, time.Time, error) {
	var dateFrom, dateTo time.Time

	if from != "" {
		parsed, err := time.Parse(DateLayout, from)
		if err != nil {
			return time.Time{}, time.Time{}, ErrInvalidDate
		}
		dateFrom = parsed
	}

	if to != "" {
		parsed, err := time.Parse(DateLayout, to)
		if err != nil {
			return time.Time{}, time.Time{}, ErrInvalidDate
		}
		dateTo = parsed.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	}

	return dateFrom, dateTo, nil
}

func ClampPageSize(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}
