package pgdb

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/antonkor/logboard/internal/domain"
	"github.com/antonkor/logboard/internal/repo/repotypes"
)

// BuildLogQueryFilters translates a LogFilter into squirrel conditions.
// Empty filter fields produce no condition at all.
func BuildLogQueryFilters(filter repotypes.LogFilter) []sq.Sqlizer {
	conds := []sq.Sqlizer{}

	if filter.Level != "" {
		conds = append(conds, sq.Eq{"level": domain.NormalizeLevel(filter.Level)})
	}

	if filter.Channel != "" {
		conds = append(conds, sq.Eq{"channel": filter.Channel})
	}

	if filter.Source != "" {
		conds = append(conds, sq.ILike{"source": "%" + filter.Source + "%"})
	}

	if filter.UserID > 0 {
		conds = append(conds, sq.Eq{"user_id": filter.UserID})
	}

	if filter.IPAddress != "" {
		conds = append(conds, sq.Eq{"ip_address": filter.IPAddress})
	}

	if !filter.DateFrom.IsZero() {
		conds = append(conds, sq.GtOrEq{"created_at": filter.DateFrom})
	}

	if !filter.DateTo.IsZero() {
		conds = append(conds, sq.LtOrEq{"created_at": filter.DateTo})
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conds = append(conds, sq.Or{
			sq.ILike{"message": pattern},
			sq.ILike{"source": pattern},
		})
	}

	return conds
}
