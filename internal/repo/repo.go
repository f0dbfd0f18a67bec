package repo

import (
	"context"
	"time"

	"github.com/antonkor/logboard/internal/domain"
	"github.com/antonkor/logboard/internal/repo/pgdb"
	"github.com/antonkor/logboard/internal/repo/repotypes"
	"github.com/antonkor/logboard/pkg/postgres"
)

//go:generate mockgen -source=repo.go -destination=../mocks/repository/repo_mock.go -package=repository_mock

type Log interface {
	Create(ctx context.Context, logObj *domain.LogRecord) (int64, error)
	FindWithFilters(ctx context.Context, filter repotypes.LogFilter, page, limit int) ([]domain.LogRecord, error)
	CountWithFilters(ctx context.Context, filter repotypes.LogFilter) (int64, error)
	ExportWithFilters(ctx context.Context, filter repotypes.LogFilter, yield func(domain.LogRecord) error) error
	FindByUser(ctx context.Context, userID int64, limit int) ([]domain.LogRecord, error)
	LevelCounts(ctx context.Context, from, to time.Time) ([]domain.LevelCount, error)
	ChannelCounts(ctx context.Context, from, to time.Time, limit int) ([]domain.ChannelCount, error)
	DailyCounts(ctx context.Context, from, to time.Time) ([]domain.DailyCount, error)
	UniqueChannels(ctx context.Context) ([]string, error)
	UniqueSources(ctx context.Context) ([]string, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
}

type User interface {
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByID(ctx context.Context, id int64) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetAll(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
	Count(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context, role string) (int64, error)
	CountRecentLogins(ctx context.Context, since time.Time) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

type Repositories struct {
	Log
	User
}

func NewRepositories(pg *postgres.Postgres) *Repositories {
	return &Repositories{
		Log:  pgdb.NewLogRepo(pg),
		User: pgdb.NewUserRepo(pg),
	}
}
