package service

import (
	"context"
	"time"

	"github.com/antonkor/logboard/internal/domain"
	"github.com/antonkor/logboard/internal/metrics"
	"github.com/antonkor/logboard/internal/repo"
	"github.com/antonkor/logboard/internal/repo/repotypes"
	"github.com/antonkor/logboard/pkg/hasher"
)

//go:generate mockgen -source=service.go -destination=../mocks/service/service_mock.go -package=service_mock

type CreateLogInput struct {
	Level     string
	Message   string
	Context   map[string]any
	Channel   string
	Source    string
	IPAddress string
	UserAgent string
	Extra     map[string]any
	UserID    *int64
}

type Log interface {
	CreateLog(ctx context.Context, input CreateLogInput) (domain.LogRecord, error)
	LogDebug(ctx context.Context, message string, logCtx map[string]any, source string) (domain.LogRecord, error)
	LogInfo(ctx context.Context, message string, logCtx map[string]any, source string) (domain.LogRecord, error)
	LogWarning(ctx context.Context, message string, logCtx map[string]any, source string) (domain.LogRecord, error)
	LogError(ctx context.Context, message string, logCtx map[string]any, source string) (domain.LogRecord, error)
	LogCritical(ctx context.Context, message string, logCtx map[string]any, source string) (domain.LogRecord, error)
	FindWithFilters(ctx context.Context, filter repotypes.LogFilter, page, limit int) ([]domain.LogRecord, int64, error)
	Export(ctx context.Context, filter repotypes.LogFilter, yield func(domain.LogRecord) error) error
	FindByUser(ctx context.Context, userID int64, limit int) ([]domain.LogRecord, error)
	Channels(ctx context.Context) ([]string, error)
	Sources(ctx context.Context) ([]string, error)
	ArchiveOlderThan(ctx context.Context, days int) (int64, error)
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
}

type Auth interface {
	Login(ctx context.Context, email, password string) (string, domain.User, error)
	Validate(ctx context.Context, token string) (domain.Principal, error)
	Refresh(ctx context.Context, principal domain.Principal) (string, domain.User, error)
	Stats(ctx context.Context) (domain.AuthStats, error)
}

type Stats interface {
	Dashboard(ctx context.Context) (domain.DashboardStats, error)
}

type CreateUserInput struct {
	Email      string
	Password   string
	Roles      []string
	IsActive   *bool
	Name       string
	Department string
	Phone      string
}

type UpdateUserInput struct {
	Email      string
	Password   string
	Roles      []string
	IsActive   *bool
	Name       *string
	Department *string
	Phone      *string
}

type UpdateProfileInput struct {
	Name            *string
	Department      *string
	Phone           *string
	CurrentPassword string
	NewPassword     string
}

type User interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id int64) (domain.User, error)
	Create(ctx context.Context, input CreateUserInput) (domain.User, error)
	Update(ctx context.Context, actorID, id int64, input UpdateUserInput) (domain.User, error)
	Delete(ctx context.Context, actorID, id int64) error
	ToggleStatus(ctx context.Context, actorID, id int64) (domain.User, error)
	UpdateProfile(ctx context.Context, id int64, input UpdateProfileInput) (domain.User, error)
	CreateTestUsers(ctx context.Context) ([]domain.User, error)
}

type FileFilter struct {
	Level    string
	Search   string
	DateFrom time.Time
	DateTo   time.Time
}

type Files interface {
	ReadLogs(ctx context.Context, filter FileFilter) ([]domain.FileLogRecord, error)
}

// EventPublisher fans persisted records out to a broker. A nil
// publisher disables fan-out.
type EventPublisher interface {
	SendMessage(ctx context.Context, value []byte) error
}

// Transactor runs fn inside a single transaction; satisfied by the
// trm manager.
type Transactor interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type Services struct {
	Log   Log
	Auth  Auth
	Stats Stats
	User  User
	Files Files
}

type ServicesDependencies struct {
	Repos     *repo.Repositories
	TxManager Transactor
	Hasher    hasher.PasswordHasher
	Counters  *metrics.Counters
	Publisher EventPublisher

	SignKey  string
	TokenTTL time.Duration

	LogDirs  []string
	DemoMode bool

	ExportMaxRows int64
}

func NewServices(deps ServicesDependencies) *Services {
	return &Services{
		Log:   NewLogService(deps.Repos.Log, deps.TxManager, deps.Counters, deps.Publisher, deps.ExportMaxRows),
		Auth:  NewAuthService(deps.Repos.User, deps.Hasher, deps.Counters, []byte(deps.SignKey), deps.TokenTTL),
		Stats: NewStatsService(deps.Repos.Log),
		User:  NewUserService(deps.Repos.User, deps.Hasher, deps.DemoMode),
		Files: NewFileReaderService(deps.LogDirs, deps.DemoMode),
	}
}
