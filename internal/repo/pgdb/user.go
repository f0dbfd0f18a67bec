package pgdb

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/antonkor/logboard/internal/domain"
	"github.com/antonkor/logboard/internal/repo/repoerrs"
	errorsUtils "github.com/antonkor/logboard/pkg/errors"
	"github.com/antonkor/logboard/pkg/postgres"
)

const uniqueViolationCode = "23505"

var userColumns = []string{
	"id",
	"email",
	"password",
	"roles",
	"is_active",
	"COALESCE(name, '') AS name",
	"COALESCE(department, '') AS department",
	"COALESCE(phone, '') AS phone",
	"created_at",
	"last_login_at",
}

type UserRepo struct {
	*postgres.Postgres
}

func NewUserRepo(pg *postgres.Postgres) *UserRepo {
	return &UserRepo{pg}
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) (int64, error) {
	sql, args, _ := r.Builder.
		Insert("users").
		Columns("email", "password", "roles", "is_active", "name", "department", "phone", "created_at").
		Values(
			user.Email,
			user.Password,
			user.Roles,
			user.IsActive,
			nullIfEmpty(user.Name),
			nullIfEmpty(user.Department),
			nullIfEmpty(user.Phone),
			user.CreatedAt,
		).
		Suffix("RETURNING id").
		ToSql()

	var id int64
	err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return 0, repoerrs.ErrAlreadyExists
		}
		return 0, errorsUtils.WrapPathErr(err)
	}
	return id, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (domain.User, error) {
	sql, args, _ := r.Builder.
		Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": id}).
		ToSql()

	return r.collectOne(ctx, sql, args)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	sql, args, _ := r.Builder.
		Select(userColumns...).
		From("users").
		Where(sq.Eq{"email": email}).
		ToSql()

	return r.collectOne(ctx, sql, args)
}

func (r *UserRepo) GetAll(ctx context.Context) ([]domain.User, error) {
	sql, args, _ := r.Builder.
		Select(userColumns...).
		From("users").
		OrderBy("id ASC").
		ToSql()

	rows, err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Query(ctx, sql, args...)
	if err != nil {
		return []domain.User{}, errorsUtils.WrapPathErr(err)
	}
	defer rows.Close()

	users, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.User])
	if err != nil {
		return []domain.User{}, errorsUtils.WrapPathErr(err)
	}
	return users, nil
}

func (r *UserRepo) Update(ctx context.Context, user *domain.User) error {
	sql, args, _ := r.Builder.
		Update("users").
		Set("email", user.Email).
		Set("password", user.Password).
		Set("roles", user.Roles).
		Set("is_active", user.IsActive).
		Set("name", nullIfEmpty(user.Name)).
		Set("department", nullIfEmpty(user.Department)).
		Set("phone", nullIfEmpty(user.Phone)).
		Where(sq.Eq{"id": user.ID}).
		ToSql()

	tag, err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return repoerrs.ErrAlreadyExists
		}
		return errorsUtils.WrapPathErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repoerrs.ErrNotFound
	}
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	sql, args, _ := r.Builder.
		Delete("users").
		Where(sq.Eq{"id": id}).
		ToSql()

	tag, err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Exec(ctx, sql, args...)
	if err != nil {
		return errorsUtils.WrapPathErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repoerrs.ErrNotFound
	}
	return nil
}

func (r *UserRepo) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	sql, args, _ := r.Builder.
		Update("users").
		Set("last_login_at", at).
		Where(sq.Eq{"id": id}).
		ToSql()

	_, err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Exec(ctx, sql, args...)
	return errorsUtils.WrapPathErr(err)
}

func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	return r.countWhere(ctx, nil)
}

func (r *UserRepo) CountActive(ctx context.Context) (int64, error) {
	return r.countWhere(ctx, sq.Eq{"is_active": true})
}

func (r *UserRepo) CountByRole(ctx context.Context, role string) (int64, error) {
	return r.countWhere(ctx, sq.Expr("roles @> ?", `["`+role+`"]`))
}

func (r *UserRepo) CountRecentLogins(ctx context.Context, since time.Time) (int64, error) {
	return r.countWhere(ctx, sq.GtOrEq{"last_login_at": since})
}

func (r *UserRepo) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	return r.countWhere(ctx, sq.GtOrEq{"created_at": since})
}

func (r *UserRepo) countWhere(ctx context.Context, cond sq.Sqlizer) (int64, error) {
	query := r.Builder.
		Select("COUNT(*)").
		From("users")

	if cond != nil {
		query = query.Where(cond)
	}

	sql, args, _ := query.ToSql()

	var count int64
	err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).QueryRow(ctx, sql, args...).Scan(&count)
	if err != nil {
		return 0, errorsUtils.WrapPathErr(err)
	}
	return count, nil
}

func (r *UserRepo) collectOne(ctx context.Context, sql string, args []any) (domain.User, error) {
	rows, err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Query(ctx, sql, args...)
	if err != nil {
		return domain.User{}, errorsUtils.WrapPathErr(err)
	}
	defer rows.Close()

	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[domain.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, repoerrs.ErrNotFound
		}
		return domain.User{}, errorsUtils.WrapPathErr(err)
	}
	return user, nil
}
