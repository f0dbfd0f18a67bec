package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/antonkor/logboard/internal/domain"
	"github.com/antonkor/logboard/internal/repo"
	"github.com/antonkor/logboard/internal/repo/repoerrs"
	errorsUtils "github.com/antonkor/logboard/pkg/errors"
	"github.com/antonkor/logboard/pkg/hasher"
)

const minPasswordLength = 6

type UserService struct {
	userRepo repo.User
	hasher   hasher.PasswordHasher
	demoMode bool
}

func NewUserService(ur repo.User, h hasher.PasswordHasher, demoMode bool) *UserService {
	return &UserService{
		userRepo: ur,
		hasher:   h,
		demoMode: demoMode,
	}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.GetAll(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id int64) (domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repoerrs.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, errorsUtils.WrapPathErr(err)
	}
	return user, nil
}

func (s *UserService) Create(ctx context.Context, input CreateUserInput) (domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" {
		return domain.User{}, ErrEmailRequired
	}
	if input.Password == "" {
		return domain.User{}, ErrPasswordRequired
	}
	if len(input.Password) < minPasswordLength {
		return domain.User{}, ErrPasswordTooShort
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return domain.User{}, errorsUtils.WrapPathErr(err)
	}

	roles := input.Roles
	if len(roles) == 0 {
		roles = []string{domain.RoleUser}
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	user := domain.User{
		Email:      email,
		Password:   hash,
		Roles:      roles,
		IsActive:   isActive,
		Name:       input.Name,
		Department: input.Department,
		Phone:      input.Phone,
		CreatedAt:  time.Now().UTC(),
	}

	id, err := s.userRepo.Create(ctx, &user)
	if err != nil {
		if errors.Is(err, repoerrs.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, errorsUtils.WrapPathErr(err)
	}
	user.ID = id

	return user, nil
}

// Update edits an account. Deactivating the acting user's own account
// is refused, same as Delete and ToggleStatus.
func (s *UserService) Update(ctx context.Context, actorID, id int64, input UpdateUserInput) (domain.User, error) {
	if actorID == id && input.IsActive != nil && !*input.IsActive {
		return domain.User{}, ErrSelfAction
	}

	user, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	if input.Email != "" {
		user.Email = strings.TrimSpace(strings.ToLower(input.Email))
	}

	if input.Password != "" {
		if len(input.Password) < minPasswordLength {
			return domain.User{}, ErrPasswordTooShort
		}
		hash, err := s.hasher.Hash(input.Password)
		if err != nil {
			return domain.User{}, errorsUtils.WrapPathErr(err)
		}
		user.Password = hash
	}

	if len(input.Roles) > 0 {
		user.Roles = input.Roles
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Department != nil {
		user.Department = *input.Department
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}

	if err := s.userRepo.Update(ctx, &user); err != nil {
		switch {
		case errors.Is(err, repoerrs.ErrAlreadyExists):
			return domain.User{}, ErrEmailTaken
		case errors.Is(err, repoerrs.ErrNotFound):
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, errorsUtils.WrapPathErr(err)
	}

	return user, nil
}

// Delete refuses to remove the acting user's own account.
func (s *UserService) Delete(ctx context.Context, actorID, id int64) error {
	if actorID == id {
		return ErrSelfAction
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repoerrs.ErrNotFound) {
			return ErrUserNotFound
		}
		return errorsUtils.WrapPathErr(err)
	}
	return nil
}

// ToggleStatus flips is_active; flipping your own account is refused.
func (s *UserService) ToggleStatus(ctx context.Context, actorID, id int64) (domain.User, error) {
	if actorID == id {
		return domain.User{}, ErrSelfAction
	}

	user, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	user.IsActive = !user.IsActive
	if err := s.userRepo.Update(ctx, &user); err != nil {
		return domain.User{}, errorsUtils.WrapPathErr(err)
	}

	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id int64, input UpdateProfileInput) (domain.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Department != nil {
		user.Department = *input.Department
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}

	if input.NewPassword != "" {
		if !s.hasher.Compare(user.Password, input.CurrentPassword) {
			return domain.User{}, ErrWrongPassword
		}
		if len(input.NewPassword) < minPasswordLength {
			return domain.User{}, ErrPasswordTooShort
		}
		hash, err := s.hasher.Hash(input.NewPassword)
		if err != nil {
			return domain.User{}, errorsUtils.WrapPathErr(err)
		}
		user.Password = hash
	}

	if err := s.userRepo.Update(ctx, &user); err != nil {
		return domain.User{}, errorsUtils.WrapPathErr(err)
	}

	return user, nil
}

// CreateTestUsers seeds a fixed admin/user pair. Only available in
// demo mode so a production store is never silently populated.
func (s *UserService) CreateTestUsers(ctx context.Context) ([]domain.User, error) {
	if !s.demoMode {
		return nil, ErrDemoDisabled
	}

	seeds := []CreateUserInput{
		{Email: "admin@example.com", Password: "secret1234", Roles: []string{domain.RoleAdmin}, Name: "Administrator", Department: "IT"},
		{Email: "user1@example.com", Password: "password1234", Roles: []string{domain.RoleUser}, Name: "Test User", Department: "Support"},
	}

	created := make([]domain.User, 0, len(seeds))
	for _, seed := range seeds {
		if _, err := s.userRepo.GetByEmail(ctx, seed.Email); err == nil {
			continue
		}

		user, err := s.Create(ctx, seed)
		if err != nil {
			return nil, err
		}
		created = append(created, user)
	}

	if len(created) == 0 {
		return nil, ErrTestUsersExist
	}
	return created, nil
}
