package service_test

import (
	"context"
	"testing"

	"github.com/antonkor/logboard/internal/domain"
	repository_mock "github.com/antonkor/logboard/internal/mocks/repository"
	"github.com/antonkor/logboard/internal/repo/repoerrs"
	"github.com/antonkor/logboard/internal/service"
	"github.com/antonkor/logboard/pkg/hasher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newUserService(r *repository_mock.MockUser, demoMode bool) *service.UserService {
	return service.NewUserService(r, hasher.NewBcryptHasher(0), demoMode)
}

func TestUserService_Create(t *testing.T) {
	type mockBehavior func(r *repository_mock.MockUser)

	ctx := context.Background()

	testCases := []struct {
		name         string
		input        service.CreateUserInput
		mockBehavior mockBehavior
		wantEmail    string
		wantRoles    []string
		wantErr      error
	}{
		{
			name:  "success with defaults",
			input: service.CreateUserInput{Email: "  New@Example.COM ", Password: "secret1234"},
			mockBehavior: func(r *repository_mock.MockUser) {
				r.EXPECT().
					Create(ctx, gomock.Any()).
					DoAndReturn(func(_ context.Context, u *domain.User) (int64, error) {
						assert.Equal(t, "new@example.com", u.Email)
						assert.NotEqual(t, "secret1234", u.Password)
						assert.True(t, u.IsActive)
						return int64(11), nil
					})
			},
			wantEmail: "new@example.com",
			wantRoles: []string{domain.RoleUser},
		},
		{
			name:         "email required",
			input:        service.CreateUserInput{Email: "   ", Password: "secret1234"},
			mockBehavior: func(r *repository_mock.MockUser) {},
			wantErr:      service.ErrEmailRequired,
		},
		{
			name:         "password required",
			input:        service.CreateUserInput{Email: "a@b.com"},
			mockBehavior: func(r *repository_mock.MockUser) {},
			wantErr:      service.ErrPasswordRequired,
		},
		{
			name:         "password too short",
			input:        service.CreateUserInput{Email: "a@b.com", Password: "12345"},
			mockBehavior: func(r *repository_mock.MockUser) {},
			wantErr:      service.ErrPasswordTooShort,
		},
		{
			name:  "duplicate email",
			input: service.CreateUserInput{Email: "taken@example.com", Password: "secret1234"},
			mockBehavior: func(r *repository_mock.MockUser) {
				r.EXPECT().
					Create(ctx, gomock.Any()).
					Return(int64(0), repoerrs.ErrAlreadyExists)
			},
			wantErr: service.ErrEmailTaken,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := repository_mock.NewMockUser(ctrl)
			tc.mockBehavior(mockRepo)

			got, err := newUserService(mockRepo, false).Create(ctx, tc.input)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, int64(11), got.ID)
			assert.Equal(t, tc.wantEmail, got.Email)
			assert.Equal(t, tc.wantRoles, got.Roles)
		})
	}
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()
	inactive := false
	active := true

	t.Run("self deactivation refused", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := repository_mock.NewMockUser(ctrl)

		_, err := newUserService(mockRepo, false).Update(ctx, 1, 1, service.UpdateUserInput{IsActive: &inactive})

		assert.ErrorIs(t, err, service.ErrSelfAction)
	})

	t.Run("self update without deactivation allowed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		name := "Jordan"
		mockRepo := repository_mock.NewMockUser(ctrl)
		mockRepo.EXPECT().
			GetByID(ctx, int64(1)).
			Return(domain.User{ID: 1, Email: "u@example.com", IsActive: true}, nil)
		mockRepo.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, u *domain.User) error {
				assert.Equal(t, name, u.Name)
				assert.True(t, u.IsActive)
				return nil
			})

		got, err := newUserService(mockRepo, false).Update(ctx, 1, 1, service.UpdateUserInput{
			Name:     &name,
			IsActive: &active,
		})

		assert.NoError(t, err)
		assert.Equal(t, name, got.Name)
	})

	t.Run("deactivating another account allowed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := repository_mock.NewMockUser(ctrl)
		mockRepo.EXPECT().
			GetByID(ctx, int64(5)).
			Return(domain.User{ID: 5, Email: "other@example.com", IsActive: true}, nil)
		mockRepo.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, u *domain.User) error {
				assert.False(t, u.IsActive)
				return nil
			})

		got, err := newUserService(mockRepo, false).Update(ctx, 1, 5, service.UpdateUserInput{IsActive: &inactive})

		assert.NoError(t, err)
		assert.False(t, got.IsActive)
	})

	t.Run("duplicate email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := repository_mock.NewMockUser(ctrl)
		mockRepo.EXPECT().
			GetByID(ctx, int64(5)).
			Return(domain.User{ID: 5, Email: "other@example.com", IsActive: true}, nil)
		mockRepo.EXPECT().
			Update(ctx, gomock.Any()).
			Return(repoerrs.ErrAlreadyExists)

		_, err := newUserService(mockRepo, false).Update(ctx, 1, 5, service.UpdateUserInput{Email: "taken@example.com"})

		assert.ErrorIs(t, err, service.ErrEmailTaken)
	})
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := repository_mock.NewMockUser(ctrl)
		mockRepo.EXPECT().Delete(ctx, int64(5)).Return(nil)

		assert.NoError(t, newUserService(mockRepo, false).Delete(ctx, 1, 5))
	})

	t.Run("self delete refused", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := repository_mock.NewMockUser(ctrl)

		err := newUserService(mockRepo, false).Delete(ctx, 5, 5)

		assert.ErrorIs(t, err, service.ErrSelfAction)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := repository_mock.NewMockUser(ctrl)
		mockRepo.EXPECT().Delete(ctx, int64(99)).Return(repoerrs.ErrNotFound)

		err := newUserService(mockRepo, false).Delete(ctx, 1, 99)

		assert.ErrorIs(t, err, service.ErrUserNotFound)
	})
}

func TestUserService_ToggleStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("flips active flag", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := repository_mock.NewMockUser(ctrl)
		mockRepo.EXPECT().
			GetByID(ctx, int64(5)).
			Return(domain.User{ID: 5, Email: "u@example.com", IsActive: true}, nil)
		mockRepo.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, u *domain.User) error {
				assert.False(t, u.IsActive)
				return nil
			})

		got, err := newUserService(mockRepo, false).ToggleStatus(ctx, 1, 5)

		assert.NoError(t, err)
		assert.False(t, got.IsActive)
	})

	t.Run("self toggle refused", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := repository_mock.NewMockUser(ctrl)

		_, err := newUserService(mockRepo, false).ToggleStatus(ctx, 5, 5)

		assert.ErrorIs(t, err, service.ErrSelfAction)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	h := hasher.NewBcryptHasher(0)
	currentHash, err := h.Hash("oldpassword")
	require.NoError(t, err)

	stored := domain.User{ID: 3, Email: "u@example.com", Password: currentHash, IsActive: true}

	t.Run("password change needs current password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := repository_mock.NewMockUser(ctrl)
		mockRepo.EXPECT().GetByID(ctx, stored.ID).Return(stored, nil)

		_, err := newUserService(mockRepo, false).UpdateProfile(ctx, stored.ID, service.UpdateProfileInput{
			CurrentPassword: "wrong",
			NewPassword:     "newpassword",
		})

		assert.ErrorIs(t, err, service.ErrWrongPassword)
	})

	t.Run("updates name and password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		name := "Jordan"
		mockRepo := repository_mock.NewMockUser(ctrl)
		mockRepo.EXPECT().GetByID(ctx, stored.ID).Return(stored, nil)
		mockRepo.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, u *domain.User) error {
				assert.Equal(t, name, u.Name)
				assert.NotEqual(t, currentHash, u.Password)
				return nil
			})

		got, err := newUserService(mockRepo, false).UpdateProfile(ctx, stored.ID, service.UpdateProfileInput{
			Name:            &name,
			CurrentPassword: "oldpassword",
			NewPassword:     "newpassword",
		})

		assert.NoError(t, err)
		assert.Equal(t, name, got.Name)
	})
}

func TestUserService_CreateTestUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("refused outside demo mode", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := repository_mock.NewMockUser(ctrl)

		_, err := newUserService(mockRepo, false).CreateTestUsers(ctx)

		assert.ErrorIs(t, err, service.ErrDemoDisabled)
	})

	t.Run("seeds missing accounts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := repository_mock.NewMockUser(ctrl)
		mockRepo.EXPECT().GetByEmail(ctx, "admin@example.com").Return(domain.User{}, repoerrs.ErrNotFound)
		mockRepo.EXPECT().GetByEmail(ctx, "user1@example.com").Return(domain.User{ID: 2}, nil)
		mockRepo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, u *domain.User) (int64, error) {
				assert.Equal(t, "admin@example.com", u.Email)
				assert.Equal(t, []string{domain.RoleAdmin}, u.Roles)
				return int64(1), nil
			})

		created, err := newUserService(mockRepo, true).CreateTestUsers(ctx)

		assert.NoError(t, err)
		require.Len(t, created, 1)
		assert.Equal(t, "admin@example.com", created[0].Email)
	})

	t.Run("all accounts already present", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := repository_mock.NewMockUser(ctrl)
		mockRepo.EXPECT().GetByEmail(ctx, "admin@example.com").Return(domain.User{ID: 1}, nil)
		mockRepo.EXPECT().GetByEmail(ctx, "user1@example.com").Return(domain.User{ID: 2}, nil)

		_, err := newUserService(mockRepo, true).CreateTestUsers(ctx)

		assert.ErrorIs(t, err, service.ErrTestUsersExist)
	})
}
