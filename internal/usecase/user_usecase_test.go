package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/xiri/xiri-api/internal/domain"
	"github.com/xiri/xiri-api/internal/usecase"
	"github.com/xiri/xiri-api/internal/usecase/mocks"
)

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockUserRepository(ctrl)
		uc := usecase.NewUserUseCase(repo, mocks.NewMockIDGenerator())

		repo.EXPECT().GetByEmail(ctx, "rec@xiri.test").Return(nil, domain.ErrUserNotFound)
		repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, user *domain.User) error {
			if user.HashedPassword == "" {
				t.Error("stored user has no hashed password")
			}
			if user.HashedPassword == "secret123" {
				t.Error("password stored in plaintext")
			}
			if !user.Active {
				t.Error("new user not active")
			}
			return nil
		})

		user, err := uc.CreateUser(ctx, usecase.CreateUserInput{
			Email:       "rec@xiri.test",
			Name:        "Rae Cruz",
			Password:    "secret123",
			Role:        domain.RoleRecruiter,
			TerritoryID: "ter-1",
		})
		if err != nil {
			t.Fatalf("CreateUser() error = %v", err)
		}
		if user.HashedPassword != "" {
			t.Error("returned user leaks hashed password")
		}
		if user.TerritoryID != "ter-1" {
			t.Errorf("TerritoryID = %q, want ter-1", user.TerritoryID)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockUserRepository(ctrl)
		uc := usecase.NewUserUseCase(repo, mocks.NewMockIDGenerator())

		repo.EXPECT().GetByEmail(ctx, "rec@xiri.test").Return(&domain.User{ID: "user-1"}, nil)

		if _, err := uc.CreateUser(ctx, usecase.CreateUserInput{
			Email:    "rec@xiri.test",
			Password: "secret123",
			Role:     domain.RoleRecruiter,
		}); err == nil {
			t.Error("CreateUser() error = nil, want duplicate email error")
		}
	})

	t.Run("invalid role", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockUserRepository(ctrl)
		uc := usecase.NewUserUseCase(repo, mocks.NewMockIDGenerator())

		_, err := uc.CreateUser(ctx, usecase.CreateUserInput{
			Email:    "rec@xiri.test",
			Password: "secret123",
			Role:     domain.Role("manager"),
		})
		if !errors.Is(err, domain.ErrInvalidRole) {
			t.Errorf("CreateUser() error = %v, want ErrInvalidRole", err)
		}
	})

	t.Run("weak password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockUserRepository(ctrl)
		uc := usecase.NewUserUseCase(repo, mocks.NewMockIDGenerator())

		if _, err := uc.CreateUser(ctx, usecase.CreateUserInput{
			Email:    "rec@xiri.test",
			Password: "short",
			Role:     domain.RoleRecruiter,
		}); err == nil {
			t.Error("CreateUser() error = nil, want password validation error")
		}
	})
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockUserRepository(ctrl)
		uc := usecase.NewUserUseCase(repo, mocks.NewMockIDGenerator())

		repo.EXPECT().GetByID(ctx, "user-1").Return(&domain.User{
			ID:     "user-1",
			Name:   "Rae Cruz",
			Role:   domain.RoleRecruiter,
			Active: true,
		}, nil)

		var stored *domain.User
		repo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, user *domain.User) error {
			stored = user
			return nil
		})

		newRole := domain.RoleAuditor
		inactive := false
		user, err := uc.UpdateUser(ctx, usecase.UpdateUserInput{
			ID:     "user-1",
			Role:   &newRole,
			Active: &inactive,
		})
		if err != nil {
			t.Fatalf("UpdateUser() error = %v", err)
		}
		if user.Role != domain.RoleAuditor || user.Active {
			t.Errorf("user = %+v, want auditor and inactive", user)
		}
		if stored.Name != "Rae Cruz" {
			t.Errorf("Name = %q, untouched fields must survive", stored.Name)
		}
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockUserRepository(ctrl)
		uc := usecase.NewUserUseCase(repo, mocks.NewMockIDGenerator())

		repo.EXPECT().GetByID(ctx, "user-1").Return(&domain.User{ID: "user-1", Role: domain.RoleSales}, nil)

		bad := domain.Role("owner")
		_, err := uc.UpdateUser(ctx, usecase.UpdateUserInput{ID: "user-1", Role: &bad})
		if !errors.Is(err, domain.ErrInvalidRole) {
			t.Errorf("UpdateUser() error = %v, want ErrInvalidRole", err)
		}
	})

	t.Run("missing user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockUserRepository(ctrl)
		uc := usecase.NewUserUseCase(repo, mocks.NewMockIDGenerator())

		repo.EXPECT().GetByID(ctx, "user-x").Return(nil, domain.ErrUserNotFound)

		_, err := uc.UpdateUser(ctx, usecase.UpdateUserInput{ID: "user-x"})
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Errorf("UpdateUser() error = %v, want ErrUserNotFound", err)
		}
	})
}

func TestListUsers(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUserRepository(ctrl)
	uc := usecase.NewUserUseCase(repo, mocks.NewMockIDGenerator())

	repo.EXPECT().List(ctx, domain.DefaultPageLimit, 0).Return([]*domain.User{
		{ID: "user-1", HashedPassword: "$2a$10$abc"},
	}, nil)

	users, err := uc.ListUsers(ctx, 0, -5)
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if users[0].HashedPassword != "" {
		t.Error("listing leaks hashed passwords")
	}
}
