package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/RichardMcSorley/breather/pkg/validation"
	"github.com/google/uuid"
)

type Service interface {
	GetCurrentUser(ctx context.Context) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	CreateUser(ctx context.Context, user User) (User, error)
}

type UserServiceImpl struct {
	repo Repo
}

func NewUserService(repo Repo) *UserServiceImpl {
	return &UserServiceImpl{repo: repo}
}

func (u *UserServiceImpl) GetCurrentUser(ctx context.Context) (User, error) {
	userId, err := CurrentId(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return u.repo.GetUser(ctx, userId)
}

func (u *UserServiceImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	return u.repo.GetUserByUid(ctx, uid)
}

func (u *UserServiceImpl) CreateUser(ctx context.Context, user User) (User, error) {
	user.Username = strings.TrimSpace(user.Username)
	if user.Username == "" {
		return User{}, validation.New("Username is required")
	}
	if strings.TrimSpace(user.DisplayName) == "" {
		user.DisplayName = user.Username
	}
	available, err := u.repo.IsUsernameAvailable(ctx, user.Username)
	if err != nil {
		return User{}, err
	}
	if !available {
		return User{}, validation.Newf("Username %s is already taken", user.Username)
	}

	user.Uid = uuid.NewString()
	userId, err := u.repo.CreateUser(ctx, user)
	if err != nil {
		return User{}, err
	}
	user.Id = userId
	return user, nil
}
