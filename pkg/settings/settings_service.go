package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/RichardMcSorley/breather/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	// Get returns the stored settings, or the defaults when the user has none yet.
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, settings Settings) (Settings, error)
}

type ServiceImpl struct {
	repo     Repository
	defaults Settings
}

func NewSettingsService(repo Repository, defaults Settings) *ServiceImpl {
	return &ServiceImpl{repo: repo, defaults: defaults}
}

func (s *ServiceImpl) Get(ctx context.Context) (Settings, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to get current user: %w", err)
	}
	settings, err := s.repo.Get(ctx, userId)
	if errors.Is(err, ErrSettingsNotFound) {
		log.Debugf("no settings stored for user %d, using defaults", userId)
		return s.defaults, nil
	}
	if err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func (s *ServiceImpl) Update(ctx context.Context, settings Settings) (Settings, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	if err := s.repo.Store(ctx, userId, settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}
