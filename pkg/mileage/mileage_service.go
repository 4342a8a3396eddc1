package mileage

import (
	"context"
	"fmt"
	"time"

	"github.com/RichardMcSorley/breather/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	GetInRange(ctx context.Context, from, to time.Time) ([]Entry, error)
	Create(ctx context.Context, entry Entry) (Entry, error)
	Delete(ctx context.Context, id int) error
}

type ServiceImpl struct {
	repo Repository
}

func NewMileageService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetInRange(ctx context.Context, from, to time.Time) ([]Entry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetInRange(ctx, userId, from, to)
}

func (s *ServiceImpl) Create(ctx context.Context, entry Entry) (Entry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := entry.Validate(); err != nil {
		return Entry{}, err
	}
	id, err := s.repo.Store(ctx, userId, entry)
	if err != nil {
		return Entry{}, err
	}
	entry.Id = id
	return entry, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	deleted, err := s.repo.Delete(ctx, userId, id)
	if err != nil {
		return err
	}
	if !deleted {
		log.Warnf("mileage entry %d not deleted, it does not exist or user %d is not the owner", id, userId)
		return ErrEntryNotFound
	}
	return nil
}
