package bill

import (
	"context"
	"fmt"

	"github.com/RichardMcSorley/breather/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	GetAll(ctx context.Context, includeInactive bool) ([]Bill, error)
	Get(ctx context.Context, id int) (Bill, error)
	Create(ctx context.Context, bill Bill) (Bill, error)
	Update(ctx context.Context, bill Bill) (Bill, error)
	Delete(ctx context.Context, id int) error
}

type ServiceImpl struct {
	repo Repository
}

func NewBillService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetAll(ctx context.Context, includeInactive bool) ([]Bill, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId, includeInactive)
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (Bill, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Bill{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Get(ctx, userId, id)
}

func (s *ServiceImpl) Create(ctx context.Context, bill Bill) (Bill, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Bill{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := bill.Validate(); err != nil {
		return Bill{}, err
	}

	id, err := s.repo.Store(ctx, userId, bill)
	if err != nil {
		return Bill{}, err
	}
	bill.Id = id
	return bill, nil
}

func (s *ServiceImpl) Update(ctx context.Context, bill Bill) (Bill, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Bill{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := bill.Validate(); err != nil {
		return Bill{}, err
	}

	updated, err := s.repo.Update(ctx, userId, bill)
	if err != nil {
		return Bill{}, err
	}
	if !updated {
		log.Warnf("bill not updated, probably because it does not exist (%d) or the user (%d) is not the owner", bill.Id, userId)
		return Bill{}, ErrBillNotFound
	}
	return bill, nil
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
		log.Warnf("bill not deleted, probably because it does not exist (%d) or the user (%d) is not the owner", id, userId)
		return ErrBillNotFound
	}
	return nil
}
