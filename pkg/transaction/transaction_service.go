package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/RichardMcSorley/breather/internal/event_bus"
	"github.com/RichardMcSorley/breather/pkg/user"
	"github.com/RichardMcSorley/breather/pkg/validation"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	GetInRange(ctx context.Context, from, to time.Time) ([]Transaction, error)
	Create(ctx context.Context, transaction Transaction) (Transaction, error)
	Update(ctx context.Context, transaction Transaction) (Transaction, error)
	Delete(ctx context.Context, id int) error
}

type ServiceImpl struct {
	repo Repository
}

func NewTransactionService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetInRange(ctx context.Context, from, to time.Time) ([]Transaction, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if to.Before(from) {
		return nil, validation.New("'from' date must not be after 'to' date")
	}
	return s.repo.GetInRange(ctx, userId, from, to)
}

func (s *ServiceImpl) Create(ctx context.Context, transaction Transaction) (Transaction, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := transaction.Validate(); err != nil {
		return Transaction{}, err
	}

	id, err := s.repo.Store(ctx, userId, transaction)
	if err != nil {
		return Transaction{}, err
	}
	transaction.Id = id
	return transaction, nil
}

func (s *ServiceImpl) Update(ctx context.Context, transaction Transaction) (Transaction, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := transaction.Validate(); err != nil {
		return Transaction{}, err
	}

	updated, err := s.repo.Update(ctx, userId, transaction)
	if err != nil {
		return Transaction{}, err
	}
	if !updated {
		log.Warnf("transaction %d not updated, it does not exist or user %d is not the owner", transaction.Id, userId)
		return Transaction{}, ErrTransactionNotFound
	}
	return transaction, nil
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
		log.Warnf("transaction %d not deleted, it does not exist or user %d is not the owner", id, userId)
		return ErrTransactionNotFound
	}
	return nil
}

// SubscribeToBillPayments posts every recorded bill payment to the ledger as a bill expense,
// tagged with the bill name.
func (s *ServiceImpl) SubscribeToBillPayments(bus *event_bus.EventBus) (unsubscribe func()) {
	return event_bus.SubscribeTyped(bus, event_bus.BillPaymentRecordedType,
		func(e event_bus.EventT[event_bus.BillPaymentRecorded]) error {
			payment := e.Data
			log.Debugf("posting payment %d of bill %d to the ledger", payment.PaymentId, payment.BillId)
			_, err := s.Create(e.Context(), Transaction{
				Amount: payment.Amount,
				Type:   Expense,
				Date:   payment.PaymentDate,
				Time:   e.Timestamp.Format(TimeLayout),
				IsBill: true,
				Tag:    payment.BillName,
			})
			return err
		})
}
