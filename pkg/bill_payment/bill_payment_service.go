package bill_payment

import (
	"context"
	"fmt"
	"time"

	"github.com/RichardMcSorley/breather/internal/event_bus"
	"github.com/RichardMcSorley/breather/pkg/bill"
	"github.com/RichardMcSorley/breather/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	GetForBill(ctx context.Context, billId int) ([]BillPayment, error)
	GetInRange(ctx context.Context, from, to time.Time) ([]BillPayment, error)
	Record(ctx context.Context, payment BillPayment) (BillPayment, error)
	Delete(ctx context.Context, billId int, paymentId int) error
}

type ServiceImpl struct {
	repo     Repository
	billRepo bill.Repository
	eventBus *event_bus.EventBus
}

func NewBillPaymentService(repo Repository, billRepo bill.Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{
		repo:     repo,
		billRepo: billRepo,
		eventBus: eventBus,
	}
}

func (s *ServiceImpl) GetForBill(ctx context.Context, billId int) ([]BillPayment, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if _, err := s.billRepo.Get(ctx, userId, billId); err != nil {
		return nil, err
	}
	return s.repo.GetForBill(ctx, userId, billId)
}

func (s *ServiceImpl) GetInRange(ctx context.Context, from, to time.Time) ([]BillPayment, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetInRange(ctx, userId, from, to)
}

// Record stores a payment against one of the current user's bills and announces it on the bus.
// A failing subscriber is logged; the payment itself stays recorded.
func (s *ServiceImpl) Record(ctx context.Context, payment BillPayment) (BillPayment, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return BillPayment{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := payment.Validate(); err != nil {
		return BillPayment{}, err
	}
	paidBill, err := s.billRepo.Get(ctx, userId, payment.BillId)
	if err != nil {
		return BillPayment{}, err
	}

	id, err := s.repo.Store(ctx, userId, payment)
	if err != nil {
		return BillPayment{}, err
	}
	payment.Id = id

	if s.eventBus != nil {
		err := s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.BillPaymentRecordedType, event_bus.BillPaymentRecorded{
			PaymentId:   payment.Id,
			BillId:      paidBill.Id,
			BillName:    paidBill.Name,
			Amount:      payment.Amount,
			PaymentDate: payment.PaymentDate,
			Notes:       payment.Notes,
		}))
		if err != nil {
			log.Errorf("failed to publish payment %d of bill %d: %v", payment.Id, paidBill.Id, err)
		}
	}
	return payment, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, billId int, paymentId int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	deleted, err := s.repo.Delete(ctx, userId, billId, paymentId)
	if err != nil {
		return err
	}
	if !deleted {
		log.Warnf("payment %d of bill %d not deleted, it does not exist or user %d is not the owner", paymentId, billId, userId)
		return ErrPaymentNotFound
	}
	return nil
}
