package payment_plan

import (
	"context"
	"time"

	"github.com/RichardMcSorley/breather/pkg/bill"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// BillsProvider returns the current user's bills.
type BillsProvider func(ctx context.Context, includeInactive bool) ([]bill.Bill, error)

type PlanRequest struct {
	StartDate time.Time
	// DailyPayment falls back to the configured default when nil.
	DailyPayment *decimal.Decimal
}

type Service interface {
	GeneratePlan(ctx context.Context, request PlanRequest) (Plan, error)
}

type ServiceImpl struct {
	bills               BillsProvider
	defaultDailyPayment decimal.Decimal
}

func NewService(bills BillsProvider, defaultDailyPayment decimal.Decimal) *ServiceImpl {
	return &ServiceImpl{bills: bills, defaultDailyPayment: defaultDailyPayment}
}

func (s *ServiceImpl) GeneratePlan(ctx context.Context, request PlanRequest) (Plan, error) {
	dailyPayment := s.defaultDailyPayment
	if request.DailyPayment != nil {
		dailyPayment = *request.DailyPayment
	}

	bills, err := s.bills(ctx, false)
	if err != nil {
		return Plan{}, err
	}
	log.Debugf("building payment plan from %d bills, daily payment %s", len(bills), dailyPayment)

	return BuildPlan(request.StartDate, dailyPayment, bills)
}
