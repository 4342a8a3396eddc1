package summary

import (
	"context"
	"fmt"
	"time"

	"github.com/RichardMcSorley/breather/internal/utils"
	"github.com/RichardMcSorley/breather/pkg/bill"
	"github.com/RichardMcSorley/breather/pkg/bill_payment"
	"github.com/RichardMcSorley/breather/pkg/mileage"
	"github.com/RichardMcSorley/breather/pkg/settings"
	"github.com/RichardMcSorley/breather/pkg/transaction"
	"github.com/RichardMcSorley/breather/pkg/validation"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type SummaryRequest struct {
	AsOf     time.Time
	ViewMode ViewMode
}

type Service interface {
	GetSummary(ctx context.Context, request SummaryRequest) (Snapshot, error)
}

type ServiceImpl struct {
	transactions transaction.Service
	bills        bill.Service
	payments     bill_payment.Service
	mileage      mileage.Service
	settings     settings.Service
}

func NewService(
	transactions transaction.Service,
	bills bill.Service,
	payments bill_payment.Service,
	mileage mileage.Service,
	settings settings.Service,
) *ServiceImpl {
	return &ServiceImpl{
		transactions: transactions,
		bills:        bills,
		payments:     payments,
		mileage:      mileage,
		settings:     settings,
	}
}

// GetSummary loads a fresh snapshot of the current user's data and aggregates it.
func (s *ServiceImpl) GetSummary(ctx context.Context, request SummaryRequest) (Snapshot, error) {
	if request.AsOf.IsZero() {
		return Snapshot{}, validation.New("As-of date is required")
	}
	asOf := utils.DateOnly(request.AsOf)
	periodStart, periodEnd := periodWindow(asOf, ParseViewMode(string(request.ViewMode)))

	var (
		transactions []transaction.Transaction
		bills        []bill.Bill
		payments     []bill_payment.BillPayment
		entries      []mileage.Entry
		userSettings settings.Settings
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		transactions, err = s.transactions.GetInRange(gctx, periodStart, periodEnd)
		if err != nil {
			return fmt.Errorf("failed to load transactions: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		bills, err = s.bills.GetAll(gctx, false)
		if err != nil {
			return fmt.Errorf("failed to load bills: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		payments, err = s.payments.GetInRange(gctx, utils.StartOfMonth(asOf), utils.EndOfMonth(asOf))
		if err != nil {
			return fmt.Errorf("failed to load bill payments: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		entries, err = s.mileage.GetInRange(gctx, asOf.AddDate(0, 0, -MileageWindowDays), asOf)
		if err != nil {
			return fmt.Errorf("failed to load mileage: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		userSettings, err = s.settings.Get(gctx)
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	log.Debugf("computing summary for %s (%s): %d transactions, %d bills, %d payments, %d mileage entries",
		utils.FormatDate(asOf), request.ViewMode, len(transactions), len(bills), len(payments), len(entries))

	return ComputeSummary(asOf, request.ViewMode, Input{
		Transactions: transactions,
		Bills:        bills,
		Payments:     payments,
		Mileage:      entries,
		Settings:     &userSettings,
	})
}
