package summary

import (
	"strings"
	"time"

	"github.com/RichardMcSorley/breather/pkg/bill"
	"github.com/RichardMcSorley/breather/pkg/bill_payment"
	"github.com/RichardMcSorley/breather/pkg/mileage"
	"github.com/RichardMcSorley/breather/pkg/settings"
	"github.com/RichardMcSorley/breather/pkg/transaction"
	"github.com/shopspring/decimal"
)

type ViewMode string

const (
	Day   ViewMode = "day"
	Month ViewMode = "month"
	Year  ViewMode = "year"
)

// ParseViewMode maps anything it does not recognise to Day.
func ParseViewMode(value string) ViewMode {
	switch ViewMode(strings.ToLower(strings.TrimSpace(value))) {
	case Month:
		return Month
	case Year:
		return Year
	default:
		return Day
	}
}

// MileageWindowDays is the length of the trailing window used for mileage figures.
const MileageWindowDays = 30

// Input is everything the summary is computed from, already restricted to one user.
type Input struct {
	Transactions []transaction.Transaction
	Bills        []bill.Bill
	Payments     []bill_payment.BillPayment
	Mileage      []mileage.Entry
	// Settings may be nil, the default mileage rate applies then.
	Settings *settings.Settings
}

type Snapshot struct {
	AsOf        time.Time
	ViewMode    ViewMode
	PeriodStart time.Time
	PeriodEnd   time.Time

	GrossTotal       decimal.Decimal
	VariableExpenses decimal.Decimal
	FreeCash         decimal.Decimal
	TotalBillsDue    decimal.Decimal
	UnpaidBills      decimal.Decimal

	TodayIncome   decimal.Decimal
	TodayExpenses decimal.Decimal
	TodayNet      decimal.Decimal

	MileageMilesLast30 decimal.Decimal
	IrsMileageRate     decimal.Decimal
	MileageSavings     decimal.Decimal

	// EarningsPerMile is nil when no miles were driven.
	EarningsPerMile *decimal.Decimal
	// EarningsPerHour is nil when there was no income today.
	EarningsPerHour *decimal.Decimal
}
