package summary

import (
	"time"

	"github.com/RichardMcSorley/breather/internal/utils"
	"github.com/RichardMcSorley/breather/pkg/bill"
	"github.com/RichardMcSorley/breather/pkg/bill_payment"
	"github.com/RichardMcSorley/breather/pkg/mileage"
	"github.com/RichardMcSorley/breather/pkg/settings"
	"github.com/RichardMcSorley/breather/pkg/transaction"
	"github.com/RichardMcSorley/breather/pkg/validation"
	"github.com/shopspring/decimal"
)

// ComputeSummary derives the financial snapshot for asOf from in, which it never modifies.
func ComputeSummary(asOf time.Time, viewMode ViewMode, in Input) (Snapshot, error) {
	if asOf.IsZero() {
		return Snapshot{}, validation.New("As-of date is required")
	}
	asOf = utils.DateOnly(asOf)
	viewMode = ParseViewMode(string(viewMode))
	periodStart, periodEnd := periodWindow(asOf, viewMode)

	grossTotal, variableExpenses := periodTotals(in.Transactions, periodStart, periodEnd)
	totalBillsDue := activeBillsTotal(in.Bills)
	billPeriodStart, billPeriodEnd := utils.StartOfMonth(asOf), utils.EndOfMonth(asOf)
	paid := paymentsTotal(in.Payments, billPeriodStart, billPeriodEnd)

	today, err := todayTotals(asOf, in.Transactions)
	if err != nil {
		return Snapshot{}, err
	}

	miles := milesDriven(in.Mileage, asOf.AddDate(0, 0, -MileageWindowDays), asOf)
	rate := settings.DefaultIrsMileageDeduction
	if in.Settings != nil {
		rate = in.Settings.IrsMileageDeduction
	}

	snapshot := Snapshot{
		AsOf:               asOf,
		ViewMode:           viewMode,
		PeriodStart:        periodStart,
		PeriodEnd:          periodEnd,
		GrossTotal:         grossTotal,
		VariableExpenses:   variableExpenses,
		FreeCash:           grossTotal.Sub(variableExpenses).Sub(totalBillsDue),
		TotalBillsDue:      totalBillsDue,
		UnpaidBills:        totalBillsDue.Sub(paid),
		TodayIncome:        today.income,
		TodayExpenses:      today.expenses,
		TodayNet:           today.income.Sub(today.expenses),
		MileageMilesLast30: miles,
		IrsMileageRate:     rate,
		MileageSavings:     miles.Mul(rate),
	}
	if miles.IsPositive() {
		perMile := today.income.Div(miles)
		snapshot.EarningsPerMile = &perMile
	}
	if today.incomeCount > 0 {
		perHour := today.income.Div(today.activeHours)
		snapshot.EarningsPerHour = &perHour
	}
	return snapshot, nil
}

// periodWindow returns the first and last calendar day of the day, month or year containing asOf.
func periodWindow(asOf time.Time, viewMode ViewMode) (time.Time, time.Time) {
	asOf = utils.DateOnly(asOf)
	switch viewMode {
	case Month:
		return utils.StartOfMonth(asOf), utils.EndOfMonth(asOf)
	case Year:
		return time.Date(asOf.Year(), time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(asOf.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
	default:
		return asOf, asOf
	}
}

// periodTotals sums income of all kinds and non-bill expenses dated within [from, to].
func periodTotals(transactions []transaction.Transaction, from, to time.Time) (income, expenses decimal.Decimal) {
	for _, t := range transactions {
		if !utils.InRange(t.Date, from, to) {
			continue
		}
		switch {
		case t.Type == transaction.Income:
			income = income.Add(t.Amount)
		case t.Type == transaction.Expense && !t.IsBill:
			expenses = expenses.Add(t.Amount)
		}
	}
	return income, expenses
}

type dayTotals struct {
	income      decimal.Decimal
	expenses    decimal.Decimal
	incomeCount int
	activeHours decimal.Decimal
}

// todayTotals covers the single day of asOf whatever the view mode, leaving bill postings out.
// Active hours run from the earliest to the latest income of the day, at least one hour.
func todayTotals(asOf time.Time, transactions []transaction.Transaction) (dayTotals, error) {
	totals := dayTotals{activeHours: decimal.NewFromInt(1)}
	var earliest, latest time.Duration
	for _, t := range transactions {
		if t.IsBill || !utils.SameDay(t.Date, asOf) {
			continue
		}
		switch t.Type {
		case transaction.Expense:
			totals.expenses = totals.expenses.Add(t.Amount)
		case transaction.Income:
			clock, err := transaction.ParseClock(t.Time)
			if err != nil {
				return dayTotals{}, err
			}
			if totals.incomeCount == 0 || clock < earliest {
				earliest = clock
			}
			if totals.incomeCount == 0 || clock > latest {
				latest = clock
			}
			totals.incomeCount++
			totals.income = totals.income.Add(t.Amount)
		}
	}

	spanned := decimal.NewFromFloat((latest - earliest).Hours())
	if spanned.GreaterThan(totals.activeHours) {
		totals.activeHours = spanned
	}
	return totals, nil
}

func activeBillsTotal(bills []bill.Bill) decimal.Decimal {
	total := decimal.Zero
	for _, b := range bills {
		if b.IsActive {
			total = total.Add(b.Amount)
		}
	}
	return total
}

func paymentsTotal(payments []bill_payment.BillPayment, from, to time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if utils.InRange(p.PaymentDate, from, to) {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// milesDriven is the odometer spread of the entries dated within [from, to], zero with fewer
// than two entries.
func milesDriven(entries []mileage.Entry, from, to time.Time) decimal.Decimal {
	count := 0
	var lowest, highest decimal.Decimal
	for _, e := range entries {
		if !utils.InRange(e.Date, from, to) {
			continue
		}
		if count == 0 || e.Odometer.LessThan(lowest) {
			lowest = e.Odometer
		}
		if count == 0 || e.Odometer.GreaterThan(highest) {
			highest = e.Odometer
		}
		count++
	}
	if count < 2 {
		return decimal.Zero
	}
	return highest.Sub(lowest)
}
