package payment_plan

import (
	"fmt"
	"sort"
	"time"

	"github.com/RichardMcSorley/breather/internal/utils"
	"github.com/RichardMcSorley/breather/pkg/bill"
	"github.com/RichardMcSorley/breather/pkg/validation"
	"github.com/shopspring/decimal"
)

// MaxPlanDays bounds the simulated calendar; bills not paid off within it are reported as warnings.
const MaxPlanDays = 3650

// PlanEntry is a single payment towards a bill on a given day.
type PlanEntry struct {
	BillId           int
	Bill             string
	DueDate          string
	Date             string
	Payment          decimal.Decimal
	RemainingBalance decimal.Decimal
}

type Plan struct {
	PaymentPlan   []PlanEntry
	GroupedByDate map[string][]PlanEntry
	Warnings      []string
}

type scheduledBill struct {
	bill      bill.Bill
	dueDate   time.Time
	remaining decimal.Decimal
}

// BuildPlan spreads the amounts of all plan bills over consecutive days starting at startDate,
// spending at most dailyPayment per day. Every day the bills are funded in order of their next due
// date, so a later bill only gets what is left after the earlier ones.
func BuildPlan(startDate time.Time, dailyPayment decimal.Decimal, bills []bill.Bill) (Plan, error) {
	if startDate.IsZero() {
		return Plan{}, validation.New("Start date is required")
	}
	if !dailyPayment.IsPositive() {
		return Plan{}, validation.New("Daily payment must be greater than zero")
	}
	start := utils.DateOnly(startDate)

	scheduled := make([]*scheduledBill, 0, len(bills))
	for _, b := range bills {
		if !b.UseInPlan {
			continue
		}
		scheduled = append(scheduled, &scheduledBill{
			bill:      b,
			dueDate:   ProjectDueDate(start, b.DueDate),
			remaining: b.Amount,
		})
	}
	if len(scheduled) == 0 {
		return Plan{}, validation.New("No bills found")
	}
	sort.SliceStable(scheduled, func(i, j int) bool {
		if !scheduled[i].dueDate.Equal(scheduled[j].dueDate) {
			return scheduled[i].dueDate.Before(scheduled[j].dueDate)
		}
		return scheduled[i].bill.Name < scheduled[j].bill.Name
	})

	plan := Plan{
		PaymentPlan:   make([]PlanEntry, 0),
		GroupedByDate: make(map[string][]PlanEntry),
		Warnings:      make([]string, 0),
	}
	for day := 0; day < MaxPlanDays && hasOutstanding(scheduled); day++ {
		date := utils.FormatDate(start.AddDate(0, 0, day))
		budget := dailyPayment
		for _, s := range scheduled {
			if !budget.IsPositive() {
				break
			}
			if !s.remaining.IsPositive() {
				continue
			}
			payment := decimal.Min(budget, s.remaining)
			s.remaining = s.remaining.Sub(payment)
			budget = budget.Sub(payment)

			entry := PlanEntry{
				BillId:           s.bill.Id,
				Bill:             s.bill.Name,
				DueDate:          utils.FormatDate(s.dueDate),
				Date:             date,
				Payment:          payment,
				RemainingBalance: s.remaining,
			}
			plan.PaymentPlan = append(plan.PaymentPlan, entry)
			plan.GroupedByDate[date] = append(plan.GroupedByDate[date], entry)
		}
	}

	for _, s := range scheduled {
		if s.remaining.IsPositive() {
			plan.Warnings = append(plan.Warnings, fmt.Sprintf("Bill %s could not be fully scheduled", s.bill.Name))
		}
	}
	return plan, nil
}

// ProjectDueDate returns the first date on or after start that falls on dueDay of a month.
// A day the month does not have is moved to the month's last day.
func ProjectDueDate(start time.Time, dueDay int) time.Time {
	candidate := utils.DayInMonth(start.Year(), start.Month(), dueDay)
	if candidate.Before(utils.DateOnly(start)) {
		candidate = utils.DayInMonth(start.Year(), start.Month()+1, dueDay)
	}
	return candidate
}

func hasOutstanding(scheduled []*scheduledBill) bool {
	for _, s := range scheduled {
		if s.remaining.IsPositive() {
			return true
		}
	}
	return false
}
