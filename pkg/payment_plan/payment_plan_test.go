package payment_plan

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/RichardMcSorley/breather/pkg/bill"
	"github.com/RichardMcSorley/breather/pkg/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func planBill(id int, name string, amount int64, dueDate int) bill.Bill {
	return bill.Bill{
		Id:        id,
		Name:      name,
		Amount:    decimal.NewFromInt(amount),
		DueDate:   dueDate,
		UseInPlan: true,
		IsActive:  true,
	}
}

func entriesOf(plan Plan, billName string) []PlanEntry {
	var entries []PlanEntry
	for _, e := range plan.PaymentPlan {
		if e.Bill == billName {
			entries = append(entries, e)
		}
	}
	return entries
}

func TestBuildPlan_SingleBill(t *testing.T) {
	// given
	bills := []bill.Bill{planBill(1, "Rent", 1000, 15)}

	// when
	plan, err := BuildPlan(date(2024, 1, 15), decimal.NewFromInt(100), bills)

	// then
	require.NoError(t, err)
	require.Len(t, plan.PaymentPlan, 10)
	assert.Empty(t, plan.Warnings)
	total := decimal.Zero
	for i, e := range plan.PaymentPlan {
		assert.Equal(t, "Rent", e.Bill)
		assert.Equal(t, 1, e.BillId)
		assert.Equal(t, "2024-01-15", e.DueDate)
		assert.Equal(t, fmt.Sprintf("2024-01-%02d", 15+i), e.Date)
		assert.True(t, decimal.NewFromInt(100).Equal(e.Payment))
		assert.True(t, decimal.NewFromInt(int64(900-100*i)).Equal(e.RemainingBalance))
		total = total.Add(e.Payment)
	}
	assert.True(t, decimal.NewFromInt(1000).Equal(total))
	assert.True(t, plan.PaymentPlan[9].RemainingBalance.IsZero())
}

func TestBuildPlan_PartialLastPayment(t *testing.T) {
	plan, err := BuildPlan(date(2024, 1, 1), decimal.NewFromInt(50), []bill.Bill{planBill(1, "Phone", 120, 20)})

	require.NoError(t, err)
	require.Len(t, plan.PaymentPlan, 3)
	assert.Equal(t, "20", plan.PaymentPlan[2].Payment.String())
	assert.True(t, plan.PaymentPlan[2].RemainingBalance.IsZero())
}

func TestBuildPlan_FundsEarlierDueBillsFirst(t *testing.T) {
	// given
	bills := []bill.Bill{
		planBill(1, "Insurance", 150, 10),
		planBill(2, "Internet", 80, 5),
	}

	// when
	plan, err := BuildPlan(date(2024, 3, 1), decimal.NewFromInt(100), bills)

	// then
	require.NoError(t, err)
	expected := []struct {
		bill      string
		date      string
		payment   int64
		remaining int64
	}{
		{"Internet", "2024-03-01", 80, 0},
		{"Insurance", "2024-03-01", 20, 130},
		{"Insurance", "2024-03-02", 100, 30},
		{"Insurance", "2024-03-03", 30, 0},
	}
	require.Len(t, plan.PaymentPlan, len(expected))
	for i, e := range expected {
		actual := plan.PaymentPlan[i]
		assert.Equal(t, e.bill, actual.Bill, "entry %d", i)
		assert.Equal(t, e.date, actual.Date, "entry %d", i)
		assert.True(t, decimal.NewFromInt(e.payment).Equal(actual.Payment), "entry %d payment %s", i, actual.Payment)
		assert.True(t, decimal.NewFromInt(e.remaining).Equal(actual.RemainingBalance), "entry %d remaining %s", i, actual.RemainingBalance)
	}

	require.Len(t, plan.GroupedByDate, 3)
	firstDay := plan.GroupedByDate["2024-03-01"]
	require.Len(t, firstDay, 2)
	assert.Equal(t, "Internet", firstDay[0].Bill)
	assert.Equal(t, "Insurance", firstDay[1].Bill)
	assert.Len(t, plan.GroupedByDate["2024-03-03"], 1)
}

func TestBuildPlan_TieBreaksByName(t *testing.T) {
	bills := []bill.Bill{
		planBill(1, "Water", 10, 7),
		planBill(2, "Electric", 10, 7),
	}

	plan, err := BuildPlan(date(2024, 3, 1), decimal.NewFromInt(5), bills)

	require.NoError(t, err)
	require.Len(t, plan.PaymentPlan, 4)
	assert.Equal(t, "Electric", plan.PaymentPlan[0].Bill)
	assert.Equal(t, "Electric", plan.PaymentPlan[1].Bill)
	assert.Equal(t, "Water", plan.PaymentPlan[2].Bill)
}

func TestBuildPlan_SkipsBillsNotInPlanAndZeroAmounts(t *testing.T) {
	notInPlan := planBill(1, "Gym", 40, 3)
	notInPlan.UseInPlan = false
	bills := []bill.Bill{notInPlan, planBill(2, "Free trial", 0, 4), planBill(3, "Rent", 100, 5)}

	plan, err := BuildPlan(date(2024, 3, 1), decimal.NewFromInt(50), bills)

	require.NoError(t, err)
	assert.Empty(t, entriesOf(plan, "Gym"))
	assert.Empty(t, entriesOf(plan, "Free trial"))
	assert.Len(t, entriesOf(plan, "Rent"), 2)
	assert.Empty(t, plan.Warnings)
}

func TestBuildPlan_Errors(t *testing.T) {
	tests := []struct {
		name         string
		startDate    time.Time
		dailyPayment decimal.Decimal
		bills        []bill.Bill
		message      string
	}{
		{"missing start date", time.Time{}, decimal.NewFromInt(50), []bill.Bill{planBill(1, "Rent", 100, 1)}, "Start date is required"},
		{"no bills", date(2024, 1, 1), decimal.NewFromInt(50), []bill.Bill{}, "No bills found"},
		{"nil bills", date(2024, 1, 1), decimal.NewFromInt(50), nil, "No bills found"},
		{"no bills in plan", date(2024, 1, 1), decimal.NewFromInt(50), []bill.Bill{{Name: "Gym", Amount: decimal.NewFromInt(10), DueDate: 1}}, "No bills found"},
		{"zero daily payment", date(2024, 1, 1), decimal.Zero, []bill.Bill{planBill(1, "Rent", 100, 1)}, "Daily payment must be greater than zero"},
		{"negative daily payment", date(2024, 1, 1), decimal.NewFromInt(-5), []bill.Bill{planBill(1, "Rent", 100, 1)}, "Daily payment must be greater than zero"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildPlan(tt.startDate, tt.dailyPayment, tt.bills)

			require.Error(t, err)
			assert.True(t, validation.IsValidationError(err))
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestBuildPlan_WarnsWhenBillCannotBeScheduled(t *testing.T) {
	bills := []bill.Bill{planBill(1, "Mortgage", 1_000_000, 2), planBill(2, "Phone", 1, 1)}

	plan, err := BuildPlan(date(2024, 1, 1), decimal.NewFromInt(1), bills)

	require.NoError(t, err)
	assert.Equal(t, []string{"Bill Mortgage could not be fully scheduled"}, plan.Warnings)
	assert.Len(t, plan.GroupedByDate, MaxPlanDays)
	mortgage := entriesOf(plan, "Mortgage")
	assert.False(t, mortgage[len(mortgage)-1].RemainingBalance.IsZero())
	phone := entriesOf(plan, "Phone")
	require.Len(t, phone, 1)
	assert.True(t, phone[0].RemainingBalance.IsZero())
}

func TestProjectDueDate(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		dueDay   int
		expected time.Time
	}{
		{"later this month", date(2024, 5, 10), 20, date(2024, 5, 20)},
		{"same day", date(2024, 5, 10), 10, date(2024, 5, 10)},
		{"already passed", date(2024, 5, 10), 5, date(2024, 6, 5)},
		{"year rollover", date(2024, 12, 31), 5, date(2025, 1, 5)},
		{"short month clamps", date(2023, 2, 10), 31, date(2023, 2, 28)},
		{"leap february clamps", date(2024, 2, 10), 30, date(2024, 2, 29)},
		{"clamped next month", date(2024, 1, 31), 30, date(2024, 2, 29)},
		{"last day stays", date(2024, 1, 31), 31, date(2024, 1, 31)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ProjectDueDate(tt.start, tt.dueDay))
		})
	}
}

func TestBuildPlan_YearRolloverDueDate(t *testing.T) {
	plan, err := BuildPlan(date(2024, 12, 31), decimal.NewFromInt(50), []bill.Bill{planBill(1, "Car", 100, 5)})

	require.NoError(t, err)
	require.Len(t, plan.PaymentPlan, 2)
	assert.Equal(t, "2025-01-05", plan.PaymentPlan[0].DueDate)
	assert.Equal(t, "2024-12-31", plan.PaymentPlan[0].Date)
	assert.Equal(t, "2025-01-01", plan.PaymentPlan[1].Date)
}

func TestBuildPlan_Invariants(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	for run := 0; run < 50; run++ {
		t.Run(fmt.Sprintf("run %d", run), func(t *testing.T) {
			// given
			bills := make([]bill.Bill, 0)
			count := 1 + random.Intn(6)
			for i := 0; i < count; i++ {
				b := planBill(i+1, fmt.Sprintf("Bill %d", i), int64(random.Intn(2000)), 1+random.Intn(31))
				b.Amount = b.Amount.Add(decimal.New(int64(random.Intn(100)), -2))
				bills = append(bills, b)
			}
			dailyPayment := decimal.New(int64(500+random.Intn(20000)), -2)
			start := date(2024, time.Month(1+random.Intn(12)), 1+random.Intn(28))

			// when
			plan, err := BuildPlan(start, dailyPayment, bills)

			// then
			require.NoError(t, err)
			assert.Empty(t, plan.Warnings)

			perDay := map[string]decimal.Decimal{}
			for _, e := range plan.PaymentPlan {
				perDay[e.Date] = perDay[e.Date].Add(e.Payment)
			}
			for day, total := range perDay {
				assert.True(t, total.LessThanOrEqual(dailyPayment), "day %s spends %s over %s", day, total, dailyPayment)
			}

			for _, b := range bills {
				entries := entriesOf(plan, b.Name)
				if !b.Amount.IsPositive() {
					assert.Empty(t, entries)
					continue
				}
				require.NotEmpty(t, entries)
				paid := decimal.Zero
				previous := b.Amount
				for _, e := range entries {
					assert.True(t, e.RemainingBalance.LessThanOrEqual(previous))
					previous = e.RemainingBalance
					paid = paid.Add(e.Payment)
				}
				assert.True(t, entries[len(entries)-1].RemainingBalance.IsZero())
				assert.True(t, b.Amount.Equal(paid))
			}

			grouped := 0
			for _, dayEntries := range plan.GroupedByDate {
				grouped += len(dayEntries)
			}
			assert.Equal(t, len(plan.PaymentPlan), grouped)
		})
	}
}
