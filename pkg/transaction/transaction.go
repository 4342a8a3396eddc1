package transaction

import (
	"time"

	"github.com/RichardMcSorley/breather/pkg/validation"
	"github.com/shopspring/decimal"
)

type Type string

const (
	Income  Type = "income"
	Expense Type = "expense"
)

// TimeLayout is the 24-hour clock format of Transaction.Time.
const TimeLayout = "15:04"

// Transaction is a single ledger row. Amount is always positive; the direction is given by Type.
// IsBill rows are postings of bill payments and are left out of earnings figures.
type Transaction struct {
	Id     int
	Amount decimal.Decimal
	Type   Type
	Date   time.Time
	Time   string
	IsBill bool
	Tag    string
}

func (t Transaction) Validate() error {
	if t.Amount.IsNegative() {
		return validation.New("Transaction amount cannot be negative")
	}
	if t.Type != Income && t.Type != Expense {
		return validation.Newf("Transaction type must be %q or %q", Income, Expense)
	}
	if t.Date.IsZero() {
		return validation.New("Transaction date is required")
	}
	if _, err := ParseClock(t.Time); err != nil {
		return err
	}
	return nil
}

// ParseClock parses an "HH:MM" value into the duration since midnight.
func ParseClock(value string) (time.Duration, error) {
	parsed, err := time.Parse(TimeLayout, value)
	if err != nil {
		return 0, validation.Newf("invalid time %q, expected HH:MM", value)
	}
	return time.Duration(parsed.Hour())*time.Hour + time.Duration(parsed.Minute())*time.Minute, nil
}
