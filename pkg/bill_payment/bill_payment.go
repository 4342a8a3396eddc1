package bill_payment

import (
	"time"

	"github.com/RichardMcSorley/breather/pkg/validation"
	"github.com/shopspring/decimal"
)

// BillPayment is money actually paid against a bill on a given calendar date.
type BillPayment struct {
	Id          int
	BillId      int
	Amount      decimal.Decimal
	PaymentDate time.Time
	Notes       string
}

func (p BillPayment) Validate() error {
	if p.Amount.IsNegative() {
		return validation.New("Payment amount cannot be negative")
	}
	if p.PaymentDate.IsZero() {
		return validation.New("Payment date is required")
	}
	return nil
}
