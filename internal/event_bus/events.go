package event_bus

import (
	"time"

	"github.com/shopspring/decimal"
)

const BillPaymentRecordedType EventType = "bill_payment.recorded"

// BillPaymentRecorded is published after a payment against a bill has been stored.
type BillPaymentRecorded struct {
	PaymentId   int
	BillId      int
	BillName    string
	Amount      decimal.Decimal
	PaymentDate time.Time
	Notes       string
}
