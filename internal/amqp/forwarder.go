package amqp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/RichardMcSorley/breather/internal/event_bus"
	"github.com/RichardMcSorley/breather/internal/utils"
	"github.com/RichardMcSorley/breather/pkg/user"
)

// MessagePublisher is implemented by Publisher.
type MessagePublisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

// BillPaymentMessage is the wire form of a recorded bill payment.
type BillPaymentMessage struct {
	UserUid     string  `json:"userUid"`
	PaymentId   int     `json:"paymentId"`
	BillId      int     `json:"billId"`
	BillName    string  `json:"billName"`
	Amount      float64 `json:"amount"`
	PaymentDate string  `json:"paymentDate"`
	Notes       string  `json:"notes,omitempty"`
	RecordedAt  string  `json:"recordedAt"`
}

// ForwardBillPayments publishes every recorded bill payment under routingKey.
func ForwardBillPayments(bus *event_bus.EventBus, publisher MessagePublisher, routingKey string) (unsubscribe func()) {
	return event_bus.SubscribeTyped(bus, event_bus.BillPaymentRecordedType,
		func(e event_bus.EventT[event_bus.BillPaymentRecorded]) error {
			currentUser, err := user.CurrentUser(e.Context())
			if err != nil {
				return fmt.Errorf("failed to get current user: %w", err)
			}
			body, err := json.Marshal(BillPaymentMessage{
				UserUid:     currentUser.Uid,
				PaymentId:   e.Data.PaymentId,
				BillId:      e.Data.BillId,
				BillName:    e.Data.BillName,
				Amount:      utils.MoneyToFloat(e.Data.Amount),
				PaymentDate: utils.FormatDate(e.Data.PaymentDate),
				Notes:       e.Data.Notes,
				RecordedAt:  e.Timestamp.UTC().Format("2006-01-02T15:04:05Z"),
			})
			if err != nil {
				return fmt.Errorf("marshal message: %w", err)
			}
			return publisher.Publish(e.Context(), routingKey, body)
		})
}
