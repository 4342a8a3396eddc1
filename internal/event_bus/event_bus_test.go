package event_bus

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_Publish(t *testing.T) {
	t.Run("should call handlers in subscription order", func(t *testing.T) {
		bus := NewEventBus()
		var calls []string
		bus.Subscribe("test", func(e Event) error { calls = append(calls, "first"); return nil })
		bus.Subscribe("test", func(e Event) error { calls = append(calls, "second"); return nil })
		bus.Subscribe("other", func(e Event) error { calls = append(calls, "other"); return nil })

		err := bus.Publish(NewEvent(context.Background(), "test", nil))

		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second"}, calls)
	})

	t.Run("should keep going after failing and panicking handlers", func(t *testing.T) {
		bus := NewEventBus()
		called := false
		bus.Subscribe("test", func(e Event) error { return errors.New("boom") })
		bus.Subscribe("test", func(e Event) error { panic("oops") })
		bus.Subscribe("test", func(e Event) error { called = true; return nil })

		err := bus.Publish(NewEvent(context.Background(), "test", nil))

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "2 handler(s) failed")
		assert.True(t, called)
	})

	t.Run("should not call handlers for cancelled context", func(t *testing.T) {
		bus := NewEventBus()
		called := false
		bus.Subscribe("test", func(e Event) error { called = true; return nil })
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := bus.Publish(NewEvent(ctx, "test", nil))

		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
	})

	t.Run("should stop calling unsubscribed handler", func(t *testing.T) {
		bus := NewEventBus()
		count := 0
		unsubscribe := bus.Subscribe("test", func(e Event) error { count++; return nil })

		require.NoError(t, bus.Publish(NewEvent(context.Background(), "test", nil)))
		unsubscribe()
		require.NoError(t, bus.Publish(NewEvent(context.Background(), "test", nil)))

		assert.Equal(t, 1, count)
	})
}

func TestSubscribeTyped(t *testing.T) {
	bus := NewEventBus()
	var received []BillPaymentRecorded
	SubscribeTyped(bus, BillPaymentRecordedType, func(e EventT[BillPaymentRecorded]) error {
		received = append(received, e.Data)
		return nil
	})

	payment := BillPaymentRecorded{BillId: 3, BillName: "Rent", Amount: decimal.NewFromInt(100)}
	require.NoError(t, bus.Publish(NewEvent(context.Background(), BillPaymentRecordedType, payment)))
	require.NoError(t, bus.Publish(NewEvent(context.Background(), BillPaymentRecordedType, "not a payment")))

	require.Len(t, received, 1)
	assert.Equal(t, "Rent", received[0].BillName)
}
