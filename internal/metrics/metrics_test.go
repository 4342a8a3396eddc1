package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RichardMcSorley/breather/internal/event_bus"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Middleware(t *testing.T) {
	// given
	m := New()
	r := mux.NewRouter()
	r.Use(m.Middleware)
	r.HandleFunc("/api/bills/{billId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods("GET")
	r.Handle("/metrics", m.Handler()).Methods("GET")

	// when
	for _, id := range []string{"1", "2"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("GET", "/api/bills/"+id, nil))
		require.Equal(t, http.StatusNotFound, rr.Code)
	}

	// then
	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/bills/{billId}", "404")))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `breather_http_requests_total{method="GET",route="/api/bills/{billId}",status="404"} 2`)
}

func TestMetrics_SubscribeToBillPayments(t *testing.T) {
	// given
	m := New()
	bus := event_bus.NewEventBus()
	unsubscribe := m.SubscribeToBillPayments(bus)
	defer unsubscribe()

	// when
	for _, amount := range []string{"100.25", "49.75"} {
		err := bus.Publish(event_bus.NewEvent(context.Background(), event_bus.BillPaymentRecordedType, event_bus.BillPaymentRecorded{
			BillId:      1,
			Amount:      decimal.RequireFromString(amount),
			PaymentDate: time.Now(),
		}))
		require.NoError(t, err)
	}

	// then
	assert.Equal(t, 2.0, testutil.ToFloat64(m.billPayments))
	assert.Equal(t, 150.0, testutil.ToFloat64(m.billPaymentsAmount))
}
