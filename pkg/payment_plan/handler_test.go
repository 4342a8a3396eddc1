package payment_plan

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RichardMcSorley/breather/internal/rest"
	"github.com/RichardMcSorley/breather/pkg/bill"
	"github.com/RichardMcSorley/breather/pkg/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var billsProvider = func(ctx context.Context, includeInactive bool) ([]bill.Bill, error) {
	if _, err := user.CurrentId(ctx); err != nil {
		return nil, err
	}
	return []bill.Bill{
		{Id: 1, Name: "Rent", Amount: decimal.NewFromInt(1000), DueDate: 15, UseInPlan: true, IsActive: true},
	}, nil
}

func setupHandlerTest() *Handler {
	return NewHandler(NewService(billsProvider, decimal.NewFromInt(50)))
}

func postPlan(handler *Handler, body string, ctx context.Context) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/bills/payment-plan", bytes.NewBufferString(body)).WithContext(ctx)
	rr := httptest.NewRecorder()
	handler.GeneratePlan(rr, req)
	return rr
}

func TestHandler_GeneratePlan(t *testing.T) {
	ctx := user.WithUser(context.Background(), user.User{Id: 1})

	t.Run("should build plan with given daily payment", func(t *testing.T) {
		rr := postPlan(setupHandlerTest(), `{"startDate":"2024-01-15","dailyPayment":100}`, ctx)

		require.Equal(t, http.StatusOK, rr.Code)
		var plan PlanDTO
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&plan))
		assert.Len(t, plan.PaymentPlan, 10)
		assert.Equal(t, 100.0, plan.PaymentPlan[0].Payment)
		assert.Equal(t, 0.0, plan.PaymentPlan[9].RemainingBalance)
		assert.Len(t, plan.GroupedByDate["2024-01-20"], 1)
		assert.NotNil(t, plan.Warnings)
	})

	t.Run("should default daily payment", func(t *testing.T) {
		rr := postPlan(setupHandlerTest(), `{"startDate":"2024-01-15"}`, ctx)

		require.Equal(t, http.StatusOK, rr.Code)
		var plan PlanDTO
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&plan))
		assert.Len(t, plan.PaymentPlan, 20)
		assert.Equal(t, 50.0, plan.PaymentPlan[0].Payment)
	})

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"missing start date", `{"dailyPayment":100}`, "Start date is required"},
		{"malformed start date", `{"startDate":"15.01.2024"}`, `invalid date "15.01.2024", expected YYYY-MM-DD`},
		{"zero daily payment", `{"startDate":"2024-01-15","dailyPayment":0}`, "Daily payment must be greater than zero"},
	}
	for _, tt := range tests {
		t.Run("should return 400 for "+tt.name, func(t *testing.T) {
			rr := postPlan(setupHandlerTest(), tt.body, ctx)

			require.Equal(t, http.StatusBadRequest, rr.Code)
			var errorResponse rest.ErrorResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&errorResponse))
			assert.Equal(t, tt.message, errorResponse.Error)
		})
	}

	t.Run("should return 400 for malformed body", func(t *testing.T) {
		rr := postPlan(setupHandlerTest(), `{"startDate":`, ctx)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("should return 401 without user", func(t *testing.T) {
		rr := postPlan(setupHandlerTest(), `{"startDate":"2024-01-15"}`, context.Background())

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestService_GeneratePlan_UsesOnlyActiveBills(t *testing.T) {
	repo := bill.NewStubBillRepo()
	ctx := user.WithUser(context.Background(), user.User{Id: 1})
	billService := bill.NewBillService(repo)
	_, err := billService.Create(ctx, bill.Bill{Name: "Rent", Amount: decimal.NewFromInt(100), DueDate: 1, UseInPlan: true, IsActive: true})
	require.NoError(t, err)
	_, err = billService.Create(ctx, bill.Bill{Name: "Cancelled", Amount: decimal.NewFromInt(100), DueDate: 1, UseInPlan: true, IsActive: false})
	require.NoError(t, err)
	service := NewService(billService.GetAll, decimal.NewFromInt(50))

	plan, err := service.GeneratePlan(ctx, PlanRequest{StartDate: date(2024, 1, 1)})

	require.NoError(t, err)
	assert.Len(t, plan.PaymentPlan, 2)
	for _, e := range plan.PaymentPlan {
		assert.Equal(t, "Rent", e.Bill)
	}
}
