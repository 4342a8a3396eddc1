package transaction

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RichardMcSorley/breather/internal/utils"
	"github.com/RichardMcSorley/breather/pkg/user"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest() *mux.Router {
	clock := &utils.MockClock{FixedNow: time.Date(2024, 6, 14, 18, 0, 0, 0, time.UTC)}
	handler := NewTransactionHandler(NewTransactionService(NewStubTransactionRepo()), clock)
	r := mux.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := user.WithUser(req.Context(), user.User{Id: 1})
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.HandleFunc("/api/transactions", handler.GetInRange).Methods("GET")
	r.HandleFunc("/api/transactions", handler.Create).Methods("POST")
	r.HandleFunc("/api/transactions/{id}", handler.Update).Methods("PUT")
	r.HandleFunc("/api/transactions/{id}", handler.Delete).Methods("DELETE")
	return r
}

func post(t *testing.T, router *mux.Router, dto TransactionDTO) *httptest.ResponseRecorder {
	body, err := json.Marshal(dto)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/api/transactions", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestHandler_CreateAndList(t *testing.T) {
	router := setupHandlerTest()
	rr := post(t, router, TransactionDTO{Amount: 42.1, Type: "income", Date: "2024-06-14", Time: "10:15", Tag: "uber"})
	require.Equal(t, http.StatusCreated, rr.Code)
	rr = post(t, router, TransactionDTO{Amount: 10, Type: "expense", Date: "2024-05-30", Time: "10:15"})
	require.Equal(t, http.StatusCreated, rr.Code)

	// when listing without bounds only the current month is returned
	req := httptest.NewRequest("GET", "/api/transactions", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	// then
	require.Equal(t, http.StatusOK, rr.Code)
	var transactions []TransactionDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&transactions))
	require.Len(t, transactions, 1)
	assert.Equal(t, 42.1, transactions[0].Amount)
	assert.Equal(t, "2024-06-14", transactions[0].Date)

	// and explicit bounds reach back
	req = httptest.NewRequest("GET", "/api/transactions?from=2024-05-01&to=2024-06-30", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&transactions))
	assert.Len(t, transactions, 2)
}

func TestHandler_Create_InvalidDate(t *testing.T) {
	router := setupHandlerTest()

	rr := post(t, router, TransactionDTO{Amount: 1, Type: "income", Date: "14/06/2024", Time: "10:15"})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_GetInRange_InvalidDate(t *testing.T) {
	router := setupHandlerTest()
	req := httptest.NewRequest("GET", "/api/transactions?from=yesterday", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_Delete_NotFound(t *testing.T) {
	router := setupHandlerTest()
	req := httptest.NewRequest("DELETE", "/api/transactions/99", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
