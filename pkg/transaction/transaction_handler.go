package transaction

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/RichardMcSorley/breather/internal/rest"
	"github.com/RichardMcSorley/breather/internal/utils"
	"github.com/RichardMcSorley/breather/pkg/user"
	"github.com/RichardMcSorley/breather/pkg/validation"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type TransactionDTO struct {
	Id     int     `json:"id"`
	Amount float64 `json:"amount"`
	Type   string  `json:"type"`
	Date   string  `json:"date"`
	Time   string  `json:"time"`
	IsBill bool    `json:"isBill"`
	Tag    string  `json:"tag,omitempty"`
}

type Handler struct {
	service Service
	clock   utils.Clock
}

func NewTransactionHandler(service Service, clock utils.Clock) *Handler {
	return &Handler{service: service, clock: clock}
}

// GetInRange lists transactions between the "from" and "to" query dates. Missing bounds
// default to the current month.
func (h *Handler) GetInRange(w http.ResponseWriter, r *http.Request) {
	today := utils.Today(h.clock)
	from, err := dateParam(r, "from", utils.StartOfMonth(today))
	if err != nil {
		handleError(w, err)
		return
	}
	to, err := dateParam(r, "to", utils.EndOfMonth(today))
	if err != nil {
		handleError(w, err)
		return
	}

	transactions, err := h.service.GetInRange(r.Context(), from, to)
	if err != nil {
		handleError(w, err)
		return
	}

	transactionsDTO := make([]TransactionDTO, 0, len(transactions))
	for _, t := range transactions {
		transactionsDTO = append(transactionsDTO, TransactionToDTO(t))
	}
	rest.WriteJSON(w, http.StatusOK, transactionsDTO)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating transaction")
	var dto TransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	transaction, err := DTOToTransaction(dto)
	if err != nil {
		handleError(w, err)
		return
	}

	created, err := h.service.Create(r.Context(), transaction)
	if err != nil {
		handleError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, TransactionToDTO(created))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid transaction id", err.Error())
		return
	}
	var dto TransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	dto.Id = id
	transaction, err := DTOToTransaction(dto)
	if err != nil {
		handleError(w, err)
		return
	}

	updated, err := h.service.Update(r.Context(), transaction)
	if err != nil {
		handleError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, TransactionToDTO(updated))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid transaction id", err.Error())
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func dateParam(r *http.Request, name string, fallback time.Time) (time.Time, error) {
	if !r.URL.Query().Has(name) {
		return fallback, nil
	}
	return utils.ParseDate(r.URL.Query().Get(name))
}

func handleError(w http.ResponseWriter, err error) {
	switch {
	case validation.IsValidationError(err):
		rest.WriteError(w, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, ErrTransactionNotFound):
		rest.WriteError(w, http.StatusNotFound, "Transaction not found", "")
	case errors.Is(err, user.ErrNoUser):
		rest.WriteError(w, http.StatusUnauthorized, "Authentication required", "")
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func TransactionToDTO(t Transaction) TransactionDTO {
	return TransactionDTO{
		Id:     t.Id,
		Amount: utils.MoneyToFloat(t.Amount),
		Type:   string(t.Type),
		Date:   utils.FormatDate(t.Date),
		Time:   t.Time,
		IsBill: t.IsBill,
		Tag:    t.Tag,
	}
}

func DTOToTransaction(dto TransactionDTO) (Transaction, error) {
	date, err := utils.ParseDate(dto.Date)
	if err != nil {
		return Transaction{}, err
	}
	return Transaction{
		Id:     dto.Id,
		Amount: utils.MoneyFromFloat(dto.Amount),
		Type:   Type(dto.Type),
		Date:   date,
		Time:   dto.Time,
		IsBill: dto.IsBill,
		Tag:    dto.Tag,
	}, nil
}
