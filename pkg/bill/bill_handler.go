package bill

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/RichardMcSorley/breather/internal/rest"
	"github.com/RichardMcSorley/breather/internal/utils"
	"github.com/RichardMcSorley/breather/pkg/user"
	"github.com/RichardMcSorley/breather/pkg/validation"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type BillDTO struct {
	Id        int     `json:"id"`
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	DueDate   int     `json:"dueDate"`
	UseInPlan bool    `json:"useInPlan"`
	IsActive  bool    `json:"isActive"`
}

type Handler struct {
	billService Service
}

func NewBillHandler(billService Service) *Handler {
	return &Handler{billService: billService}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new bill")

	var billDTO BillDTO
	if err := json.NewDecoder(r.Body).Decode(&billDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}

	created, err := h.billService.Create(r.Context(), DTOToBill(billDTO))
	if err != nil {
		handleError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, BillToDTO(created))
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Has("includeInactive")

	bills, err := h.billService.GetAll(r.Context(), includeInactive)
	if err != nil {
		handleError(w, err)
		return
	}

	billsDTO := make([]BillDTO, 0, len(bills))
	for _, bill := range bills {
		billsDTO = append(billsDTO, BillToDTO(bill))
	}
	rest.WriteJSON(w, http.StatusOK, billsDTO)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	billId, err := billIdFromPath(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid bill id", err.Error())
		return
	}

	bill, err := h.billService.Get(r.Context(), billId)
	if err != nil {
		handleError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, BillToDTO(bill))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	billId, err := billIdFromPath(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid bill id", err.Error())
		return
	}
	var billDTO BillDTO
	if err := json.NewDecoder(r.Body).Decode(&billDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	if billDTO.Id != 0 && billDTO.Id != billId {
		rest.WriteError(w, http.StatusBadRequest, "Invalid bill id in request body", "")
		return
	}
	billDTO.Id = billId

	updated, err := h.billService.Update(r.Context(), DTOToBill(billDTO))
	if err != nil {
		handleError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, BillToDTO(updated))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	billId, err := billIdFromPath(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid bill id", err.Error())
		return
	}

	if err := h.billService.Delete(r.Context(), billId); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func billIdFromPath(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["billId"])
}

func handleError(w http.ResponseWriter, err error) {
	switch {
	case validation.IsValidationError(err):
		rest.WriteError(w, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, ErrBillNotFound):
		rest.WriteError(w, http.StatusNotFound, "Bill not found", "")
	case errors.Is(err, user.ErrNoUser):
		rest.WriteError(w, http.StatusUnauthorized, "Authentication required", "")
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func BillToDTO(bill Bill) BillDTO {
	return BillDTO{
		Id:        bill.Id,
		Name:      bill.Name,
		Amount:    utils.MoneyToFloat(bill.Amount),
		DueDate:   bill.DueDate,
		UseInPlan: bill.UseInPlan,
		IsActive:  bill.IsActive,
	}
}

func DTOToBill(dto BillDTO) Bill {
	return Bill{
		Id:        dto.Id,
		Name:      dto.Name,
		Amount:    utils.MoneyFromFloat(dto.Amount),
		DueDate:   dto.DueDate,
		UseInPlan: dto.UseInPlan,
		IsActive:  dto.IsActive,
	}
}
