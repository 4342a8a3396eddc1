package bill_payment

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/RichardMcSorley/breather/internal/rest"
	"github.com/RichardMcSorley/breather/internal/utils"
	"github.com/RichardMcSorley/breather/pkg/bill"
	"github.com/RichardMcSorley/breather/pkg/user"
	"github.com/RichardMcSorley/breather/pkg/validation"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type BillPaymentDTO struct {
	Id          int     `json:"id"`
	BillId      int     `json:"billId"`
	Amount      float64 `json:"amount"`
	PaymentDate string  `json:"paymentDate"`
	Notes       string  `json:"notes,omitempty"`
}

type Handler struct {
	service Service
}

func NewBillPaymentHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetForBill(w http.ResponseWriter, r *http.Request) {
	billId, err := strconv.Atoi(mux.Vars(r)["billId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid bill id", err.Error())
		return
	}

	payments, err := h.service.GetForBill(r.Context(), billId)
	if err != nil {
		handleError(w, err)
		return
	}

	paymentsDTO := make([]BillPaymentDTO, 0, len(payments))
	for _, p := range payments {
		paymentsDTO = append(paymentsDTO, PaymentToDTO(p))
	}
	rest.WriteJSON(w, http.StatusOK, paymentsDTO)
}

func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	log.Debug("Recording bill payment")
	billId, err := strconv.Atoi(mux.Vars(r)["billId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid bill id", err.Error())
		return
	}

	var paymentDTO BillPaymentDTO
	if err := json.NewDecoder(r.Body).Decode(&paymentDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	paymentDTO.BillId = billId
	payment, err := DTOToPayment(paymentDTO)
	if err != nil {
		handleError(w, err)
		return
	}

	recorded, err := h.service.Record(r.Context(), payment)
	if err != nil {
		handleError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, PaymentToDTO(recorded))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	billId, err := strconv.Atoi(vars["billId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid bill id", err.Error())
		return
	}
	paymentId, err := strconv.Atoi(vars["paymentId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid payment id", err.Error())
		return
	}

	if err := h.service.Delete(r.Context(), billId, paymentId); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func handleError(w http.ResponseWriter, err error) {
	switch {
	case validation.IsValidationError(err):
		rest.WriteError(w, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, bill.ErrBillNotFound):
		rest.WriteError(w, http.StatusNotFound, "Bill not found", "")
	case errors.Is(err, ErrPaymentNotFound):
		rest.WriteError(w, http.StatusNotFound, "Payment not found", "")
	case errors.Is(err, user.ErrNoUser):
		rest.WriteError(w, http.StatusUnauthorized, "Authentication required", "")
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func PaymentToDTO(p BillPayment) BillPaymentDTO {
	return BillPaymentDTO{
		Id:          p.Id,
		BillId:      p.BillId,
		Amount:      utils.MoneyToFloat(p.Amount),
		PaymentDate: utils.FormatDate(p.PaymentDate),
		Notes:       p.Notes,
	}
}

func DTOToPayment(dto BillPaymentDTO) (BillPayment, error) {
	paymentDate, err := utils.ParseDate(dto.PaymentDate)
	if err != nil {
		return BillPayment{}, err
	}
	return BillPayment{
		Id:          dto.Id,
		BillId:      dto.BillId,
		Amount:      utils.MoneyFromFloat(dto.Amount),
		PaymentDate: paymentDate,
		Notes:       dto.Notes,
	}, nil
}
