package payment_plan

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/RichardMcSorley/breather/internal/rest"
	"github.com/RichardMcSorley/breather/internal/utils"
	"github.com/RichardMcSorley/breather/pkg/user"
	"github.com/RichardMcSorley/breather/pkg/validation"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type PlanRequestDTO struct {
	StartDate    string   `json:"startDate"`
	DailyPayment *float64 `json:"dailyPayment,omitempty"`
}

type PlanEntryDTO struct {
	BillId           int     `json:"billId"`
	Bill             string  `json:"bill"`
	DueDate          string  `json:"dueDate"`
	Date             string  `json:"date"`
	Payment          float64 `json:"payment"`
	RemainingBalance float64 `json:"remainingBalance"`
}

type PlanDTO struct {
	PaymentPlan   []PlanEntryDTO            `json:"paymentPlan"`
	GroupedByDate map[string][]PlanEntryDTO `json:"groupedByDate"`
	Warnings      []string                  `json:"warnings"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	log.Debug("Generating payment plan")

	var requestDTO PlanRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&requestDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	log.Tracef("Payment plan request: %+v", requestDTO)

	// a missing start date is left zero and rejected by the plan builder
	request := PlanRequest{}
	if strings.TrimSpace(requestDTO.StartDate) != "" {
		startDate, err := utils.ParseDate(requestDTO.StartDate)
		if err != nil {
			handleError(w, err)
			return
		}
		request.StartDate = startDate
	}
	if requestDTO.DailyPayment != nil {
		dailyPayment := decimal.NewFromFloat(*requestDTO.DailyPayment)
		request.DailyPayment = &dailyPayment
	}

	plan, err := h.service.GeneratePlan(r.Context(), request)
	if err != nil {
		handleError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, PlanToDTO(plan))
}

func handleError(w http.ResponseWriter, err error) {
	switch {
	case validation.IsValidationError(err):
		rest.WriteError(w, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, user.ErrNoUser):
		rest.WriteError(w, http.StatusUnauthorized, "Authentication required", "")
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func PlanToDTO(plan Plan) PlanDTO {
	entries := make([]PlanEntryDTO, 0, len(plan.PaymentPlan))
	for _, e := range plan.PaymentPlan {
		entries = append(entries, entryToDTO(e))
	}
	grouped := make(map[string][]PlanEntryDTO, len(plan.GroupedByDate))
	for date, dayEntries := range plan.GroupedByDate {
		for _, e := range dayEntries {
			grouped[date] = append(grouped[date], entryToDTO(e))
		}
	}
	warnings := plan.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return PlanDTO{
		PaymentPlan:   entries,
		GroupedByDate: grouped,
		Warnings:      warnings,
	}
}

func entryToDTO(e PlanEntry) PlanEntryDTO {
	return PlanEntryDTO{
		BillId:           e.BillId,
		Bill:             e.Bill,
		DueDate:          e.DueDate,
		Date:             e.Date,
		Payment:          utils.MoneyToFloat(e.Payment),
		RemainingBalance: utils.MoneyToFloat(e.RemainingBalance),
	}
}
