package summary

import (
	"errors"
	"net/http"

	"github.com/RichardMcSorley/breather/internal/rest"
	"github.com/RichardMcSorley/breather/internal/utils"
	"github.com/RichardMcSorley/breather/pkg/user"
	"github.com/RichardMcSorley/breather/pkg/validation"
	log "github.com/sirupsen/logrus"
)

type SnapshotDTO struct {
	AsOf               string   `json:"asOf"`
	ViewMode           string   `json:"viewMode"`
	PeriodStart        string   `json:"periodStart"`
	PeriodEnd          string   `json:"periodEnd"`
	GrossTotal         float64  `json:"grossTotal"`
	VariableExpenses   float64  `json:"variableExpenses"`
	FreeCash           float64  `json:"freeCash"`
	TotalBillsDue      float64  `json:"totalBillsDue"`
	UnpaidBills        float64  `json:"unpaidBills"`
	TodayIncome        float64  `json:"todayIncome"`
	TodayExpenses      float64  `json:"todayExpenses"`
	TodayNet           float64  `json:"todayNet"`
	MileageMilesLast30 float64  `json:"mileageMilesLast30"`
	IrsMileageRate     float64  `json:"irsMileageRate"`
	MileageSavings     float64  `json:"mileageSavings"`
	EarningsPerMile    *float64 `json:"earningsPerMile"`
	EarningsPerHour    *float64 `json:"earningsPerHour"`
}

type Handler struct {
	service  Service
	renderer Renderer
	clock    utils.Clock
}

func NewHandler(service Service, renderer Renderer, clock utils.Clock) *Handler {
	return &Handler{service: service, renderer: renderer, clock: clock}
}

// GetSummary serves the snapshot of the "date" query parameter, today when absent.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	asOf := utils.Today(h.clock)
	if query.Has("date") {
		date, err := utils.ParseDate(query.Get("date"))
		if err != nil {
			handleError(w, err)
			return
		}
		asOf = date
	}
	viewMode := ParseViewMode(query.Get("viewMode"))
	log.Debugf("Getting summary for %s (%s)", utils.FormatDate(asOf), viewMode)

	snapshot, err := h.service.GetSummary(r.Context(), SummaryRequest{AsOf: asOf, ViewMode: viewMode})
	if err != nil {
		handleError(w, err)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		csv, err := h.renderer.RenderSummary(snapshot)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(csv)); err != nil {
			log.Errorf("failed to write csv summary: %v", err)
		}
		return
	}
	rest.WriteJSON(w, http.StatusOK, SnapshotToDTO(snapshot))
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

func SnapshotToDTO(s Snapshot) SnapshotDTO {
	miles, _ := s.MileageMilesLast30.Float64()
	rate, _ := s.IrsMileageRate.Float64()
	return SnapshotDTO{
		AsOf:               utils.FormatDate(s.AsOf),
		ViewMode:           string(s.ViewMode),
		PeriodStart:        utils.FormatDate(s.PeriodStart),
		PeriodEnd:          utils.FormatDate(s.PeriodEnd),
		GrossTotal:         utils.MoneyToFloat(s.GrossTotal),
		VariableExpenses:   utils.MoneyToFloat(s.VariableExpenses),
		FreeCash:           utils.MoneyToFloat(s.FreeCash),
		TotalBillsDue:      utils.MoneyToFloat(s.TotalBillsDue),
		UnpaidBills:        utils.MoneyToFloat(s.UnpaidBills),
		TodayIncome:        utils.MoneyToFloat(s.TodayIncome),
		TodayExpenses:      utils.MoneyToFloat(s.TodayExpenses),
		TodayNet:           utils.MoneyToFloat(s.TodayNet),
		MileageMilesLast30: miles,
		IrsMileageRate:     rate,
		MileageSavings:     utils.MoneyToFloat(s.MileageSavings),
		EarningsPerMile:    utils.OptionalMoneyToFloat(s.EarningsPerMile),
		EarningsPerHour:    utils.OptionalMoneyToFloat(s.EarningsPerHour),
	}
}
