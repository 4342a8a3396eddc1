package mileage

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
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type EntryDTO struct {
	Id             int     `json:"id"`
	Odometer       float64 `json:"odometer"`
	Date           string  `json:"date"`
	Classification string  `json:"classification"`
}

type Handler struct {
	service Service
	clock   utils.Clock
}

func NewMileageHandler(service Service, clock utils.Clock) *Handler {
	return &Handler{service: service, clock: clock}
}

// GetAll lists entries of the trailing 30 days unless "from" and "to" are given.
func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	to := utils.Today(h.clock)
	from := to.AddDate(0, 0, -30)
	var err error
	if query.Has("from") {
		if from, err = utils.ParseDate(query.Get("from")); err != nil {
			handleError(w, err)
			return
		}
	}
	if query.Has("to") {
		if to, err = utils.ParseDate(query.Get("to")); err != nil {
			handleError(w, err)
			return
		}
	}

	entries, err := h.service.GetInRange(r.Context(), from, to)
	if err != nil {
		handleError(w, err)
		return
	}
	entriesDTO := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		entriesDTO = append(entriesDTO, EntryToDTO(e))
	}
	rest.WriteJSON(w, http.StatusOK, entriesDTO)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating mileage entry")
	var dto EntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	date, err := utils.ParseDate(dto.Date)
	if err != nil {
		handleError(w, err)
		return
	}
	classification := Classification(dto.Classification)
	if classification == "" {
		classification = Work
	}

	created, err := h.service.Create(r.Context(), Entry{
		Odometer:       decimal.NewFromFloat(dto.Odometer),
		Date:           date,
		Classification: classification,
	})
	if err != nil {
		handleError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, EntryToDTO(created))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["entryId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid mileage entry id", err.Error())
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func handleError(w http.ResponseWriter, err error) {
	switch {
	case validation.IsValidationError(err):
		rest.WriteError(w, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, ErrEntryNotFound):
		rest.WriteError(w, http.StatusNotFound, "Mileage entry not found", "")
	case errors.Is(err, user.ErrNoUser):
		rest.WriteError(w, http.StatusUnauthorized, "Authentication required", "")
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func EntryToDTO(e Entry) EntryDTO {
	odometer, _ := e.Odometer.Float64()
	return EntryDTO{
		Id:             e.Id,
		Odometer:       odometer,
		Date:           utils.FormatDate(e.Date),
		Classification: string(e.Classification),
	}
}
