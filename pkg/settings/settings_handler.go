package settings

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RichardMcSorley/breather/internal/rest"
	"github.com/RichardMcSorley/breather/pkg/user"
	"github.com/RichardMcSorley/breather/pkg/validation"
	"github.com/shopspring/decimal"
)

type SettingsDTO struct {
	IrsMileageDeduction float64 `json:"irsMileageDeduction"`
}

type Handler struct {
	service Service
}

func NewSettingsHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.Get(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, SettingsToDTO(settings))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var dto SettingsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	updated, err := h.service.Update(r.Context(), Settings{
		IrsMileageDeduction: decimal.NewFromFloat(dto.IrsMileageDeduction),
	})
	if err != nil {
		handleError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, SettingsToDTO(updated))
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

func SettingsToDTO(s Settings) SettingsDTO {
	rate, _ := s.IrsMileageDeduction.Float64()
	return SettingsDTO{IrsMileageDeduction: rate}
}
