package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RichardMcSorley/breather/internal/rest"
	"github.com/RichardMcSorley/breather/pkg/validation"
	log "github.com/sirupsen/logrus"
)

type UserDTO struct {
	Uid         string `json:"uid"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

type Handler struct {
	userService Service
}

func NewHandler(userService Service) *Handler {
	return &Handler{
		userService: userService,
	}
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating user")

	var userDTO UserDTO
	if err := json.NewDecoder(r.Body).Decode(&userDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	log.Tracef("Creating new user: %+v", userDTO)

	createdUser, err := h.userService.CreateUser(r.Context(), User{
		Username:    userDTO.Username,
		DisplayName: userDTO.DisplayName,
	})
	if err != nil {
		if validation.IsValidationError(err) {
			rest.WriteError(w, http.StatusBadRequest, err.Error(), "")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, userToDTO(createdUser))
}

func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	log.Trace("Getting current user")

	currentUser, err := h.userService.GetCurrentUser(r.Context())
	if err != nil {
		if errors.Is(err, ErrNoUser) {
			rest.WriteError(w, http.StatusUnauthorized, "Authentication required", "")
			return
		}
		if errors.Is(err, ErrUserNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	rest.WriteJSON(w, http.StatusOK, userToDTO(currentUser))
}

func userToDTO(user User) UserDTO {
	return UserDTO{
		Uid:         user.Uid,
		Username:    user.Username,
		DisplayName: user.DisplayName,
	}
}
