package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/florimart/florimart/internal/api/middleware"
	"github.com/florimart/florimart/internal/domain"
	"github.com/florimart/florimart/internal/service"
	"github.com/rs/zerolog/log"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type UserResponse struct {
	ID          uint   `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DisplayName string `json:"display_name"`
	IsSeller    bool   `json:"is_seller"`
	IsAdmin     bool   `json:"is_admin"`
}

func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		DisplayName: user.DisplayName,
		IsSeller:    user.Role.IsSeller(),
		IsAdmin:     user.Role.IsAdmin(),
	}
}

type UpdateProfileRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsSeller  bool   `json:"is_seller"`
}

type UpdatePasswordRequest struct {
	NewPassword string `json:"new_password"`
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeDetail(w, http.StatusNotFound, domain.ErrUserNotFound.Error())
			return
		}
		log.Error().Err(err).Msg("profile lookup failed")
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.userService.UpdateProfile(r.Context(), userID, service.ProfileUpdate{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsSeller:  req.IsSeller,
	}); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			writeDetail(w, http.StatusNotFound, domain.ErrUserNotFound.Error())
		case errors.Is(err, domain.ErrMissingFields):
			writeDetail(w, http.StatusBadRequest, domain.ErrMissingFields.Error())
		default:
			log.Error().Err(err).Msg("profile update failed")
			writeDetail(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeDetail(w, http.StatusOK, "Profile updated")
}

func (h *UserHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	var req UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.userService.UpdatePassword(r.Context(), userID, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, domain.ErrPasswordTooShort):
			writeDetail(w, http.StatusBadRequest, domain.ErrPasswordTooShort.Error())
		case errors.Is(err, domain.ErrUserNotFound):
			writeDetail(w, http.StatusNotFound, domain.ErrUserNotFound.Error())
		default:
			log.Error().Err(err).Msg("password update failed")
			writeDetail(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeDetail(w, http.StatusOK, "Password updated")
}
