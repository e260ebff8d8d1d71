package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/florimart/florimart/internal/domain"
	"github.com/florimart/florimart/internal/service"
	"github.com/rs/zerolog/log"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsSeller  bool   `json:"is_seller"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	pair, err := h.authService.Register(r.Context(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsSeller:  req.IsSeller,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			writeDetail(w, http.StatusBadRequest, domain.ErrEmailTaken.Error())
		case errors.Is(err, domain.ErrMissingFields):
			writeDetail(w, http.StatusBadRequest, domain.ErrMissingFields.Error())
		default:
			log.Error().Err(err).Msg("registration failed")
			writeDetail(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	pair, err := h.authService.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			// Same detail for unknown email and wrong password.
			writeDetail(w, http.StatusBadRequest, domain.ErrInvalidCredentials.Error())
			return
		}
		log.Error().Err(err).Msg("login failed")
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	pair, err := h.authService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenRevoked):
			writeDetail(w, http.StatusUnauthorized, "Token revoked")
		case errors.Is(err, service.ErrInvalidTokenPayload):
			writeDetail(w, http.StatusUnauthorized, "Invalid token payload")
		case errors.Is(err, service.ErrInvalidToken):
			writeDetail(w, http.StatusUnauthorized, "Invalid refresh token")
		default:
			log.Error().Err(err).Msg("token refresh failed")
			writeDetail(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// CheckToken confirms the presented token is valid; the auth
// middleware has already done the work by the time this runs.
func (h *AuthHandler) CheckToken(w http.ResponseWriter, r *http.Request) {
	writeDetail(w, http.StatusOK, "Token is active")
}
