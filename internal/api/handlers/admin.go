package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/florimart/florimart/internal/api/middleware"
	"github.com/florimart/florimart/internal/domain"
	"github.com/florimart/florimart/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type AdminHandler struct {
	adminService  *service.AdminService
	userService   *service.UserService
	flowerService *service.FlowerService
	orderService  *service.OrderService
	accessService *service.AccessService
}

func NewAdminHandler(adminService *service.AdminService, userService *service.UserService, flowerService *service.FlowerService, orderService *service.OrderService, accessService *service.AccessService) *AdminHandler {
	return &AdminHandler{
		adminService:  adminService,
		userService:   userService,
		flowerService: flowerService,
		orderService:  orderService,
		accessService: accessService,
	}
}

type AdminCreateUserRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// CreateUser registers a user with an explicit role, including admin.
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req AdminCreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	role := domain.Role(req.Role)
	if req.Role == "" {
		role = domain.RoleBuyer
	}

	user, err := h.adminService.CreateUser(r.Context(), service.CreateUserInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			writeDetail(w, http.StatusBadRequest, domain.ErrEmailTaken.Error())
		case errors.Is(err, domain.ErrMissingFields), errors.Is(err, domain.ErrInvalidRole):
			writeDetail(w, http.StatusBadRequest, err.Error())
		default:
			log.Error().Err(err).Msg("admin user creation failed")
			writeDetail(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	users, err := h.adminService.ListUsers(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("user listing failed")
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = toUserResponse(u)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	userID, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), uint(userID), service.ProfileUpdate{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsSeller:  req.IsSeller,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			writeDetail(w, http.StatusNotFound, domain.ErrUserNotFound.Error())
		case errors.Is(err, domain.ErrMissingFields):
			writeDetail(w, http.StatusBadRequest, domain.ErrMissingFields.Error())
		default:
			log.Error().Err(err).Uint64("userID", userID).Msg("admin user update failed")
			writeDetail(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	userID, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	if err := h.adminService.DeleteUser(r.Context(), uint(userID)); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeDetail(w, http.StatusNotFound, domain.ErrUserNotFound.Error())
			return
		}
		log.Error().Err(err).Uint64("userID", userID).Msg("admin user deletion failed")
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeDetail(w, http.StatusOK, "User deleted")
}

type AdminCreateFlowerRequest struct {
	FlowerCreateRequest
	SellerID uint `json:"seller_id"`
}

// AddFlower creates a flower attributed to a chosen seller.
func (h *AdminHandler) AddFlower(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req AdminCreateFlowerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	flower, err := h.flowerService.Create(r.Context(), service.FlowerInput{
		Name:      req.Name,
		Variety:   req.Variety,
		Price:     req.Price,
		TypeID:    req.TypeID,
		SeasonID:  req.SeasonID,
		UsageID:   req.UsageID,
		CountryID: req.CountryID,
	}, req.SellerID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPrice), errors.Is(err, domain.ErrMissingFields):
			writeDetail(w, http.StatusBadRequest, err.Error())
		default:
			log.Error().Err(err).Msg("admin flower creation failed")
			writeDetail(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toFlowerResponse(flower, []uint{req.SellerID}))
}

// Orders lists every order in the system.
func (h *AdminHandler) Orders(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	details, err := h.orderService.ListAll(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("admin order listing failed")
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := make([]OrderResponse, len(details))
	for i, d := range details {
		resp[i] = toOrderResponse(d)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return false
	}

	if _, err := h.accessService.Require(r.Context(), userID, service.CapabilityAdmin); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			writeDetail(w, http.StatusForbidden, "Admins only")
			return false
		}
		log.Error().Err(err).Msg("admin check failed")
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return false
	}
	return true
}
