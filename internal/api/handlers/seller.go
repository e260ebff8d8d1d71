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

type SellerHandler struct {
	flowerService *service.FlowerService
	orderService  *service.OrderService
	accessService *service.AccessService
}

func NewSellerHandler(flowerService *service.FlowerService, orderService *service.OrderService, accessService *service.AccessService) *SellerHandler {
	return &SellerHandler{
		flowerService: flowerService,
		orderService:  orderService,
		accessService: accessService,
	}
}

type FlowerCreateRequest struct {
	Name      string  `json:"name"`
	Variety   string  `json:"variety"`
	Price     float64 `json:"price"`
	TypeID    uint    `json:"type_id"`
	SeasonID  uint    `json:"season_id"`
	UsageID   uint    `json:"usage_id"`
	CountryID uint    `json:"country_id"`
}

type FlowerUpdateRequest struct {
	Name      *string  `json:"name"`
	Variety   *string  `json:"variety"`
	Price     *float64 `json:"price"`
	TypeID    *uint    `json:"type_id"`
	SeasonID  *uint    `json:"season_id"`
	UsageID   *uint    `json:"usage_id"`
	CountryID *uint    `json:"country_id"`
}

// AddFlower creates a flower listed by the calling seller.
func (h *SellerHandler) AddFlower(w http.ResponseWriter, r *http.Request) {
	seller, ok := h.requireSeller(w, r)
	if !ok {
		return
	}

	var req FlowerCreateRequest
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
	}, seller.ID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPrice), errors.Is(err, domain.ErrMissingFields):
			writeDetail(w, http.StatusBadRequest, err.Error())
		default:
			log.Error().Err(err).Msg("flower creation failed")
			writeDetail(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toFlowerResponse(flower, []uint{seller.ID}))
}

func (h *SellerHandler) UpdateFlower(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireSeller(w, r); !ok {
		return
	}

	flowerID, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid flower id")
		return
	}

	var req FlowerUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	flower, err := h.flowerService.Update(r.Context(), uint(flowerID), service.FlowerUpdate{
		Name:      req.Name,
		Variety:   req.Variety,
		Price:     req.Price,
		TypeID:    req.TypeID,
		SeasonID:  req.SeasonID,
		UsageID:   req.UsageID,
		CountryID: req.CountryID,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrFlowerNotFound):
			writeDetail(w, http.StatusNotFound, domain.ErrFlowerNotFound.Error())
		case errors.Is(err, domain.ErrInvalidPrice):
			writeDetail(w, http.StatusBadRequest, domain.ErrInvalidPrice.Error())
		default:
			log.Error().Err(err).Uint64("flowerID", flowerID).Msg("flower update failed")
			writeDetail(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	sellerIDs, err := h.flowerService.SellerIDs(r.Context(), flower.ID)
	if err != nil {
		sellerIDs = nil
	}
	writeJSON(w, http.StatusOK, toFlowerResponse(flower, sellerIDs))
}

func (h *SellerHandler) DeleteFlower(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireSeller(w, r); !ok {
		return
	}

	flowerID, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid flower id")
		return
	}

	if err := h.flowerService.Delete(r.Context(), uint(flowerID)); err != nil {
		if errors.Is(err, domain.ErrFlowerNotFound) {
			writeDetail(w, http.StatusNotFound, domain.ErrFlowerNotFound.Error())
			return
		}
		log.Error().Err(err).Uint64("flowerID", flowerID).Msg("flower deletion failed")
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeDetail(w, http.StatusOK, "Flower deleted")
}

// Orders lists orders containing at least one of the caller's flowers.
func (h *SellerHandler) Orders(w http.ResponseWriter, r *http.Request) {
	seller, ok := h.requireSeller(w, r)
	if !ok {
		return
	}

	details, err := h.orderService.ListForSeller(r.Context(), seller.ID)
	if err != nil {
		log.Error().Err(err).Uint("sellerID", seller.ID).Msg("seller order listing failed")
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := make([]OrderResponse, len(details))
	for i, d := range details {
		resp[i] = toOrderResponse(d)
	}
	writeJSON(w, http.StatusOK, resp)
}

// ToggleOrderStatus flips an order's closed flag. The flag is a plain
// toggle: callers must know the current state to know the result.
func (h *SellerHandler) ToggleOrderStatus(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireSeller(w, r); !ok {
		return
	}

	orderID, err := strconv.ParseUint(r.URL.Query().Get("order_id"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	if err := h.orderService.ToggleStatus(r.Context(), uint(orderID)); err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			writeDetail(w, http.StatusNotFound, domain.ErrOrderNotFound.Error())
			return
		}
		log.Error().Err(err).Uint64("orderID", orderID).Msg("order status toggle failed")
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeDetail(w, http.StatusOK, "Order status updated")
}

func (h *SellerHandler) requireSeller(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return nil, false
	}

	user, err := h.accessService.Require(r.Context(), userID, service.CapabilitySeller, service.CapabilityAdmin)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			writeDetail(w, http.StatusForbidden, "Sellers and admins only")
			return nil, false
		}
		log.Error().Err(err).Msg("capability check failed")
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return nil, false
	}
	return user, true
}
