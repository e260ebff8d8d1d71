package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/florimart/florimart/internal/api/middleware"
	"github.com/florimart/florimart/internal/domain"
	"github.com/florimart/florimart/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type OrderHandler struct {
	orderService  *service.OrderService
	accessService *service.AccessService
}

func NewOrderHandler(orderService *service.OrderService, accessService *service.AccessService) *OrderHandler {
	return &OrderHandler{
		orderService:  orderService,
		accessService: accessService,
	}
}

type OrderItemRequest struct {
	FlowerID uint `json:"flower_id"`
	Quantity int  `json:"quantity"`
}

type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items"`
}

type OrderItemResponse struct {
	FlowerID uint `json:"flower_id"`
	Quantity int  `json:"quantity"`
}

type OrderResponse struct {
	OrderID   uint                `json:"order_id"`
	BuyerID   uint                `json:"buyer_id"`
	OrderDate string              `json:"order_date"`
	IsClosed  bool                `json:"is_closed"`
	SellerID  *uint               `json:"seller_id"`
	Items     []OrderItemResponse `json:"items"`
}

func toOrderResponse(d *service.OrderDetail) OrderResponse {
	items := make([]OrderItemResponse, len(d.Items))
	for i, item := range d.Items {
		items[i] = OrderItemResponse{FlowerID: item.FlowerID, Quantity: item.Quantity}
	}
	return OrderResponse{
		OrderID:   d.OrderID,
		BuyerID:   d.BuyerID,
		OrderDate: d.OrderDate.Format(time.DateOnly),
		IsClosed:  d.Closed,
		SellerID:  d.SellerID,
		Items:     items,
	}
}

// Create places an order for the calling buyer. Sellers and admins are
// rejected: buying is the one operation their capabilities do not cover.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	buyer, err := h.accessService.RequireBuyer(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			writeDetail(w, http.StatusForbidden, "Only buyers may place orders")
			return
		}
		log.Error().Err(err).Msg("buyer check failed")
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	items := make([]service.OrderItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.OrderItemInput{FlowerID: item.FlowerID, Quantity: item.Quantity}
	}

	if err := h.orderService.PlaceOrder(r.Context(), buyer.ID, items); err != nil {
		switch {
		case errors.Is(err, domain.ErrFlowerNotFound):
			writeDetail(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrBuyerNotFound):
			writeDetail(w, http.StatusNotFound, domain.ErrBuyerNotFound.Error())
		case errors.Is(err, domain.ErrEmptyOrder), errors.Is(err, domain.ErrInvalidQuantity):
			writeDetail(w, http.StatusBadRequest, err.Error())
		default:
			log.Error().Err(err).Uint("buyerID", buyer.ID).Msg("order placement failed")
			writeDetail(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeDetail(w, http.StatusOK, "Order accepted")
}

// ListMine returns the calling buyer's orders.
func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	buyer, err := h.accessService.RequireBuyer(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			writeDetail(w, http.StatusForbidden, "Only buyers may list their orders")
			return
		}
		log.Error().Err(err).Msg("buyer check failed")
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	details, err := h.orderService.ListForBuyer(r.Context(), buyer.ID)
	if err != nil {
		log.Error().Err(err).Uint("buyerID", buyer.ID).Msg("order listing failed")
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := make([]OrderResponse, len(details))
	for i, d := range details {
		resp[i] = toOrderResponse(d)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns one order's detail. Unknown ids, empty aggregates and
// orders the caller may not see all answer 404.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	orderID, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	caller, err := h.accessService.Identify(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			writeDetail(w, http.StatusForbidden, "Unknown principal")
			return
		}
		log.Error().Err(err).Msg("caller lookup failed")
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	detail, err := h.orderService.GetOrderDetail(r.Context(), uint(orderID), caller)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			writeDetail(w, http.StatusNotFound, domain.ErrOrderNotFound.Error())
			return
		}
		log.Error().Err(err).Uint64("orderID", orderID).Msg("order detail failed")
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(detail))
}
