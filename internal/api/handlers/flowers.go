package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/florimart/florimart/internal/api/middleware"
	"github.com/florimart/florimart/internal/domain"
	"github.com/florimart/florimart/internal/repository"
	"github.com/florimart/florimart/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type FlowerHandler struct {
	flowerService *service.FlowerService
	accessService *service.AccessService
}

func NewFlowerHandler(flowerService *service.FlowerService, accessService *service.AccessService) *FlowerHandler {
	return &FlowerHandler{
		flowerService: flowerService,
		accessService: accessService,
	}
}

type FlowerResponse struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Variety   string  `json:"variety"`
	Price     float64 `json:"price"`
	TypeID    uint    `json:"type_id"`
	SeasonID  uint    `json:"season_id"`
	UsageID   uint    `json:"usage_id"`
	CountryID uint    `json:"country_id"`
	SellerIDs []uint  `json:"seller_ids"`
}

func toFlowerResponse(flower *domain.Flower, sellerIDs []uint) FlowerResponse {
	if sellerIDs == nil {
		sellerIDs = []uint{}
	}
	return FlowerResponse{
		ID:        flower.ID,
		Name:      flower.Name,
		Variety:   flower.Variety,
		Price:     flower.Price,
		TypeID:    flower.TypeID,
		SeasonID:  flower.SeasonID,
		UsageID:   flower.UsageID,
		CountryID: flower.CountryID,
		SellerIDs: sellerIDs,
	}
}

// List is the public catalog listing. Store failures are deliberately
// collapsed into one generic response here.
func (h *FlowerHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := repository.FlowerFilter{
		ID:        queryUint(q.Get("flower_id")),
		Name:      q.Get("name"),
		TypeID:    queryUint(q.Get("type_id")),
		SeasonID:  queryUint(q.Get("season_id")),
		UsageID:   queryUint(q.Get("usage_id")),
		CountryID: queryUint(q.Get("country_id")),
		MinPrice:  queryFloat(q.Get("min_price")),
		MaxPrice:  queryFloat(q.Get("max_price")),
		SellerID:  queryUint(q.Get("seller_id")),
	}
	limit := int(queryUint(q.Get("limit")))
	offset := int(queryUint(q.Get("offset")))

	views, err := h.flowerService.List(r.Context(), filter, limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("flower listing failed")
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := make([]FlowerResponse, len(views))
	for i, v := range views {
		resp[i] = toFlowerResponse(&v.Flower, v.SellerIDs)
	}
	writeJSON(w, http.StatusOK, resp)
}

type LookupCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CountryCreateRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

func (h *FlowerHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.flowerService.ListTypes(r.Context())
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, types)
}

func (h *FlowerHandler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	seasons, err := h.flowerService.ListSeasons(r.Context())
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, seasons)
}

func (h *FlowerHandler) ListUsages(w http.ResponseWriter, r *http.Request) {
	usages, err := h.flowerService.ListUsages(r.Context())
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, usages)
}

func (h *FlowerHandler) ListCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.flowerService.ListCountries(r.Context())
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, countries)
}

func (h *FlowerHandler) CreateType(w http.ResponseWriter, r *http.Request) {
	if !h.requireCatalogAccess(w, r) {
		return
	}
	var req LookupCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	t, err := h.flowerService.CreateType(r.Context(), req.Name, req.Description)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *FlowerHandler) CreateSeason(w http.ResponseWriter, r *http.Request) {
	if !h.requireCatalogAccess(w, r) {
		return
	}
	var req LookupCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	season, err := h.flowerService.CreateSeason(r.Context(), req.Name, req.Description)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, season)
}

func (h *FlowerHandler) CreateUsage(w http.ResponseWriter, r *http.Request) {
	if !h.requireCatalogAccess(w, r) {
		return
	}
	var req LookupCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	usage, err := h.flowerService.CreateUsage(r.Context(), req.Name, req.Description)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, usage)
}

func (h *FlowerHandler) CreateCountry(w http.ResponseWriter, r *http.Request) {
	if !h.requireCatalogAccess(w, r) {
		return
	}
	var req CountryCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	country, err := h.flowerService.CreateCountry(r.Context(), req.Name, req.Code)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, country)
}

func (h *FlowerHandler) DeleteType(w http.ResponseWriter, r *http.Request) {
	h.deleteLookup(w, r, h.flowerService.DeleteType, "Flower type deleted")
}

func (h *FlowerHandler) DeleteSeason(w http.ResponseWriter, r *http.Request) {
	h.deleteLookup(w, r, h.flowerService.DeleteSeason, "Flowering season deleted")
}

func (h *FlowerHandler) DeleteUsage(w http.ResponseWriter, r *http.Request) {
	h.deleteLookup(w, r, h.flowerService.DeleteUsage, "Flower usage deleted")
}

func (h *FlowerHandler) DeleteCountry(w http.ResponseWriter, r *http.Request) {
	h.deleteLookup(w, r, h.flowerService.DeleteCountry, "Country deleted")
}

func (h *FlowerHandler) deleteLookup(w http.ResponseWriter, r *http.Request, del func(ctx context.Context, id uint) error, detail string) {
	if !h.requireCatalogAccess(w, r) {
		return
	}
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid id")
		return
	}
	if err := del(r.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrLookupNotFound) {
			writeDetail(w, http.StatusNotFound, domain.ErrLookupNotFound.Error())
			return
		}
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeDetail(w, http.StatusOK, detail)
}

// requireCatalogAccess enforces the seller-or-admin gate on lookup
// mutation. Writes the error response itself and reports whether the
// caller may proceed.
func (h *FlowerHandler) requireCatalogAccess(w http.ResponseWriter, r *http.Request) bool {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return false
	}
	if _, err := h.accessService.Require(r.Context(), userID, service.CapabilitySeller, service.CapabilityAdmin); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			writeDetail(w, http.StatusForbidden, "Sellers and admins only")
			return false
		}
		log.Error().Err(err).Msg("capability check failed")
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return false
	}
	return true
}

func queryUint(s string) uint {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}

func queryFloat(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
