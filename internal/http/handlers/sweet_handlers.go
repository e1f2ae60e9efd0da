package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/rogerio-castellano/sweet-shop/internal/cache"
	"github.com/rogerio-castellano/sweet-shop/internal/filter"
	"github.com/rogerio-castellano/sweet-shop/internal/models"
	"github.com/rogerio-castellano/sweet-shop/internal/repo"
	"github.com/rogerio-castellano/sweet-shop/pkg/apierror"
)

const sweetsCacheKey = "sweets:all"

// GetSweetsHandler godoc
// @Summary List all sweets
// @Tags sweets
// @Produce json
// @Security BearerAuth
// @Success 200 {array} SweetResponse
// @Failure 401 {object} apierror.Error
// @Failure 500 {object} apierror.Error
// @Router /api/sweets [get]
func GetSweetsHandler(w http.ResponseWriter, r *http.Request) {
	if cached, err := listCache.Get(r.Context(), sweetsCacheKey); err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "HIT")
		w.Write(cached)
		return
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		log.Printf("⚠️ cache read failed: %v", err)
	}

	sweets, err := sweetRepo.GetAll()
	if err != nil {
		log.Printf("could not fetch sweets: %v", err)
		apierror.Internal("could not fetch sweets").Write(w)
		return
	}

	body, err := json.Marshal(toSweetResponses(sweets))
	if err != nil {
		apierror.Internal("").Write(w)
		return
	}
	if err := listCache.Set(r.Context(), sweetsCacheKey, body, listTTL); err != nil {
		log.Printf("⚠️ cache write failed: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "MISS")
	w.Write(body)
}

// SearchSweetsHandler godoc
// @Summary Search sweets
// @Description Name matches case-insensitively as a substring; category matches exactly ignoring case. Non-numeric price bounds are ignored.
// @Tags sweets
// @Produce json
// @Security BearerAuth
// @Param name query string false "Name contains"
// @Param category query string false "Category"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Success 200 {array} SweetResponse
// @Router /api/sweets/search [get]
func SearchSweetsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	spec := filter.Spec{
		Name:     strings.TrimSpace(q.Get("name")),
		Category: strings.TrimSpace(q.Get("category")),
		MinPrice: filter.ParseBound(q.Get("minPrice")),
		MaxPrice: filter.ParseBound(q.Get("maxPrice")),
	}

	sweets, err := sweetRepo.Search(spec)
	if err != nil {
		log.Printf("could not search sweets: %v", err)
		apierror.Internal("could not search sweets").Write(w)
		return
	}
	writeJSON(w, http.StatusOK, toSweetResponses(sweets))
}

// GetSweetByIDHandler godoc
// @Summary Get sweet by ID
// @Tags sweets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Sweet ID"
// @Success 200 {object} SweetResponse
// @Failure 400 {object} apierror.Error
// @Failure 404 {object} apierror.Error
// @Router /api/sweets/{id} [get]
func GetSweetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apierror.BadRequest("invalid sweet ID").Write(w)
		return
	}

	sweet, err := sweetRepo.GetByID(id)
	if err != nil {
		writeRepoError(w, err, "could not fetch sweet")
		return
	}
	writeJSON(w, http.StatusOK, toSweetResponse(sweet))
}

// CreateSweetHandler godoc
// @Summary Create a new sweet
// @Tags sweets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sweet body SweetRequest true "Sweet to add"
// @Success 201 {object} SweetResponse
// @Failure 400 {object} apierror.Error
// @Failure 409 {object} apierror.Error
// @Router /api/sweets [post]
func CreateSweetHandler(w http.ResponseWriter, r *http.Request) {
	var req SweetRequest
	if err := readJSON(w, r, &req); err != nil {
		apierror.BadRequest("invalid input").Write(w)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)

	if errs := validateSweet(req); len(errs) > 0 {
		apierror.Validation(errs[0].Description, errs...).Write(w)
		return
	}

	created, err := sweetRepo.Create(models.Sweet{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Quantity: req.Quantity,
	})
	if err != nil {
		writeRepoError(w, err, "could not create sweet")
		return
	}

	invalidateList(r)
	log.Printf("🍬 sweet %d %q created", created.ID, created.Name)
	writeJSON(w, http.StatusCreated, toSweetResponse(created))
}

// UpdateSweetHandler godoc
// @Summary Update a sweet
// @Description Only the fields present in the body are changed.
// @Tags sweets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Sweet ID"
// @Param sweet body UpdateSweetRequest true "Fields to change"
// @Success 200 {object} SweetResponse
// @Failure 400 {object} apierror.Error
// @Failure 404 {object} apierror.Error
// @Router /api/sweets/{id} [put]
func UpdateSweetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apierror.BadRequest("invalid sweet ID").Write(w)
		return
	}

	var req UpdateSweetRequest
	if err := readJSON(w, r, &req); err != nil {
		apierror.BadRequest("invalid input").Write(w)
		return
	}

	current, err := sweetRepo.GetByID(id)
	if err != nil {
		writeRepoError(w, err, "could not fetch sweet")
		return
	}

	merged, errs := applyUpdate(SweetRequest{
		Name:     current.Name,
		Category: current.Category,
		Price:    current.Price,
		Quantity: current.Quantity,
	}, req)
	if len(errs) > 0 {
		apierror.Validation(errs[0].Description, errs...).Write(w)
		return
	}

	updated, err := sweetRepo.Update(models.Sweet{
		ID:       id,
		Name:     merged.Name,
		Category: merged.Category,
		Price:    merged.Price,
		Quantity: merged.Quantity,
	})
	if err != nil {
		writeRepoError(w, err, "could not update sweet")
		return
	}

	invalidateList(r)
	writeJSON(w, http.StatusOK, toSweetResponse(updated))
}

// DeleteSweetHandler godoc
// @Summary Delete a sweet
// @Tags sweets
// @Security BearerAuth
// @Param id path int true "Sweet ID"
// @Success 204 "Deleted successfully"
// @Failure 403 {object} apierror.Error
// @Failure 404 {object} apierror.Error
// @Router /api/sweets/{id} [delete]
func DeleteSweetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apierror.BadRequest("invalid sweet ID").Write(w)
		return
	}

	if err := sweetRepo.Delete(id); err != nil {
		writeRepoError(w, err, "could not delete sweet")
		return
	}

	invalidateList(r)
	log.Printf("🗑️ sweet %d deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

// PurchaseSweetHandler godoc
// @Summary Purchase a quantity of a sweet
// @Tags sweets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Sweet ID"
// @Param purchase body QuantityRequest true "Units to buy"
// @Success 200 {object} SweetResponse
// @Failure 400 {object} apierror.Error
// @Failure 404 {object} apierror.Error
// @Failure 409 {object} apierror.Error "Insufficient stock"
// @Router /api/sweets/{id}/purchase [post]
func PurchaseSweetHandler(w http.ResponseWriter, r *http.Request) {
	id, req, ok := readQuantityRequest(w, r)
	if !ok {
		return
	}

	updated, err := sweetRepo.AdjustQuantity(id, -req.Quantity)
	if errors.Is(err, repo.ErrInvalidQuantityChange) {
		available := 0
		if current, getErr := sweetRepo.GetByID(id); getErr == nil {
			available = current.Quantity
		}
		apierror.Conflict(fmt.Sprintf("Insufficient stock. Available: %d, Requested: %d", available, req.Quantity)).Write(w)
		return
	}
	if err != nil {
		writeRepoError(w, err, "could not purchase sweet")
		return
	}

	invalidateList(r)
	writeJSON(w, http.StatusOK, toSweetResponse(updated))
}

// RestockSweetHandler godoc
// @Summary Restock a sweet
// @Tags sweets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Sweet ID"
// @Param restock body QuantityRequest true "Units to add"
// @Success 200 {object} SweetResponse
// @Failure 400 {object} apierror.Error
// @Failure 403 {object} apierror.Error
// @Failure 404 {object} apierror.Error
// @Router /api/sweets/{id}/restock [post]
func RestockSweetHandler(w http.ResponseWriter, r *http.Request) {
	id, req, ok := readQuantityRequest(w, r)
	if !ok {
		return
	}

	updated, err := sweetRepo.AdjustQuantity(id, req.Quantity)
	if err != nil {
		writeRepoError(w, err, "could not restock sweet")
		return
	}

	invalidateList(r)
	writeJSON(w, http.StatusOK, toSweetResponse(updated))
}

func readQuantityRequest(w http.ResponseWriter, r *http.Request) (int64, QuantityRequest, bool) {
	var req QuantityRequest
	id, err := pathID(r)
	if err != nil {
		apierror.BadRequest("invalid sweet ID").Write(w)
		return 0, req, false
	}
	if err := readJSON(w, r, &req); err != nil {
		apierror.BadRequest("invalid input").Write(w)
		return 0, req, false
	}
	if req.Quantity <= 0 {
		apierror.Validation("Quantity must be greater than zero",
			apierror.FieldError{Field: "Quantity", Description: "Quantity must be greater than zero"}).Write(w)
		return 0, req, false
	}
	return id, req, true
}

func writeRepoError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, repo.ErrSweetNotFound):
		apierror.NotFound("Sweet not found").Write(w)
	case errors.Is(err, repo.ErrDuplicatedValueUnique):
		apierror.Conflict("A sweet with this name already exists").Write(w)
	default:
		log.Printf("%s: %v", fallback, err)
		apierror.Internal(fallback).Write(w)
	}
}

func invalidateList(r *http.Request) {
	if err := listCache.Delete(r.Context(), sweetsCacheKey); err != nil {
		log.Printf("⚠️ cache invalidation failed: %v", err)
	}
}

func toSweetResponses(sweets []models.Sweet) []SweetResponse {
	out := make([]SweetResponse, len(sweets))
	for i, s := range sweets {
		out[i] = toSweetResponse(s)
	}
	return out
}
