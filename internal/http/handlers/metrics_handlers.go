package handlers

import (
	"log"
	"net/http"

	"github.com/rogerio-castellano/sweet-shop/internal/repo"
	"github.com/rogerio-castellano/sweet-shop/pkg/apierror"
)

// GetInventoryStatsHandler godoc
// @Summary Inventory summary for the admin view
// @Tags sweets
// @Produce json
// @Security BearerAuth
// @Success 200 {object} repo.Stats
// @Failure 403 {object} apierror.Error
// @Failure 500 {object} apierror.Error
// @Router /api/sweets/stats [get]
func GetInventoryStatsHandler(w http.ResponseWriter, r *http.Request) {
	sweets, err := sweetRepo.GetAll()
	if err != nil {
		log.Printf("failed to fetch stats: %v", err)
		apierror.Internal("failed to fetch stats").Write(w)
		return
	}
	writeJSON(w, http.StatusOK, repo.Summarize(sweets))
}
