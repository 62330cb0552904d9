package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"ota-report-backend/config"
	"ota-report-backend/internal/crawler"
	"ota-report-backend/internal/pms"
	"ota-report-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	cfg     *config.Config
	crawler *crawler.Crawler
	pms     *pms.Client
	users   store.UserStore
}

// NewHandler creates a new API handler.
func NewHandler(cfg *config.Config, cr *crawler.Crawler, client *pms.Client, users store.UserStore) *Handler {
	return &Handler{
		cfg:     cfg,
		crawler: cr,
		pms:     client,
		users:   users,
	}
}

// fail maps crawl errors to HTTP responses. Every error leaves through here
// so the envelope stays uniform.
func (h *Handler) fail(c *gin.Context, err error) {
	var unknownFacility *crawler.UnknownFacilityError
	if errors.As(err, &unknownFacility) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":             false,
			"error":               "Invalid facility ID: " + unknownFacility.ID,
			"availableFacilities": unknownFacility.Valid,
		})
		return
	}

	var authErr *pms.AuthError
	if errors.As(err, &authErr) {
		log.Printf("api: upstream login rejected: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Login failed",
			"details": gin.H{
				"status": authErr.Status,
				"data":   authErr.Body,
			},
		})
		return
	}

	log.Printf("api: request failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   err.Error(),
	})
}
