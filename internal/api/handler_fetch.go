package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type upstreamLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpstreamLogin handles POST /api/login: performs the upstream login
// handshake and returns the captured session, without fetching anything.
// Credentials default to the configured ones.
func (h *Handler) UpstreamLogin(c *gin.Context) {
	var req upstreamLoginRequest
	_ = c.ShouldBindBodyWith(&req, binding.JSON)

	email := req.Email
	password := req.Password
	if email == "" {
		email = h.cfg.Upstream.DefaultEmail
		password = h.cfg.Upstream.DefaultPassword
	}

	sess, err := h.pms.Login(c.Request.Context(), email, password)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"session": sess,
	})
}

// LoginAndFetch handles POST /api/login-and-fetch: logs in with the default
// credentials and crawls the three search types for the default room type.
func (h *Handler) LoginAndFetch(c *gin.Context) {
	res, err := h.crawler.FetchAll(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"totalBookings": res.TotalBookings,
		"fetchSummary":  res.FetchSummary,
		"bookings":      res.Bookings,
		"timestamp":     res.Timestamp,
	})
}

type facilityFetchRequest struct {
	FacilityID string `json:"facilityId"`
	FromDate   string `json:"fromDate"`
	ToDate     string `json:"toDate"`
}

// LoginAndFetchFacility handles POST /api/login-and-fetch-facility: a full
// crawl of one facility's room types over an optional date range.
func (h *Handler) LoginAndFetchFacility(c *gin.Context) {
	var req facilityFetchRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	res, err := h.crawler.FetchFacility(c.Request.Context(), req.FacilityID, req.FromDate, req.ToDate)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"facility":      res.Facility,
		"summary":       res.Summary,
		"totalBookings": res.TotalBookings,
		"bookings":      res.Bookings,
		"timestamp":     res.Timestamp,
	})
}
