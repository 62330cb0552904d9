package api

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"ota-report-backend/internal/model"
	"ota-report-backend/internal/parse"
	"ota-report-backend/internal/report"
)

type facilityRequest struct {
	FacilityID string `json:"facilityId"`
}

// ListRooms handles POST /api/list-rooms: the facility's room inventory read
// from the calendar page.
func (h *Handler) ListRooms(c *gin.Context) {
	var req facilityRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	rooms, err := h.crawler.ListRooms(c.Request.Context(), req.FacilityID)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"facilityId": req.FacilityID,
		"totalRooms": len(rooms),
		"rooms":      rooms,
	})
}

// CalendarData handles POST /api/calendar-data: normalized calendar bookings
// plus the four-bucket room categorization.
func (h *Handler) CalendarData(c *gin.Context) {
	var req facilityRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	res, err := h.crawler.FetchCalendar(c.Request.Context(), req.FacilityID)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"facility":       res.Facility,
		"totalBookings":  res.TotalBookings,
		"bookings":       res.Bookings,
		"rooms":          res.Rooms,
		"roomCategories": res.Categories,
		"timestamp":      res.Timestamp,
	})
}

type reportTextRequest struct {
	FacilityID   string          `json:"facilityId"`
	Bookings     []model.Booking `json:"bookings"`
	RoomNumbers  []string        `json:"roomNumbers"`
	FacilityName string          `json:"facilityName"`
}

// ReportText handles POST /api/report-text: the plain-text room status report
// staff paste into the shift chat. Callers that already hold a booking list
// post it directly; otherwise the facility's calendar is fetched fresh.
func (h *Handler) ReportText(c *gin.Context) {
	var req reportTextRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	bookings := req.Bookings
	roomNumbers := req.RoomNumbers
	facilityName := req.FacilityName

	if bookings == nil {
		res, err := h.crawler.FetchCalendar(c.Request.Context(), req.FacilityID)
		if err != nil {
			h.fail(c, err)
			return
		}
		bookings = res.Bookings
		facilityName = res.Facility.Name

		roomNumbers = make([]string, 0, len(res.Rooms))
		for _, r := range res.Rooms {
			roomNumbers = append(roomNumbers, parse.RoomNumber(r.Name))
		}
		sort.Strings(roomNumbers)
	}

	text := report.BuildStatusReport(bookings, roomNumbers, facilityName, time.Now())
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"facilityId": req.FacilityID,
		"report":     text,
		"timestamp":  time.Now().UTC(),
	})
}

// Facilities handles GET /api/facilities: the configured facility catalog,
// without credentials.
func (h *Handler) Facilities(c *gin.Context) {
	type facilityEntry struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		RoomTypes []int  `json:"roomTypes"`
	}

	entries := make([]facilityEntry, 0, len(h.cfg.Facilities))
	for id, fac := range h.cfg.Facilities {
		entries = append(entries, facilityEntry{ID: id, Name: fac.Name, RoomTypes: fac.RoomTypes})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"facilities": entries,
	})
}

// Health handles GET /api/health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   "ota-report-backend",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
