package crawler

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"ota-report-backend/config"
	"ota-report-backend/internal/model"
	"ota-report-backend/internal/parse"
	"ota-report-backend/internal/pms"
	"ota-report-backend/internal/report"
)

// Crawler drives authenticated fetches against the PMS across the
// facility × room-type × search-type × page cross product. Crawls are
// strictly sequential: the inter-request delays are rate limiting against the
// upstream and each crawl carries its own session, so nothing here is safe or
// useful to parallelize.
type Crawler struct {
	client *pms.Client
	cfg    *config.Config
}

// New creates a crawler on top of a PMS client.
func New(client *pms.Client, cfg *config.Config) *Crawler {
	return &Crawler{client: client, cfg: cfg}
}

// UnknownFacilityError rejects a facility id before any network activity.
type UnknownFacilityError struct {
	ID    string
	Valid []string
}

func (e *UnknownFacilityError) Error() string {
	return fmt.Sprintf("unknown facility %q (valid: %s)", e.ID, strings.Join(e.Valid, ", "))
}

// FacilityInfo identifies the facility a result belongs to.
type FacilityInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	RoomTypes []int  `json:"roomTypes"`
}

// FacilityResult is the outcome of a facility-scoped crawl.
type FacilityResult struct {
	Facility      FacilityInfo          `json:"facility"`
	Summary       model.FacilitySummary `json:"summary"`
	TotalBookings int                   `json:"totalBookings"`
	Bookings      []model.Booking       `json:"bookings"`
	Timestamp     time.Time             `json:"timestamp"`
}

// AllResult is the outcome of a facility-agnostic crawl.
type AllResult struct {
	TotalBookings int                `json:"totalBookings"`
	FetchSummary  model.FetchSummary `json:"fetchSummary"`
	Bookings      []model.Booking    `json:"bookings"`
	Timestamp     time.Time          `json:"timestamp"`
}

// CalendarResult is the outcome of a calendar-sourced facility fetch.
type CalendarResult struct {
	Facility      FacilityInfo             `json:"facility"`
	TotalBookings int                      `json:"totalBookings"`
	Bookings      []model.Booking          `json:"bookings"`
	Rooms         []model.Room             `json:"rooms"`
	Categories    model.RoomCategoryReport `json:"roomCategories"`
	Timestamp     time.Time                `json:"timestamp"`
}

func (c *Crawler) facility(id string) (config.FacilityConfig, error) {
	fac, ok := c.cfg.Facilities[id]
	if !ok {
		valid := make([]string, 0, len(c.cfg.Facilities))
		for k := range c.cfg.Facilities {
			valid = append(valid, k)
		}
		sort.Strings(valid)
		return config.FacilityConfig{}, &UnknownFacilityError{ID: id, Valid: valid}
	}
	return fac, nil
}

// combinationResult carries what one (room type, search type) pair yielded.
type combinationResult struct {
	rows       []pms.ReportRow
	pages      int
	totalPages int
}

// fetchCombination pages through one (room type, search type) pair until the
// server-reported last page or the safety cap. The cap exists because
// totalPages comes from a parser reading remote markup we cannot verify; a
// misread must not loop forever. Fetch or parse failures end only this
// combination; rows already collected are kept.
func (c *Crawler) fetchCombination(ctx context.Context, sess pms.Session, q pms.ReportQuery, pageDelay time.Duration) combinationResult {
	res := combinationResult{totalPages: 1}
	currentPage := 1

	for {
		q.Page = currentPage
		html, err := c.client.FetchReportPage(ctx, sess, q)
		if err != nil {
			log.Printf("crawl: page %d of TypeSeachDate=%d RoomType=%d failed: %v", currentPage, q.TypeSeachDate, q.RoomType, err)
			break
		}
		parsed, err := pms.ParseReportPage(html)
		if err != nil {
			log.Printf("crawl: parse of page %d failed: %v", currentPage, err)
			break
		}

		res.totalPages = parsed.TotalPages
		res.rows = append(res.rows, parsed.Rows...)
		res.pages++

		if parsed.TotalPages == 1 {
			break
		}
		currentPage++
		if res.pages >= c.cfg.Upstream.PageSafetyLimit {
			log.Printf("crawl: reached safety limit of %d pages for TypeSeachDate=%d RoomType=%d (server reported %d)",
				c.cfg.Upstream.PageSafetyLimit, q.TypeSeachDate, q.RoomType, parsed.TotalPages)
			break
		}
		if currentPage > parsed.TotalPages {
			break
		}
		sleep(ctx, pageDelay)
	}
	return res
}

func bookingFromRow(row pms.ReportRow, st model.SearchType) model.Booking {
	return model.Booking{
		BookingCode:   row.BookingCode,
		OTAReference:  row.OTAReference,
		GuestName:     row.GuestName,
		Property:      row.Property,
		Room:          row.Room,
		Source:        row.Source,
		Status:        row.Status,
		BookingDate:   row.BookingDate,
		CheckinDate:   row.CheckinDate,
		CheckinTime:   row.CheckinTime,
		CheckoutDate:  row.CheckoutDate,
		CheckoutTime:  row.CheckoutTime,
		TotalAmount:   row.TotalAmount,
		Paid:          row.Paid,
		Balance:       row.Balance,
		Notes:         row.Notes,
		SearchType:    st.Name,
		TypeSeachDate: st.TypeSeachDate,
	}
}

// FetchFacility logs in with the facility's credentials and crawls every
// (room type, search type, page) combination it owns. Defaults the date range
// to today. Partial results are always preferred over aborting: a failed
// combination only loses its own remainder.
func (c *Crawler) FetchFacility(ctx context.Context, facilityID, fromDate, toDate string) (*FacilityResult, error) {
	fac, err := c.facility(facilityID)
	if err != nil {
		return nil, err
	}

	today := time.Now().Format(report.DateLayout)
	if fromDate == "" {
		fromDate = today
	}
	if toDate == "" {
		toDate = today
	}

	sess, err := c.client.Login(ctx, fac.Email, fac.Password)
	if err != nil {
		return nil, err
	}
	log.Printf("crawl: login ok for facility %s (%s)", facilityID, fac.Name)

	searchTypes := model.SearchTypes()
	summary := model.FacilitySummary{
		Facility:         fac.Name,
		FacilityID:       facilityID,
		TotalRoomTypes:   len(fac.RoomTypes),
		TotalSearchTypes: len(searchTypes),
	}

	var bookings []model.Booking
	for _, roomType := range fac.RoomTypes {
		rtSummary := model.RoomTypeSummary{RoomType: roomType}

		for _, st := range searchTypes {
			res := c.fetchCombination(ctx, sess, pms.ReportQuery{
				TypeSeachDate: st.TypeSeachDate,
				FromDate:      fromDate,
				ToDate:        toDate,
				RoomType:      roomType,
			}, c.delay(c.cfg.Upstream.PageDelayMs))

			for _, row := range res.rows {
				b := bookingFromRow(row, st)
				b.FacilityID = facilityID
				b.FacilityName = fac.Name
				b.RoomType = roomType
				bookings = append(bookings, b)
			}

			rtSummary.SearchTypes = append(rtSummary.SearchTypes, model.SearchTypeSummary{
				Name:          st.Name,
				TypeSeachDate: st.TypeSeachDate,
				Bookings:      len(res.rows),
				Pages:         res.pages,
				TotalPages:    res.totalPages,
			})
			rtSummary.TotalBookings += len(res.rows)
			summary.TotalPages += res.totalPages
			summary.TotalPagesProcessed += res.pages

			sleep(ctx, c.delay(c.cfg.Upstream.SearchTypeDelayMs))
		}

		summary.RoomTypeSummary = append(summary.RoomTypeSummary, rtSummary)
		log.Printf("crawl: room type %d done, %d bookings", roomType, rtSummary.TotalBookings)

		sleep(ctx, c.delay(c.cfg.Upstream.RoomTypeDelayMs))
	}

	summary.TotalBookings = len(bookings)
	return &FacilityResult{
		Facility:      FacilityInfo{ID: facilityID, Name: fac.Name, RoomTypes: fac.RoomTypes},
		Summary:       summary,
		TotalBookings: len(bookings),
		Bookings:      bookings,
		Timestamp:     time.Now().UTC(),
	}, nil
}

// FetchAll crawls the three search types without facility partitioning, using
// the configured default credentials and room type. It paces itself more
// conservatively than the facility crawl because each query spans more rows.
func (c *Crawler) FetchAll(ctx context.Context) (*AllResult, error) {
	sess, err := c.client.Login(ctx, c.cfg.Upstream.DefaultEmail, c.cfg.Upstream.DefaultPassword)
	if err != nil {
		return nil, err
	}
	log.Printf("crawl: login ok (default credentials)")

	today := time.Now().Format(report.DateLayout)
	searchTypes := model.SearchTypes()

	var bookings []model.Booking
	var summary model.FetchSummary

	for i, st := range searchTypes {
		res := c.fetchCombination(ctx, sess, pms.ReportQuery{
			TypeSeachDate: st.TypeSeachDate,
			FromDate:      today,
			ToDate:        today,
			RoomType:      c.cfg.Upstream.DefaultRoomType,
		}, c.delay(c.cfg.Upstream.AllPageDelayMs))

		for _, row := range res.rows {
			bookings = append(bookings, bookingFromRow(row, st))
		}

		summary.SearchTypes = append(summary.SearchTypes, model.SearchTypeSummary{
			Name:          st.Name,
			TypeSeachDate: st.TypeSeachDate,
			Description:   st.Description,
			Bookings:      len(res.rows),
			Pages:         res.pages,
			TotalPages:    res.totalPages,
		})
		summary.TotalPages += res.totalPages
		summary.TotalPagesProcessed += res.pages

		log.Printf("crawl: %s done, %d bookings from %d/%d pages", st.Name, len(res.rows), res.pages, res.totalPages)

		if i < len(searchTypes)-1 {
			sleep(ctx, c.delay(c.cfg.Upstream.AllSearchTypeDelayMs))
		}
	}

	summary.TotalBookings = len(bookings)
	return &AllResult{
		TotalBookings: len(bookings),
		FetchSummary:  summary,
		Bookings:      bookings,
		Timestamp:     time.Now().UTC(),
	}, nil
}

// ListRooms logs in with the facility's credentials and reads its room list
// out of the calendar page, restricted to the facility's room types.
func (c *Crawler) ListRooms(ctx context.Context, facilityID string) ([]model.Room, error) {
	fac, err := c.facility(facilityID)
	if err != nil {
		return nil, err
	}

	sess, err := c.client.Login(ctx, fac.Email, fac.Password)
	if err != nil {
		return nil, err
	}
	html, err := c.client.FetchCalendarPage(ctx, sess)
	if err != nil {
		return nil, err
	}

	data := pms.ParseCalendarPage(html)
	return facilityRooms(data.Rooms, fac.RoomTypes), nil
}

// FetchCalendar builds a full facility snapshot from the calendar page: the
// normalized bookings relevant today plus the four-bucket room categorization.
func (c *Crawler) FetchCalendar(ctx context.Context, facilityID string) (*CalendarResult, error) {
	fac, err := c.facility(facilityID)
	if err != nil {
		return nil, err
	}

	sess, err := c.client.Login(ctx, fac.Email, fac.Password)
	if err != nil {
		return nil, err
	}
	html, err := c.client.FetchCalendarPage(ctx, sess)
	if err != nil {
		return nil, err
	}

	data := pms.ParseCalendarPage(html)
	now := time.Now()

	bookings := report.NormalizeCalendarBookings(data.Bookings, data.Rooms, fac.RoomTypes, now)

	roomType := c.cfg.Upstream.DefaultRoomType
	if len(fac.RoomTypes) > 0 {
		roomType = fac.RoomTypes[0]
	}
	report.ApplyFacilityInfo(bookings, facilityID, fac.Name, roomType)

	rooms := facilityRooms(data.Rooms, fac.RoomTypes)

	return &CalendarResult{
		Facility:      FacilityInfo{ID: facilityID, Name: fac.Name, RoomTypes: fac.RoomTypes},
		TotalBookings: len(bookings),
		Bookings:      bookings,
		Rooms:         rooms,
		Categories:    report.CategorizeRooms(bookings, rooms, now),
		Timestamp:     now.UTC(),
	}, nil
}

func facilityRooms(rooms []pms.CalendarRoom, roomTypes []int) []model.Room {
	allowed := make(map[int]bool, len(roomTypes))
	for _, t := range roomTypes {
		allowed[t] = true
	}

	var out []model.Room
	for _, r := range rooms {
		if r.ID == 0 {
			continue
		}
		if len(roomTypes) > 0 && !allowed[r.ResolvedType()] {
			continue
		}
		out = append(out, model.Room{
			ID:         r.ID,
			Name:       r.Name,
			RoomNumber: parse.RoomNumber(r.Name),
			RoomType:   r.ResolvedType(),
			Floor:      r.Floor,
		})
	}
	return out
}

func (c *Crawler) delay(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// sleep waits without outliving the request context.
func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
