package pms

import (
	"encoding/json"
	"regexp"
)

// The calendar page embeds its data as two JSON array literals assigned to
// well-known names inside an inline script. This is a scripted-data contract,
// not markup scraping, so a non-greedy match up to the statement terminator
// is all the extraction needed.
var (
	listRoomRe     = regexp.MustCompile(`CalendarOption\.ListRoom\s*=\s*(\[[\s\S]*?\]);`)
	bookingGroupRe = regexp.MustCompile(`CalendarOption\.BookingGroup\s*=\s*(\[[\s\S]*?\]);`)
)

// CalendarRoom is one room from the calendar's ListRoom array. The PMS has
// renamed the type-id property across versions; ResolvedType walks the known
// aliases.
type CalendarRoom struct {
	ID         int    `json:"Id"`
	Name       string `json:"Name"`
	RoomTypeID int    `json:"RoomTypeId"`
	Group      int    `json:"Group"`
	TypeRoomID int    `json:"TypeRoomId"`
	Type       int    `json:"Type"`
	Floor      int    `json:"Floor"`
}

// ResolvedType returns the room's type identifier, trying each historical
// property name in priority order.
func (r CalendarRoom) ResolvedType() int {
	for _, id := range []int{r.RoomTypeID, r.Group, r.TypeRoomID, r.Type} {
		if id != 0 {
			return id
		}
	}
	return 0
}

// CalendarBookingDetail is one room assignment inside a booking group.
type CalendarBookingDetail struct {
	RoomID int `json:"RoomId"`
}

// CalendarNote is one entry of a booking's Notes array.
type CalendarNote struct {
	Note string `json:"Note"`
}

// CalendarBooking is one entry of the calendar's BookingGroup array. Most
// fields exist under several names depending on the PMS version, so every
// concept keeps its full alias set; the normalizer owns the priority chains.
type CalendarBooking struct {
	ID          int    `json:"Id"`
	BookingID   int    `json:"BookingId"`
	Code        string `json:"Code"`
	BookingCode string `json:"BookingCode"`

	OTARef       string `json:"OTAReference"`
	OtaReference string `json:"OtaReference"`

	Name         string `json:"Name"`
	Customer     string `json:"Customer"`
	GuestName    string `json:"GuestName"`
	CustomerName string `json:"CustomerName"`

	// Status is numeric in current pages but was a string historically.
	Status any `json:"Status"`

	BookingDate string `json:"BookingDate"`
	CreatedDate string `json:"CreatedDate"`

	BeginDate   string `json:"BeginDate"`
	CheckInDate string `json:"CheckInDate"`
	FromDate    string `json:"FromDate"`
	StartDate   string `json:"StartDate"`

	EndDate      string `json:"EndDate"`
	CheckOutDate string `json:"CheckOutDate"`
	ToDate       string `json:"ToDate"`

	ArrivalTime   string `json:"ArrivalTime"`
	CheckInTime   string `json:"CheckInTime"`
	DepartureTime string `json:"DepartureTime"`
	CheckOutTime  string `json:"CheckOutTime"`

	RoomID  int                     `json:"RoomId"`
	Details []CalendarBookingDetail `json:"Details"`

	Total       float64 `json:"Total"`
	TotalAmount float64 `json:"TotalAmount"`
	Amount      float64 `json:"Amount"`
	Payment     float64 `json:"Payment"`
	Paid        float64 `json:"Paid"`
	PaidAmount  float64 `json:"PaidAmount"`
	Balance     float64 `json:"Balance"`
	Outstanding float64 `json:"Outstanding"`

	Notes json.RawMessage `json:"Notes"`

	ChanelName string `json:"ChanelName"`
	Source     string `json:"Source"`

	Days       int `json:"Days"`
	NightCount int `json:"Nights"`
	Adults     int `json:"Adults"`
	AdultCount int `json:"AdultCount"`
	Children   int `json:"Children"`
	ChildCount int `json:"ChildCount"`
}

// ResolvedRoomID returns the booked room, preferring the detail rows.
func (b CalendarBooking) ResolvedRoomID() int {
	if len(b.Details) > 0 && b.Details[0].RoomID != 0 {
		return b.Details[0].RoomID
	}
	return b.RoomID
}

// NotesText flattens the Notes field, which may be an array of note objects,
// an array of strings, or a single string.
func (b CalendarBooking) NotesText() string {
	if len(b.Notes) == 0 {
		return ""
	}
	var objs []CalendarNote
	if err := json.Unmarshal(b.Notes, &objs); err == nil {
		out := ""
		for i, n := range objs {
			if i > 0 {
				out += "; "
			}
			out += n.Note
		}
		return out
	}
	var strs []string
	if err := json.Unmarshal(b.Notes, &strs); err == nil {
		out := ""
		for i, s := range strs {
			if i > 0 {
				out += "; "
			}
			out += s
		}
		return out
	}
	var s string
	if err := json.Unmarshal(b.Notes, &s); err == nil {
		return s
	}
	return ""
}

// CalendarData is the parsed content of one calendar page.
type CalendarData struct {
	Rooms    []CalendarRoom
	Bookings []CalendarBooking
}

// ParseCalendarPage extracts the two embedded arrays. Either one missing or
// undecodable yields an empty slice for that field, never a failure; partial
// calendar data still lets vacancy math run on whatever arrived.
func ParseCalendarPage(html string) CalendarData {
	var data CalendarData

	if m := listRoomRe.FindStringSubmatch(html); m != nil {
		var rooms []CalendarRoom
		if err := json.Unmarshal([]byte(m[1]), &rooms); err == nil {
			data.Rooms = rooms
		}
	}
	if m := bookingGroupRe.FindStringSubmatch(html); m != nil {
		var bookings []CalendarBooking
		if err := json.Unmarshal([]byte(m[1]), &bookings); err == nil {
			data.Bookings = bookings
		}
	}
	return data
}
