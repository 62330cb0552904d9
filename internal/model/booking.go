package model

// SearchType is one of the PMS's fixed search modes. The numeric code is the
// upstream's TypeSeachDate query parameter (their spelling, kept on the wire
// and in JSON output for compatibility).
type SearchType struct {
	Name          string `json:"name"`
	TypeSeachDate int    `json:"typeSeachDate"`
	Description   string `json:"description"`
}

// TypeSeachDate codes understood by the upstream report endpoint.
const (
	TypeArriving  = 0
	TypeDeparting = 1
	TypeStaying   = 3
)

// SearchTypes returns the three search modes in crawl order.
func SearchTypes() []SearchType {
	return []SearchType{
		{Name: "Phòng đến", TypeSeachDate: TypeArriving, Description: "Check-in today"},
		{Name: "Phòng đi", TypeSeachDate: TypeDeparting, Description: "Check-out today"},
		{Name: "Phòng lưu", TypeSeachDate: TypeStaying, Description: "Currently staying"},
	}
}

// Booking is the canonical, source-independent booking record. Rows parsed
// from the report table and entries decoded from the calendar blob both end up
// in this shape. Dates are DD/MM/YYYY strings and amounts use dot thousands
// separators, matching the upstream's own rendering.
type Booking struct {
	BookingCode  string `json:"bookingCode"`
	OTAReference string `json:"otaReference"`
	GuestName    string `json:"guestName"`
	Property     string `json:"property"`
	Room         string `json:"room"`
	Source       string `json:"source"`
	Status       string `json:"status"`
	BookingDate  string `json:"bookingDate"`
	CheckinDate  string `json:"checkinDate"`
	CheckinTime  string `json:"checkinTime"`
	CheckoutDate string `json:"checkoutDate"`
	CheckoutTime string `json:"checkoutTime"`
	TotalAmount  string `json:"totalAmount"`
	Paid         string `json:"paid"`
	Balance      string `json:"balance"`
	Notes        string `json:"notes"`

	SearchType    string `json:"searchType"`
	TypeSeachDate int    `json:"typeSeachDate"`
	FacilityID    string `json:"facilityId,omitempty"`
	FacilityName  string `json:"facilityName,omitempty"`
	RoomType      int    `json:"roomType,omitempty"`

	// Present only on calendar-sourced bookings.
	RoomID   int `json:"roomId,omitempty"`
	Nights   int `json:"nights,omitempty"`
	Adults   int `json:"adults,omitempty"`
	Children int `json:"children,omitempty"`
}

// Room is a physical room as reported by the calendar page.
type Room struct {
	ID         int    `json:"roomId"`
	Name       string `json:"roomName"`
	RoomNumber string `json:"roomNumber"`
	RoomType   int    `json:"roomType"`
	Floor      int    `json:"floor"`
}

// SearchTypeSummary reports one search type's contribution to a crawl.
type SearchTypeSummary struct {
	Name          string `json:"name"`
	TypeSeachDate int    `json:"typeSeachDate"`
	Description   string `json:"description,omitempty"`
	Bookings      int    `json:"bookings"`
	Pages         int    `json:"pages"`
	TotalPages    int    `json:"totalPages"`
}

// RoomTypeSummary reports one room type's contribution to a facility crawl.
type RoomTypeSummary struct {
	RoomType      int                 `json:"roomType"`
	TotalBookings int                 `json:"totalBookings"`
	SearchTypes   []SearchTypeSummary `json:"searchTypes"`
}

// FetchSummary describes a facility-agnostic crawl. Pages fetched and pages
// the server reported are both kept so a truncated crawl stays detectable.
type FetchSummary struct {
	TotalBookings       int                 `json:"totalBookings"`
	TotalPages          int                 `json:"totalPages"`
	TotalPagesProcessed int                 `json:"totalPagesProcessed"`
	SearchTypes         []SearchTypeSummary `json:"searchTypes"`
}

// FacilitySummary describes a facility-scoped crawl.
type FacilitySummary struct {
	Facility            string            `json:"facility"`
	FacilityID          string            `json:"facilityId"`
	TotalBookings       int               `json:"totalBookings"`
	TotalRoomTypes      int               `json:"totalRoomTypes"`
	TotalSearchTypes    int               `json:"totalSearchTypes"`
	TotalPages          int               `json:"totalPages"`
	TotalPagesProcessed int               `json:"totalPagesProcessed"`
	RoomTypeSummary     []RoomTypeSummary `json:"roomTypeSummary"`
}

// RoomSummary is the per-room projection used inside a RoomCategoryReport.
type RoomSummary struct {
	RoomID       int    `json:"roomId,omitempty"`
	RoomName     string `json:"roomName"`
	GuestName    string `json:"guestName,omitempty"`
	BookingCode  string `json:"bookingCode,omitempty"`
	CheckinDate  string `json:"checkinDate,omitempty"`
	CheckoutDate string `json:"checkoutDate,omitempty"`
	Nights       int    `json:"nights,omitempty"`
	Source       string `json:"source,omitempty"`
	TotalAmount  string `json:"totalAmount,omitempty"`
	RoomType     int    `json:"roomType,omitempty"`
	Floor        int    `json:"floor,omitempty"`
	Status       string `json:"status"`
}

// RoomCategoryBucket is one of the four report categories.
type RoomCategoryBucket struct {
	Count int           `json:"count"`
	Rooms []RoomSummary `json:"rooms"`
}

// RoomCategoryReport partitions a facility's rooms into the four buckets the
// operators read their morning report from. Built fresh per request, never
// stored.
type RoomCategoryReport struct {
	PhongDi    RoomCategoryBucket `json:"phongDi"`
	PhongDen   RoomCategoryBucket `json:"phongDen"`
	PhongLuu   RoomCategoryBucket `json:"phongLuu"`
	PhongTrong RoomCategoryBucket `json:"phongTrong"`
	Summary    CategorySummary    `json:"summary"`
}

// CategorySummary carries the occupancy totals alongside the buckets.
type CategorySummary struct {
	TotalRooms    int    `json:"totalRooms"`
	OccupiedRooms int    `json:"occupiedRooms"`
	VacantRooms   int    `json:"vacantRooms"`
	Date          string `json:"date"`
}
