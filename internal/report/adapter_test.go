package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ota-report-backend/internal/model"
	"ota-report-backend/internal/pms"
)

var testRooms = []pms.CalendarRoom{
	{ID: 10, Name: "1N1K - 450", RoomTypeID: 41, Floor: 4},
	{ID: 11, Name: "1N1K - 451", RoomTypeID: 41, Floor: 4},
	{ID: 20, Name: "2N2K - 601", RoomTypeID: 55, Floor: 6},
}

func TestNormalizeCalendarBookings(t *testing.T) {
	now := time.Date(2025, 8, 10, 9, 0, 0, 0, time.UTC)

	bookings := []pms.CalendarBooking{
		{
			Code:        "BK100",
			OTARef:      "OTA99887766",
			Name:        "Nguyen A",
			Status:      float64(3),
			RoomID:      10,
			BeginDate:   "2025-08-10",
			EndDate:     "2025-08-12",
			Total:       500000,
			Payment:     500000,
			ChanelName:  "Agoda",
			Days:        2,
			Adults:      2,
			ArrivalTime: "15:00",
		},
	}

	out := NormalizeCalendarBookings(bookings, testRooms, []int{41}, now)
	require.Len(t, out, 1)

	b := out[0]
	assert.Equal(t, "BK100", b.BookingCode)
	assert.Equal(t, "OTA99887766", b.OTAReference)
	assert.Equal(t, "Nguyen A", b.GuestName)
	assert.Equal(t, "1N1K - 450", b.Room)
	assert.Equal(t, 10, b.RoomID)
	assert.Equal(t, "Agoda", b.Source)
	assert.Equal(t, "Đã nhận phòng", b.Status)
	assert.Equal(t, model.TypeArriving, b.TypeSeachDate)
	assert.Equal(t, "10/08/2025", b.CheckinDate)
	assert.Equal(t, "12/08/2025", b.CheckoutDate)
	assert.Equal(t, "15:00", b.CheckinTime)
	assert.Equal(t, "12:00", b.CheckoutTime)
	assert.Equal(t, "500.000", b.TotalAmount)
	assert.Equal(t, "0", b.Balance)
	assert.Equal(t, 2, b.Nights)
	assert.Equal(t, 2, b.Adults)
}

func TestNormalizeCalendarBookingsFiltersRoomType(t *testing.T) {
	now := time.Date(2025, 8, 10, 9, 0, 0, 0, time.UTC)

	bookings := []pms.CalendarBooking{
		{Code: "IN", RoomID: 10, BeginDate: "2025-08-09", EndDate: "2025-08-11", Status: "Lưu trú"},
		{Code: "OUT", RoomID: 20, BeginDate: "2025-08-09", EndDate: "2025-08-11", Status: "Lưu trú"},
	}

	out := NormalizeCalendarBookings(bookings, testRooms, []int{41}, now)
	require.Len(t, out, 1)
	assert.Equal(t, "IN", out[0].BookingCode)
}

func TestNormalizeCalendarBookingsDropsOutOfWindow(t *testing.T) {
	now := time.Date(2025, 8, 10, 9, 0, 0, 0, time.UTC)

	bookings := []pms.CalendarBooking{
		{Code: "PAST", RoomID: 10, BeginDate: "2025-08-01", EndDate: "2025-08-03"},
		{Code: "FUTURE", RoomID: 10, BeginDate: "2025-08-20", EndDate: "2025-08-22"},
		{Code: "NODATES", RoomID: 10},
	}

	out := NormalizeCalendarBookings(bookings, testRooms, nil, now)
	assert.Empty(t, out)
}

func TestNormalizeCalendarBookingsDateFallbackClassification(t *testing.T) {
	now := time.Date(2025, 8, 10, 9, 0, 0, 0, time.UTC)

	// No keyword in the status, so the date window decides: checkout today.
	bookings := []pms.CalendarBooking{
		{Code: "BK1", RoomID: 10, BeginDate: "2025-08-08", EndDate: "2025-08-10", Status: float64(0)},
	}

	out := NormalizeCalendarBookings(bookings, testRooms, nil, now)
	require.Len(t, out, 1)
	assert.Equal(t, model.TypeDeparting, out[0].TypeSeachDate)
	assert.Equal(t, "Đã xác nhận", out[0].Status)
}

func TestNormalizeCalendarBookingsDefaults(t *testing.T) {
	now := time.Date(2025, 8, 10, 9, 0, 0, 0, time.UTC)

	bookings := []pms.CalendarBooking{
		{RoomID: 10, BeginDate: "2025-08-10", EndDate: "2025-08-11", Total: 300000, Payment: 100000},
	}

	out := NormalizeCalendarBookings(bookings, testRooms, nil, now)
	require.Len(t, out, 1)

	b := out[0]
	assert.Equal(t, "CAL-1", b.BookingCode)
	assert.Equal(t, "Calendar", b.Source)
	assert.Equal(t, "14:00", b.CheckinTime)
	assert.Equal(t, "12:00", b.CheckoutTime)
	// Balance is derived and echoed into the empty notes column.
	assert.Equal(t, "200.000", b.Balance)
	assert.Equal(t, "200.000", b.Notes)
	assert.Equal(t, 1, b.Adults)
}

func TestNormalizeCalendarBookingsNotesArray(t *testing.T) {
	now := time.Date(2025, 8, 10, 9, 0, 0, 0, time.UTC)

	bookings := []pms.CalendarBooking{
		{
			RoomID: 10, BeginDate: "2025-08-10", EndDate: "2025-08-11",
			Notes: json.RawMessage(`[{"Note":"late checkin"},{"Note":"extra bed"}]`),
		},
	}

	out := NormalizeCalendarBookings(bookings, testRooms, nil, now)
	require.Len(t, out, 1)
	assert.Equal(t, "late checkin; extra bed", out[0].Notes)
}

func TestApplyFacilityInfo(t *testing.T) {
	bookings := []model.Booking{
		{Room: "1N1K - 450"},
		{Room: "450"},
	}

	ApplyFacilityInfo(bookings, "sg1", "Saigon Riverside", 41)

	assert.Equal(t, "SAIGON RIVERSIDE - 1N1K VIEW", bookings[0].Property)
	assert.Equal(t, "SAIGON RIVERSIDE", bookings[1].Property)
	for _, b := range bookings {
		assert.Equal(t, "sg1", b.FacilityID)
		assert.Equal(t, "Saigon Riverside", b.FacilityName)
		assert.Equal(t, 41, b.RoomType)
	}
}
