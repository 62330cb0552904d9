package report

import (
	"fmt"
	"strings"
	"time"

	"ota-report-backend/internal/model"
	"ota-report-backend/internal/parse"
	"ota-report-backend/internal/pms"
)

// NormalizeCalendarBookings adapts the calendar blob's records into canonical
// bookings. Rooms are restricted to the facility's room types (an empty list
// means no restriction), bookings to rooms that survived that filter and to
// stays relevant today. Every field goes through its full alias-priority
// chain here so the rest of the system only ever sees one shape.
func NormalizeCalendarBookings(bookings []pms.CalendarBooking, rooms []pms.CalendarRoom, facilityRoomTypes []int, now time.Time) []model.Booking {
	roomMap := filterRooms(rooms, facilityRoomTypes)
	today := Midnight(now)

	var out []model.Booking
	for i, cb := range bookings {
		room, ok := roomMap[cb.ResolvedRoomID()]
		if !ok {
			continue
		}

		checkin, inOK := ParseUpstreamDate(firstNonEmpty(cb.BeginDate, cb.CheckInDate, cb.FromDate, cb.StartDate))
		checkout, outOK := ParseUpstreamDate(firstNonEmpty(cb.EndDate, cb.CheckOutDate, cb.ToDate))
		if !inOK || !outOK || !InReportWindow(checkin, checkout, today) {
			continue
		}

		status := StatusText(cb.Status)
		st, ok := ClassifyByStatusText(status)
		if !ok {
			st, ok = ClassifyByDates(checkin, checkout, today)
		}
		searchType, typeSeachDate := "Unknown", model.TypeArriving
		if ok {
			searchType, typeSeachDate = st.Name, st.TypeSeachDate
		}

		total := firstNonZero(cb.Total, cb.TotalAmount, cb.Amount)
		paid := firstNonZero(cb.Payment, cb.Paid, cb.PaidAmount)
		balance := firstNonZero(cb.Balance, cb.Outstanding)
		if balance == 0 {
			balance = total - paid
		}

		notes := cb.NotesText()
		if notes == "" {
			// The report table shows the outstanding balance in the notes
			// column when nothing else was written.
			notes = FormatAmount(balance)
		}

		bookingDate := now
		if t, ok := ParseUpstreamDate(firstNonEmpty(cb.BookingDate, cb.CreatedDate)); ok {
			bookingDate = t
		}

		bookingCode := firstNonEmpty(cb.Code, cb.BookingCode)
		if bookingCode == "" {
			bookingCode = fmt.Sprintf("CAL-%d", i+1)
		}

		nights := cb.Days
		if nights == 0 {
			nights = cb.NightCount
		}
		if nights == 0 {
			nights = Nights(checkin.Format(DateLayout), checkout.Format(DateLayout))
		}

		out = append(out, model.Booking{
			BookingCode:  bookingCode,
			OTAReference: firstNonEmpty(cb.OTARef, cb.OtaReference),
			GuestName:    firstNonEmpty(cb.Name, cb.Customer, cb.GuestName, cb.CustomerName),
			Property:     "Calendar Property",
			Room:         roomLabel(room, cb.ResolvedRoomID()),
			Source:       firstNonEmpty(cb.ChanelName, cb.Source, "Calendar"),
			Status:       status,
			BookingDate:  bookingDate.Format(DateLayout),
			CheckinDate:  checkin.Format(DateLayout),
			CheckinTime:  firstNonEmpty(cb.ArrivalTime, cb.CheckInTime, "14:00"),
			CheckoutDate: checkout.Format(DateLayout),
			CheckoutTime: firstNonEmpty(cb.DepartureTime, cb.CheckOutTime, "12:00"),
			TotalAmount:  FormatAmount(total),
			Paid:         FormatAmount(paid),
			Balance:      FormatAmount(balance),
			Notes:        notes,

			SearchType:    searchType,
			TypeSeachDate: typeSeachDate,

			RoomID:   cb.ResolvedRoomID(),
			Nights:   nights,
			Adults:   firstNonZeroInt(cb.Adults, cb.AdultCount, 1),
			Children: firstNonZeroInt(cb.Children, cb.ChildCount),
		})
	}
	return out
}

// ApplyFacilityInfo stamps facility identity onto calendar-sourced bookings
// and derives a property display name in the reservation report's style:
// "<FACILITY> - <room prefix> VIEW".
func ApplyFacilityInfo(bookings []model.Booking, facilityID, facilityName string, roomType int) {
	for i := range bookings {
		b := &bookings[i]
		property := strings.ToUpper(facilityName)
		if prefix := parse.RoomPrefix(b.Room); prefix != "" {
			property = property + " - " + prefix + " VIEW"
		}
		b.Property = property
		b.FacilityID = facilityID
		b.FacilityName = facilityName
		b.RoomType = roomType
	}
}

func filterRooms(rooms []pms.CalendarRoom, facilityRoomTypes []int) map[int]pms.CalendarRoom {
	allowed := make(map[int]bool, len(facilityRoomTypes))
	for _, t := range facilityRoomTypes {
		allowed[t] = true
	}
	roomMap := make(map[int]pms.CalendarRoom, len(rooms))
	for _, r := range rooms {
		if r.ID == 0 {
			continue
		}
		if len(facilityRoomTypes) > 0 && !allowed[r.ResolvedType()] {
			continue
		}
		roomMap[r.ID] = r
	}
	return roomMap
}

func roomLabel(room pms.CalendarRoom, roomID int) string {
	if room.Name != "" {
		return room.Name
	}
	if roomID == 0 {
		return "Room Unknown"
	}
	return fmt.Sprintf("Room %d", roomID)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonZero(values ...float64) float64 {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

func firstNonZeroInt(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
