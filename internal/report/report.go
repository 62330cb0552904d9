package report

import (
	"fmt"
	"strings"
	"time"

	"ota-report-backend/internal/model"
	"ota-report-backend/internal/parse"
)

// PaymentPhrase returns the payment wording for a booking source. Sources
// that collect on site are "thu khách"; everything else pre-pays through the
// channel.
func PaymentPhrase(source string) string {
	switch source {
	case "Booking.com", "Khách lẻ":
		return "thu khách"
	default:
		return source + " đã thanh toán"
	}
}

// arrivalLine renders one arriving booking for the text report:
// "P450 - Nguyen A (5678) - 2 đêm - Agoda đã thanh toán 500.000".
func arrivalLine(roomNumber string, b model.Booking) string {
	nights := Nights(b.CheckinDate, b.CheckoutDate)

	// Last four of the OTA reference when present, otherwise the internal
	// booking code. Go2Joy codes mean nothing to staff and are omitted.
	code := ""
	switch {
	case b.OTAReference != "":
		ref := b.OTAReference
		if len(ref) > 4 {
			ref = ref[len(ref)-4:]
		}
		code = "(" + ref + ")"
	case b.Source != "Go2Joy":
		code = "(" + b.BookingCode + ")"
	}

	guest := b.GuestName
	if code != "" {
		guest = guest + " " + code
	}

	amount := b.TotalAmount
	if amount == "" {
		amount = "0"
	}

	return fmt.Sprintf("P%s - %s - %d đêm - %s %s", roomNumber, guest, nights, PaymentPhrase(b.Source), amount)
}

// dedupeStaying drops staying rooms that also appear in arriving: a same-day
// turnover is reported once, under arriving. Applying it again is a no-op.
func dedupeStaying(staying []string, arrivingRooms map[string]bool) []string {
	out := staying[:0]
	for _, room := range staying {
		if !arrivingRooms[room] {
			out = append(out, room)
		}
	}
	return out
}

// BuildStatusReport renders the operator-facing plain-text room report.
// allRoomNumbers drives the vacancy section: nil means vacancy was not
// computable (no room list available) and must render as such, while an empty
// list legitimately means every room is occupied.
func BuildStatusReport(bookings []model.Booking, allRoomNumbers []string, facilityName string, now time.Time) string {
	var departed, staying, arriving []string
	occupied := make(map[string]bool)
	arrivingRooms := make(map[string]bool)

	for _, b := range bookings {
		roomNumber := parse.RoomNumber(b.Room)
		if roomNumber == "" {
			roomNumber = "Unassigned"
		}

		switch b.TypeSeachDate {
		case model.TypeDeparting:
			// Departed rooms are free again today: deliberately not occupied.
			departed = append(departed, roomNumber)
		case model.TypeStaying:
			staying = append(staying, roomNumber)
			occupied[roomNumber] = true
		case model.TypeArriving:
			arriving = append(arriving, arrivalLine(roomNumber, b))
			occupied[roomNumber] = true
			arrivingRooms[roomNumber] = true
		}
	}

	staying = dedupeStaying(staying, arrivingRooms)

	var vacant []string
	for _, roomNumber := range allRoomNumbers {
		if !occupied[roomNumber] {
			vacant = append(vacant, roomNumber)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\nBáo cáo ngày: %s\n\n", facilityName, now.Format(DateLayout))
	b.WriteString("TỔNG QUAN:\n")

	writeListSection(&b, "Phòng đi", departed)
	writeListSection(&b, "Phòng lưu", staying)

	switch {
	case len(vacant) > 0:
		fmt.Fprintf(&b, "- Phòng trống: %s\n", strings.Join(vacant, ", "))
	case allRoomNumbers != nil:
		b.WriteString("- Phòng trống: Không có\n")
	default:
		b.WriteString("- Phòng trống: Chưa tính toán (thiếu danh sách phòng)\n")
	}

	if len(arriving) > 0 {
		b.WriteString("- Phòng đến:\n")
		for _, line := range arriving {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	} else {
		b.WriteString("- Phòng đến: Không có\n")
	}

	return b.String()
}

func writeListSection(b *strings.Builder, header string, rooms []string) {
	if len(rooms) > 0 {
		fmt.Fprintf(b, "- %s: %s\n", header, strings.Join(rooms, ", "))
	} else {
		fmt.Fprintf(b, "- %s: Không có\n", header)
	}
}
