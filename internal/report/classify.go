package report

import (
	"fmt"
	"strings"
	"time"

	"ota-report-backend/internal/model"
)

// calendarStatusText maps the calendar blob's numeric status codes to the
// status strings the report table renders.
var calendarStatusText = map[int]string{
	0: "Đã xác nhận",
	1: "Đang giữ phòng",
	2: "Hủy",
	3: "Đã nhận phòng",
	4: "Đã trả phòng",
}

// StatusText renders a calendar booking's status, which is numeric on current
// pages but was a string historically.
func StatusText(status any) string {
	switch v := status.(type) {
	case float64:
		if text, ok := calendarStatusText[int(v)]; ok {
			return text
		}
		return fmt.Sprintf("Status %d", int(v))
	case string:
		return v
	case nil:
		return "Unknown"
	default:
		return fmt.Sprintf("%v", v)
	}
}

func searchTypeFor(code int) model.SearchType {
	for _, st := range model.SearchTypes() {
		if st.TypeSeachDate == code {
			return st
		}
	}
	return model.SearchType{Name: "Unknown"}
}

// ClassifyByStatusText classifies a booking from keywords in its status text.
// The calendar source's status codes are less trustworthy than its prose, so
// keyword matching takes priority over the date window. Checked in order:
// arrival keywords win over departure, matching the upstream UI's behavior.
func ClassifyByStatusText(status string) (model.SearchType, bool) {
	s := strings.ToLower(status)
	switch {
	case strings.Contains(s, "nhận phòng") || strings.Contains(s, "check") || strings.Contains(s, "arrived"):
		return searchTypeFor(model.TypeArriving), true
	case strings.Contains(s, "trả phòng") || strings.Contains(s, "checkout") || strings.Contains(s, "depart"):
		return searchTypeFor(model.TypeDeparting), true
	case strings.Contains(s, "lưu") || strings.Contains(s, "stay") || strings.Contains(s, "occupied"):
		return searchTypeFor(model.TypeStaying), true
	}
	return model.SearchType{}, false
}

// ClassifyByDates is the fallback classifier when the status text carries no
// keyword: check-in today is arriving, check-out today is departing, a stay
// spanning today is staying. Dates are compared at midnight.
func ClassifyByDates(checkin, checkout, today time.Time) (model.SearchType, bool) {
	checkin, checkout, today = Midnight(checkin), Midnight(checkout), Midnight(today)
	switch {
	case checkin.Equal(today):
		return searchTypeFor(model.TypeArriving), true
	case checkout.Equal(today):
		return searchTypeFor(model.TypeDeparting), true
	case checkin.Before(today) && checkout.After(today):
		return searchTypeFor(model.TypeStaying), true
	}
	return model.SearchType{}, false
}

// InReportWindow reports whether a stay is relevant to today's report:
// departing, arriving, or staying. Bookings wholly in the past or future are
// dropped before normalization.
func InReportWindow(checkin, checkout, today time.Time) bool {
	_, ok := ClassifyByDates(checkin, checkout, today)
	return ok
}
