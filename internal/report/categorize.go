package report

import (
	"time"

	"ota-report-backend/internal/model"
)

// CategorizeRooms partitions a facility's rooms into the four report buckets
// from the normalized booking list. rooms must already be filtered to the
// facility. Unlike the text report, the vacancy set here counts departed
// rooms as occupied: this is the raw categorization, the day's turnover rule
// is applied only when rendering the human-readable report.
func CategorizeRooms(bookings []model.Booking, rooms []model.Room, now time.Time) model.RoomCategoryReport {
	var di, den, luu, trong []model.RoomSummary
	occupiedRoomIDs := make(map[int]bool)

	for _, b := range bookings {
		summary := model.RoomSummary{
			RoomID:       b.RoomID,
			RoomName:     b.Room,
			GuestName:    b.GuestName,
			BookingCode:  b.BookingCode,
			CheckinDate:  b.CheckinDate,
			CheckoutDate: b.CheckoutDate,
			Nights:       b.Nights,
			Source:       b.Source,
			TotalAmount:  b.TotalAmount,
			Status:       b.Status,
		}
		occupiedRoomIDs[b.RoomID] = true

		switch b.TypeSeachDate {
		case model.TypeDeparting:
			di = append(di, summary)
		case model.TypeArriving:
			den = append(den, summary)
		case model.TypeStaying:
			luu = append(luu, summary)
		}
	}

	for _, r := range rooms {
		if occupiedRoomIDs[r.ID] {
			continue
		}
		trong = append(trong, model.RoomSummary{
			RoomID:   r.ID,
			RoomName: r.Name,
			RoomType: r.RoomType,
			Floor:    r.Floor,
			Status:   "Vacant",
		})
	}

	return model.RoomCategoryReport{
		PhongDi:    bucket(di),
		PhongDen:   bucket(den),
		PhongLuu:   bucket(luu),
		PhongTrong: bucket(trong),
		Summary: model.CategorySummary{
			TotalRooms:    len(rooms),
			OccupiedRooms: len(occupiedRoomIDs),
			VacantRooms:   len(trong),
			Date:          Midnight(now).Format("2006-01-02"),
		},
	}
}

func bucket(rooms []model.RoomSummary) model.RoomCategoryBucket {
	return model.RoomCategoryBucket{Count: len(rooms), Rooms: rooms}
}
