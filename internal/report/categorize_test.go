package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ota-report-backend/internal/model"
)

func TestCategorizeRooms(t *testing.T) {
	now := time.Date(2025, 8, 10, 9, 0, 0, 0, time.UTC)
	rooms := []model.Room{
		{ID: 10, Name: "1N1K - 450", RoomType: 41, Floor: 4},
		{ID: 11, Name: "1N1K - 451", RoomType: 41, Floor: 4},
		{ID: 12, Name: "1N1K - 452", RoomType: 41, Floor: 4},
		{ID: 13, Name: "1N1K - 453", RoomType: 41, Floor: 4},
	}
	bookings := []model.Booking{
		{RoomID: 10, Room: "1N1K - 450", GuestName: "A", TypeSeachDate: model.TypeDeparting},
		{RoomID: 11, Room: "1N1K - 451", GuestName: "B", TypeSeachDate: model.TypeStaying},
		{RoomID: 12, Room: "1N1K - 452", GuestName: "C", TypeSeachDate: model.TypeArriving},
	}

	got := CategorizeRooms(bookings, rooms, now)

	assert.Equal(t, 1, got.PhongDi.Count)
	assert.Equal(t, 1, got.PhongLuu.Count)
	assert.Equal(t, 1, got.PhongDen.Count)

	// Departed rooms still count as occupied in the raw categorization; only
	// room 453 had no booking at all.
	require.Equal(t, 1, got.PhongTrong.Count)
	assert.Equal(t, 13, got.PhongTrong.Rooms[0].RoomID)
	assert.Equal(t, "Vacant", got.PhongTrong.Rooms[0].Status)

	assert.Equal(t, 4, got.Summary.TotalRooms)
	assert.Equal(t, 3, got.Summary.OccupiedRooms)
	assert.Equal(t, 1, got.Summary.VacantRooms)
	assert.Equal(t, "2025-08-10", got.Summary.Date)
}

func TestCategorizeRoomsNoBookings(t *testing.T) {
	now := time.Date(2025, 8, 10, 9, 0, 0, 0, time.UTC)
	rooms := []model.Room{{ID: 10, Name: "1N1K - 450"}}

	got := CategorizeRooms(nil, rooms, now)

	assert.Zero(t, got.PhongDi.Count)
	assert.Zero(t, got.PhongDen.Count)
	assert.Zero(t, got.PhongLuu.Count)
	assert.Equal(t, 1, got.PhongTrong.Count)
	assert.Equal(t, 0, got.Summary.OccupiedRooms)
}
