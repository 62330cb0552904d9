package parse

import (
	"regexp"
	"strings"
)

var roomNumberRe = regexp.MustCompile(`-\s*(\d+)`)

// RoomNumber extracts the room number from a PMS room label. Labels look like
// "1N1K - 450" or "STD - NKT - 304"; the number is the digit run after a
// dash. Labels without one (e.g. "Unassigned") are returned as-is so the
// report still shows something an operator can recognize.
func RoomNumber(label string) string {
	if m := roomNumberRe.FindStringSubmatch(label); m != nil {
		return m[1]
	}
	return strings.TrimSpace(label)
}

// RoomPrefix returns the part of a room label before the first dash, used to
// derive property display names from calendar rooms ("STD - NKT - 304" ->
// "STD").
func RoomPrefix(label string) string {
	before, _, found := strings.Cut(label, " - ")
	if !found {
		return ""
	}
	return strings.TrimSpace(before)
}
