package model

import "time"

// User is an operator account for the report API. Passwords are bcrypt
// hashes; Facilities lists the facility ids a non-admin may query.
type User struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	Username   string   `gorm:"uniqueIndex;not null" json:"username"`
	Password   string   `gorm:"not null" json:"-"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Role       string   `gorm:"default:viewer" json:"role"`
	Facilities []string `gorm:"serializer:json" json:"facilities"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the user may access every facility.
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}

// HasFacility reports whether the user may access the given facility.
func (u *User) HasFacility(facilityID string) bool {
	if u.IsAdmin() {
		return true
	}
	for _, id := range u.Facilities {
		if id == facilityID {
			return true
		}
	}
	return false
}
