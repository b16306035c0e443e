package models

import (
	"time"

	"github.com/lib/pq"
)

type Guest struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	FirstName   string         `gorm:"not null" json:"firstName"`
	LastName    string         `gorm:"not null" json:"lastName"`
	Email       string         `gorm:"unique" json:"email"`
	PhoneNumber string         `gorm:"type:varchar(15)" json:"phoneNumber"`
	Address     string         `json:"address"`
	DateOfBirth string         `json:"dateOfBirth"`
	Flags       pq.StringArray `gorm:"type:text[]" json:"flags"`
	Active      bool           `gorm:"default:true" json:"active"`
	Bookings    []Booking      `json:"bookings,omitempty" gorm:"foreignKey:GuestID"`
	Answers     []GuestAnswer  `json:"answers,omitempty" gorm:"foreignKey:GuestID"`
}

// HasFlag reports whether the guest carries the given tag.
func (g *Guest) HasFlag(flag string) bool {
	for _, f := range g.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// GuestAnswer is one recorded question/answer pair from a guest's intake
// or booking form. Trigger rules are evaluated against these rows.
type GuestAnswer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GuestID   uint      `gorm:"index;not null" json:"guestId"`
	BookingID *uint     `gorm:"index" json:"bookingId,omitempty"`
	Question  string    `gorm:"not null" json:"question"`
	Answer    string    `gorm:"type:text" json:"answer"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
