package models

import "time"

// NotificationLibrary is a rule for an in-app alert raised DateFactor days
// relative to a booking's arrival date (negative means before arrival).
type NotificationLibrary struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	Message    string    `gorm:"type:text" json:"message"`
	DateFactor int       `gorm:"default:0" json:"dateFactor"`
	AlertType  string    `gorm:"type:varchar(20)" json:"alertType"`
	Enabled    bool      `gorm:"default:true" json:"enabled"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Notification is a materialized alert for a booking, produced when a
// library rule comes due.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BookingID uint      `gorm:"index;not null" json:"bookingId"`
	GuestID   uint      `gorm:"index;not null" json:"guestId"`
	RuleID    *uint     `gorm:"index" json:"ruleId,omitempty"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	AlertType string    `gorm:"type:varchar(20)" json:"alertType"`
	Read      bool      `gorm:"default:false" json:"read"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
