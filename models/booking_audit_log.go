package models

import "time"

// BookingAuditLog records one effective booking state change. Rows are
// appended in the same transaction as the transition itself.
type BookingAuditLog struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	BookingID      uint       `gorm:"index;not null" json:"bookingId"`
	GuestID        uint       `gorm:"index;not null" json:"guestId"`
	UserID         *uint      `gorm:"index" json:"userId,omitempty"`
	Action         string     `json:"action"`
	OldStatus      StateValue `gorm:"type:jsonb" json:"oldStatus"`
	NewStatus      StateValue `gorm:"type:jsonb" json:"newStatus"`
	OldEligibility StateValue `gorm:"type:jsonb" json:"oldEligibility"`
	NewEligibility StateValue `gorm:"type:jsonb" json:"newEligibility"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"createdAt"`
}
