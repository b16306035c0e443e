package models

import (
	"encoding/json"
	"time"
)

type Equipment struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Category     string    `json:"category"`
	SerialNumber string    `json:"serialNumber"`
	Available    bool      `gorm:"default:true" json:"available"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// BookingEquipment joins a booking to a piece of equipment, optionally for
// a sub-window of the stay.
type BookingEquipment struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	BookingID   uint            `gorm:"index;not null" json:"bookingId"`
	EquipmentID uint            `gorm:"index;not null" json:"equipmentId"`
	StartDate   *string         `json:"startDate,omitempty"`
	EndDate     *string         `json:"endDate,omitempty"`
	MetaData    json.RawMessage `gorm:"type:jsonb" json:"metaData,omitempty"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}
