package dto

import "time"

// CreateEquipmentRequest registers a new asset
type CreateEquipmentRequest struct {
	Name         string `json:"name" binding:"required"`
	Category     string `json:"category"`
	SerialNumber string `json:"serialNumber"`
}

// UpdateEquipmentRequest updates an asset
type UpdateEquipmentRequest struct {
	ID           uint   `json:"id" binding:"required"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	SerialNumber string `json:"serialNumber"`
	Available    *bool  `json:"available"`
}

// EquipmentResponse is the asset payload
type EquipmentResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	SerialNumber string    `json:"serialNumber"`
	Available    bool      `json:"available"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
