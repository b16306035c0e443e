package dto

import (
	"encoding/json"
	"time"
)

// UpsertSettingRequest creates or replaces a settings row
type UpsertSettingRequest struct {
	Key   string          `json:"key" binding:"required"`
	Value json.RawMessage `json:"value" binding:"required"`
}

// SettingResponse is one settings row
type SettingResponse struct {
	ID        uint            `json:"id"`
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
