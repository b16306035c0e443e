package models

import (
	"encoding/json"
	"time"
)

// Setting is one runtime configuration row. The booking status and
// eligibility catalogs and the guest flag allow-list live here so admins
// can extend them without a deploy.
type Setting struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Key       string          `gorm:"uniqueIndex;not null" json:"key"`
	Value     json.RawMessage `gorm:"type:jsonb" json:"value"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}
