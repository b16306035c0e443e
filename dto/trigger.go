package dto

import (
	"encoding/json"
	"time"
)

// CreateTriggerRequest creates an email trigger rule
type CreateTriggerRequest struct {
	Name             string          `json:"name" binding:"required"`
	TriggerQuestions json.RawMessage `json:"triggerQuestions" binding:"required"`
	Type             string          `json:"type" binding:"required,oneof=highlights external internal"`
	Recipient        string          `json:"recipient" binding:"required,email"`
	Template         string          `json:"template"`
	Enabled          *bool           `json:"enabled"`
}

// UpdateTriggerRequest updates an email trigger rule
type UpdateTriggerRequest struct {
	ID               uint            `json:"id" binding:"required"`
	Name             string          `json:"name"`
	TriggerQuestions json.RawMessage `json:"triggerQuestions"`
	Type             string          `json:"type" binding:"omitempty,oneof=highlights external internal"`
	Recipient        string          `json:"recipient" binding:"omitempty,email"`
	Template         string          `json:"template"`
	Enabled          *bool           `json:"enabled"`
}

// TriggerResponse is the email trigger payload
type TriggerResponse struct {
	ID               uint            `json:"id"`
	Name             string          `json:"name"`
	TriggerQuestions json.RawMessage `json:"triggerQuestions"`
	Type             string          `json:"type"`
	Recipient        string          `json:"recipient"`
	Template         string          `json:"template"`
	Enabled          bool            `json:"enabled"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// FiredTriggerResponse is one fired rule out of an evaluation
type FiredTriggerResponse struct {
	TriggerID uint   `json:"triggerId"`
	Name      string `json:"name"`
	Recipient string `json:"recipient"`
	Template  string `json:"template"`
}

// CreateNotificationRuleRequest creates a notification library rule
type CreateNotificationRuleRequest struct {
	Name       string `json:"name" binding:"required"`
	Message    string `json:"message" binding:"required"`
	DateFactor int    `json:"dateFactor"`
	AlertType  string `json:"alertType" binding:"required,oneof=admin clinical guest"`
	Enabled    *bool  `json:"enabled"`
}
