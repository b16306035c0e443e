package dto

import "time"

// CreateGuestRequest creates a guest record
type CreateGuestRequest struct {
	FirstName   string   `json:"firstName" binding:"required"`
	LastName    string   `json:"lastName" binding:"required"`
	Email       string   `json:"email" binding:"omitempty,email"`
	PhoneNumber string   `json:"phoneNumber"`
	Address     string   `json:"address"`
	DateOfBirth string   `json:"dateOfBirth"`
	Flags       []string `json:"flags"`
}

// UpdateGuestRequest updates a guest record
type UpdateGuestRequest struct {
	ID          uint     `json:"id" binding:"required"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Email       string   `json:"email" binding:"omitempty,email"`
	PhoneNumber string   `json:"phoneNumber"`
	Address     string   `json:"address"`
	DateOfBirth string   `json:"dateOfBirth"`
	Flags       []string `json:"flags"`
	Active      *bool    `json:"active"`
}

// GuestResponse is the guest payload returned to the console
type GuestResponse struct {
	ID          uint      `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	Address     string    `json:"address"`
	DateOfBirth string    `json:"dateOfBirth"`
	Flags       []string  `json:"flags"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// RecordAnswersRequest stores a guest's submitted question/answer set
type RecordAnswersRequest struct {
	GuestID   uint             `json:"guestId" binding:"required"`
	BookingID *uint            `json:"bookingId"`
	Answers   []AnswerPayload  `json:"answers" binding:"required,dive"`
}

type AnswerPayload struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer"`
}
