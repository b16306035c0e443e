package dto

import (
	"encoding/json"
	"time"

	"github.com/evalle012006/sg-sub011/models"
)

// CreateBookingRequest opens a new booking enquiry
type CreateBookingRequest struct {
	GuestID       uint   `json:"guestId" binding:"required"`
	ArrivalDate   string `json:"arrivalDate" binding:"required"`
	DepartureDate string `json:"departureDate" binding:"required"`
}

// TransitionBookingRequest requests a status/eligibility change
type TransitionBookingRequest struct {
	Status           string  `json:"status" binding:"required"`
	Eligibility      string  `json:"eligibility"`
	CancellationType *string `json:"cancellationType"`
}

// AttachAllocationRequest links a booking to a funding allocation
type AttachAllocationRequest struct {
	AllocationID uint `json:"allocationId" binding:"required"`
}

// ConsentRequest records signature or verbal consent evidence
type ConsentRequest struct {
	Signature     json.RawMessage `json:"signature"`
	VerbalConsent json.RawMessage `json:"verbalConsent"`
}

// BookingResponse is the booking payload returned to the console
type BookingResponse struct {
	ID               uint              `json:"id"`
	Reference        string            `json:"reference"`
	GuestID          uint              `json:"guestId"`
	GuestName        string            `json:"guestName,omitempty"`
	ArrivalDate      string            `json:"arrivalDate"`
	DepartureDate    string            `json:"departureDate"`
	Status           models.StateValue `json:"status"`
	Eligibility      models.StateValue `json:"eligibility"`
	CancellationType *string           `json:"cancellationType,omitempty"`
	NightsConsumed   int               `json:"nightsConsumed"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
	Deleted          bool              `json:"deleted,omitempty"`
}

// AuditLogResponse is one audit trail entry
type AuditLogResponse struct {
	ID             uint              `json:"id"`
	BookingID      uint              `json:"bookingId"`
	GuestID        uint              `json:"guestId"`
	UserID         *uint             `json:"userId,omitempty"`
	Action         string            `json:"action"`
	OldStatus      models.StateValue `json:"oldStatus"`
	NewStatus      models.StateValue `json:"newStatus"`
	OldEligibility models.StateValue `json:"oldEligibility"`
	NewEligibility models.StateValue `json:"newEligibility"`
	CreatedAt      time.Time         `json:"createdAt"`
}

// AssignEquipmentRequest attaches equipment to a booking
type AssignEquipmentRequest struct {
	EquipmentID uint            `json:"equipmentId" binding:"required"`
	StartDate   *string         `json:"startDate"`
	EndDate     *string         `json:"endDate"`
	MetaData    json.RawMessage `json:"metaData"`
}
