package builders

import (
	"github.com/evalle012006/sg-sub011/models"
)

// BookingBuilder assembles a booking step by step
type BookingBuilder struct {
	booking *models.Booking
}

// NewBookingBuilder creates a new BookingBuilder
func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		booking: &models.Booking{},
	}
}

// WithGuest sets the owning guest
func (b *BookingBuilder) WithGuest(guestID uint) *BookingBuilder {
	b.booking.GuestID = guestID
	return b
}

// WithReference sets the booking reference
func (b *BookingBuilder) WithReference(reference string) *BookingBuilder {
	b.booking.Reference = reference
	return b
}

// WithStatus sets the initial status value
func (b *BookingBuilder) WithStatus(status models.StateValue) *BookingBuilder {
	b.booking.Status = status
	return b
}

// WithEligibility sets the initial eligibility value
func (b *BookingBuilder) WithEligibility(eligibility models.StateValue) *BookingBuilder {
	b.booking.Eligibility = eligibility
	return b
}

// WithStay sets the arrival and departure dates
func (b *BookingBuilder) WithStay(arrival, departure string) *BookingBuilder {
	b.booking.ArrivalDate = arrival
	b.booking.DepartureDate = departure
	return b
}

// WithAllocation links a funding allocation
func (b *BookingBuilder) WithAllocation(allocationID uint) *BookingBuilder {
	b.booking.AllocationID = &allocationID
	return b
}

// Build returns the assembled booking
func (b *BookingBuilder) Build() *models.Booking {
	return b.booking
}
