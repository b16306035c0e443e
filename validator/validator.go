package validator

import (
	"regexp"
	"time"

	"github.com/evalle012006/sg-sub011/errors"
	"github.com/evalle012006/sg-sub011/models"
)

// ValidateGuest validates a guest record against the flag allow-list
func ValidateGuest(guest *models.Guest, allowedFlags []string) error {
	if guest.FirstName == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "First name is required", nil)
	}

	if guest.LastName == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Last name is required", nil)
	}

	if guest.Email != "" && !isValidEmail(guest.Email) {
		return errors.NewAppError(errors.ErrCodeInvalidEmail, "Invalid email address", nil)
	}

	if guest.PhoneNumber != "" && !isValidPhone(guest.PhoneNumber) {
		return errors.NewAppError(errors.ErrCodeInvalidPhone, "Invalid phone number", nil)
	}

	if guest.DateOfBirth != "" {
		if _, err := time.Parse("02/01/2006", guest.DateOfBirth); err != nil {
			return errors.NewAppError(errors.ErrCodeInvalidFormat, "Invalid date of birth", err)
		}
	}

	allowed := make(map[string]bool, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = true
	}
	for _, flag := range guest.Flags {
		if !allowed[flag] {
			return errors.NewAppError(errors.ErrCodeValidation, "Unknown guest flag: "+flag, nil)
		}
	}

	return nil
}

// ValidateBooking validates a booking request
func ValidateBooking(booking *models.BookingRequest) error {
	if booking.GuestID == 0 {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Guest ID is required", nil)
	}

	arrival, err := time.Parse("02/01/2006", booking.ArrivalDate)
	if err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "Invalid arrival date", err)
	}

	departure, err := time.Parse("02/01/2006", booking.DepartureDate)
	if err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "Invalid departure date", err)
	}

	if !departure.After(arrival) {
		return errors.NewAppError(errors.ErrCodeValidation, "Departure date must be after arrival date", nil)
	}

	if booking.GuestEmail != "" && !isValidEmail(booking.GuestEmail) {
		return errors.NewAppError(errors.ErrCodeInvalidEmail, "Invalid guest email", nil)
	}

	if booking.GuestPhone != "" && !isValidPhone(booking.GuestPhone) {
		return errors.NewAppError(errors.ErrCodeInvalidPhone, "Invalid guest phone number", nil)
	}

	return nil
}

// ValidateNights rejects negative night counts
func ValidateNights(nights, additionalRoomNights int) error {
	if nights < 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "Nights must not be negative", nil)
	}
	if additionalRoomNights < 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "Additional room nights must not be negative", nil)
	}
	return nil
}

// ValidateFundingApproval validates an approval record
func ValidateFundingApproval(approval *models.FundingApproval) error {
	if approval.GuestID == 0 {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Guest ID is required", nil)
	}

	if err := ValidateNights(approval.NightsApproved, approval.AdditionalRoomNightsApproved); err != nil {
		return err
	}

	if approval.ApprovalFrom != "" && approval.ApprovalTo != "" {
		from, err := time.Parse("02/01/2006", approval.ApprovalFrom)
		if err != nil {
			return errors.NewAppError(errors.ErrCodeInvalidFormat, "Invalid approval start date", err)
		}
		to, err := time.Parse("02/01/2006", approval.ApprovalTo)
		if err != nil {
			return errors.NewAppError(errors.ErrCodeInvalidFormat, "Invalid approval end date", err)
		}
		if to.Before(from) {
			return errors.NewAppError(errors.ErrCodeValidation, "Approval end date must be after start date", nil)
		}
	}

	return nil
}

// ValidateEmailTrigger validates a trigger rule, including that its
// condition set decodes
func ValidateEmailTrigger(trigger *models.EmailTrigger) error {
	if trigger.Name == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Trigger name is required", nil)
	}

	if trigger.Recipient == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Recipient is required", nil)
	}

	if !isValidEmail(trigger.Recipient) {
		return errors.NewAppError(errors.ErrCodeInvalidEmail, "Invalid recipient address", nil)
	}

	questions, err := trigger.Questions()
	if err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "Invalid trigger question set", err)
	}
	for _, q := range questions {
		if q.Question == "" {
			return errors.NewAppError(errors.ErrCodeRequiredField, "Trigger question must not be empty", nil)
		}
	}

	return nil
}

// ValidateEmail checks an email address
func ValidateEmail(email string) error {
	if !isValidEmail(email) {
		return errors.NewAppError(errors.ErrCodeInvalidEmail, "Invalid email address", nil)
	}
	return nil
}

// ValidatePassword checks password strength
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.NewAppError(errors.ErrCodeInvalidPassword, "Password must be at least 8 characters", nil)
	}
	return nil
}

func isValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

func isValidPhone(phone string) bool {
	phoneRegex := regexp.MustCompile(`^\+?[0-9]{8,14}$`)
	return phoneRegex.MatchString(phone)
}
