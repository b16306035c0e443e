package validator_test

import (
	"encoding/json"
	"testing"

	apperrors "github.com/evalle012006/sg-sub011/errors"
	"github.com/evalle012006/sg-sub011/models"
	"github.com/evalle012006/sg-sub011/validator"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestValidateGuest(t *testing.T) {
	allowed := []string{"banned", "complex_care"}

	tests := []struct {
		name     string
		guest    models.Guest
		wantCode apperrors.ErrorCode
	}{
		{
			name: "valid guest",
			guest: models.Guest{
				FirstName:   "June",
				LastName:    "Nguyen",
				Email:       "june@example.org",
				PhoneNumber: "+61400000000",
				DateOfBirth: "23/08/1964",
				Flags:       pq.StringArray{"complex_care"},
			},
		},
		{
			name:     "missing first name",
			guest:    models.Guest{LastName: "Nguyen"},
			wantCode: apperrors.ErrCodeRequiredField,
		},
		{
			name:     "missing last name",
			guest:    models.Guest{FirstName: "June"},
			wantCode: apperrors.ErrCodeRequiredField,
		},
		{
			name:     "bad email",
			guest:    models.Guest{FirstName: "June", LastName: "Nguyen", Email: "june@"},
			wantCode: apperrors.ErrCodeInvalidEmail,
		},
		{
			name:     "bad phone",
			guest:    models.Guest{FirstName: "June", LastName: "Nguyen", PhoneNumber: "call me"},
			wantCode: apperrors.ErrCodeInvalidPhone,
		},
		{
			name:     "bad date of birth",
			guest:    models.Guest{FirstName: "June", LastName: "Nguyen", DateOfBirth: "1964-08-23"},
			wantCode: apperrors.ErrCodeInvalidFormat,
		},
		{
			name: "flag outside the allow-list",
			guest: models.Guest{
				FirstName: "June",
				LastName:  "Nguyen",
				Flags:     pq.StringArray{"frequent_flyer"},
			},
			wantCode: apperrors.ErrCodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateGuest(&tt.guest, allowed)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, apperrors.HasCode(err, tt.wantCode), "got %v", err)
		})
	}
}

func TestValidateBooking(t *testing.T) {
	valid := models.BookingRequest{
		GuestID:       1,
		ArrivalDate:   "10/03/2025",
		DepartureDate: "14/03/2025",
	}
	assert.NoError(t, validator.ValidateBooking(&valid))

	missingGuest := valid
	missingGuest.GuestID = 0
	assert.True(t, apperrors.HasCode(validator.ValidateBooking(&missingGuest), apperrors.ErrCodeRequiredField))

	badArrival := valid
	badArrival.ArrivalDate = "2025-03-10"
	assert.True(t, apperrors.HasCode(validator.ValidateBooking(&badArrival), apperrors.ErrCodeInvalidFormat))

	sameDay := valid
	sameDay.DepartureDate = sameDay.ArrivalDate
	assert.True(t, apperrors.HasCode(validator.ValidateBooking(&sameDay), apperrors.ErrCodeValidation))

	backwards := valid
	backwards.ArrivalDate = "14/03/2025"
	backwards.DepartureDate = "10/03/2025"
	assert.True(t, apperrors.HasCode(validator.ValidateBooking(&backwards), apperrors.ErrCodeValidation))
}

func TestValidateNights(t *testing.T) {
	assert.NoError(t, validator.ValidateNights(0, 0))
	assert.NoError(t, validator.ValidateNights(5, 2))
	assert.True(t, apperrors.HasCode(validator.ValidateNights(-1, 0), apperrors.ErrCodeValidation))
	assert.True(t, apperrors.HasCode(validator.ValidateNights(0, -1), apperrors.ErrCodeValidation))
}

func TestValidateFundingApproval(t *testing.T) {
	valid := models.FundingApproval{
		GuestID:        1,
		NightsApproved: 10,
		ApprovalFrom:   "01/01/2025",
		ApprovalTo:     "31/12/2025",
	}
	assert.NoError(t, validator.ValidateFundingApproval(&valid))

	backwards := valid
	backwards.ApprovalFrom = "31/12/2025"
	backwards.ApprovalTo = "01/01/2025"
	assert.True(t, apperrors.HasCode(validator.ValidateFundingApproval(&backwards), apperrors.ErrCodeValidation))

	negative := valid
	negative.NightsApproved = -5
	assert.True(t, apperrors.HasCode(validator.ValidateFundingApproval(&negative), apperrors.ErrCodeValidation))
}

func TestValidateEmailTrigger(t *testing.T) {
	valid := models.EmailTrigger{
		Name:             "dietary",
		Recipient:        "kitchen@example.org",
		TriggerQuestions: json.RawMessage(`[{"question":"dietary_requirements","answer":["vegan"]}]`),
	}
	assert.NoError(t, validator.ValidateEmailTrigger(&valid))

	noRecipient := valid
	noRecipient.Recipient = ""
	assert.True(t, apperrors.HasCode(validator.ValidateEmailTrigger(&noRecipient), apperrors.ErrCodeRequiredField))

	badQuestions := valid
	badQuestions.TriggerQuestions = json.RawMessage(`{"oops"`)
	assert.True(t, apperrors.HasCode(validator.ValidateEmailTrigger(&badQuestions), apperrors.ErrCodeInvalidFormat))

	emptyQuestion := valid
	emptyQuestion.TriggerQuestions = json.RawMessage(`[{"question":"","answer":["x"]}]`)
	assert.True(t, apperrors.HasCode(validator.ValidateEmailTrigger(&emptyQuestion), apperrors.ErrCodeRequiredField))
}
