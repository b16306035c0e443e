package models_test

import (
	"testing"

	"github.com/evalle012006/sg-sub011/constants"
	apperrors "github.com/evalle012006/sg-sub011/errors"
	"github.com/evalle012006/sg-sub011/models"

	"github.com/stretchr/testify/assert"
)

func stateOf(catalog *models.StateCatalog, name string) models.StateValue {
	return catalog.Statuses[name].Value()
}

func TestStateCatalog_Transition(t *testing.T) {
	catalog := models.DefaultStateCatalog()
	noCharge := constants.CancellationNoCharge
	fullCharge := constants.CancellationFullCharge
	bogus := "partial_charge"

	tests := []struct {
		name        string
		current     string
		eligibility string
		req         models.TransitionRequest
		wantStatus  string
		wantElig    string
		wantCode    apperrors.ErrorCode
	}{
		{
			name:        "enquiry to pending approval",
			current:     constants.StatusEnquiry,
			eligibility: constants.EligibilityPending,
			req:         models.TransitionRequest{Status: constants.StatusPendingApproval, ActorRole: constants.RoleStaff},
			wantStatus:  constants.StatusPendingApproval,
			wantElig:    constants.EligibilityPending,
		},
		{
			name:        "eligibility updated alongside status",
			current:     constants.StatusPendingEligibility,
			eligibility: constants.EligibilityPending,
			req: models.TransitionRequest{
				Status:      constants.StatusConfirmed,
				Eligibility: constants.EligibilityEligible,
				ActorRole:   constants.RoleStaff,
			},
			wantStatus: constants.StatusConfirmed,
			wantElig:   constants.EligibilityEligible,
		},
		{
			name:        "eligibility updated without a status move",
			current:     constants.StatusPendingEligibility,
			eligibility: constants.EligibilityPending,
			req: models.TransitionRequest{
				Status:      constants.StatusPendingEligibility,
				Eligibility: constants.EligibilityEligible,
				ActorRole:   constants.RoleStaff,
			},
			wantStatus: constants.StatusPendingEligibility,
			wantElig:   constants.EligibilityEligible,
		},
		{
			name:        "eligibility declined in place on a confirmed booking",
			current:     constants.StatusConfirmed,
			eligibility: constants.EligibilityEligible,
			req: models.TransitionRequest{
				Status:      constants.StatusConfirmed,
				Eligibility: constants.EligibilityDeclined,
				ActorRole:   constants.RoleStaff,
			},
			wantStatus: constants.StatusConfirmed,
			wantElig:   constants.EligibilityDeclined,
		},
		{
			name:        "terminal state rejects an eligibility update too",
			current:     constants.StatusBookingCancelled,
			eligibility: constants.EligibilityPending,
			req: models.TransitionRequest{
				Status:      constants.StatusBookingCancelled,
				Eligibility: constants.EligibilityDeclined,
				ActorRole:   constants.RoleStaff,
			},
			wantCode: apperrors.ErrCodeInvalidTransition,
		},
		{
			name:        "unknown target status",
			current:     constants.StatusEnquiry,
			eligibility: constants.EligibilityPending,
			req:         models.TransitionRequest{Status: "archived", ActorRole: constants.RoleStaff},
			wantCode:    apperrors.ErrCodeInvalidTransition,
		},
		{
			name:        "unknown eligibility",
			current:     constants.StatusPendingApproval,
			eligibility: constants.EligibilityPending,
			req: models.TransitionRequest{
				Status:      constants.StatusConfirmed,
				Eligibility: "maybe",
				ActorRole:   constants.RoleStaff,
			},
			wantCode: apperrors.ErrCodeInvalidTransition,
		},
		{
			name:        "terminal state rejects any move",
			current:     constants.StatusGuestCancelled,
			eligibility: constants.EligibilityPending,
			req:         models.TransitionRequest{Status: constants.StatusConfirmed, ActorRole: constants.RoleStaff},
			wantCode:    apperrors.ErrCodeInvalidTransition,
		},
		{
			name:        "move outside the transition list",
			current:     constants.StatusEnquiry,
			eligibility: constants.EligibilityPending,
			req:         models.TransitionRequest{Status: constants.StatusConfirmed, ActorRole: constants.RoleStaff},
			wantCode:    apperrors.ErrCodeInvalidTransition,
		},
		{
			name:        "cancellation without a cancellation type",
			current:     constants.StatusConfirmed,
			eligibility: constants.EligibilityEligible,
			req:         models.TransitionRequest{Status: constants.StatusBookingCancelled, ActorRole: constants.RoleStaff},
			wantCode:    apperrors.ErrCodeInvalidTransition,
		},
		{
			name:        "cancellation with an unknown charge type",
			current:     constants.StatusConfirmed,
			eligibility: constants.EligibilityEligible,
			req: models.TransitionRequest{
				Status:           constants.StatusBookingCancelled,
				CancellationType: &bogus,
				ActorRole:        constants.RoleStaff,
			},
			wantCode: apperrors.ErrCodeValidation,
		},
		{
			name:        "full charge cancellation",
			current:     constants.StatusConfirmed,
			eligibility: constants.EligibilityEligible,
			req: models.TransitionRequest{
				Status:           constants.StatusBookingCancelled,
				CancellationType: &fullCharge,
				ActorRole:        constants.RoleStaff,
			},
			wantStatus: constants.StatusBookingCancelled,
			wantElig:   constants.EligibilityEligible,
		},
		{
			name:        "cancellation type on a non-cancellation status",
			current:     constants.StatusEnquiry,
			eligibility: constants.EligibilityPending,
			req: models.TransitionRequest{
				Status:           constants.StatusPendingApproval,
				CancellationType: &noCharge,
				ActorRole:        constants.RoleStaff,
			},
			wantCode: apperrors.ErrCodeValidation,
		},
		{
			name:        "guest may cancel their own booking",
			current:     constants.StatusConfirmed,
			eligibility: constants.EligibilityEligible,
			req: models.TransitionRequest{
				Status:           constants.StatusGuestCancelled,
				CancellationType: &noCharge,
				ActorRole:        constants.RoleGuest,
			},
			wantStatus: constants.StatusGuestCancelled,
			wantElig:   constants.EligibilityEligible,
		},
		{
			name:        "guest may not confirm a booking",
			current:     constants.StatusOnHold,
			eligibility: constants.EligibilityEligible,
			req:         models.TransitionRequest{Status: constants.StatusConfirmed, ActorRole: constants.RoleGuest},
			wantCode:    apperrors.ErrCodeInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := stateOf(catalog, tt.current)
			eligibility := catalog.Eligibilities[tt.eligibility].Value()

			status, elig, err := catalog.Transition(current, eligibility, tt.req)

			if tt.wantCode != "" {
				assert.Error(t, err)
				assert.True(t, apperrors.HasCode(err, tt.wantCode),
					"expected code %s, got %v", tt.wantCode, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, status.Name)
			assert.Equal(t, tt.wantElig, elig.Name)
		})
	}
}

func TestStateCatalog_RuntimeAddedStatus(t *testing.T) {
	catalog := models.DefaultStateCatalog()

	// Admins can extend the catalog at runtime; a new entry with an empty
	// transition list accepts moves from anywhere non-terminal.
	catalog.Statuses["waitlisted"] = models.StatusOption{
		Name:  "waitlisted",
		Label: "Waitlisted",
		Color: "#673ab7",
	}
	pending := catalog.Statuses[constants.StatusPendingApproval]
	pending.Transitions = append(pending.Transitions, "waitlisted")
	catalog.Statuses[constants.StatusPendingApproval] = pending

	status, _, err := catalog.Transition(
		stateOf(catalog, constants.StatusPendingApproval),
		catalog.Eligibilities[constants.EligibilityPending].Value(),
		models.TransitionRequest{Status: "waitlisted", ActorRole: constants.RoleStaff},
	)
	assert.NoError(t, err)
	assert.Equal(t, "waitlisted", status.Name)
	assert.Equal(t, "Waitlisted", status.Label)

	// The new entry is not terminal, so it can move on to a listed state.
	status, _, err = catalog.Transition(
		status,
		catalog.Eligibilities[constants.EligibilityPending].Value(),
		models.TransitionRequest{Status: constants.StatusEnquiry, ActorRole: constants.RoleStaff},
	)
	assert.NoError(t, err)
	assert.Equal(t, constants.StatusEnquiry, status.Name)
}

func TestIsNoOpTransition(t *testing.T) {
	catalog := models.DefaultStateCatalog()
	status := stateOf(catalog, constants.StatusConfirmed)
	eligibility := catalog.Eligibilities[constants.EligibilityEligible].Value()

	assert.True(t, models.IsNoOpTransition(status, eligibility, models.TransitionRequest{
		Status: constants.StatusConfirmed,
	}))
	assert.True(t, models.IsNoOpTransition(status, eligibility, models.TransitionRequest{
		Status:      constants.StatusConfirmed,
		Eligibility: constants.EligibilityEligible,
	}))

	// A new eligibility on the same status is an effective change.
	assert.False(t, models.IsNoOpTransition(status, eligibility, models.TransitionRequest{
		Status:      constants.StatusConfirmed,
		Eligibility: constants.EligibilityDeclined,
	}))
	assert.False(t, models.IsNoOpTransition(status, eligibility, models.TransitionRequest{
		Status: constants.StatusOnHold,
	}))
}

func TestStateCatalog_Predicates(t *testing.T) {
	catalog := models.DefaultStateCatalog()

	assert.True(t, catalog.IsTerminal(constants.StatusGuestCancelled))
	assert.True(t, catalog.IsTerminal(constants.StatusBookingCancelled))
	assert.False(t, catalog.IsTerminal(constants.StatusConfirmed))
	assert.False(t, catalog.IsTerminal("never_heard_of_it"))

	assert.True(t, catalog.IsCancellation(constants.StatusBookingCancelled))
	assert.False(t, catalog.IsCancellation(constants.StatusOnHold))
}

func TestBooking_Nights(t *testing.T) {
	booking := &models.Booking{ArrivalDate: "10/03/2025", DepartureDate: "14/03/2025"}
	assert.Equal(t, 4, booking.Nights())

	booking = &models.Booking{ArrivalDate: "not-a-date", DepartureDate: "14/03/2025"}
	assert.Equal(t, 0, booking.Nights())
}
