package models

import (
	"github.com/evalle012006/sg-sub011/constants"
	"github.com/evalle012006/sg-sub011/errors"
)

// StatusOption is one entry of the runtime status catalog loaded from the
// settings table. Admins can add statuses at runtime, so transition rules
// ride on the entry itself instead of a compiled table: an empty Transitions
// list permits any move to a non-terminal state.
type StatusOption struct {
	Name         string   `json:"name"`
	Label        string   `json:"label"`
	Color        string   `json:"color"`
	Terminal     bool     `json:"terminal"`
	Cancellation bool     `json:"cancellation"`
	Transitions  []string `json:"transitions,omitempty"`
}

// Value returns the stored form of the catalog entry.
func (o StatusOption) Value() StateValue {
	return StateValue{Name: o.Name, Label: o.Label, Color: o.Color}
}

// StateCatalog is the loaded status/eligibility catalog the state machine
// runs against.
type StateCatalog struct {
	Statuses      map[string]StatusOption
	Eligibilities map[string]StatusOption
}

// TransitionRequest describes a requested booking state change.
type TransitionRequest struct {
	Status           string
	Eligibility      string
	CancellationType *string
	ActorRole        int
}

// IsNoOpTransition reports whether req asks for the state the booking is
// already in. Re-requesting the current state returns the booking
// unchanged and writes no audit row; an omitted eligibility means "keep
// the current one".
func IsNoOpTransition(currentStatus, currentEligibility StateValue, req TransitionRequest) bool {
	return req.Status == currentStatus.Name &&
		(req.Eligibility == "" || req.Eligibility == currentEligibility.Name)
}

// Transition validates a requested change against the catalog and returns
// the new status/eligibility pair. The caller is responsible for detecting
// the no-op case (see IsNoOpTransition) before calling; requesting the
// current status with a different eligibility is a valid in-place update.
func (c *StateCatalog) Transition(current, currentEligibility StateValue, req TransitionRequest) (StateValue, StateValue, error) {
	target, ok := c.Statuses[req.Status]
	if !ok {
		return StateValue{}, StateValue{}, errors.NewAppError(errors.ErrCodeInvalidTransition,
			"unknown booking status: "+req.Status, nil)
	}

	nextEligibility := currentEligibility
	if req.Eligibility != "" {
		elig, ok := c.Eligibilities[req.Eligibility]
		if !ok {
			return StateValue{}, StateValue{}, errors.NewAppError(errors.ErrCodeInvalidTransition,
				"unknown eligibility: "+req.Eligibility, nil)
		}
		nextEligibility = elig.Value()
	}

	cur, ok := c.Statuses[current.Name]
	if ok && cur.Terminal {
		return StateValue{}, StateValue{}, errors.NewAppError(errors.ErrCodeInvalidTransition,
			"booking is in terminal state "+current.Name, nil)
	}

	// Staying on the current status is always allowed so eligibility can
	// change without a workflow move.
	if ok && target.Name != current.Name &&
		len(cur.Transitions) > 0 && !contains(cur.Transitions, target.Name) {
		return StateValue{}, StateValue{}, errors.NewAppError(errors.ErrCodeInvalidTransition,
			"cannot move from "+current.Name+" to "+target.Name, nil)
	}

	if target.Cancellation {
		if req.CancellationType == nil {
			return StateValue{}, StateValue{}, errors.NewAppError(errors.ErrCodeInvalidTransition,
				"cancellation requires a cancellation type", nil)
		}
		if *req.CancellationType != constants.CancellationNoCharge &&
			*req.CancellationType != constants.CancellationFullCharge {
			return StateValue{}, StateValue{}, errors.NewAppError(errors.ErrCodeValidation,
				"invalid cancellation type: "+*req.CancellationType, nil)
		}
	} else if req.CancellationType != nil {
		return StateValue{}, StateValue{}, errors.NewAppError(errors.ErrCodeValidation,
			"cancellation type only applies to cancellation statuses", nil)
	}

	// Guests may only withdraw their own booking; every other move is staff-side.
	if req.ActorRole == constants.RoleGuest && target.Name != constants.StatusGuestCancelled {
		return StateValue{}, StateValue{}, errors.NewAppError(errors.ErrCodeInvalidTransition,
			"guests may only cancel their booking", nil)
	}

	return target.Value(), nextEligibility, nil
}

// IsTerminal reports whether the named status is terminal in this catalog.
func (c *StateCatalog) IsTerminal(name string) bool {
	opt, ok := c.Statuses[name]
	return ok && opt.Terminal
}

// IsCancellation reports whether the named status is a cancellation state.
func (c *StateCatalog) IsCancellation(name string) bool {
	opt, ok := c.Statuses[name]
	return ok && opt.Cancellation
}

func contains(list []string, name string) bool {
	for _, s := range list {
		if s == name {
			return true
		}
	}
	return false
}

// DefaultStateCatalog returns the catalog seeded on a fresh install. The
// settings table overrides it once populated.
func DefaultStateCatalog() *StateCatalog {
	statuses := []StatusOption{
		{Name: constants.StatusEnquiry, Label: "Enquiry", Color: "#9e9e9e",
			Transitions: []string{constants.StatusPendingApproval, constants.StatusGuestCancelled, constants.StatusBookingCancelled}},
		{Name: constants.StatusPendingApproval, Label: "Pending Approval", Color: "#ff9800",
			Transitions: []string{constants.StatusPendingEligibility, constants.StatusConfirmed, constants.StatusOnHold, constants.StatusGuestCancelled, constants.StatusBookingCancelled}},
		{Name: constants.StatusPendingEligibility, Label: "Pending Eligibility", Color: "#ffc107",
			Transitions: []string{constants.StatusPendingApproval, constants.StatusConfirmed, constants.StatusOnHold, constants.StatusGuestCancelled, constants.StatusBookingCancelled}},
		{Name: constants.StatusConfirmed, Label: "Confirmed", Color: "#4caf50",
			Transitions: []string{constants.StatusOnHold, constants.StatusGuestCancelled, constants.StatusBookingCancelled}},
		{Name: constants.StatusOnHold, Label: "On Hold", Color: "#03a9f4",
			Transitions: []string{constants.StatusConfirmed, constants.StatusGuestCancelled, constants.StatusBookingCancelled}},
		{Name: constants.StatusGuestCancelled, Label: "Guest Cancelled", Color: "#f44336",
			Terminal: true, Cancellation: true},
		{Name: constants.StatusBookingCancelled, Label: "Booking Cancelled", Color: "#b71c1c",
			Terminal: true, Cancellation: true},
	}
	eligibilities := []StatusOption{
		{Name: constants.EligibilityPending, Label: "Pending", Color: "#ff9800"},
		{Name: constants.EligibilityEligible, Label: "Eligible", Color: "#4caf50"},
		{Name: constants.EligibilityDeclined, Label: "Declined", Color: "#f44336"},
	}

	catalog := &StateCatalog{
		Statuses:      make(map[string]StatusOption, len(statuses)),
		Eligibilities: make(map[string]StatusOption, len(eligibilities)),
	}
	for _, s := range statuses {
		catalog.Statuses[s.Name] = s
	}
	for _, e := range eligibilities {
		catalog.Eligibilities[e.Name] = e
	}
	return catalog
}
