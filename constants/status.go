package constants

// User roles
const (
	RoleGuest       = 0
	RoleStaff       = 1
	RoleAdmin       = 2
	RoleCoordinator = 3
)

// User status
const (
	UserStatusActive   = 1
	UserStatusInactive = 0
)

// Cancellation types
const (
	CancellationNoCharge   = "no_charge"
	CancellationFullCharge = "full_charge"
)

// Email trigger types
const (
	TriggerTypeHighlights = "highlights"
	TriggerTypeExternal   = "external"
	TriggerTypeInternal   = "internal"
)

// Notification alert audiences
const (
	AlertTypeAdmin    = "admin"
	AlertTypeClinical = "clinical"
	AlertTypeGuest    = "guest"
)

// Settings catalog keys
const (
	SettingBookingStatuses    = "booking_status"
	SettingBookingEligibility = "booking_eligibility"
	SettingGuestFlags         = "guest_flags"
	SettingBookingFlags       = "booking_flags"
)

// Booking status names seeded on a fresh install. The catalog itself is
// runtime data in the settings table; these are only the defaults.
const (
	StatusEnquiry            = "enquiry"
	StatusPendingApproval    = "pending_approval"
	StatusPendingEligibility = "pending_eligibility"
	StatusConfirmed          = "confirmed"
	StatusOnHold             = "on_hold"
	StatusGuestCancelled     = "guest_cancelled"
	StatusBookingCancelled   = "booking_cancelled"
)

// Eligibility names seeded on a fresh install.
const (
	EligibilityPending  = "pending"
	EligibilityEligible = "eligible"
	EligibilityDeclined = "declined"
)
