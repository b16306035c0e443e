package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/evalle012006/sg-sub011/builders"
	"github.com/evalle012006/sg-sub011/commands"
	"github.com/evalle012006/sg-sub011/constants"
	apperrors "github.com/evalle012006/sg-sub011/errors"
	"github.com/evalle012006/sg-sub011/models"
	"github.com/evalle012006/sg-sub011/services/logger"
	"github.com/evalle012006/sg-sub011/validator"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingService governs the booking lifecycle: creation, state
// transitions against the runtime catalog, cancellation bookkeeping and
// soft delete. A transition, its audit row and any funding-ledger movement
// commit in one transaction.
type BookingService struct {
	db       *gorm.DB
	settings *SettingsService
	funding  *FundingService
	rdb      *redis.Client
	log      logger.Logger
}

type BookingServiceOptions struct {
	DB       *gorm.DB
	Settings *SettingsService
	Funding  *FundingService
	Redis    *redis.Client
	Logger   logger.Logger
}

func NewBookingService(opts BookingServiceOptions) *BookingService {
	log := opts.Logger
	if log == nil {
		log = logger.NewDefaultLogger(logger.InfoLevel)
	}
	return &BookingService{
		db:       opts.DB,
		settings: opts.Settings,
		funding:  opts.Funding,
		rdb:      opts.Redis,
		log:      log,
	}
}

// Create opens a new booking in the enquiry state.
func (s *BookingService) Create(ctx context.Context, req *models.BookingRequest) (*models.Booking, error) {
	if err := validator.ValidateBooking(req); err != nil {
		return nil, err
	}

	var guest models.Guest
	if err := s.db.WithContext(ctx).First(&guest, req.GuestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeReferentialIntegrity,
				"Guest not found", apperrors.ErrGuestNotFound)
		}
		return nil, wrapStorage("Failed to load guest", err)
	}
	if !guest.Active {
		return nil, apperrors.NewAppError(apperrors.ErrCodeValidation,
			"Guest account is inactive", apperrors.ErrGuestInactive)
	}
	if guest.HasFlag("banned") {
		return nil, apperrors.NewAppError(apperrors.ErrCodeValidation,
			"Guest is not permitted to book", apperrors.ErrGuestBanned)
	}

	catalog := s.settings.Catalog()
	enquiry, ok := catalog.Statuses[constants.StatusEnquiry]
	if !ok {
		return nil, apperrors.NewAppError(apperrors.ErrCodeUnknownStatus,
			"No enquiry status configured", nil)
	}
	pending, ok := catalog.Eligibilities[constants.EligibilityPending]
	if !ok {
		return nil, apperrors.NewAppError(apperrors.ErrCodeUnknownStatus,
			"No pending eligibility configured", nil)
	}

	booking := builders.NewBookingBuilder().
		WithGuest(req.GuestID).
		WithReference(uuid.NewString()).
		WithStay(req.ArrivalDate, req.DepartureDate).
		WithStatus(enquiry.Value()).
		WithEligibility(pending.Value()).
		Build()
	if err := commands.NewCreateBookingCommand(booking, s.db.WithContext(ctx)).Execute(); err != nil {
		return nil, wrapStorage("Failed to create booking", err)
	}

	s.invalidateCache(ctx)
	s.log.Info("Booking %s created for guest %d", booking.Reference, booking.GuestID)
	return booking, nil
}

// Transition applies a requested status/eligibility change. Re-requesting
// the current state is a detected no-op: the booking is returned unchanged
// and no audit row is written. Effective transitions append exactly one
// audit row in the same transaction. A no-charge cancellation restores the
// booking's consumed nights to its allocation; full charge leaves them.
func (s *BookingService) Transition(ctx context.Context, bookingID uint, req models.TransitionRequest, actorID *uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewAppError(apperrors.ErrCodeDBNotFound,
					"Booking not found", apperrors.ErrBookingNotFound)
			}
			return wrapStorage("Failed to load booking", err)
		}

		if models.IsNoOpTransition(booking.Status, booking.Eligibility, req) {
			return nil
		}

		catalog := s.settings.Catalog()
		oldStatus := booking.Status
		oldEligibility := booking.Eligibility

		newStatus, newEligibility, err := catalog.Transition(booking.Status, booking.Eligibility, req)
		if err != nil {
			return err
		}

		booking.Status = newStatus
		booking.Eligibility = newEligibility

		if catalog.IsCancellation(newStatus.Name) {
			booking.CancellationType = req.CancellationType
			if *req.CancellationType == constants.CancellationNoCharge &&
				booking.AllocationID != nil && booking.NightsConsumed > 0 {
				if err := s.funding.ReleaseTx(tx, *booking.AllocationID, booking.NightsConsumed, 0); err != nil {
					return err
				}
				booking.NightsConsumed = 0
			}
		}

		// Confirming a funded booking consumes its nights.
		if newStatus.Name == constants.StatusConfirmed &&
			booking.AllocationID != nil && booking.NightsConsumed == 0 {
			nights := booking.Nights()
			if nights > 0 {
				if err := s.funding.ConsumeTx(tx, *booking.AllocationID, nights, 0); err != nil {
					return err
				}
				booking.NightsConsumed = nights
			}
		}

		if err := tx.Save(&booking).Error; err != nil {
			return wrapStorage("Failed to update booking", err)
		}

		audit := models.BookingAuditLog{
			BookingID:      booking.ID,
			GuestID:        booking.GuestID,
			UserID:         actorID,
			Action:         fmt.Sprintf("%s -> %s", oldStatus.Name, newStatus.Name),
			OldStatus:      oldStatus,
			NewStatus:      newStatus,
			OldEligibility: oldEligibility,
			NewEligibility: newEligibility,
		}
		if err := tx.Create(&audit).Error; err != nil {
			return wrapStorage("Failed to append audit log", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	return &booking, nil
}

// AttachAllocation links a booking to a funding allocation so confirmation
// can deduct nights from it.
func (s *BookingService) AttachAllocation(ctx context.Context, bookingID, allocationID uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewAppError(apperrors.ErrCodeDBNotFound,
					"Booking not found", apperrors.ErrBookingNotFound)
			}
			return wrapStorage("Failed to load booking", err)
		}

		var allocation models.GuestApprovalFundingApproval
		if err := tx.First(&allocation, allocationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewAppError(apperrors.ErrCodeReferentialIntegrity,
					"Allocation not found", apperrors.ErrAllocationNotFound)
			}
			return wrapStorage("Failed to load allocation", err)
		}

		booking.AllocationID = &allocation.ID
		if err := commands.NewUpdateBookingCommand(&booking, tx).Execute(); err != nil {
			return wrapStorage("Failed to update booking", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// SoftDelete tombstones a booking. It disappears from active listings but
// stays reachable through history queries.
func (s *BookingService) SoftDelete(ctx context.Context, bookingID uint) error {
	var booking models.Booking
	if err := s.db.WithContext(ctx).First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewAppError(apperrors.ErrCodeDBNotFound,
				"Booking not found", apperrors.ErrBookingNotFound)
		}
		return wrapStorage("Failed to load booking", err)
	}
	if err := commands.NewDeleteBookingCommand(bookingID, s.db.WithContext(ctx)).Execute(); err != nil {
		return wrapStorage("Failed to delete booking", err)
	}
	s.invalidateCache(ctx)
	return nil
}

// Restore clears a booking's tombstone.
func (s *BookingService) Restore(ctx context.Context, bookingID uint) error {
	result := s.db.WithContext(ctx).Unscoped().Model(&models.Booking{}).
		Where("id = ? AND deleted_at IS NOT NULL", bookingID).
		Update("deleted_at", nil)
	if result.Error != nil {
		return wrapStorage("Failed to restore booking", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewAppError(apperrors.ErrCodeDBNotFound,
			"Deleted booking not found", apperrors.ErrBookingNotFound)
	}
	s.invalidateCache(ctx)
	return nil
}

// History returns a booking with its audit trail, including soft-deleted
// bookings.
func (s *BookingService) History(ctx context.Context, bookingID uint) (*models.Booking, []models.BookingAuditLog, error) {
	var booking models.Booking
	if err := s.db.WithContext(ctx).Unscoped().First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.NewAppError(apperrors.ErrCodeDBNotFound,
				"Booking not found", apperrors.ErrBookingNotFound)
		}
		return nil, nil, wrapStorage("Failed to load booking", err)
	}

	var logs []models.BookingAuditLog
	if err := s.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at asc").
		Find(&logs).Error; err != nil {
		return nil, nil, wrapStorage("Failed to load audit logs", err)
	}
	return &booking, logs, nil
}

func (s *BookingService) invalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := DeleteFromRedis(ctx, s.rdb, "bookings:all"); err != nil {
		s.log.Error("Failed to invalidate booking cache: %v", err)
	}
}
