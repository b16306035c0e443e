package services

import (
	"context"
	"errors"

	apperrors "github.com/evalle012006/sg-sub011/errors"
	"github.com/evalle012006/sg-sub011/models"
	"github.com/evalle012006/sg-sub011/services/logger"
	"github.com/evalle012006/sg-sub011/validator"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FundingService maintains the night-allocation ledger for funding
// approvals. Every mutation runs inside a transaction with the approval
// row locked, so two admins allocating against the same approval cannot
// both pass the budget check.
type FundingService struct {
	db  *gorm.DB
	log logger.Logger
}

type FundingServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
}

func NewFundingService(opts FundingServiceOptions) *FundingService {
	log := opts.Logger
	if log == nil {
		log = logger.NewDefaultLogger(logger.InfoLevel)
	}
	return &FundingService{db: opts.DB, log: log}
}

// CheckBudget rejects an allocation that would push the cumulative total
// past the approved budget.
func CheckBudget(approved, allocated, requested int) error {
	if allocated+requested > approved {
		return apperrors.NewAppError(apperrors.ErrCodeBudgetExceeded,
			"Allocation exceeds approved nights", nil)
	}
	return nil
}

// CheckConsumption rejects a consumption that would exceed the row's own
// allocation.
func CheckConsumption(allocated, used, requested int) error {
	if used+requested > allocated {
		return apperrors.NewAppError(apperrors.ErrCodeOverConsumption,
			"Consumption exceeds allocated nights", nil)
	}
	return nil
}

// CheckRelease rejects a release larger than the nights currently used;
// used never goes below zero.
func CheckRelease(used, requested int) error {
	if requested > used {
		return apperrors.NewAppError(apperrors.ErrCodeUnderflow,
			"Release exceeds consumed nights", nil)
	}
	return nil
}

// Allocate reserves nights from a funding approval for one guest-approval
// context. Fails with BUDGET_EXCEEDED when the approval's cumulative
// allocation would exceed its approved totals. First come, first served.
func (s *FundingService) Allocate(ctx context.Context, fundingApprovalID, guestApprovalID uint, nights, additionalRoomNights int) (*models.GuestApprovalFundingApproval, error) {
	if err := validator.ValidateNights(nights, additionalRoomNights); err != nil {
		return nil, err
	}

	var allocation models.GuestApprovalFundingApproval
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var approval models.FundingApproval
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&approval, fundingApprovalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewAppError(apperrors.ErrCodeReferentialIntegrity,
					"Funding approval not found", apperrors.ErrApprovalNotFound)
			}
			return wrapStorage("Failed to load funding approval", err)
		}

		var guestApproval models.GuestApproval
		if err := tx.First(&guestApproval, guestApprovalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewAppError(apperrors.ErrCodeReferentialIntegrity,
					"Guest approval not found", nil)
			}
			return wrapStorage("Failed to load guest approval", err)
		}

		var totals struct {
			Nights               int
			AdditionalRoomNights int
		}
		if err := tx.Model(&models.GuestApprovalFundingApproval{}).
			Select("COALESCE(SUM(nights_allocated), 0) AS nights, COALESCE(SUM(additional_room_nights_allocated), 0) AS additional_room_nights").
			Where("funding_approval_id = ?", fundingApprovalID).
			Scan(&totals).Error; err != nil {
			return wrapStorage("Failed to sum allocations", err)
		}

		if err := CheckBudget(approval.NightsApproved, totals.Nights, nights); err != nil {
			return err
		}
		if err := CheckBudget(approval.AdditionalRoomNightsApproved, totals.AdditionalRoomNights, additionalRoomNights); err != nil {
			return err
		}

		allocation = models.GuestApprovalFundingApproval{
			FundingApprovalID:             fundingApprovalID,
			GuestApprovalID:               guestApprovalID,
			NightsAllocated:               nights,
			AdditionalRoomNightsAllocated: additionalRoomNights,
		}
		if err := tx.Create(&allocation).Error; err != nil {
			return wrapStorage("Failed to create allocation", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Allocated %d nights (%d additional room) from approval %d to guest approval %d",
		nights, additionalRoomNights, fundingApprovalID, guestApprovalID)
	return &allocation, nil
}

// Consume records nights actually used against an allocation and advances
// the owning approval's running totals.
func (s *FundingService) Consume(ctx context.Context, allocationID uint, nights, additionalRoomNights int) (*models.GuestApprovalFundingApproval, error) {
	if err := validator.ValidateNights(nights, additionalRoomNights); err != nil {
		return nil, err
	}

	var allocation models.GuestApprovalFundingApproval
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		allocation, err = s.consumeTx(tx, allocationID, nights, additionalRoomNights)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &allocation, nil
}

// ConsumeTx is Consume running inside an existing transaction; used by the
// booking service so a confirmation and its night deduction commit together.
func (s *FundingService) ConsumeTx(tx *gorm.DB, allocationID uint, nights, additionalRoomNights int) error {
	if err := validator.ValidateNights(nights, additionalRoomNights); err != nil {
		return err
	}
	_, err := s.consumeTx(tx, allocationID, nights, additionalRoomNights)
	return err
}

func (s *FundingService) consumeTx(tx *gorm.DB, allocationID uint, nights, additionalRoomNights int) (models.GuestApprovalFundingApproval, error) {
	var allocation models.GuestApprovalFundingApproval
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&allocation, allocationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return allocation, apperrors.NewAppError(apperrors.ErrCodeReferentialIntegrity,
				"Allocation not found", apperrors.ErrAllocationNotFound)
		}
		return allocation, wrapStorage("Failed to load allocation", err)
	}

	if err := CheckConsumption(allocation.NightsAllocated, allocation.NightsUsed, nights); err != nil {
		return allocation, err
	}
	if err := CheckConsumption(allocation.AdditionalRoomNightsAllocated, allocation.AdditionalRoomNightsUsed, additionalRoomNights); err != nil {
		return allocation, err
	}

	allocation.NightsUsed += nights
	allocation.AdditionalRoomNightsUsed += additionalRoomNights
	if err := tx.Save(&allocation).Error; err != nil {
		return allocation, wrapStorage("Failed to update allocation", err)
	}

	if err := tx.Model(&models.FundingApproval{}).
		Where("id = ?", allocation.FundingApprovalID).
		Updates(map[string]interface{}{
			"nights_used":                 gorm.Expr("nights_used + ?", nights),
			"additional_room_nights_used": gorm.Expr("additional_room_nights_used + ?", additionalRoomNights),
		}).Error; err != nil {
		return allocation, wrapStorage("Failed to update approval totals", err)
	}

	return allocation, nil
}

// Release returns previously consumed nights to an allocation, e.g. after
// a no-charge cancellation. Fails with UNDERFLOW rather than clamping.
func (s *FundingService) Release(ctx context.Context, allocationID uint, nights, additionalRoomNights int) (*models.GuestApprovalFundingApproval, error) {
	if err := validator.ValidateNights(nights, additionalRoomNights); err != nil {
		return nil, err
	}

	var allocation models.GuestApprovalFundingApproval
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		allocation, err = s.releaseTx(tx, allocationID, nights, additionalRoomNights)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &allocation, nil
}

// ReleaseTx is Release running inside an existing transaction; used by the
// booking service so a no-charge cancellation and its night restoration
// commit together.
func (s *FundingService) ReleaseTx(tx *gorm.DB, allocationID uint, nights, additionalRoomNights int) error {
	if err := validator.ValidateNights(nights, additionalRoomNights); err != nil {
		return err
	}
	_, err := s.releaseTx(tx, allocationID, nights, additionalRoomNights)
	return err
}

func (s *FundingService) releaseTx(tx *gorm.DB, allocationID uint, nights, additionalRoomNights int) (models.GuestApprovalFundingApproval, error) {
	var allocation models.GuestApprovalFundingApproval
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&allocation, allocationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return allocation, apperrors.NewAppError(apperrors.ErrCodeReferentialIntegrity,
				"Allocation not found", apperrors.ErrAllocationNotFound)
		}
		return allocation, wrapStorage("Failed to load allocation", err)
	}

	if err := CheckRelease(allocation.NightsUsed, nights); err != nil {
		return allocation, err
	}
	if err := CheckRelease(allocation.AdditionalRoomNightsUsed, additionalRoomNights); err != nil {
		return allocation, err
	}

	allocation.NightsUsed -= nights
	allocation.AdditionalRoomNightsUsed -= additionalRoomNights
	if err := tx.Save(&allocation).Error; err != nil {
		return allocation, wrapStorage("Failed to update allocation", err)
	}

	if err := tx.Model(&models.FundingApproval{}).
		Where("id = ?", allocation.FundingApprovalID).
		Updates(map[string]interface{}{
			"nights_used":                 gorm.Expr("GREATEST(nights_used - ?, 0)", nights),
			"additional_room_nights_used": gorm.Expr("GREATEST(additional_room_nights_used - ?, 0)", additionalRoomNights),
		}).Error; err != nil {
		return allocation, wrapStorage("Failed to update approval totals", err)
	}

	return allocation, nil
}

func wrapStorage(message string, err error) error {
	return apperrors.NewAppError(apperrors.ErrCodeStorage, message, err)
}
