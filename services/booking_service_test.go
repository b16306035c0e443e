package services_test

import (
	"context"
	"testing"

	"github.com/evalle012006/sg-sub011/constants"
	apperrors "github.com/evalle012006/sg-sub011/errors"
	"github.com/evalle012006/sg-sub011/models"
	"github.com/evalle012006/sg-sub011/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openBookingTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		IgnoreRelationshipsWhenMigrating: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Booking{}, &models.BookingAuditLog{}))
	return db
}

func seedBooking(t *testing.T, db *gorm.DB) models.Booking {
	t.Helper()
	catalog := models.DefaultStateCatalog()
	booking := models.Booking{
		Reference:     "test-ref-1",
		GuestID:       1,
		ArrivalDate:   "10/03/2025",
		DepartureDate: "14/03/2025",
		Status:        catalog.Statuses[constants.StatusEnquiry].Value(),
		Eligibility:   catalog.Eligibilities[constants.EligibilityPending].Value(),
	}
	require.NoError(t, db.Create(&booking).Error)
	return booking
}

func TestBookingService_SoftDeleteLifecycle(t *testing.T) {
	db := openBookingTestDB(t)
	settings := services.NewSettingsService(services.SettingsServiceOptions{DB: db})
	bookings := services.NewBookingService(services.BookingServiceOptions{DB: db, Settings: settings})
	ctx := context.Background()

	booking := seedBooking(t, db)

	require.NoError(t, bookings.SoftDelete(ctx, booking.ID))

	// Gone from active listings.
	var active []models.Booking
	require.NoError(t, db.Find(&active).Error)
	assert.Empty(t, active)

	// A second delete no longer sees the booking.
	err := bookings.SoftDelete(ctx, booking.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeDBNotFound))

	// Still reachable through history, tombstone intact.
	got, logs, err := bookings.History(ctx, booking.ID)
	require.NoError(t, err)
	assert.True(t, got.DeletedAt.Valid)
	assert.Equal(t, booking.Reference, got.Reference)
	assert.Empty(t, logs)

	require.NoError(t, bookings.Restore(ctx, booking.ID))
	var restored models.Booking
	require.NoError(t, db.First(&restored, booking.ID).Error)
	assert.False(t, restored.DeletedAt.Valid)

	// Restoring an already-active booking is an error.
	err = bookings.Restore(ctx, booking.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeDBNotFound))
}

func TestBookingService_SoftDeleteUnknownBooking(t *testing.T) {
	db := openBookingTestDB(t)
	settings := services.NewSettingsService(services.SettingsServiceOptions{DB: db})
	bookings := services.NewBookingService(services.BookingServiceOptions{DB: db, Settings: settings})

	err := bookings.SoftDelete(context.Background(), 9999)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeDBNotFound))
}
