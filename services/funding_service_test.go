package services_test

import (
	"testing"

	apperrors "github.com/evalle012006/sg-sub011/errors"
	"github.com/evalle012006/sg-sub011/services"

	"github.com/stretchr/testify/assert"
)

func TestCheckBudget(t *testing.T) {
	// 10 approved nights: 6 fit, a further 5 do not, a further 4 do.
	assert.NoError(t, services.CheckBudget(10, 0, 6))

	err := services.CheckBudget(10, 6, 5)
	assert.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeBudgetExceeded))

	assert.NoError(t, services.CheckBudget(10, 6, 4))

	// Exactly exhausting the budget is allowed; one past it is not.
	assert.NoError(t, services.CheckBudget(10, 10, 0))
	err = services.CheckBudget(10, 10, 1)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeBudgetExceeded))
}

func TestCheckConsumption(t *testing.T) {
	assert.NoError(t, services.CheckConsumption(5, 0, 5))
	assert.NoError(t, services.CheckConsumption(5, 3, 2))

	err := services.CheckConsumption(5, 3, 3)
	assert.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeOverConsumption))
}

func TestCheckRelease(t *testing.T) {
	assert.NoError(t, services.CheckRelease(4, 4))
	assert.NoError(t, services.CheckRelease(4, 0))

	err := services.CheckRelease(4, 5)
	assert.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeUnderflow))
}

func TestLedgerLifecycle(t *testing.T) {
	// Walk one allocation through consume and release, re-checking the
	// invariants at each step the way the services do.
	approved, allocated := 10, 0

	assert.NoError(t, services.CheckBudget(approved, allocated, 6))
	allocated += 6

	used := 0
	assert.NoError(t, services.CheckConsumption(6, used, 4))
	used += 4

	// Over-consuming the remaining 2 nights fails.
	err := services.CheckConsumption(6, used, 3)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeOverConsumption))

	// A no-charge cancellation hands the 4 nights back.
	assert.NoError(t, services.CheckRelease(used, 4))
	used -= 4
	assert.Equal(t, 0, used)

	// Releasing again underflows.
	err = services.CheckRelease(used, 1)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeUnderflow))
}
