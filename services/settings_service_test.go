package services_test

import (
	"encoding/json"
	"testing"

	apperrors "github.com/evalle012006/sg-sub011/errors"
	"github.com/evalle012006/sg-sub011/services"

	"github.com/stretchr/testify/assert"
)

func TestParseStatusOptions(t *testing.T) {
	raw := json.RawMessage(`[
		{"name":"confirmed","label":"Confirmed","color":"#4caf50","transitions":["on_hold"]},
		{"name":"waitlisted","label":"Waitlisted","color":"#673ab7"},
		{"name":"closed","label":"Closed","color":"#000000","terminal":true,"cancellation":true}
	]`)

	options, err := services.ParseStatusOptions(raw)
	assert.NoError(t, err)
	assert.Len(t, options, 3)

	assert.Equal(t, "confirmed", options[0].Name)
	assert.Equal(t, []string{"on_hold"}, options[0].Transitions)
	assert.False(t, options[0].Terminal)

	assert.Empty(t, options[1].Transitions)

	assert.True(t, options[2].Terminal)
	assert.True(t, options[2].Cancellation)
}

func TestParseStatusOptions_Invalid(t *testing.T) {
	_, err := services.ParseStatusOptions(json.RawMessage(`{"name":"confirmed"}`))
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidFormat))

	options, err := services.ParseStatusOptions(nil)
	assert.NoError(t, err)
	assert.Nil(t, options)
}

func TestParseStringList(t *testing.T) {
	flags, err := services.ParseStringList(json.RawMessage(`["banned","complex_care","vip"]`))
	assert.NoError(t, err)
	assert.Equal(t, []string{"banned", "complex_care", "vip"}, flags)

	_, err = services.ParseStringList(json.RawMessage(`"banned"`))
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidFormat))

	flags, err = services.ParseStringList(nil)
	assert.NoError(t, err)
	assert.Nil(t, flags)
}
