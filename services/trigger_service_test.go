package services_test

import (
	"encoding/json"
	"testing"
	"time"

	apperrors "github.com/evalle012006/sg-sub011/errors"
	"github.com/evalle012006/sg-sub011/models"
	"github.com/evalle012006/sg-sub011/services"

	"github.com/stretchr/testify/assert"
)

func trigger(name string, questions string) models.EmailTrigger {
	return models.EmailTrigger{
		Name:             name,
		TriggerQuestions: json.RawMessage(questions),
		Recipient:        "coordinator@example.org",
		Template:         "default",
		Enabled:          true,
	}
}

func TestEvaluateEmailTriggers(t *testing.T) {
	answers := []models.GuestAnswer{
		{Question: "dietary_requirements", Answer: "vegetarian"},
		{Question: "mobility_aid", Answer: "wheelchair"},
	}

	t.Run("answer contained in list fires", func(t *testing.T) {
		rules := []models.EmailTrigger{
			trigger("diet", `[{"question":"dietary_requirements","answer":["vegan","vegetarian"]}]`),
		}
		fired, err := services.EvaluateEmailTriggers(answers, rules)
		assert.NoError(t, err)
		assert.Len(t, fired, 1)
		assert.Equal(t, "diet", fired[0].Trigger.Name)
		assert.Equal(t, "coordinator@example.org", fired[0].Recipient)
	})

	t.Run("all questions must match", func(t *testing.T) {
		rules := []models.EmailTrigger{
			trigger("both", `[
				{"question":"dietary_requirements","answer":"vegetarian"},
				{"question":"mobility_aid","answer":"hoist"}
			]`),
		}
		fired, err := services.EvaluateEmailTriggers(answers, rules)
		assert.NoError(t, err)
		assert.Empty(t, fired)
	})

	t.Run("unanswered question never fires", func(t *testing.T) {
		rules := []models.EmailTrigger{
			trigger("missing", `[{"question":"arrival_transport","answer":"taxi"}]`),
		}
		fired, err := services.EvaluateEmailTriggers(answers, rules)
		assert.NoError(t, err)
		assert.Empty(t, fired)
	})

	t.Run("disabled rules are skipped", func(t *testing.T) {
		rule := trigger("diet", `[{"question":"dietary_requirements","answer":"vegetarian"}]`)
		rule.Enabled = false
		fired, err := services.EvaluateEmailTriggers(answers, []models.EmailTrigger{rule})
		assert.NoError(t, err)
		assert.Empty(t, fired)
	})

	t.Run("empty question set never fires", func(t *testing.T) {
		fired, err := services.EvaluateEmailTriggers(answers, []models.EmailTrigger{
			trigger("empty", `[]`),
		})
		assert.NoError(t, err)
		assert.Empty(t, fired)
	})

	t.Run("rules fire in rule order", func(t *testing.T) {
		rules := []models.EmailTrigger{
			trigger("second", `[{"question":"mobility_aid","answer":"wheelchair"}]`),
			trigger("first", `[{"question":"dietary_requirements","answer":"vegetarian"}]`),
		}
		fired, err := services.EvaluateEmailTriggers(answers, rules)
		assert.NoError(t, err)
		assert.Len(t, fired, 2)
		assert.Equal(t, "second", fired[0].Trigger.Name)
		assert.Equal(t, "first", fired[1].Trigger.Name)
	})

	t.Run("malformed question set errors", func(t *testing.T) {
		_, err := services.EvaluateEmailTriggers(answers, []models.EmailTrigger{
			trigger("broken", `{"not":"an array"`),
		})
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidFormat))
	})
}

func TestTriggerQuestion_UnmarshalJSON(t *testing.T) {
	var q models.TriggerQuestion

	err := json.Unmarshal([]byte(`{"question":"q1","answer":"yes"}`), &q)
	assert.NoError(t, err)
	assert.Equal(t, []string{"yes"}, q.Answer)
	assert.True(t, q.Matches("yes"))
	assert.False(t, q.Matches("no"))

	err = json.Unmarshal([]byte(`{"question":"q1","answer":["a","b"]}`), &q)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, q.Answer)
	assert.True(t, q.Matches("b"))
	assert.False(t, q.Matches("c"))
}

func TestNotificationsDue(t *testing.T) {
	booking := &models.Booking{
		ArrivalDate:   "10/03/2025",
		DepartureDate: "14/03/2025",
		GuestID:       7,
	}
	booking.ID = 42

	rules := []models.NotificationLibrary{
		{ID: 1, Name: "pre-arrival", Message: "Guest arrives in a week", DateFactor: -7, AlertType: "email", Enabled: true},
		{ID: 2, Name: "arrival day", Message: "Guest arrives today", DateFactor: 0, AlertType: "dashboard", Enabled: true},
		{ID: 3, Name: "follow-up", Message: "Post-stay follow-up", DateFactor: 14, AlertType: "email", Enabled: true},
		{ID: 4, Name: "disabled", Message: "Never fires", DateFactor: 0, AlertType: "email", Enabled: false},
	}

	t.Run("a week before arrival", func(t *testing.T) {
		now := time.Date(2025, 3, 3, 9, 30, 0, 0, time.UTC)
		due := services.NotificationsDue(booking, rules, now)
		assert.Len(t, due, 1)
		assert.Equal(t, "Guest arrives in a week", due[0].Message)
		assert.Equal(t, uint(42), due[0].BookingID)
		assert.Equal(t, uint(7), due[0].GuestID)
	})

	t.Run("arrival day skips disabled rules", func(t *testing.T) {
		now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
		due := services.NotificationsDue(booking, rules, now)
		assert.Len(t, due, 1)
		assert.Equal(t, "dashboard", due[0].AlertType)
	})

	t.Run("local calendar day east of UTC", func(t *testing.T) {
		// 06:00 in Sydney is still the previous day in UTC; the sweep
		// must see the local date.
		sydney := time.FixedZone("AEDT", 11*60*60)
		now := time.Date(2025, 3, 10, 6, 0, 0, 0, sydney)
		due := services.NotificationsDue(booking, rules, now)
		assert.Len(t, due, 1)
		assert.Equal(t, "Guest arrives today", due[0].Message)
	})

	t.Run("no rule lands today", func(t *testing.T) {
		now := time.Date(2025, 3, 11, 12, 0, 0, 0, time.UTC)
		assert.Empty(t, services.NotificationsDue(booking, rules, now))
	})

	t.Run("unparseable arrival date yields nothing", func(t *testing.T) {
		broken := &models.Booking{ArrivalDate: "soon"}
		assert.Empty(t, services.NotificationsDue(broken, rules, time.Now()))
	})
}
