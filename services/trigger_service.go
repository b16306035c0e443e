package services

import (
	"context"
	"time"

	apperrors "github.com/evalle012006/sg-sub011/errors"
	"github.com/evalle012006/sg-sub011/models"
	"github.com/evalle012006/sg-sub011/services/logger"
	"github.com/evalle012006/sg-sub011/services/notification"

	"gorm.io/gorm"
)

// Mailer delivers email. The trigger evaluator only decides whether and to
// whom; delivery stays behind this interface.
type Mailer interface {
	Send(to []string, subject, htmlBody string) error
}

// FiredTrigger is one email-trigger rule that matched, ready to hand to
// the mailer.
type FiredTrigger struct {
	Trigger   models.EmailTrigger
	Recipient string
	Template  string
}

// TriggerService evaluates email-trigger and notification-library rules
// against guest answers and booking dates.
type TriggerService struct {
	db        *gorm.DB
	mailer    Mailer
	broadcast notification.Service
	log       logger.Logger
}

type TriggerServiceOptions struct {
	DB        *gorm.DB
	Mailer    Mailer
	Broadcast notification.Service
	Logger    logger.Logger
}

func NewTriggerService(opts TriggerServiceOptions) *TriggerService {
	log := opts.Logger
	if log == nil {
		log = logger.NewDefaultLogger(logger.InfoLevel)
	}
	return &TriggerService{
		db:        opts.DB,
		mailer:    opts.Mailer,
		broadcast: opts.Broadcast,
		log:       log,
	}
}

// EvaluateEmailTriggers returns the rules that fire for the given answer
// set, in rule order. A rule fires when every one of its trigger questions
// matches the recorded answer; disabled rules never fire.
func EvaluateEmailTriggers(answers []models.GuestAnswer, triggers []models.EmailTrigger) ([]FiredTrigger, error) {
	recorded := make(map[string]string, len(answers))
	for _, a := range answers {
		recorded[a.Question] = a.Answer
	}

	var fired []FiredTrigger
	for _, trigger := range triggers {
		if !trigger.Enabled {
			continue
		}
		questions, err := trigger.Questions()
		if err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidFormat,
				"Invalid trigger question set on rule "+trigger.Name, err)
		}
		if len(questions) == 0 {
			continue
		}

		matched := true
		for _, q := range questions {
			answer, ok := recorded[q.Question]
			if !ok || !q.Matches(answer) {
				matched = false
				break
			}
		}
		if matched {
			fired = append(fired, FiredTrigger{
				Trigger:   trigger,
				Recipient: trigger.Recipient,
				Template:  trigger.Template,
			})
		}
	}
	return fired, nil
}

// NotificationsDue returns the alerts a booking owes on the given day:
// rules whose arrival date plus DateFactor lands on now's calendar date.
// Dates are compared in now's location, so a 06:00 local sweep sees the
// local calendar day rather than the UTC one.
func NotificationsDue(booking *models.Booking, rules []models.NotificationLibrary, now time.Time) []models.Notification {
	arrival, err := time.Parse("02/01/2006", booking.ArrivalDate)
	if err != nil {
		return nil
	}
	nowYear, nowMonth, nowDay := now.Date()

	var due []models.Notification
	for _, rule := range rules {
		if !rule.Enabled {
			continue
		}
		alertYear, alertMonth, alertDay := arrival.AddDate(0, 0, rule.DateFactor).Date()
		if alertYear == nowYear && alertMonth == nowMonth && alertDay == nowDay {
			ruleID := rule.ID
			due = append(due, models.Notification{
				BookingID: booking.ID,
				GuestID:   booking.GuestID,
				RuleID:    &ruleID,
				Message:   rule.Message,
				AlertType: rule.AlertType,
			})
		}
	}
	return due
}

// EvaluateForGuest loads a guest's recorded answers and the enabled rules,
// and returns the rules that fire.
func (s *TriggerService) EvaluateForGuest(ctx context.Context, guestID uint) ([]FiredTrigger, error) {
	var answers []models.GuestAnswer
	if err := s.db.WithContext(ctx).
		Where("guest_id = ?", guestID).
		Find(&answers).Error; err != nil {
		return nil, wrapStorage("Failed to load guest answers", err)
	}

	var triggers []models.EmailTrigger
	if err := s.db.WithContext(ctx).
		Where("enabled = ?", true).
		Order("id asc").
		Find(&triggers).Error; err != nil {
		return nil, wrapStorage("Failed to load email triggers", err)
	}

	return EvaluateEmailTriggers(answers, triggers)
}

// DispatchForGuest evaluates and hands each fired rule to the mailer.
// Delivery failures are logged, not fatal: the evaluation already
// happened and the remaining recipients still get theirs.
func (s *TriggerService) DispatchForGuest(ctx context.Context, guestID uint) ([]FiredTrigger, error) {
	fired, err := s.EvaluateForGuest(ctx, guestID)
	if err != nil {
		return nil, err
	}

	for _, f := range fired {
		if s.mailer == nil {
			break
		}
		subject := "Notification: " + f.Trigger.Name
		if err := s.mailer.Send([]string{f.Recipient}, subject, renderTriggerBody(f)); err != nil {
			s.log.Error("Failed to send trigger %q to %s: %v", f.Trigger.Name, f.Recipient, err)
		}
	}
	return fired, nil
}

// RunDailySweep materializes the notification-library alerts due today for
// active bookings and broadcasts them over the websocket.
func (s *TriggerService) RunDailySweep(ctx context.Context, now time.Time) (int, error) {
	var rules []models.NotificationLibrary
	if err := s.db.WithContext(ctx).
		Where("enabled = ?", true).
		Find(&rules).Error; err != nil {
		return 0, wrapStorage("Failed to load notification rules", err)
	}
	if len(rules) == 0 {
		return 0, nil
	}

	var bookings []models.Booking
	if err := s.db.WithContext(ctx).
		Where("arrival_date <> ''").
		Find(&bookings).Error; err != nil {
		return 0, wrapStorage("Failed to load bookings", err)
	}

	created := 0
	for i := range bookings {
		for _, alert := range NotificationsDue(&bookings[i], rules, now) {
			if err := s.db.WithContext(ctx).Create(&alert).Error; err != nil {
				s.log.Error("Failed to create notification for booking %d: %v", alert.BookingID, err)
				continue
			}
			created++
			if s.broadcast != nil {
				if err := s.broadcast.SendMessage(notification.NewAlertBuilder(alert.BookingID, alert.Message).Build()); err != nil {
					s.log.Error("Failed to broadcast alert for booking %d: %v", alert.BookingID, err)
				}
			}
		}
	}

	s.log.Info("Notification sweep created %d alerts", created)
	return created, nil
}

func renderTriggerBody(f FiredTrigger) string {
	return `<!DOCTYPE html>
<html>
<body>
	<p>Trigger rule <strong>` + f.Trigger.Name + `</strong> has fired.</p>
	<p>Template: ` + f.Template + `</p>
</body>
</html>`
}
