package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// NotificationSweeper runs the daily notification-library evaluation.
type NotificationSweeper interface {
	RunDailySweep(ctx context.Context, now time.Time) (int, error)
}

var sweeper NotificationSweeper

// SetNotificationSweeper installs the sweep implementation.
func SetNotificationSweeper(s NotificationSweeper) {
	sweeper = s
}

// InitCronJobs registers the scheduled jobs and starts the cron runner.
func InitCronJobs(c *cron.Cron) error {
	// Daily at 06:00: raise the notification-library alerts due today.
	_, err := c.AddFunc("0 6 * * *", func() {
		if sweeper == nil {
			log.Printf("Notification sweeper not configured, skipping sweep")
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		created, err := sweeper.RunDailySweep(ctx, time.Now())
		if err != nil {
			log.Printf("Notification sweep failed: %v", err)
			return
		}
		log.Printf("Notification sweep finished, %d alerts raised", created)
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Println("Cron jobs initialized successfully")
	return nil
}
