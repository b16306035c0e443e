package notification

import (
	"fmt"

	"github.com/olahol/melody"
)

type Service interface {
	SendMessage(message string) error
}

type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) SendMessage(message string) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.Broadcast([]byte(message))
}

type AlertBuilder struct {
	bookingID uint
	message   string
}

func NewAlertBuilder(bookingID uint, message string) *AlertBuilder {
	return &AlertBuilder{
		bookingID: bookingID,
		message:   message,
	}
}

func (b *AlertBuilder) Build() string {
	return fmt.Sprintf("🔔 Booking %d: %s", b.bookingID, b.message)
}
