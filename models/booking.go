package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	gojson "github.com/goccy/go-json"
	"gorm.io/gorm"
)

// StateValue is a booking status or eligibility value as stored: a named
// catalog entry with its admin-configured label and color. Stored as jsonb
// so runtime-added statuses round-trip without a schema change.
type StateValue struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Color string `json:"color"`
}

func (s StateValue) Value() (driver.Value, error) {
	return gojson.Marshal(s)
}

func (s *StateValue) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return gojson.Unmarshal(v, s)
	case string:
		return gojson.Unmarshal([]byte(v), s)
	case nil:
		*s = StateValue{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into StateValue", value)
	}
}

// Equals compares by name only; label and color are presentation metadata.
func (s StateValue) Equals(other StateValue) bool {
	return s.Name == other.Name
}

type Booking struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	Reference        string          `gorm:"uniqueIndex;type:varchar(36)" json:"reference"`
	GuestID          uint            `gorm:"index;not null" json:"guestId"`
	Guest            *Guest          `json:"guest,omitempty" gorm:"foreignKey:GuestID"`
	ArrivalDate      string          `json:"arrivalDate"`
	DepartureDate    string          `json:"departureDate"`
	Status           StateValue      `gorm:"type:jsonb" json:"status"`
	Eligibility      StateValue      `gorm:"type:jsonb" json:"eligibility"`
	CancellationType *string         `gorm:"type:varchar(20)" json:"cancellationType,omitempty"`
	Signature        json.RawMessage `gorm:"type:jsonb" json:"signature,omitempty"`
	VerbalConsent    json.RawMessage `gorm:"type:jsonb" json:"verbalConsent,omitempty"`
	AllocationID     *uint           `gorm:"index" json:"allocationId,omitempty"`
	NightsConsumed   int             `gorm:"default:0" json:"nightsConsumed"`
	Equipment        []Equipment     `json:"equipment,omitempty" gorm:"many2many:booking_equipments;"`
	Courses          []Course        `json:"courses,omitempty" gorm:"many2many:booking_courses;"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"deletedAt,omitempty"`
}

// Nights is the stay length in whole nights, 0 when dates are unset or invalid.
func (b *Booking) Nights() int {
	arrival, err := time.Parse("02/01/2006", b.ArrivalDate)
	if err != nil {
		return 0
	}
	departure, err := time.Parse("02/01/2006", b.DepartureDate)
	if err != nil {
		return 0
	}
	nights := int(departure.Sub(arrival).Hours() / 24)
	if nights < 0 {
		return 0
	}
	return nights
}

type BookingRequest struct {
	GuestID       uint   `json:"guestId"`
	ArrivalDate   string `json:"arrivalDate"`
	DepartureDate string `json:"departureDate"`
	GuestName     string `json:"guestName,omitempty"`
	GuestEmail    string `json:"guestEmail,omitempty"`
	GuestPhone    string `json:"guestPhone,omitempty"`
}
