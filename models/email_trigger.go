package models

import (
	"encoding/json"
	"time"

	gojson "github.com/goccy/go-json"
)

// TriggerQuestion is one condition of an email trigger: the recorded answer
// for Question must equal Answer, or be contained in it when Answer is a
// list. Answer therefore unmarshals from either a string or an array.
type TriggerQuestion struct {
	Question string   `json:"question"`
	Answer   []string `json:"answer"`
}

func (q *TriggerQuestion) UnmarshalJSON(data []byte) error {
	var raw struct {
		Question string          `json:"question"`
		Answer   json.RawMessage `json:"answer"`
	}
	if err := gojson.Unmarshal(data, &raw); err != nil {
		return err
	}
	q.Question = raw.Question
	q.Answer = nil
	if len(raw.Answer) == 0 {
		return nil
	}
	var single string
	if err := gojson.Unmarshal(raw.Answer, &single); err == nil {
		q.Answer = []string{single}
		return nil
	}
	return gojson.Unmarshal(raw.Answer, &q.Answer)
}

// Matches reports whether the recorded answer satisfies this condition.
func (q *TriggerQuestion) Matches(answer string) bool {
	for _, expected := range q.Answer {
		if expected == answer {
			return true
		}
	}
	return false
}

type EmailTrigger struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	Name             string          `gorm:"not null" json:"name"`
	TriggerQuestions json.RawMessage `gorm:"type:jsonb" json:"triggerQuestions"`
	Type             string          `gorm:"type:varchar(20)" json:"type"`
	Recipient        string          `json:"recipient"`
	Template         string          `json:"template"`
	Enabled          bool            `gorm:"default:true" json:"enabled"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Questions decodes the stored condition set.
func (t *EmailTrigger) Questions() ([]TriggerQuestion, error) {
	if len(t.TriggerQuestions) == 0 {
		return nil, nil
	}
	var questions []TriggerQuestion
	if err := gojson.Unmarshal(t.TriggerQuestions, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}
