package models

import (
	"time"
)

type Activity struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	Name            string        `gorm:"uniqueIndex;not null" json:"name"`
	Description     string        `json:"description"`
	Schedule        string        `json:"schedule"`
	MaxParticipants *int          `json:"max_participants"` // nil means unlimited
	Participants    []Participant `gorm:"constraint:OnDelete:CASCADE" json:"participants"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

func (Activity) TableName() string {
	return "activity"
}

// Emails returns the participant emails in their loaded order.
func (a Activity) Emails() []string {
	emails := make([]string, 0, len(a.Participants))
	for _, p := range a.Participants {
		emails = append(emails, p.Email)
	}
	return emails
}

// SpotsLeft reports the remaining capacity. ok is false when the activity is unlimited.
func (a Activity) SpotsLeft() (left int, ok bool) {
	if a.MaxParticipants == nil {
		return 0, false
	}
	left = *a.MaxParticipants - len(a.Participants)
	if left < 0 {
		left = 0
	}
	return left, true
}
