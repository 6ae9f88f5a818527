package models

import (
	"time"
)

type Participant struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ActivityID uint      `gorm:"not null;uniqueIndex:idx_participant_activity_email" json:"activity_id"`
	Email      string    `gorm:"not null;uniqueIndex:idx_participant_activity_email" json:"email"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Participant) TableName() string {
	return "participant"
}
