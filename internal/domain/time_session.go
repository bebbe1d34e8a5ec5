package domain

import (
	"time"

	"github.com/google/uuid"
)

// TimeSession records one logged "time saved" event for a user.
type TimeSession struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;index;not null"`
	Platform  string    `json:"platform" gorm:"not null;default:'instagram'"`
	TimeSpent int       `json:"timeSpent" gorm:"not null;default:0"` // seconds
	TimeSaved int       `json:"timeSaved" gorm:"not null"`           // minutes
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	CreatedAt time.Time `json:"createdAt"`
}
