package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	SubscriptionFree    = "free"
	SubscriptionPremium = "premium"
)

// DefaultBio is assigned to every new account, matching the product copy.
const DefaultBio = "Reprendre le contrôle de mon temps sur les réseaux sociaux 🎯"

type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Avatar       *string   `json:"avatar,omitempty"`
	Bio          *string   `json:"bio,omitempty"`
	Subscription string    `json:"subscription" gorm:"not null;default:'free'"`
	TimeSaved    int       `json:"timeSaved" gorm:"not null;default:0"` // minutes
	ReferralCode string    `json:"referralCode" gorm:"not null"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewReferralCode returns a short opaque code. Codes are not required to be
// unique; collisions are acceptable.
func NewReferralCode() string {
	return strings.ToUpper(uuid.New().String()[:8])
}
