package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserPreferences holds a user's feed-hiding toggles and the lock-mode state.
// There is exactly one row per user.
type UserPreferences struct {
	ID              uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID          uuid.UUID  `json:"userId" gorm:"type:uuid;uniqueIndex;not null"`
	HideReels       bool       `json:"hideReels" gorm:"not null;default:true"`
	HideStories     bool       `json:"hideStories" gorm:"not null;default:false"`
	HideSuggestions bool       `json:"hideSuggestions" gorm:"not null;default:true"`
	LockMode        bool       `json:"lockMode" gorm:"not null;default:false"`
	LockEndTime     *time.Time `json:"lockEndTime"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// NewDefaultPreferences returns the preferences a fresh account starts with.
func NewDefaultPreferences(userID uuid.UUID) *UserPreferences {
	return &UserPreferences{
		ID:              uuid.New(),
		UserID:          userID,
		HideReels:       true,
		HideStories:     false,
		HideSuggestions: true,
		LockMode:        false,
		LockEndTime:     nil,
		UpdatedAt:       time.Now(),
	}
}

// LockedAt reports whether the record is locked against mutation at the
// given instant. A record is locked only while lock mode is on AND the
// stored end time is strictly in the future. Lock mode with no end time
// counts as unlocked; expiry needs no write, the next check simply passes.
func (p *UserPreferences) LockedAt(now time.Time) bool {
	return p.LockMode && p.LockEndTime != nil && now.Before(*p.LockEndTime)
}

// PreferencesPatch is a sparse update: nil fields are left unchanged.
// A nil LockEndTime means "keep the stored value"; the expiry can be
// overwritten but not cleared.
type PreferencesPatch struct {
	HideReels       *bool      `json:"hide_reels"`
	HideStories     *bool      `json:"hide_stories"`
	HideSuggestions *bool      `json:"hide_suggestions"`
	LockMode        *bool      `json:"lock_mode"`
	LockEndTime     *time.Time `json:"lock_end_time"`
}

// Apply copies the present patch fields onto p and stamps UpdatedAt.
func (p *UserPreferences) Apply(patch PreferencesPatch, now time.Time) {
	if patch.HideReels != nil {
		p.HideReels = *patch.HideReels
	}
	if patch.HideStories != nil {
		p.HideStories = *patch.HideStories
	}
	if patch.HideSuggestions != nil {
		p.HideSuggestions = *patch.HideSuggestions
	}
	if patch.LockMode != nil {
		p.LockMode = *patch.LockMode
	}
	if patch.LockEndTime != nil {
		p.LockEndTime = patch.LockEndTime
	}
	p.UpdatedAt = now
}
