package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/icare-app/icare-server/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	// IncrementTimeSaved atomically adds minutes to the user's counter and
	// reports whether a row was actually updated.
	IncrementTimeSaved(ctx context.Context, id uuid.UUID, minutes int) (bool, error)
}

type PreferencesRepository interface {
	Create(ctx context.Context, prefs *domain.UserPreferences) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserPreferences, error)
	Update(ctx context.Context, prefs *domain.UserPreferences) error
	// Upsert inserts a fresh row, folding into the existing one when a
	// concurrent request created it first (keyed by user_id).
	Upsert(ctx context.Context, prefs *domain.UserPreferences) error
}

type TimeSessionRepository interface {
	Create(ctx context.Context, session *domain.TimeSession) error
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	GetByUserIDSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]*domain.TimeSession, error)
}

type Repositories struct {
	User        UserRepository
	Preferences PreferencesRepository
	TimeSession TimeSessionRepository
}
