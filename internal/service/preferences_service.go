package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/icare-app/icare-server/internal/domain"
	"github.com/icare-app/icare-server/internal/repository"
)

// PreferencesService is the gate in front of the per-user preferences row.
// Reads are get-or-create; writes are rejected wholesale while the record
// is inside its lock window.
type PreferencesService struct {
	prefsRepo repository.PreferencesRepository
}

func NewPreferencesService(prefsRepo repository.PreferencesRepository) *PreferencesService {
	return &PreferencesService{prefsRepo: prefsRepo}
}

// Get returns the user's preferences, creating and persisting the defaults
// when no row exists yet. Note the side effect: a first read writes.
func (s *PreferencesService) Get(ctx context.Context, userID uuid.UUID) (*domain.UserPreferences, error) {
	prefs, err := s.prefsRepo.GetByUserID(ctx, userID)
	if err == nil {
		return prefs, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	prefs = domain.NewDefaultPreferences(userID)
	if err := s.prefsRepo.Create(ctx, prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

// Update applies a sparse patch to the stored record. The lock state is
// evaluated against the current stored row at the current time: while
// locked, no field is applied and ErrPreferencesLocked is returned. Lock
// expiry is implicit, the check simply passes once the end time is reached.
// A user with no row yet counts as unlocked and gets one via upsert.
//
// The lock check and the write are two store calls; two concurrent updates
// racing the lock boundary can both pass the check. That bounded race is
// accepted rather than papered over with cross-request locking.
func (s *PreferencesService) Update(ctx context.Context, userID uuid.UUID, patch domain.PreferencesPatch) (*domain.UserPreferences, error) {
	now := time.Now()

	prefs, err := s.prefsRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		// No row yet: unlocked by definition. Upsert absorbs a concurrent
		// first write for the same user.
		prefs = domain.NewDefaultPreferences(userID)
		prefs.Apply(patch, now)
		if err := s.prefsRepo.Upsert(ctx, prefs); err != nil {
			return nil, err
		}
		return prefs, nil
	}

	if prefs.LockedAt(now) {
		return nil, domain.ErrPreferencesLocked
	}

	prefs.Apply(patch, now)

	if err := s.prefsRepo.Update(ctx, prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}
