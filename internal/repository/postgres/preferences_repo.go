package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/icare-app/icare-server/internal/domain"
)

type preferencesRepository struct {
	db *gorm.DB
}

func NewPreferencesRepository(db *gorm.DB) *preferencesRepository {
	return &preferencesRepository{db: db}
}

func (r *preferencesRepository) Create(ctx context.Context, prefs *domain.UserPreferences) error {
	return r.db.WithContext(ctx).Create(prefs).Error
}

func (r *preferencesRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserPreferences, error) {
	var prefs domain.UserPreferences
	err := r.db.WithContext(ctx).First(&prefs, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &prefs, nil
}

func (r *preferencesRepository) Update(ctx context.Context, prefs *domain.UserPreferences) error {
	return r.db.WithContext(ctx).Save(prefs).Error
}

// Upsert inserts prefs as a new row (fresh id); if another request created
// the user's row first, the ON CONFLICT clause folds this write into it.
func (r *preferencesRepository) Upsert(ctx context.Context, prefs *domain.UserPreferences) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"hide_reels", "hide_stories", "hide_suggestions",
			"lock_mode", "lock_end_time", "updated_at",
		}),
	}).Create(prefs).Error
}
