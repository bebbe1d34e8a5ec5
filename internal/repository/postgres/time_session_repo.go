package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/icare-app/icare-server/internal/domain"
)

type timeSessionRepository struct {
	db *gorm.DB
}

func NewTimeSessionRepository(db *gorm.DB) *timeSessionRepository {
	return &timeSessionRepository{db: db}
}

func (r *timeSessionRepository) Create(ctx context.Context, session *domain.TimeSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *timeSessionRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.TimeSession{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *timeSessionRepository) GetByUserIDSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]*domain.TimeSession, error) {
	var sessions []*domain.TimeSession
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}
