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

type StatsService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.TimeSessionRepository
}

func NewStatsService(userRepo repository.UserRepository, sessionRepo repository.TimeSessionRepository) *StatsService {
	return &StatsService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
	}
}

type UserStats struct {
	TimeSaved       int   `json:"time_saved"`
	SessionsCount   int   `json:"sessions_count"`
	WeeklyTimeSaved int   `json:"weekly_time_saved"`
	TotalSessions   int64 `json:"total_sessions"`
}

// AddTimeSaved increments the user's cumulative counter and appends a
// session record, returning the new total. The counter only ever grows.
func (s *StatsService) AddTimeSaved(ctx context.Context, userID uuid.UUID, minutes int, platform string) (int, error) {
	updated, err := s.userRepo.IncrementTimeSaved(ctx, userID, minutes)
	if err != nil {
		return 0, err
	}
	if !updated {
		return 0, domain.ErrUserNotFound
	}

	now := time.Now()
	session := &domain.TimeSession{
		ID:        uuid.New(),
		UserID:    userID,
		Platform:  platform,
		TimeSpent: 0,
		TimeSaved: minutes,
		StartTime: now,
		EndTime:   now,
		CreatedAt: now,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return 0, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.ErrUserNotFound
		}
		return 0, err
	}
	return user.TimeSaved, nil
}

// Stats returns the lifetime counter plus a 7-day window summed over the
// user's session records.
func (s *StatsService) Stats(ctx context.Context, userID uuid.UUID) (*UserStats, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	totalSessions, err := s.sessionRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	weekAgo := time.Now().AddDate(0, 0, -7)
	weeklySessions, err := s.sessionRepo.GetByUserIDSince(ctx, userID, weekAgo)
	if err != nil {
		return nil, err
	}

	weeklyTimeSaved := 0
	for _, session := range weeklySessions {
		weeklyTimeSaved += session.TimeSaved
	}

	return &UserStats{
		TimeSaved:       user.TimeSaved,
		SessionsCount:   len(weeklySessions),
		WeeklyTimeSaved: weeklyTimeSaved,
		TotalSessions:   totalSessions,
	}, nil
}
