package service

import (
	"github.com/icare-app/icare-server/internal/config"
	"github.com/icare-app/icare-server/internal/repository"
)

type Services struct {
	Auth        *AuthService
	Preferences *PreferencesService
	Stats       *StatsService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth:        NewAuthService(repos.User, repos.Preferences, cfg),
		Preferences: NewPreferencesService(repos.Preferences),
		Stats:       NewStatsService(repos.User, repos.TimeSession),
	}
}
