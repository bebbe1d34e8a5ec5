package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/icare-app/icare-server/internal/auth"
	"github.com/icare-app/icare-server/internal/config"
	"github.com/icare-app/icare-server/internal/domain"
	"github.com/icare-app/icare-server/internal/repository"
)

type AuthService struct {
	userRepo  repository.UserRepository
	prefsRepo repository.PreferencesRepository
	hasher    *auth.PasswordHasher
	codec     *auth.TokenCodec
}

func NewAuthService(userRepo repository.UserRepository, prefsRepo repository.PreferencesRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		prefsRepo: prefsRepo,
		hasher:    auth.NewPasswordHasher(cfg.BcryptCost),
		codec:     auth.NewTokenCodec(cfg.JWTSecret, time.Duration(cfg.JWTExpirationHours)*time.Hour),
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	User  *domain.User
	Token string
}

// Register creates the account and its default preferences row, then issues
// a session token. The two writes are not transactional: a crash in between
// leaves an account whose preferences are recreated by the lazy read path.
// The duplicate-email check races with concurrent registrations for the same
// address; the unique index on email backstops that race.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return nil, domain.ErrEmailExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	bio := domain.DefaultBio
	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Bio:          &bio,
		Subscription: domain.SubscriptionFree,
		TimeSaved:    0,
		ReferralCode: domain.NewReferralCode(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.prefsRepo.Create(ctx, domain.NewDefaultPreferences(user.ID)); err != nil {
		// The account exists; the preferences get-or-create path heals this.
		log.Printf("ERROR [AuthService.Register] failed to create default preferences for %s: %v", user.ID, err)
	}

	token, err := s.codec.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password return the same error so the response does not reveal which
// accounts exist.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.codec.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Codec exposes the token codec for the auth middleware.
func (s *AuthService) Codec() *auth.TokenCodec {
	return s.codec
}
