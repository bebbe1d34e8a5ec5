package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/icare-app/icare-server/internal/domain"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	name     string
	email    string
	password string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		name:     fmt.Sprintf("Test User %s", suffix),
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		password: "testpassword123",
	}
}

// WithName sets the display name
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Name:         b.name,
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		Subscription: domain.SubscriptionFree,
		ReferralCode: domain.NewReferralCode(),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	Success bool `json:"success"`
	User    *struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		Email        string `json:"email"`
		Subscription string `json:"subscription"`
		TimeSaved    int    `json:"time_saved"`
		ReferralCode string `json:"referral_code"`
	} `json:"user"`
	Token   string `json:"token"`
	Message string `json:"message"`
}

// PreferencesResponse matches the API preferences response
type PreferencesResponse struct {
	HideReels       bool       `json:"hide_reels"`
	HideStories     bool       `json:"hide_stories"`
	HideSuggestions bool       `json:"hide_suggestions"`
	LockMode        bool       `json:"lock_mode"`
	LockEndTime     *time.Time `json:"lock_end_time"`
}

// BuildAndAuthenticate creates a user via the API and returns the auth response
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) *AuthResponse {
	t.Helper()

	reqBody := map[string]string{
		"name":     b.name,
		"email":    b.email,
		"password": b.password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode auth response: %v", err)
	}

	if !authResp.Success {
		t.Fatalf("registration failed: %s", authResp.Message)
	}

	return &authResp
}

// PreferencesBuilder creates preferences rows for tests
type PreferencesBuilder struct {
	userID      uuid.UUID
	hideReels   bool
	hideStories bool
	hideSugg    bool
	lockMode    bool
	lockEnd     *time.Time
}

// NewPreferencesBuilder creates a builder with the service defaults
func NewPreferencesBuilder(userID uuid.UUID) *PreferencesBuilder {
	return &PreferencesBuilder{
		userID:    userID,
		hideReels: true,
		hideSugg:  true,
	}
}

// WithToggles sets the three feed-hiding toggles
func (b *PreferencesBuilder) WithToggles(reels, stories, suggestions bool) *PreferencesBuilder {
	b.hideReels = reels
	b.hideStories = stories
	b.hideSugg = suggestions
	return b
}

// WithLock enables lock mode with the given end time
func (b *PreferencesBuilder) WithLock(endTime *time.Time) *PreferencesBuilder {
	b.lockMode = true
	b.lockEnd = endTime
	return b
}

// Build persists the preferences row
func (b *PreferencesBuilder) Build(t *testing.T, db *gorm.DB) *domain.UserPreferences {
	t.Helper()

	prefs := &domain.UserPreferences{
		ID:              uuid.New(),
		UserID:          b.userID,
		HideReels:       b.hideReels,
		HideStories:     b.hideStories,
		HideSuggestions: b.hideSugg,
		LockMode:        b.lockMode,
		LockEndTime:     b.lockEnd,
		UpdatedAt:       time.Now(),
	}

	if err := db.Create(prefs).Error; err != nil {
		t.Fatalf("failed to create preferences: %v", err)
	}

	return prefs
}

// CreateAuthenticatedRequest creates an HTTP request with auth token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}
