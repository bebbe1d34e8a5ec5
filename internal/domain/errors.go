package domain

import "errors"

// Account errors
var (
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// Preferences errors
var (
	ErrPreferencesLocked = errors.New("preferences are locked until the lock end time")
)
