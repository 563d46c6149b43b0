package auth

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrStaticTokenCannotRefresh = errors.New("static token cannot be refreshed")
	ErrNoTokenAvailable         = errors.New("no token available")
)

// TokenManager provides bearer tokens for API requests.
type TokenManager interface {
	// GetToken returns a token valid for the next request.
	GetToken(ctx context.Context) (string, error)
	// RefreshToken forces a refresh where the implementation supports one.
	RefreshToken(ctx context.Context) error
	// SetToken replaces the current token.
	SetToken(token string, expiresAt time.Time)
}

// StaticTokenManager serves a fixed private-app access token. HubSpot
// private-app tokens do not expire or refresh.
type StaticTokenManager struct {
	mu    sync.RWMutex
	token string
}

// NewStaticTokenManager creates a token manager around a fixed token.
func NewStaticTokenManager(token string) *StaticTokenManager {
	return &StaticTokenManager{token: token}
}

// GetToken returns the configured token.
func (m *StaticTokenManager) GetToken(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.token == "" {
		return "", ErrNoTokenAvailable
	}

	return m.token, nil
}

// RefreshToken always fails; static tokens have no refresh flow.
func (m *StaticTokenManager) RefreshToken(ctx context.Context) error {
	return ErrStaticTokenCannotRefresh
}

// SetToken replaces the stored token. The expiry is ignored.
func (m *StaticTokenManager) SetToken(token string, expiresAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = token
}
