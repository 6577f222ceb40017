package auth

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrNoToken = errors.New("no token available")
)

// TokenManager supplies the bearer token attached to every request.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
	SetToken(token string, expiresAt time.Time)
}

// StaticTokenManager provides a fixed pre-issued token.
type StaticTokenManager struct {
	mu    sync.RWMutex
	token string
}

// NewStaticTokenManager creates a token manager around a fixed token.
func NewStaticTokenManager(token string) *StaticTokenManager {
	return &StaticTokenManager{token: token}
}

// GetToken returns the stored token.
func (m *StaticTokenManager) GetToken(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.token == "" {
		return "", ErrNoToken
	}

	return m.token, nil
}

// SetToken replaces the stored token.
func (m *StaticTokenManager) SetToken(token string, expiresAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = token
}

// ConfigTokenManager reads the token through a loader on every call, so a
// token rotated in the saved configuration takes effect without
// rebuilding the client.
type ConfigTokenManager struct {
	load func() string

	mu       sync.RWMutex
	override string
}

// NewConfigTokenManager creates a token manager backed by a loader.
func NewConfigTokenManager(load func() string) *ConfigTokenManager {
	return &ConfigTokenManager{load: load}
}

// GetToken returns the override if one was set, otherwise the loaded token.
func (m *ConfigTokenManager) GetToken(ctx context.Context) (string, error) {
	m.mu.RLock()
	override := m.override
	m.mu.RUnlock()

	if override != "" {
		return override, nil
	}

	token := m.load()
	if token == "" {
		return "", ErrNoToken
	}

	return token, nil
}

// SetToken overrides the loaded token for this process.
func (m *ConfigTokenManager) SetToken(token string, expiresAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.override = token
}
