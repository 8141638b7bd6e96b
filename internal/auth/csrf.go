package auth

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

// csrfTokenEntry stores token metadata
type csrfTokenEntry struct {
	userID string
	expiry time.Time
}

// CSRFTokenManager handles CSRF token generation and validation for the
// dashboard. Tokens are bound to a user and expire after a fixed TTL.
type CSRFTokenManager struct {
	validTokens map[string]*csrfTokenEntry
	mu          sync.RWMutex
	tokenTTL    time.Duration
	stopCh      chan struct{}
}

// NewCSRFTokenManager creates a new CSRF token manager and starts its
// expired-token cleanup goroutine. Call Stop to shut it down.
func NewCSRFTokenManager() *CSRFTokenManager {
	manager := &CSRFTokenManager{
		validTokens: make(map[string]*csrfTokenEntry),
		tokenTTL:    15 * time.Minute,
		stopCh:      make(chan struct{}),
	}

	go manager.cleanupExpiredTokens()

	return manager
}

// GenerateToken creates a new CSRF token for a specific user
func (m *CSRFTokenManager) GenerateToken(userID string) (string, error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", err
	}

	token := hex.EncodeToString(randomBytes)

	m.mu.Lock()
	m.validTokens[token] = &csrfTokenEntry{
		userID: userID,
		expiry: time.Now().Add(m.tokenTTL),
	}
	m.mu.Unlock()

	return token, nil
}

// ValidateToken checks if a CSRF token is valid and belongs to the user
func (m *CSRFTokenManager) ValidateToken(token, userID string) bool {
	m.mu.RLock()
	entry, exists := m.validTokens[token]
	m.mu.RUnlock()

	if !exists {
		return false
	}

	if entry.userID != userID {
		return false
	}

	if time.Now().After(entry.expiry) {
		m.mu.Lock()
		delete(m.validTokens, token)
		m.mu.Unlock()
		return false
	}

	return true
}

// RevokeToken invalidates a CSRF token, used on logout
func (m *CSRFTokenManager) RevokeToken(token string) {
	m.mu.Lock()
	delete(m.validTokens, token)
	m.mu.Unlock()
}

// RevokeUserTokens invalidates every token issued to a user
func (m *CSRFTokenManager) RevokeUserTokens(userID string) {
	m.mu.Lock()
	for token, entry := range m.validTokens {
		if entry.userID == userID {
			delete(m.validTokens, token)
		}
	}
	m.mu.Unlock()
}

// Stop terminates the cleanup goroutine
func (m *CSRFTokenManager) Stop() {
	close(m.stopCh)
}

// cleanupExpiredTokens periodically removes expired tokens
func (m *CSRFTokenManager) cleanupExpiredTokens() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.mu.Lock()
			now := time.Now()
			for token, entry := range m.validTokens {
				if now.After(entry.expiry) {
					delete(m.validTokens, token)
				}
			}
			m.mu.Unlock()
		case <-m.stopCh:
			return
		}
	}
}
