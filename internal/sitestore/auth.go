package sitestore

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// BootstrapPassword authenticates the very first offline session, before any
// server-confirmed secret has been cached.
const BootstrapPassword = "admin123"

const authCacheKey = "joshem_auth_secret_v2"

// ErrUpdateNotSynced reports a password change that reached the local cache
// but not the server. Unlike collection saves this is surfaced: a silently
// diverged credential would mislead the admin.
var ErrUpdateNotSynced = errors.New("password updated locally but not on the server")

type authPayload struct {
	Password string `json:"password"`
}

// VerifyPassword checks the candidate against the server. When the server is
// unreachable it degrades to comparing against the last server-confirmed
// secret, so an offline session never locks the admin out.
func (s *Store) VerifyPassword(ctx context.Context, candidate string) bool {
	body, _ := json.Marshal(authPayload{Password: candidate})

	_, status, err := s.request(ctx, http.MethodPost, "/api/auth/verify", body)
	if err != nil {
		log.Info("Auth server unreachable, verifying against cached secret")
		return candidate == s.lastKnownSecret()
	}
	if status != http.StatusOK {
		return false
	}

	// Remember the accepted secret for later offline sessions.
	if err := s.cacheSecret(candidate); err != nil {
		log.WithError(err).Warn("Failed to cache accepted password")
	}
	return true
}

// UpdatePassword writes the new secret to the cache first, then pushes it to
// the server. The push result is reported, not swallowed.
func (s *Store) UpdatePassword(ctx context.Context, newPassword string) error {
	if err := s.cacheSecret(newPassword); err != nil {
		log.WithError(err).Warn("Failed to cache new password")
	}

	body, _ := json.Marshal(authPayload{Password: newPassword})
	_, status, err := s.request(ctx, http.MethodPost, "/api/auth/update", body)
	if err != nil {
		return ErrUpdateNotSynced
	}
	if status != http.StatusOK {
		return ErrUpdateNotSynced
	}
	return nil
}

func (s *Store) lastKnownSecret() string {
	raw, ok := s.cache.Get(authCacheKey)
	if !ok {
		return BootstrapPassword
	}
	var secret string
	if err := json.Unmarshal(raw, &secret); err != nil || secret == "" {
		return BootstrapPassword
	}
	return secret
}

func (s *Store) cacheSecret(secret string) error {
	raw, _ := json.Marshal(secret)
	return s.cache.Set(authCacheKey, raw)
}
