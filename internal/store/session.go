package store

import (
	"errors"
	"time"

	"github.com/toomanyjoshes/terminalchat/internal/models"
	apperrors "github.com/toomanyjoshes/terminalchat/pkg/errors"
	"github.com/toomanyjoshes/terminalchat/pkg/utils"
	"gorm.io/gorm"
)

// SessionStore maps opaque bearer tokens to authenticated usernames.
// Tokens live until revoked, the account is deleted, or the optional TTL
// elapses (ttl == 0 disables expiry).
type SessionStore struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewSessionStore(db *gorm.DB, ttl time.Duration) *SessionStore {
	return &SessionStore{db: db, ttl: ttl}
}

// Create issues a new random token bound to username. The token column is
// the primary key, so uniqueness across active sessions is enforced by the
// store; a collision (256 bits of entropy, effectively unreachable) is
// retried rather than surfaced.
func (s *SessionStore) Create(username string) (string, error) {
	for attempt := 0; attempt < 3; attempt++ {
		token, err := utils.GenerateSessionToken()
		if err != nil {
			return "", err
		}

		session := models.Session{
			Token:    token,
			Username: username,
			IssuedAt: time.Now(),
		}
		err = s.db.Create(&session).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		if err != nil {
			return "", apperrors.Storage("failed to persist session")
		}
		return token, nil
	}
	return "", apperrors.Storage("failed to allocate a unique session token")
}

// Resolve returns the username owning token, or ok=false when the token is
// unknown or expired. Expired sessions are purged lazily on lookup.
func (s *SessionStore) Resolve(token string) (string, bool, error) {
	if token == "" {
		return "", false, nil
	}

	var session models.Session
	err := s.db.First(&session, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, apperrors.Storage("failed to look up session")
	}

	if s.ttl > 0 && time.Since(session.IssuedAt) > s.ttl {
		s.db.Delete(&models.Session{}, "token = ?", token)
		return "", false, nil
	}

	return session.Username, true, nil
}

// Revoke removes a session. Removing an absent token is not an error.
func (s *SessionStore) Revoke(token string) error {
	if err := s.db.Delete(&models.Session{}, "token = ?", token).Error; err != nil {
		return apperrors.Storage("failed to revoke session")
	}
	return nil
}

// RevokeAllFor removes every session owned by username. Used on account
// deletion.
func (s *SessionStore) RevokeAllFor(username string) error {
	if err := s.db.Delete(&models.Session{}, "username = ?", username).Error; err != nil {
		return apperrors.Storage("failed to revoke sessions")
	}
	return nil
}
