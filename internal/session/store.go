// Package session keeps the logged-in user and the cached access token in
// the portal's local key-value storage.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"portalempleos/internal/database"
	"portalempleos/internal/models"
)

//go:generate mockgen -destination=mocks/kv_mock.go -package=mocks portalempleos/internal/session KV

// Storage keys
const (
	KeyUser            = "portal_empleos_user"
	KeyToken           = "portal_empleos_token"
	KeyTokenExpiration = "portal_empleos_token_expiration"
)

// KV is the persistent key-value storage behind the store.
// Get returns database.ErrKeyNotFound for missing keys.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Store holds the single client-side session
type Store struct {
	kv KV
}

// NewStore creates a session store over kv
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// Save persists the user as the current session
func (s *Store) Save(user *models.UserData) error {
	if user == nil {
		return errors.New("cannot save nil user")
	}
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if err := s.kv.Set(KeyUser, string(data)); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Get returns the current user, or nil when there is no session or the
// stored value is unreadable, null or carries an unknown role.
func (s *Store) Get() *models.UserData {
	raw, err := s.kv.Get(KeyUser)
	if err != nil {
		if !errors.Is(err, database.ErrKeyNotFound) {
			log.Printf("Warning: failed to read session: %v", err)
		}
		return nil
	}

	var user *models.UserData
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		log.Printf("Warning: discarding corrupted session: %v", err)
		return nil
	}
	if user == nil || !user.Role.Valid() {
		log.Printf("Warning: discarding session without a valid role")
		return nil
	}
	return user
}

// Clear removes the current session
func (s *Store) Clear() error {
	if err := s.kv.Delete(KeyUser); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// IsAuthenticated reports whether a readable session exists
func (s *Store) IsAuthenticated() bool {
	return s.Get() != nil
}
