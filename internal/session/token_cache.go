package session

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"

	"portalempleos/internal/database"
)

// TokenCache persists the access token under the token storage keys
type TokenCache struct {
	kv KV
}

// NewTokenCache creates a token cache over kv
func NewTokenCache(kv KV) *TokenCache {
	return &TokenCache{kv: kv}
}

// LoadToken returns the stored token, or nil if none is stored.
// An unparsable expiration is treated as expired.
func (c *TokenCache) LoadToken() (*oauth2.Token, error) {
	access, err := c.kv.Get(KeyToken)
	if errors.Is(err, database.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token: %w", err)
	}

	tok := &oauth2.Token{AccessToken: access}
	raw, err := c.kv.Get(KeyTokenExpiration)
	if err != nil && !errors.Is(err, database.ErrKeyNotFound) {
		return nil, fmt.Errorf("failed to read token expiration: %w", err)
	}
	if expiry, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		tok.Expiry = expiry
	}
	return tok, nil
}

// SaveToken stores the token and its expiration
func (c *TokenCache) SaveToken(tok *oauth2.Token) error {
	if err := c.kv.Set(KeyToken, tok.AccessToken); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	if err := c.kv.Set(KeyTokenExpiration, tok.Expiry.UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("failed to save token expiration: %w", err)
	}
	return nil
}

// ClearToken removes the stored token
func (c *TokenCache) ClearToken() error {
	if err := c.kv.Delete(KeyToken); err != nil {
		return err
	}
	return c.kv.Delete(KeyTokenExpiration)
}
