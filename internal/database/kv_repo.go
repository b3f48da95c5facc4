package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrKeyNotFound = errors.New("key not found")

// KVRepo is a string key-value store over the local_storage table
type KVRepo struct{}

// NewKVRepo creates a new key-value repository
func NewKVRepo() *KVRepo {
	return &KVRepo{}
}

// Get retrieves a value
func (r *KVRepo) Get(key string) (string, error) {
	var value string
	err := DB.QueryRow("SELECT value FROM local_storage WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	return value, err
}

// Set inserts or replaces a value
func (r *KVRepo) Set(key, value string) error {
	now := time.Now()
	_, err := DB.Exec(`
		INSERT INTO local_storage (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = ?, updated_at = ?
	`, key, value, now, value, now)
	return err
}

// Delete removes a value; deleting a missing key is not an error
func (r *KVRepo) Delete(key string) error {
	_, err := DB.Exec("DELETE FROM local_storage WHERE key = ?", key)
	return err
}

// Keys lists the stored keys in order, without their values
func (r *KVRepo) Keys() ([]string, error) {
	rows, err := DB.Query("SELECT key FROM local_storage ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
