// Package preferences persists the local user identity that partitions
// carts. Identity is not authenticated; an unset identity falls back to
// DefaultUserID.
package preferences

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"exoticworld/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultUserID = "usuario_demo_001"
	userIDKey     = "user_id"
)

var ErrBlankUserID = errors.New("user id must not be blank")

// Store is a small key-value store scoped to the user identity.
type Store interface {
	// UserID returns the saved identity, or DefaultUserID when none is saved.
	UserID(ctx context.Context) (string, error)
	SetUserID(ctx context.Context, userID string) error
	// Clear drops every saved preference; UserID then reports the default.
	Clear(ctx context.Context) error
}

// DBStore keeps preferences in a gorm table, typically an embedded sqlite file.
type DBStore struct {
	db *gorm.DB
}

// NewDBStore migrates the preferences table and returns a store over db.
func NewDBStore(db *gorm.DB) (*DBStore, error) {
	if err := db.AutoMigrate(&models.Preference{}); err != nil {
		return nil, fmt.Errorf("failed to migrate preferences: %w", err)
	}
	return &DBStore{db: db}, nil
}

func (s *DBStore) UserID(ctx context.Context) (string, error) {
	var pref models.Preference
	err := s.db.WithContext(ctx).Where("key = ?", userIDKey).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return DefaultUserID, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read user id: %w", err)
	}
	return pref.Value, nil
}

func (s *DBStore) SetUserID(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrBlankUserID
	}

	pref := models.Preference{Key: userIDKey, Value: userID}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&pref).Error
	if err != nil {
		return fmt.Errorf("failed to save user id: %w", err)
	}
	return nil
}

func (s *DBStore) Clear(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Where("1 = 1").Delete(&models.Preference{}).Error; err != nil {
		return fmt.Errorf("failed to clear preferences: %w", err)
	}
	return nil
}

// MemoryStore keeps preferences for the lifetime of the process.
type MemoryStore struct {
	mu     sync.RWMutex
	userID string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) UserID(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.userID == "" {
		return DefaultUserID, nil
	}
	return s.userID, nil
}

func (s *MemoryStore) SetUserID(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrBlankUserID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = ""
	return nil
}
