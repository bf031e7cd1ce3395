package services

import (
	"fmt"
	"sync"

	"github.com/moroccotransfers/booking-backend/internal/models"
)

// SettingStore is the storage surface the cache reads through.
type SettingStore interface {
	GetByKey(key string) (*models.Setting, error)
}

// SettingsCache is a process-wide read-through cache for settings
// rows (e.g. the WhatsApp contact number). Values load lazily on first
// Get and stay cached until Refresh is called, which the admin
// settings handler does after every update.
type SettingsCache struct {
	store SettingStore

	mu     sync.RWMutex
	values map[string]string
}

// NewSettingsCache creates a new settings cache
func NewSettingsCache(store SettingStore) *SettingsCache {
	return &SettingsCache{
		store:  store,
		values: make(map[string]string),
	}
}

// Get returns the cached value for key, loading it from storage on
// first use.
func (c *SettingsCache) Get(key string) (string, error) {
	c.mu.RLock()
	value, ok := c.values[key]
	c.mu.RUnlock()
	if ok {
		return value, nil
	}

	return c.Refresh(key)
}

// Refresh reloads a key from storage and updates the cache.
func (c *SettingsCache) Refresh(key string) (string, error) {
	setting, err := c.store.GetByKey(key)
	if err != nil {
		return "", fmt.Errorf("failed to load setting %q: %w", key, err)
	}

	c.mu.Lock()
	c.values[key] = setting.Value
	c.mu.Unlock()

	return setting.Value, nil
}
