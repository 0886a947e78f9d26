// Package store provides persistent backing stores for the response cache.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/riskfuse/riskfuse/internal/intel"
)

// cacheRow is the sqlite representation of one cache entry. Payloads are
// stored as JSON blobs; the typed map is rebuilt on read.
type cacheRow struct {
	Key       string `gorm:"primaryKey"`
	Payload   []byte
	ExpiresAt time.Time `gorm:"index"`
}

func (cacheRow) TableName() string { return "cache_entries" }

// SQLite implements intel.Store on a local sqlite file so cached provider
// payloads survive restarts. Expiry remains lazy and is enforced by the
// cache layer; Prune exists to keep the file bounded.
type SQLite struct {
	db *gorm.DB
}

func OpenSQLite(path string) (*SQLite, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	if err := db.AutoMigrate(&cacheRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate cache schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Get(key string) (intel.Entry, bool, error) {
	var row cacheRow
	err := s.db.First(&row, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return intel.Entry{}, false, nil
	}
	if err != nil {
		return intel.Entry{}, false, err
	}

	var payload intel.Payload
	if err := json.Unmarshal(row.Payload, &payload); err != nil {
		return intel.Entry{}, false, err
	}
	return intel.Entry{Key: row.Key, Payload: payload, ExpiresAt: row.ExpiresAt}, true, nil
}

func (s *SQLite) Set(entry intel.Entry) error {
	raw, err := json.Marshal(entry.Payload)
	if err != nil {
		return err
	}
	row := cacheRow{Key: entry.Key, Payload: raw, ExpiresAt: entry.ExpiresAt}
	return s.db.Save(&row).Error
}

// Prune deletes entries that expired before now and returns how many rows
// were removed.
func (s *SQLite) Prune(now time.Time) (int64, error) {
	result := s.db.Where("expires_at <= ?", now).Delete(&cacheRow{})
	return result.RowsAffected, result.Error
}
