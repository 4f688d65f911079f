package storage

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ErrNotFound means no record exists under the requested key.
var ErrNotFound = errors.New("record not found")

// Record is one key/value row of the durable local store. Values are opaque
// serialized payloads owned by the caller.
type Record struct {
	Key       string `gorm:"primaryKey;column:key"`
	Value     string `gorm:"column:value"`
	UpdatedAt time.Time
}

func (Record) TableName() string {
	return "local_records"
}

// Local is a sqlite-backed key/value store. It survives process restarts,
// which is what makes session continuity across runs possible.
type Local struct {
	db *gorm.DB
}

// OpenLocal opens (creating if needed) the sqlite file at path and ensures
// the records table exists.
func OpenLocal(path string) (*Local, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("migrate local store: %w", err)
	}

	return &Local{db: db}, nil
}

// Get returns the value stored under key, or ErrNotFound.
func (l *Local) Get(key string) (string, error) {
	var rec Record
	if err := l.db.Where("key = ?", key).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return rec.Value, nil
}

// Set writes value under key, replacing any previous value.
func (l *Local) Set(key, value string) error {
	rec := Record{Key: key, Value: value, UpdatedAt: time.Now()}
	return l.db.Save(&rec).Error
}

// Remove deletes the record under key. Removing an absent key is not an
// error, which keeps logout idempotent.
func (l *Local) Remove(key string) error {
	return l.db.Where("key = ?", key).Delete(&Record{}).Error
}

// Close releases the underlying sqlite handle.
func (l *Local) Close() error {
	sqlDB, err := l.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
