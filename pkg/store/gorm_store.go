package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"devicerelay.xyz/device-relay-service/pkg/db"
	"devicerelay.xyz/device-relay-service/pkg/models"
)

// GormStore keeps blobs in the record_blobs table, one row per key.
type GormStore struct {
	Db db.DB
}

func NewGormStore(dbInstance *db.DB) *GormStore {
	return &GormStore{Db: *dbInstance}
}

func (s *GormStore) Put(ctx context.Context, deviceID string, category string, blob []byte) error {
	record := models.RecordBlob{
		Key:       Key(deviceID, category),
		DeviceID:  deviceID,
		Category:  category,
		Data:      blob,
		UpdatedAt: time.Now(),
	}

	return s.Db.Conn.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(&record).Error
}

func (s *GormStore) Get(ctx context.Context, deviceID string, category string) ([]byte, error) {
	var record models.RecordBlob
	err := s.Db.Conn.WithContext(ctx).First(&record, "key = ?", Key(deviceID, category)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return record.Data, nil
}
