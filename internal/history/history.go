// Package history records completed generations in Postgres. The store is
// optional: when no database is configured the rest of the service runs
// without it.
package history

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// GenerationRecord is one completed generation call.
type GenerationRecord struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	RequestID     string    `gorm:"index" json:"request_id"`
	Company       string    `json:"company"`
	TargetRole    string    `json:"target_role"`
	Position      string    `json:"position"`
	SenderEmail   string    `json:"sender_email"`
	ReceiverEmail string    `json:"receiver_email"`
	Subject       string    `json:"subject"`
	Model         string    `json:"model"`
	DurationMs    int64     `json:"duration_ms"`
	Delivered     bool      `json:"delivered"`
}

// Store persists generation records.
type Store struct {
	db *gorm.DB
}

// Connect opens the database and runs migrations.
func Connect(databaseURL string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := db.AutoMigrate(&GenerationRecord{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Record saves one generation record.
func (s *Store) Record(record *GenerationRecord) error {
	if err := s.db.Create(record).Error; err != nil {
		return fmt.Errorf("record generation: %w", err)
	}
	return nil
}

// MarkDelivered flags the most recent record for a request ID as delivered.
func (s *Store) MarkDelivered(requestID string) error {
	return s.db.Model(&GenerationRecord{}).
		Where("request_id = ?", requestID).
		Update("delivered", true).Error
}

// Recent returns the latest records, newest first.
func (s *Store) Recent(limit int) ([]GenerationRecord, error) {
	var records []GenerationRecord
	err := s.db.Order("created_at DESC").Limit(limit).Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}
	return records, nil
}
