package store

import (
	"errors"
	"fmt"

	"github.com/patoliyabhi7/BlogEmails/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrDuplicate reports that an equivalent message is already stored for
// the same storage day. Callers treat it as a skip, not a failure.
var ErrDuplicate = errors.New("message already stored")

type Store struct {
	db *gorm.DB
}

// Open connects to MySQL with the given DSN and runs migrations.
// TranslateError is required so a unique-index violation surfaces as
// gorm.ErrDuplicatedKey instead of a driver-specific error.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := models.Migrate(db); err != nil {
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	return &Store{db: db}, nil
}

// New wraps an already-open gorm connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ExistsBySubject reports whether any stored message carries the given
// subject, across all storage days. That is broader than the
// (storage_day, subject) unique index: the index only backstops same-day
// races, while this lookup also blocks a subject recurring on a later
// day. Callers that ever want per-day recurrence must scope the lookup
// by day, not lean on the index.
func (s *Store) ExistsBySubject(subject string) (bool, error) {
	var count int64
	err := s.db.Model(&models.StoredMessage{}).
		Where("subject = ?", subject).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("error looking up subject: %w", err)
	}
	return count > 0, nil
}

// FindByDay returns all messages filed under the given storage day, in
// receipt order.
func (s *Store) FindByDay(day string) ([]models.StoredMessage, error) {
	var messages []models.StoredMessage
	err := s.db.
		Where("storage_day = ?", day).
		Order("received_at").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("error loading messages for day %s: %w", day, err)
	}
	return messages, nil
}

// Insert persists a message. A unique-index violation on
// (storage_day, subject) is reported as ErrDuplicate.
func (s *Store) Insert(msg *models.StoredMessage) error {
	if err := s.db.Create(msg).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return fmt.Errorf("error inserting message: %w", err)
	}
	return nil
}
