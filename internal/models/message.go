package models

import "time"

// StoredMessage is the persisted form of an admitted email. The
// composite unique index makes a (storage day, subject) pair
// insertable at most once, so a duplicate slipping past the in-memory
// dedup check fails at the database instead of producing a second row.
type StoredMessage struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Subject string `gorm:"type:varchar(512);not null;uniqueIndex:idx_day_subject" json:"subject"`
	Sender  string `gorm:"type:varchar(512);not null" json:"sender"`
	// ReceivedAt is the local-offset wall-clock time ("YYYY-MM-DD HH:MM:SS"),
	// never the raw transport timestamp.
	ReceivedAt string `gorm:"type:varchar(32);not null" json:"received_at"`
	// StorageDay is stamped from the process clock at store time, not
	// from ReceivedAt. A message ingested after local midnight is filed
	// under the ingestion date, not its receipt date.
	StorageDay string `gorm:"type:varchar(10);not null;uniqueIndex:idx_day_subject;index" json:"storage_day"`
	Body       string `gorm:"type:text;not null" json:"body"`
}

// TableName specifies the table name for StoredMessage
func (StoredMessage) TableName() string {
	return "stored_messages"
}
