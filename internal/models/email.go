package models

import "time"

// Email represents a normalized parsed email message.
// From carries the bare address used for allow-list checks;
// FromDisplay keeps the "Name <addr>" form that gets persisted.
type Email struct {
	UID         uint32
	From        string
	FromDisplay string
	Subject     string
	BodyText    string
	ReceivedAt  time.Time
	TraceID     string
}
