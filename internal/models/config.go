package models

import "time"

// Config represents the application configuration
type Config struct {
	Email          EmailConfig    `yaml:"email"`
	AllowedSenders []string       `yaml:"allowedSenders"`
	Database       DatabaseConfig `yaml:"database"`
	Gemini         GeminiConfig   `yaml:"gemini"`
	Digest         DigestConfig   `yaml:"digest"`
}

// EmailConfig represents IMAP email configuration
type EmailConfig struct {
	Imap        string        `yaml:"imap"`
	Login       string        `yaml:"login"`
	Password    string        `yaml:"password"`
	RefreshTime time.Duration `yaml:"refreshTime"`
	MailBox     string        `yaml:"mailbox"`
}

// DatabaseConfig holds the MySQL connection settings
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// GeminiConfig holds the generative-language API settings
type GeminiConfig struct {
	APIKey string `yaml:"apiKey"`
	Model  string `yaml:"model"`
}

// DigestConfig controls the daily digest run
type DigestConfig struct {
	// RunAt is the local wall-clock time ("HH:MM") after which the
	// digest is assembled, once per day.
	RunAt     string `yaml:"runAt"`
	OutputDir string `yaml:"outputDir"`
}
