package config

import (
	"fmt"
	"os"

	"github.com/patoliyabhi7/BlogEmails/internal/models"

	"gopkg.in/yaml.v2"
)

// Load reads the configuration from the specified YAML file and returns a
// Config struct. Values of the form ${ENV_VAR} are expanded from the
// environment before parsing, so credentials can live in a .env file
// instead of the config file itself.
func Load(filepath string) (*models.Config, error) {
	configFile, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}

	expanded := os.ExpandEnv(string(configFile))

	var config models.Config
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, err
	}

	applyDefaults(&config)

	if err := validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func applyDefaults(cfg *models.Config) {
	if cfg.Email.MailBox == "" {
		cfg.Email.MailBox = "INBOX"
	}
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = "gemini-1.5-flash"
	}
	if cfg.Digest.RunAt == "" {
		cfg.Digest.RunAt = "19:05"
	}
}

func validate(cfg *models.Config) error {
	if cfg.Email.Imap == "" {
		return fmt.Errorf("email.imap is required")
	}
	if cfg.Email.Login == "" {
		return fmt.Errorf("email.login is required")
	}
	if cfg.Email.Password == "" {
		return fmt.Errorf("email.password is required")
	}
	if cfg.Email.RefreshTime <= 0 {
		return fmt.Errorf("email.refreshTime is required")
	}
	if len(cfg.AllowedSenders) == 0 {
		return fmt.Errorf("at least one allowed sender is required")
	}
	if cfg.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if cfg.Gemini.APIKey == "" {
		return fmt.Errorf("gemini.apiKey is required")
	}
	return nil
}
