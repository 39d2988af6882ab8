// Package config loads and validates the signup service configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/samuelmholley1/ukiahumc-signups/pkg/store"
)

// Store backends.
const (
	BackendSheets   = "sheets"
	BackendPostgres = "postgres"
)

// Config represents the application configuration.
type Config struct {
	ListenAddr string `yaml:"listenAddr" validate:"required"`

	// StoreBackend selects sheets or postgres.
	StoreBackend string `yaml:"storeBackend" validate:"required,oneof=sheets postgres"`

	// Sheets backend.
	SpreadsheetID         string `yaml:"spreadsheetID,omitempty"`
	GoogleCredentialsFile string `yaml:"googleCredentialsFile,omitempty"`
	LiturgistTab          string `yaml:"liturgistTab,omitempty"`
	GreeterTab            string `yaml:"greeterTab,omitempty"`
	FoodTab               string `yaml:"foodTab,omitempty"`

	// Postgres backend.
	PostgresURL string `yaml:"postgresURL,omitempty"`

	// Email.
	GmailSender          string `yaml:"gmailSender" validate:"required,email"`
	FromName             string `yaml:"fromName,omitempty"`
	OperatorEmail        string `yaml:"operatorEmail" validate:"required,email"`
	OperatorDomain       string `yaml:"operatorDomain" validate:"required"`
	FoodCoordinatorEmail string `yaml:"foodCoordinatorEmail" validate:"required,email"`

	// CacheTTLMinutes overrides the one-hour slot cache TTL when positive.
	CacheTTLMinutes int `yaml:"cacheTTLMinutes,omitempty" validate:"omitempty,min=1"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Tabs maps each signup type to its spreadsheet tab title.
func (c *Config) Tabs() map[store.SignupType]string {
	return map[store.SignupType]string{
		store.Liturgist: c.LiturgistTab,
		store.Greeter:   c.GreeterTab,
		store.Food:      c.FoodTab,
	}
}

// LoadWithEnv loads and validates the configuration for an environment.
// It looks for signups_config.<env>.yaml in the current directory first,
// then in the user's home directory.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct, including the
// backend-specific fields the struct tags cannot express.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	switch cfg.StoreBackend {
	case BackendSheets:
		if cfg.SpreadsheetID == "" || cfg.GoogleCredentialsFile == "" {
			return fmt.Errorf("config validation failed: sheets backend requires spreadsheetID and googleCredentialsFile")
		}
		if cfg.LiturgistTab == "" || cfg.GreeterTab == "" || cfg.FoodTab == "" {
			return fmt.Errorf("config validation failed: sheets backend requires liturgistTab, greeterTab and foodTab")
		}
	case BackendPostgres:
		if cfg.PostgresURL == "" {
			return fmt.Errorf("config validation failed: postgres backend requires postgresURL")
		}
		if cfg.GoogleCredentialsFile == "" {
			// Gmail delivery still needs credentials even without the
			// sheets store.
			return fmt.Errorf("config validation failed: googleCredentialsFile is required for email delivery")
		}
	}

	return nil
}

// findConfigFile searches for the environment's config file in the current
// directory and home directory.
func findConfigFile(env string) (string, error) {
	configFileName := "signups_config.yaml"
	if env != "" {
		configFileName = fmt.Sprintf("signups_config.%s.yaml", env)
	}

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", configFileName)
}
