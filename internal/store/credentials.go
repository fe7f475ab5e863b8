package store

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Credentials of the Reddit script application, read from the environment
type Credentials struct {
	ClientID     string `envconfig:"REDDIT_CLIENT_ID" required:"true"`
	ClientSecret string `envconfig:"REDDIT_CLIENT_SECRET" required:"true"`
	UserAgent    string `envconfig:"REDDIT_USER_AGENT" required:"true"`
	Username     string `envconfig:"REDDIT_USERNAME" required:"true"`
	Password     string `envconfig:"REDDIT_PASSWORD" required:"true"`
}

// KiteCredentials enable the optional instrument-master check
type KiteCredentials struct {
	APIKey      string `envconfig:"KITE_API_KEY"`
	AccessToken string `envconfig:"KITE_ACCESS_TOKEN"`
}

// Configured reports whether both Kite values are present
func (k KiteCredentials) Configured() bool {
	return k.APIKey != "" && k.AccessToken != ""
}

// LoadEnvFile loads a .env file into the process environment. Variables
// already set win. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// LoadCredentials reads the Reddit credentials from the environment
func LoadCredentials() (*Credentials, error) {
	var creds Credentials
	if err := envconfig.Process("", &creds); err != nil {
		return nil, fmt.Errorf("failed to read reddit credentials: %w", err)
	}
	return &creds, nil
}

// LoadKiteCredentials reads the optional Kite Connect credentials
func LoadKiteCredentials() KiteCredentials {
	var kite KiteCredentials
	_ = envconfig.Process("", &kite)
	return kite
}
