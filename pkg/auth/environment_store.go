package auth

import (
	"os"
	"time"
)

// EnvironmentStore implements CredentialStore using environment
// variables. X_BEARER_TOKEN wins over the legacy TWITTER_BEARER_TOKEN.
// A .env file loaded at startup feeds this store too.
type EnvironmentStore struct{}

// NewEnvironmentStore creates a new environment-based credential store
func NewEnvironmentStore() *EnvironmentStore {
	return &EnvironmentStore{}
}

// Store is not supported for environment variables
func (e *EnvironmentStore) Store(creds *Credentials) error {
	return ErrStoreUnavailable
}

// Retrieve gets the bearer token from environment variables
func (e *EnvironmentStore) Retrieve(label string) (*Credentials, error) {
	token := envBearerToken()
	if token == "" {
		return nil, ErrCredentialsNotFound
	}

	// Environment variables don't store a label
	if label == "" {
		label = "default"
	}

	return &Credentials{
		Label:        label,
		BearerToken:  token,
		LastModified: time.Now(),
	}, nil
}

// Delete is not supported for environment variables
func (e *EnvironmentStore) Delete(label string) error {
	return ErrStoreUnavailable
}

// Exists checks if an environment token is set
func (e *EnvironmentStore) Exists(label string) bool {
	return envBearerToken() != ""
}

func envBearerToken() string {
	if token := os.Getenv("X_BEARER_TOKEN"); token != "" {
		return token
	}
	return os.Getenv("TWITTER_BEARER_TOKEN")
}
