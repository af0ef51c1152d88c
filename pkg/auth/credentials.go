package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Credentials holds one stored bearer token. Label distinguishes
// multiple tokens (e.g. different developer apps); "default" is used
// when the caller doesn't care.
type Credentials struct {
	Label        string    `json:"label"`
	BearerToken  string    `json:"bearer_token"`
	LastModified time.Time `json:"last_modified"`
}

var (
	// ErrCredentialsNotFound is returned when no token is stored
	ErrCredentialsNotFound = errors.New("credentials not found")

	// ErrInvalidCredentials is returned for empty or malformed credentials
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrStoreUnavailable is returned when a store cannot be used
	ErrStoreUnavailable = errors.New("credential store unavailable")
)

// CredentialStore is the interface for storing and retrieving tokens
type CredentialStore interface {
	// Store saves credentials under their label
	Store(creds *Credentials) error

	// Retrieve gets credentials for a specific label
	Retrieve(label string) (*Credentials, error)

	// Delete removes credentials for a specific label
	Delete(label string) error

	// Exists checks if credentials exist for a label
	Exists(label string) bool
}

// Manager handles credential storage with fallback mechanisms
type Manager struct {
	stores []CredentialStore
}

// NewManager creates a credential manager with the available storage
// backends: system keyring first, encrypted file as fallback,
// environment variables as last resort.
func NewManager() (*Manager, error) {
	var stores []CredentialStore

	keyringStore, err := NewKeyringStore()
	if err == nil {
		stores = append(stores, keyringStore)
	}

	configDir, err := getConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}

	encryptedStore, err := NewEncryptedFileStore(filepath.Join(configDir, "credentials.enc"))
	if err != nil {
		return nil, fmt.Errorf("failed to create encrypted store: %w", err)
	}
	stores = append(stores, encryptedStore)

	stores = append(stores, NewEnvironmentStore())

	return &Manager{stores: stores}, nil
}

// NewManagerWithStores creates a manager over an explicit store chain.
func NewManagerWithStores(stores ...CredentialStore) *Manager {
	return &Manager{stores: stores}
}

// Store saves credentials using the first store that accepts them.
func (m *Manager) Store(creds *Credentials) error {
	if creds == nil || creds.BearerToken == "" {
		return ErrInvalidCredentials
	}
	if creds.Label == "" {
		creds.Label = "default"
	}
	creds.LastModified = time.Now()

	var lastErr error
	for _, store := range m.stores {
		if err := store.Store(creds); err == nil {
			return nil
		} else if !errors.Is(err, ErrStoreUnavailable) {
			lastErr = err
		}
	}
	if lastErr != nil {
		return fmt.Errorf("failed to store credentials: %w", lastErr)
	}
	return ErrStoreUnavailable
}

// Retrieve returns the first credentials found across the store chain.
func (m *Manager) Retrieve(label string) (*Credentials, error) {
	if label == "" {
		label = "default"
	}
	for _, store := range m.stores {
		creds, err := store.Retrieve(label)
		if err == nil && creds != nil && creds.BearerToken != "" {
			return creds, nil
		}
	}
	return nil, ErrCredentialsNotFound
}

// Delete removes credentials from every store that has them.
func (m *Manager) Delete(label string) error {
	if label == "" {
		label = "default"
	}
	deleted := false
	for _, store := range m.stores {
		if store.Exists(label) {
			if err := store.Delete(label); err == nil {
				deleted = true
			}
		}
	}
	if !deleted {
		return ErrCredentialsNotFound
	}
	return nil
}

// Exists checks whether any store holds credentials for label.
func (m *Manager) Exists(label string) bool {
	if label == "" {
		label = "default"
	}
	for _, store := range m.stores {
		if store.Exists(label) {
			return true
		}
	}
	return false
}

// getConfigDir returns the platform config directory for the tool.
func getConfigDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		baseDir = os.Getenv("APPDATA")
		if baseDir == "" {
			return "", errors.New("APPDATA environment variable not set")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(home, "Library", "Application Support")
	default:
		baseDir = os.Getenv("XDG_CONFIG_HOME")
		if baseDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(home, ".config")
		}
	}

	configDir := filepath.Join(baseDir, "xsearch")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}
