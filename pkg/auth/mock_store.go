package auth

import "sync"

// MockStore is an in-memory CredentialStore for tests.
type MockStore struct {
	mu      sync.RWMutex
	entries map[string]Credentials

	// FailStore makes Store return ErrStoreUnavailable
	FailStore bool
}

// NewMockStore creates an empty in-memory store.
func NewMockStore() *MockStore {
	return &MockStore{entries: make(map[string]Credentials)}
}

func (m *MockStore) Store(creds *Credentials) error {
	if m.FailStore {
		return ErrStoreUnavailable
	}
	if creds == nil || creds.Label == "" {
		return ErrInvalidCredentials
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[creds.Label] = *creds
	return nil
}

func (m *MockStore) Retrieve(label string) (*Credentials, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	creds, ok := m.entries[label]
	if !ok {
		return nil, ErrCredentialsNotFound
	}
	return &creds, nil
}

func (m *MockStore) Delete(label string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[label]; !ok {
		return ErrCredentialsNotFound
	}
	delete(m.entries, label)
	return nil
}

func (m *MockStore) Exists(label string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.entries[label]
	return ok
}
