package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerStoreAndRetrieve(t *testing.T) {
	store := NewMockStore()
	manager := NewManagerWithStores(store)

	err := manager.Store(&Credentials{BearerToken: "AAAA-token"})
	require.NoError(t, err)

	creds, err := manager.Retrieve("")
	require.NoError(t, err)
	assert.Equal(t, "default", creds.Label)
	assert.Equal(t, "AAAA-token", creds.BearerToken)
	assert.False(t, creds.LastModified.IsZero())
}

func TestManagerRejectsEmptyToken(t *testing.T) {
	manager := NewManagerWithStores(NewMockStore())

	err := manager.Store(&Credentials{BearerToken: ""})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestManagerFallsBackAcrossStores(t *testing.T) {
	unavailable := NewMockStore()
	unavailable.FailStore = true
	backing := NewMockStore()
	manager := NewManagerWithStores(unavailable, backing)

	require.NoError(t, manager.Store(&Credentials{Label: "work", BearerToken: "tok"}))

	assert.False(t, unavailable.Exists("work"))
	assert.True(t, backing.Exists("work"))

	creds, err := manager.Retrieve("work")
	require.NoError(t, err)
	assert.Equal(t, "tok", creds.BearerToken)
}

func TestManagerRetrieveNotFound(t *testing.T) {
	manager := NewManagerWithStores(NewMockStore())

	_, err := manager.Retrieve("missing")
	assert.ErrorIs(t, err, ErrCredentialsNotFound)
}

func TestManagerDelete(t *testing.T) {
	store := NewMockStore()
	manager := NewManagerWithStores(store)

	require.NoError(t, manager.Store(&Credentials{Label: "default", BearerToken: "tok"}))
	require.NoError(t, manager.Delete("default"))
	assert.False(t, manager.Exists("default"))

	assert.ErrorIs(t, manager.Delete("default"), ErrCredentialsNotFound)
}

func TestEnvironmentStore(t *testing.T) {
	t.Run("primary variable", func(t *testing.T) {
		t.Setenv("X_BEARER_TOKEN", "primary")
		t.Setenv("TWITTER_BEARER_TOKEN", "legacy")

		store := NewEnvironmentStore()
		creds, err := store.Retrieve("")
		require.NoError(t, err)
		assert.Equal(t, "primary", creds.BearerToken)
		assert.True(t, store.Exists(""))
	})

	t.Run("legacy fallback", func(t *testing.T) {
		t.Setenv("X_BEARER_TOKEN", "")
		t.Setenv("TWITTER_BEARER_TOKEN", "legacy")

		store := NewEnvironmentStore()
		creds, err := store.Retrieve("")
		require.NoError(t, err)
		assert.Equal(t, "legacy", creds.BearerToken)
	})

	t.Run("absent", func(t *testing.T) {
		t.Setenv("X_BEARER_TOKEN", "")
		t.Setenv("TWITTER_BEARER_TOKEN", "")

		store := NewEnvironmentStore()
		_, err := store.Retrieve("")
		assert.ErrorIs(t, err, ErrCredentialsNotFound)
		assert.False(t, store.Exists(""))
	})

	t.Run("store not supported", func(t *testing.T) {
		store := NewEnvironmentStore()
		assert.ErrorIs(t, store.Store(&Credentials{BearerToken: "tok"}), ErrStoreUnavailable)
		assert.ErrorIs(t, store.Delete("default"), ErrStoreUnavailable)
	})
}

func TestEncryptedFileStoreRoundTrip(t *testing.T) {
	t.Setenv("XSEARCH_PASSPHRASE", "test-passphrase")
	dir := t.TempDir()

	store, err := NewEncryptedFileStore(dir + "/credentials.enc")
	require.NoError(t, err)

	require.NoError(t, store.Store(&Credentials{Label: "default", BearerToken: "secret-token"}))

	creds, err := store.Retrieve("default")
	require.NoError(t, err)
	assert.Equal(t, "secret-token", creds.BearerToken)

	// a fresh store over the same file decrypts it
	reopened, err := NewEncryptedFileStore(dir + "/credentials.enc")
	require.NoError(t, err)
	creds, err = reopened.Retrieve("default")
	require.NoError(t, err)
	assert.Equal(t, "secret-token", creds.BearerToken)

	require.NoError(t, store.Delete("default"))
	_, err = store.Retrieve("default")
	assert.ErrorIs(t, err, ErrCredentialsNotFound)
}

func TestEncryptedFileStoreWrongPassphrase(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("XSEARCH_PASSPHRASE", "right")
	store, err := NewEncryptedFileStore(dir + "/credentials.enc")
	require.NoError(t, err)
	require.NoError(t, store.Store(&Credentials{Label: "default", BearerToken: "secret"}))

	t.Setenv("XSEARCH_PASSPHRASE", "wrong")
	other, err := NewEncryptedFileStore(dir + "/credentials.enc")
	require.NoError(t, err)
	_, err = other.Retrieve("default")
	assert.Error(t, err)
}
