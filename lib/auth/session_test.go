package auth

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_FileSessionStore_RoundTrip(t *testing.T) {
	//Arrange
	store := &FileSessionStore{Path: filepath.Join(t.TempDir(), "nested", "session.json")}
	session := &Session{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC),
		Username:     "inspector",
	}

	//Act
	require.NoError(t, store.Save(session))
	loaded, err := store.Load()

	//Assert
	require.NoError(t, err)
	assert.Equal(t, session.AccessToken, loaded.AccessToken)
	assert.Equal(t, session.RefreshToken, loaded.RefreshToken)
	assert.True(t, session.ExpiresAt.Equal(loaded.ExpiresAt))

	info, err := os.Stat(store.Path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func Test_FileSessionStore_MissingFile(t *testing.T) {
	store := &FileSessionStore{Path: filepath.Join(t.TempDir(), "session.json")}

	session, err := store.Load()

	assert.NoError(t, err)
	assert.Nil(t, session)
}

func Test_FileSessionStore_Clear(t *testing.T) {
	store := &FileSessionStore{Path: filepath.Join(t.TempDir(), "session.json")}
	require.NoError(t, store.Save(&Session{AccessToken: "a"}))

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	session, err := store.Load()

	assert.NoError(t, err)
	assert.Nil(t, session)
}

func Test_FileSessionStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

	_, err := (&FileSessionStore{Path: path}).Load()

	assert.Error(t, err)
}
