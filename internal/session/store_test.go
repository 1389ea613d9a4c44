package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret"

func Test_Store_Register(t *testing.T) {
	store := NewStore(testSecret, time.Hour)

	profile, err := store.Register("Ada", "ada@example.com", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, profile.ID)
	assert.Equal(t, "Ada", profile.Name)
	assert.Equal(t, "ada@example.com", profile.Email)

	_, err = store.Register("Ada Again", "ada@example.com", "other password")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func Test_Store_SignIn(t *testing.T) {
	store := NewStore(testSecret, time.Hour)
	_, err := store.Register("Ada", "ada@example.com", "correct horse")
	require.NoError(t, err)

	testCases := []struct {
		name        string
		email       string
		password    string
		expectError error
	}{
		{name: "valid credentials", email: "ada@example.com", password: "correct horse"},
		{name: "wrong password", email: "ada@example.com", password: "battery staple", expectError: ErrInvalidCredentials},
		{name: "unknown email", email: "bob@example.com", password: "correct horse", expectError: ErrInvalidCredentials},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := store.SignIn(tc.email, tc.password)
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, token)
		})
	}
}

func Test_Store_Verify(t *testing.T) {
	store := NewStore(testSecret, time.Hour)
	registered, err := store.Register("Ada", "ada@example.com", "correct horse")
	require.NoError(t, err)
	token, err := store.SignIn("ada@example.com", "correct horse")
	require.NoError(t, err)

	profile, err := store.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, profile.ID)
	assert.Equal(t, "ada@example.com", profile.Email)
}

func Test_Store_Verify_Rejections(t *testing.T) {
	store := NewStore(testSecret, time.Hour)
	_, err := store.Register("Ada", "ada@example.com", "correct horse")
	require.NoError(t, err)

	t.Run("malformed token", func(t *testing.T) {
		_, err := store.Verify("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := NewStore("other-secret", time.Hour)
		_, err := other.Register("Ada", "ada@example.com", "correct horse")
		require.NoError(t, err)
		token, err := other.SignIn("ada@example.com", "correct horse")
		require.NoError(t, err)

		_, err = store.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewStore(testSecret, -time.Minute)
		_, err := expired.Register("Eve", "eve@example.com", "correct horse")
		require.NoError(t, err)
		token, err := expired.SignIn("eve@example.com", "correct horse")
		require.NoError(t, err)

		_, err = expired.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
