package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates active user with hashed password", func(t *testing.T) {
		user, err := NewUser("Maria", "maria@example.com", "secret123")
		require.NoError(t, err)

		assert.Equal(t, "maria", user.Username)
		assert.Equal(t, "maria@example.com", user.Email)
		assert.Equal(t, UserStatusActive, user.Status)
		assert.NotEqual(t, "secret123", user.PasswordHash)
		assert.True(t, user.VerifyPassword("secret123"))
		assert.False(t, user.VerifyPassword("wrong"))
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		cases := []struct {
			name     string
			username string
			email    string
			password string
		}{
			{"short username", "ab", "a@b.com", "secret123"},
			{"bad characters", "user name", "a@b.com", "secret123"},
			{"empty email", "maria", "", "secret123"},
			{"bad email", "maria", "not-an-email", "secret123"},
			{"short password", "maria", "a@b.com", "abc1"},
			{"password without digit", "maria", "a@b.com", "onlyletters"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := NewUser(tc.username, tc.email, tc.password)
				assert.Error(t, err)
			})
		}
	})
}

func TestUserSetPassword(t *testing.T) {
	user, err := NewUser("maria", "maria@example.com", "secret123")
	require.NoError(t, err)

	require.NoError(t, user.SetPassword("newsecret9"))
	assert.True(t, user.VerifyPassword("newsecret9"))
	assert.False(t, user.VerifyPassword("secret123"))

	assert.Error(t, user.SetPassword("short"))
}

func TestUserBindChat(t *testing.T) {
	user, err := NewUser("maria", "maria@example.com", "secret123")
	require.NoError(t, err)
	require.Nil(t, user.ChatID)

	user.BindChat(123456789)
	require.NotNil(t, user.ChatID)
	assert.Equal(t, int64(123456789), *user.ChatID)
}

func TestUserDeactivate(t *testing.T) {
	user, err := NewUser("maria", "maria@example.com", "secret123")
	require.NoError(t, err)

	require.NoError(t, user.Deactivate())
	assert.False(t, user.CanLogin())
	assert.Error(t, user.Deactivate())
}
