//go:build unit

package user_test

import (
	"testing"

	"ticketgo/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	email, err := user.NewEmail("test@example.com")
	require.NoError(t, err)

	u := user.NewUser(email, "hashed_password", "Tinashe Moyo", "+263771234567", user.RoleTraveller)
	require.NotNil(t, u)

	assert.NotEqual(t, uuid.Nil, u.ID())
	assert.Equal(t, "test@example.com", u.Email().Value())
	assert.Equal(t, "hashed_password", u.PasswordHash())
	assert.Equal(t, "Tinashe Moyo", u.FullName())
	assert.Equal(t, user.RoleTraveller, u.Role())
	assert.True(t, u.IsActive())
	assert.Nil(t, u.LastLogin())
}

func TestNewEmail(t *testing.T) {
	tests := []struct {
		name  string
		value string
		errIs error
	}{
		{name: "valid", value: "valid@example.com"},
		{name: "subdomain", value: "user@mail.example.co.zw"},
		{name: "trims whitespace", value: "  padded@example.com  "},
		{name: "empty", value: "", errIs: user.ErrInvalidEmail},
		{name: "no at sign", value: "invalidemail.com", errIs: user.ErrInvalidEmail},
		{name: "no domain", value: "user@", errIs: user.ErrInvalidEmail},
		{name: "no tld", value: "user@example", errIs: user.ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := user.NewEmail(tt.value)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewPassword(t *testing.T) {
	_, err := user.NewPassword("12345678")
	assert.NoError(t, err)

	_, err = user.NewPassword("1234567")
	assert.ErrorIs(t, err, user.ErrPasswordTooWeak)
}

func TestNewCredentials(t *testing.T) {
	creds, err := user.NewCredentials("test@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", creds.Email().Value())
	assert.Equal(t, "password123", creds.Password().Value())

	_, err = user.NewCredentials("bad-email", "password123")
	assert.ErrorIs(t, err, user.ErrInvalidEmail)

	_, err = user.NewCredentials("test@example.com", "short")
	assert.ErrorIs(t, err, user.ErrPasswordTooWeak)
}

func TestNewRole(t *testing.T) {
	for _, valid := range []string{"traveller", "admin"} {
		r, err := user.NewRole(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, r.String())
	}

	_, err := user.NewRole("superuser")
	assert.ErrorIs(t, err, user.ErrInvalidRole)
}
