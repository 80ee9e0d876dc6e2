package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Login(t *testing.T) {
	auth := NewAuthService("admin", "secret", "test-secret", time.Hour)

	_, err := auth.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	resp, err := auth.Login("admin", "secret")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.AdminID, "admin_"))

	claims, err := auth.ValidateAdminToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.AdminID, claims.AdminID)

	_, err = auth.ValidateRespondentToken(resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken, "admin tokens carry no session")
}

func TestAuthService_RespondentToken(t *testing.T) {
	auth := NewAuthService("admin", "secret", "test-secret", time.Hour)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	auth.now = func() time.Time { return now }

	token, err := auth.GenerateRespondentToken("session-1", "user-1")
	require.NoError(t, err)

	claims, err := auth.ValidateRespondentToken(token)
	require.NoError(t, err)
	assert.Equal(t, "session-1", claims.SessionID)
	assert.Equal(t, "user-1", claims.UserID)

	_, err = auth.ValidateAdminToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken, "respondents cannot reach admin routes")

	other := NewAuthService("admin", "secret", "another-secret", time.Hour)
	_, err = other.ValidateRespondentToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	now = now.Add(2 * time.Hour)
	_, err = auth.ValidateRespondentToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken, "token expired")

	_, err = auth.ValidateRespondentToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
