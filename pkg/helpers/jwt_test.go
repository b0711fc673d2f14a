package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager() *JWTManager {
	return NewJWTManager("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
}

func TestJWTRoundTrip(t *testing.T) {
	m := testManager()

	token, exp, err := m.GenerateAccessToken(42, "a@x.com")
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, err := m.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)

	uid, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), uid)
}

func TestJWTSecretsAreSeparate(t *testing.T) {
	m := testManager()

	access, _, err := m.GenerateAccessToken(1, "a@x.com")
	require.NoError(t, err)
	refresh, _, err := m.GenerateRefreshToken(1, "a@x.com")
	require.NoError(t, err)

	_, err = m.ParseRefreshToken(access)
	assert.Error(t, err, "access token must not validate as refresh token")
	_, err = m.ParseAccessToken(refresh)
	assert.Error(t, err, "refresh token must not validate as access token")
}

func TestJWTExpired(t *testing.T) {
	m := NewJWTManager("s1", "s2", -time.Minute, -time.Minute)
	token, _, err := m.GenerateAccessToken(1, "a@x.com")
	require.NoError(t, err)

	_, err = m.ParseAccessToken(token)
	assert.Error(t, err)
}

func TestJWTTampered(t *testing.T) {
	m := testManager()
	other := NewJWTManager("different", "different", time.Minute, time.Minute)

	token, _, err := other.GenerateAccessToken(1, "a@x.com")
	require.NoError(t, err)

	_, err = m.ParseAccessToken(token)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("sup3rsecret")
	require.NoError(t, err)
	assert.NotEqual(t, "sup3rsecret", hash)

	assert.True(t, CompareHashAndPassword(hash, "sup3rsecret"))
	assert.False(t, CompareHashAndPassword(hash, "wrong"))
}
