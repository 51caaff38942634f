package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValidToken(t *testing.T) {
	p := NewParser("s3cret")
	token, err := p.Sign("landlord-1", "Anna", jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	require.NoError(t, err)

	principal, err := p.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "landlord-1", principal.Subject)
	assert.Equal(t, "Anna", principal.Name)
	assert.False(t, principal.IsAnonymous())
}

func TestParseRejects(t *testing.T) {
	p := NewParser("s3cret")

	expired, err := p.Sign("landlord-1", "", jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})
	require.NoError(t, err)

	foreign, err := NewParser("other").Sign("landlord-1", "", jwt.RegisteredClaims{})
	require.NoError(t, err)

	noSubject, err := p.Sign("", "", jwt.RegisteredClaims{})
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":    expired,
		"foreign":    foreign,
		"no subject": noSubject,
		"garbage":    "not-a-token",
	} {
		_, err := p.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken, name)
	}
}

func TestEnabled(t *testing.T) {
	assert.False(t, NewParser("").Enabled())
	assert.True(t, NewParser("x").Enabled())
}
