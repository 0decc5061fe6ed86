package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJWTStrategyRoundTrip(t *testing.T) {
	s := NewJWTStrategy("secret", AudienceAuth, time.Hour)
	token, err := s.Issue(42, Claims{Email: "a@b.c"})
	require.NoError(t, err)

	claims, err := s.Parse(token)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	require.Equal(t, uint(42), id)
	require.Equal(t, "a@b.c", claims.Email)
	require.NotEmpty(t, claims.ID)
}

func TestJWTStrategyRejectsOtherAudience(t *testing.T) {
	reset := NewJWTStrategy("secret", AudienceReset, time.Hour)
	token, err := reset.Issue(1, Claims{})
	require.NoError(t, err)

	access := NewJWTStrategy("secret", AudienceAuth, time.Hour)
	_, err = access.Parse(token)
	require.True(t, errors.Is(err, ErrInvalidToken))
}

func TestJWTStrategyRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTStrategy("one", AudienceAuth, time.Hour).Issue(1, Claims{})
	require.NoError(t, err)
	_, err = NewJWTStrategy("two", AudienceAuth, time.Hour).Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTStrategyExpired(t *testing.T) {
	s := NewJWTStrategy("secret", AudienceAuth, time.Minute)
	s.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := s.Issue(1, Claims{})
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseEmptyToken(t *testing.T) {
	_, err := NewJWTStrategy("secret", AudienceAuth, time.Hour).Parse("")
	require.ErrorIs(t, err, ErrInvalidToken)
}
