package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/savansr/task-management-app/internal/errs"
)

func TestTokenService_IssueVerify_RoundTrip(t *testing.T) {
	t.Parallel()
	s := NewTokenService([]byte("secret"), time.Hour)

	tok, err := s.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	id, err := s.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, int64(42), id)
}

func TestTokenService_Verify_Expired(t *testing.T) {
	t.Parallel()
	s := NewTokenService([]byte("secret"), time.Hour)

	issued := time.Now()
	s.now = func() time.Time { return issued }
	tok, err := s.Issue(7)
	require.NoError(t, err)

	// Just before expiry the token is still good.
	s.now = func() time.Time { return issued.Add(time.Hour - time.Second) }
	_, err = s.Verify(tok)
	require.NoError(t, err)

	// At and past expiry it is rejected regardless of payload validity.
	s.now = func() time.Time { return issued.Add(time.Hour + time.Second) }
	_, err = s.Verify(tok)
	require.ErrorIs(t, err, errs.ErrInvalidToken)
}

func TestTokenService_Verify_WrongKey(t *testing.T) {
	t.Parallel()
	a := NewTokenService([]byte("key-a"), time.Hour)
	b := NewTokenService([]byte("key-b"), time.Hour)

	tok, err := a.Issue(1)
	require.NoError(t, err)

	_, err = b.Verify(tok)
	require.ErrorIs(t, err, errs.ErrInvalidToken)
}

func TestTokenService_Verify_Malformed(t *testing.T) {
	t.Parallel()
	s := NewTokenService([]byte("secret"), time.Hour)

	for _, raw := range []string{"", "garbage", "a.b.c", "eyJhbGciOiJub25lIn0..something"} {
		_, err := s.Verify(raw)
		require.ErrorIs(t, err, errs.ErrInvalidToken, "raw=%q", raw)
	}
}

func TestTokenService_DefaultTTL(t *testing.T) {
	t.Parallel()
	s := NewTokenService([]byte("secret"), 0)
	require.Equal(t, DefaultTokenTTL, s.ttl)
}
