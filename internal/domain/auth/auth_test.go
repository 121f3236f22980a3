package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticAuthorizer(t *testing.T) {
	a := NewStaticAuthorizer("admin", "hunter2")

	assert.True(t, a.Authorize("admin", "hunter2"))
	assert.False(t, a.Authorize("admin", "wrong"))
	assert.False(t, a.Authorize("root", "hunter2"))
	assert.False(t, a.Authorize("", ""))
}

func TestSessions_RoundTrip(t *testing.T) {
	s := NewSessions([]byte("test-secret"), time.Hour)

	token, err := s.Issue("admin")
	require.NoError(t, err)

	user, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", user)
}

func TestSessions_RejectsTampered(t *testing.T) {
	s := NewSessions([]byte("test-secret"), time.Hour)

	token, err := s.Issue("admin")
	require.NoError(t, err)

	_, err = s.Verify(token + "x")
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = s.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessions_RejectsWrongSecret(t *testing.T) {
	issuer := NewSessions([]byte("secret-a"), time.Hour)
	verifier := NewSessions([]byte("secret-b"), time.Hour)

	token, err := issuer.Issue("admin")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessions_RejectsExpired(t *testing.T) {
	s := NewSessions([]byte("test-secret"), time.Minute)

	token, err := s.Issue("admin")
	require.NoError(t, err)

	// Move the verifier's clock past expiry.
	s.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = s.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}
