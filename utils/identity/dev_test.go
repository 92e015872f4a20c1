package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDevTokenRoundTrip(t *testing.T) {
	token, err := SignDevToken("s3cret", "uid-123", "dev@example.com", "Dev User", time.Minute)
	require.NoError(t, err)

	claims, err := NewDevVerifier("s3cret").Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "uid-123", claims.Subject)
	assert.Equal(t, "dev@example.com", claims.Email)
	assert.Equal(t, "Dev User", claims.Name)
}

func TestDevVerifierRejectsWrongSecret(t *testing.T) {
	token, err := SignDevToken("s3cret", "uid-123", "dev@example.com", "", time.Minute)
	require.NoError(t, err)

	_, err = NewDevVerifier("other").Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDevVerifierRejectsExpired(t *testing.T) {
	token, err := SignDevToken("s3cret", "uid-123", "dev@example.com", "", -time.Minute)
	require.NoError(t, err)

	_, err = NewDevVerifier("s3cret").Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDevVerifierRejectsGarbage(t *testing.T) {
	_, err := NewDevVerifier("s3cret").Verify(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
