package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheTTL(t *testing.T) {
	assert.Equal(t, 3600*time.Second, cacheTTL("public, max-age=3600, must-revalidate"))
	assert.Equal(t, time.Hour, cacheTTL(""))
	assert.Equal(t, time.Hour, cacheTTL("no-store"))
	assert.Equal(t, time.Hour, cacheTTL("max-age=0"))
}

func TestVerifyRejectsMalformedTokens(t *testing.T) {
	v := NewFirebaseVerifier("demo-project")

	_, err := v.Verify(context.Background(), "")
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = v.Verify(context.Background(), "not.a.jwt")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseCertPublicKey(t *testing.T) {
	_, err := parseCertPublicKey("garbage")
	require.Error(t, err)

	_, err = parseCertPublicKey("-----BEGIN CERTIFICATE-----\naW52YWxpZA==\n-----END CERTIFICATE-----")
	require.Error(t, err)
}
