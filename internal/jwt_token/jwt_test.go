package jwttoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "vendorscreen/pkg/domain-errors"
)

func TestActorTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-signing-key")

	token, err := svc.GenerateActorToken("analyst@example.com", time.Now(), time.Hour)
	require.NoError(t, err)

	actor, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "analyst@example.com", actor)
}

func TestValidateTokenRejects(t *testing.T) {
	svc := NewJWTService("test-signing-key")

	t.Run("expired", func(t *testing.T) {
		token, err := svc.GenerateActorToken("analyst", time.Now().Add(-2*time.Hour), time.Hour)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
		assert.Equal(t, "token has expired", dErrors.MessageOf(err))
	})

	t.Run("wrong key", func(t *testing.T) {
		token, err := NewJWTService("other-key").GenerateActorToken("analyst", time.Now(), time.Hour)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}

func TestGenerateActorTokenRequiresActor(t *testing.T) {
	_, err := NewJWTService("k").GenerateActorToken("  ", time.Now(), time.Hour)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}
