package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := New("test-secret", time.Hour)

	token, err := svc.GenerateToken(42, "tailor@example.com", "tailor")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "tailor@example.com", claims.Email)
	assert.Equal(t, "tailor", claims.Role)
}

func TestValidateToken_Rejects(t *testing.T) {
	svc := New("test-secret", time.Hour)

	other, err := New("other-secret", time.Hour).GenerateToken(1, "a@b.c", "admin")
	require.NoError(t, err)
	_, err = svc.ValidateToken(other)
	assert.ErrorIs(t, err, ErrInvalidToken)

	past := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, Claims{
		UserID: 1,
		Role:   "admin",
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	signed, err := past.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, Claims{UserID: 1})
	unsigned, err := none.SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.ValidateToken(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearer(t *testing.T) {
	token, err := ExtractBearer("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	_, err = ExtractBearer("")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = ExtractBearer("Basic dGVzdA==")
	assert.ErrorIs(t, err, ErrMalformedHeader)

	_, err = ExtractBearer("Bearer   ")
	assert.ErrorIs(t, err, ErrMalformedHeader)
}
