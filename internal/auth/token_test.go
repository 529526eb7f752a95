package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"towerup-backend/internal/models"
)

func testAdmin() models.AdminUser {
	admin := models.AdminUser{Email: "admin@towerup.kz", Name: "Айгерим"}
	admin.ID = uuid.New()
	return admin
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	admin := testAdmin()

	token, expiresAt, err := svc.Issue(admin)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID.String(), claims.Subject)
	assert.Equal(t, "admin@towerup.kz", claims.Email)
	assert.Equal(t, "Айгерим", claims.Name)
}

func TestTokenExpired(t *testing.T) {
	svc := NewTokenService("test-secret", time.Minute)
	issuedAt := time.Now().Add(-2 * time.Hour)
	svc.now = func() time.Time { return issuedAt }

	token, _, err := svc.Issue(testAdmin())
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenWrongSecret(t *testing.T) {
	token, _, err := NewTokenService("secret-a", time.Hour).Issue(testAdmin())
	require.NoError(t, err)

	_, err = NewTokenService("secret-b", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{
		Email: "admin@towerup.kz",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenService("test-secret", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cure-passw0rd")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cure-passw0rd", hash)
	assert.True(t, CheckPassword(hash, "s3cure-passw0rd"))
	assert.False(t, CheckPassword(hash, "wrong-password"))

	_, err = HashPassword("short")
	assert.ErrorIs(t, err, ErrWeakPassword)
}
