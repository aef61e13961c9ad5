package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/nhfg-leads/internal/entity"
)

var testKey = SigningKey("test-signing-key")

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func testUser() *entity.User {
	return &entity.User{
		ID:    "6f1c2a8e-0d7b-4c1e-9a57-1f0f6b3e2d11",
		Name:  "Jane Advisor",
		Email: "a@b.com",
		Role:  entity.RoleAdvisor,
	}
}

func TestIssueThenVerifyRoundTrip(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	issuer := NewIssuer(testKey)
	issuer.now = fixedClock(issuedAt)
	verifier := NewVerifier(testKey)
	verifier.now = fixedClock(issuedAt.Add(time.Hour))

	user := testUser()
	token, expiresAt, err := issuer.Issue(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, issuedAt.Add(30*24*time.Hour), expiresAt)

	claims, err := verifier.Verify("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, user.Email, claims.Subject)
	assert.Equal(t, user.ID, claims.ID)
	assert.Equal(t, user.Role, claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.Time.Equal(expiresAt))
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	issuer := NewIssuer(testKey)
	issuer.now = fixedClock(issuedAt)
	token, expiresAt, err := issuer.Issue(testUser())
	require.NoError(t, err)

	cases := map[string]time.Time{
		"exactly at expiry": expiresAt,
		"one second after":  expiresAt.Add(time.Second),
		"31 days later":     issuedAt.Add(31 * 24 * time.Hour),
	}
	for name, now := range cases {
		t.Run(name, func(t *testing.T) {
			verifier := NewVerifier(testKey)
			verifier.now = fixedClock(now)

			claims, err := verifier.VerifyToken(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

func TestVerifyAcceptsTokenJustBeforeExpiry(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	issuer := NewIssuer(testKey)
	issuer.now = fixedClock(issuedAt)
	token, expiresAt, err := issuer.Issue(testUser())
	require.NoError(t, err)

	verifier := NewVerifier(testKey)
	verifier.now = fixedClock(expiresAt.Add(-time.Second))

	_, err = verifier.VerifyToken(token)
	assert.NoError(t, err)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	token, _, err := NewIssuer(SigningKey("someone-else")).Issue(testUser())
	require.NoError(t, err)

	_, err = NewVerifier(testKey).Verify("Bearer " + token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsUnsignedAndOtherAlgorithms(t *testing.T) {
	claims := Claims{
		ID:   "u1",
		Role: entity.RoleAdministrator,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "a@b.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = NewVerifier(testKey).VerifyToken(none)
	assert.ErrorIs(t, err, ErrInvalidToken)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testKey))
	require.NoError(t, err)
	_, err = NewVerifier(testKey).VerifyToken(hs512)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRequiresExpiry(t *testing.T) {
	claims := Claims{ID: "u1", Role: entity.RoleAdvisor}
	claims.Subject = "a@b.com"

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testKey))
	require.NoError(t, err)

	_, err = NewVerifier(testKey).VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"Bearer not-a-jwt", "Bearer a.b.c", "Bearer eyJhbGciOiJIUzI1NiJ9"} {
		_, err := NewVerifier(testKey).Verify(raw)
		assert.ErrorIs(t, err, ErrInvalidToken, raw)
	}
}

func TestBearerToken(t *testing.T) {
	missing := []string{"", "Bearer", "Bearer   ", "Basic dXNlcjpwYXNz", "Token abc", "abc"}
	for _, header := range missing {
		_, err := BearerToken(header)
		assert.ErrorIs(t, err, ErrMissingToken, "header %q", header)
	}

	token, err := BearerToken("bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	token, err = BearerToken("Bearer  abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
}
