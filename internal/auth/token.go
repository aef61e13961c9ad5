// Package auth issues and verifies the stateless bearer tokens that gate the
// protected API routes.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/xavierca1/nhfg-leads/internal/entity"
)

// TokenTTL is fixed policy: every token lives 30 days from issuance.
const TokenTTL = 30 * 24 * time.Hour

var (
	// ErrMissingToken is returned when the Authorization header is absent or
	// does not carry a bearer credential.
	ErrMissingToken = errors.New("missing bearer token")
	// ErrInvalidToken covers undecodable tokens, bad signatures and expiry.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the identity claim set carried by a token. Subject holds the
// user's email.
type Claims struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// SigningKey is the process-wide HMAC secret shared by Issuer and Verifier.
type SigningKey []byte

// Issuer mints HS256 tokens for authenticated users.
type Issuer struct {
	key SigningKey
	ttl time.Duration
	now func() time.Time
}

func NewIssuer(key SigningKey) *Issuer {
	return &Issuer{key: key, ttl: TokenTTL, now: time.Now}
}

// Issue signs {sub=email, id, role, exp} for the user and returns the token
// with its expiry.
func (i *Issuer) Issue(user *entity.User) (string, time.Time, error) {
	now := i.now().UTC()
	expiresAt := now.Add(i.ttl)

	claims := Claims{
		ID:   user.ID,
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(i.key))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return token, expiresAt, nil
}

// Verifier validates bearer tokens against the signing key. It never touches
// the store.
type Verifier struct {
	key SigningKey
	now func() time.Time
}

func NewVerifier(key SigningKey) *Verifier {
	return &Verifier{key: key, now: time.Now}
}

// Verify takes a raw Authorization header value.
func (v *Verifier) Verify(header string) (*Claims, error) {
	token, err := BearerToken(header)
	if err != nil {
		return nil, err
	}
	return v.VerifyToken(token)
}

func (v *Verifier) VerifyToken(tokenString string) (*Claims, error) {
	claims := new(Claims)

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, ErrInvalidToken
		}
		return []byte(v.key), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// BearerToken extracts the credential from an Authorization header value.
// The scheme is matched case-insensitively.
func BearerToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrMissingToken
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}
