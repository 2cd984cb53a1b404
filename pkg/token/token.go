// Package token issues and verifies the signed bearer credentials handed out
// at login. Tokens are self-contained HS256 JWTs: verification needs only the
// process-wide signing secret, no store lookup. There is no revocation list;
// a token stays valid until its embedded expiry, and rotating the secret
// invalidates everything outstanding.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/farmapp/pharmacy-pos/internal/core/domain"
)

var (
	ErrExpired          = errors.New("token expired")
	ErrMalformed        = errors.New("token malformed")
	ErrSignatureInvalid = errors.New("token signature invalid")
)

// Claims is the decoded payload of a bearer token.
type Claims struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Identity converts the claims back into the domain snapshot.
func (c *Claims) Identity() domain.Identity {
	return domain.Identity{
		UserID:   c.UserID,
		Username: c.Username,
		FullName: c.FullName,
		Role:     c.Role,
	}
}

// Issuer signs and verifies tokens with a shared secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	// now is swapped in tests to pin the clock.
	now func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue mints a signed token for the given identity, expiring after the
// issuer's TTL.
func (i *Issuer) Issue(id domain.Identity) (string, error) {
	now := i.now().UTC()
	claims := &Claims{
		UserID:   id.UserID,
		Username: id.Username,
		FullName: id.FullName,
		Role:     id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Verify parses and validates a raw token string. A token whose expiry equals
// the current instant is already expired.
func (i *Issuer) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrSignatureInvalid
		default:
			return nil, ErrMalformed
		}
	}
	if !tkn.Valid {
		return nil, ErrSignatureInvalid
	}
	// The boundary instant counts as expired.
	if claims.ExpiresAt != nil && !i.now().Before(claims.ExpiresAt.Time) {
		return nil, ErrExpired
	}
	return claims, nil
}
