package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/ErlanBelekov/easydev/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultIssuer  = "easydev"
	MinSecretBytes = 32

	defaultTTL = 7 * 24 * time.Hour
)

var ErrWeakSecret = fmt.Errorf("signing secret must be at least %d bytes", MinSecretBytes)

type CodecConfig struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
	Clock  func() time.Time
}

// Codec issues and verifies HS256 credentials whose subject is a user ID.
type Codec struct {
	secret []byte
	issuer string
	ttl    time.Duration
	clock  func() time.Time
}

// NewCodec refuses an empty or short secret; there is no default signing key.
func NewCodec(cfg CodecConfig) (*Codec, error) {
	if len(cfg.Secret) < MinSecretBytes {
		return nil, ErrWeakSecret
	}
	c := &Codec{
		secret: cfg.Secret,
		issuer: cfg.Issuer,
		ttl:    cfg.TTL,
		clock:  cfg.Clock,
	}
	if c.issuer == "" {
		c.issuer = DefaultIssuer
	}
	if c.ttl <= 0 {
		c.ttl = defaultTTL
	}
	if c.clock == nil {
		c.clock = time.Now
	}
	return c, nil
}

// Issue signs a credential for userID and returns it with its expiry.
func (c *Codec) Issue(userID string) (string, time.Time, error) {
	if userID == "" {
		return "", time.Time{}, errors.New("issue token: empty subject")
	}

	now := c.clock().UTC()
	expiresAt := now.Add(c.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    c.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign jwt: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify returns the subject of a valid credential. Every failure matches
// domain.ErrTokenInvalid; an expired one also matches domain.ErrTokenExpired.
func (c *Codec) Verify(raw string) (string, error) {
	if raw == "" {
		return "", domain.ErrTokenMissing
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (any, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, fmt.Errorf("unexpected signing algorithm: %s", t.Method.Alg())
			}
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.clock),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%w: %w", domain.ErrTokenInvalid, domain.ErrTokenExpired)
		}
		return "", fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", domain.ErrTokenInvalid)
	}
	return claims.Subject, nil
}
