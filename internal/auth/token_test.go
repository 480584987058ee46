package auth_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ErlanBelekov/easydev/internal/auth"
	"github.com/ErlanBelekov/easydev/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("auth-test-secret-at-least-32-bytes!!")

func newCodec(t *testing.T, clock func() time.Time) *auth.Codec {
	t.Helper()
	c, err := auth.NewCodec(auth.CodecConfig{Secret: testSecret, TTL: time.Hour, Clock: clock})
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return c
}

func TestNewCodec_RejectsWeakSecret(t *testing.T) {
	for _, secret := range [][]byte{nil, []byte("short")} {
		if _, err := auth.NewCodec(auth.CodecConfig{Secret: secret}); !errors.Is(err, auth.ErrWeakSecret) {
			t.Errorf("NewCodec(%q) error = %v, want ErrWeakSecret", secret, err)
		}
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c := newCodec(t, func() time.Time { return now })

	token, expiresAt, err := c.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if !expiresAt.Equal(now.Add(time.Hour)) {
		t.Errorf("expiresAt = %v, want %v", expiresAt, now.Add(time.Hour))
	}

	sub, err := c.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if sub != "user-1" {
		t.Errorf("subject = %q, want user-1", sub)
	}
}

func TestCodec_Expired(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer := newCodec(t, func() time.Time { return now })
	token, _, err := issuer.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	later := newCodec(t, func() time.Time { return now.Add(2 * time.Hour) })
	_, err = later.Verify(token)
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("err = %v, want ErrTokenExpired", err)
	}
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("err = %v, want it to match ErrTokenInvalid", err)
	}
}

func TestCodec_TamperedSignature(t *testing.T) {
	c := newCodec(t, nil)
	token, _, err := c.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	parts := strings.Split(token, ".")
	parts[2] = strings.Repeat("A", len(parts[2]))
	if _, err := c.Verify(strings.Join(parts, ".")); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestCodec_OtherSecret(t *testing.T) {
	other, err := auth.NewCodec(auth.CodecConfig{Secret: []byte("another-secret-that-is-32-bytes-long")})
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	token, _, err := other.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := newCodec(t, nil).Verify(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestCodec_RejectsNoneAlgorithm(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		Issuer:    auth.DefaultIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := newCodec(t, nil).Verify(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestCodec_WrongIssuer(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		Issuer:    "someone-else",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := newCodec(t, nil).Verify(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestCodec_MissingSubject(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Issuer:    auth.DefaultIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := newCodec(t, nil).Verify(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestCodec_Garbage(t *testing.T) {
	c := newCodec(t, nil)
	if _, err := c.Verify("not.a.jwt"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
	if _, err := c.Verify(""); !errors.Is(err, domain.ErrTokenMissing) {
		t.Errorf("err = %v, want ErrTokenMissing", err)
	}
}
