// Package token implements the signed-token service used for API logins.
//
// Tokens are the minimal JWT subset: a fixed HS256 header, a payload with
// user id, username, issued-at and expiry, and an HMAC-SHA256 signature
// over header.payload. There is no refresh mechanism and no key rotation;
// an expired token is re-issued via login.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Common errors returned by the token service.
var (
	// ErrInvalidToken indicates a malformed token or a signature mismatch.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired indicates the token's expiry has passed.
	ErrTokenExpired = errors.New("token expired")
)

// DefaultTTL is the lifetime of issued tokens.
const DefaultTTL = time.Hour

// Claims is the token payload.
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	IssuedAt int64  `json:"iat"`
	Expires  int64  `json:"exp"`
}

// Service issues and verifies signed tokens under a single shared secret.
type Service struct {
	secret []byte
	ttl    time.Duration

	now func() time.Time
}

// NewService creates a token service. The secret must not be empty.
func NewService(secret string) (*Service, error) {
	if secret == "" {
		return nil, fmt.Errorf("token secret is required")
	}
	return &Service{
		secret: []byte(secret),
		ttl:    DefaultTTL,
		now:    time.Now,
	}, nil
}

// Issue creates a signed token for the given user, valid for the service TTL.
func (s *Service) Issue(userID, username string) (string, error) {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))

	now := s.now().Unix()
	payload, err := json.Marshal(Claims{
		UserID:   userID,
		Username: username,
		IssuedAt: now,
		Expires:  now + int64(s.ttl/time.Second),
	})
	if err != nil {
		return "", fmt.Errorf("marshal claims: %w", err)
	}

	encodedPayload := base64.RawURLEncoding.EncodeToString(payload)
	signature := s.sign(header + "." + encodedPayload)

	return header + "." + encodedPayload + "." + signature, nil
}

// Verify checks the signature and expiry of a token and returns its claims.
// The signature must match bit-for-bit; any mutation of the token fails.
func (s *Service) Verify(tok string) (*Claims, error) {
	parts := strings.Split(tok, ".")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return nil, ErrInvalidToken
	}

	expected := s.sign(parts[0] + "." + parts[1])
	if !hmac.Equal([]byte(parts[2]), []byte(expected)) {
		return nil, ErrInvalidToken
	}

	claims, err := decodeClaims(parts[1])
	if err != nil {
		return nil, err
	}

	if claims.Expires < s.now().Unix() {
		return nil, ErrTokenExpired
	}

	return claims, nil
}

// Decode extracts the claims without verifying signature or expiry. It is
// for inspection only; authorization decisions must go through Verify.
func (s *Service) Decode(tok string) (*Claims, error) {
	parts := strings.Split(tok, ".")
	if len(parts) != 3 || parts[1] == "" {
		return nil, ErrInvalidToken
	}
	return decodeClaims(parts[1])
}

func (s *Service) sign(signingInput string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(signingInput))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func decodeClaims(encodedPayload string) (*Claims, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encodedPayload)
	if err != nil {
		return nil, ErrInvalidToken
	}

	var claims Claims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
