// Package auth provides JWT token issuance/verification, bcrypt password
// hashing, and the bearer-token middleware for the bloglist API.
//
// AUTHENTICATION FLOW:
//  1. POST /api/login with username+password → server verifies the bcrypt
//     hash and issues a signed JWT carrying the user's id and username
//  2. The client sends `Authorization: Bearer <token>` on later requests
//  3. The Extractor middleware verifies the token, loads the user, and puts
//     it in the request context — handlers that need identity read it there
//
// The token is stateless: the signature alone proves it was issued by this
// server, no session store needed. HS256 (HMAC-SHA256) with a shared secret.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long an issued token stays valid.
//
// Tokens expire after an hour; the client logs in again to get a fresh one.
// This is a deliberate hardening over issuing non-expiring tokens — a leaked
// token is only useful for a bounded window.
const TokenTTL = time.Hour

const issuer = "bloglist"

// ErrInvalidToken is returned by Verify for any token that fails
// verification: bad signature, expired, malformed, wrong algorithm, or
// missing the user id claim. Callers treat all of these the same (401).
var ErrInvalidToken = errors.New("auth: invalid token")

// TokenService signs and verifies JWTs with an HMAC secret.
// The same secret must be used for both operations.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given secret.
// Short secrets are rejected outright — an HMAC key shorter than 16 bytes is
// guessable and would silently undermine every token issued.
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims is the JWT payload. The user id rides in the registered "sub"
// claim; the username is a custom claim so clients can display who they're
// logged in as without an extra lookup.
type claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Identity is what a verified token resolves to.
type Identity struct {
	UserID   string
	Username string
}

// Issue creates and signs a token for the given user, valid for TokenTTL.
func (s *TokenService) Issue(userID, username string) (string, error) {
	return s.IssueWithDuration(userID, username, TokenTTL)
}

// IssueWithDuration creates a token with a custom lifetime. Used by tests to
// produce already-expired tokens.
func (s *TokenService) IssueWithDuration(userID, username string, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Verify parses and verifies a JWT string and returns the identity it
// encodes.
//
// The jwt library checks the signature, expiry, and issuer. We additionally
// pin the algorithm to HS256 — without jwt.WithValidMethods an attacker
// could attempt an algorithm-confusion downgrade. A token whose "sub" claim
// is empty is rejected even if the signature is fine.
func (s *TokenService) Verify(tokenStr string) (Identity, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, fmt.Errorf("%w: expired", ErrInvalidToken)
		}
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return Identity{}, fmt.Errorf("%w: bad claims", ErrInvalidToken)
	}

	if c.Subject == "" {
		return Identity{}, fmt.Errorf("%w: missing user id", ErrInvalidToken)
	}

	return Identity{UserID: c.Subject, Username: c.Username}, nil
}
