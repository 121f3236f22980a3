// Package auth gates the admin surface: a pluggable credential check plus
// signed session tokens carried in a cookie.
package auth

import (
	"crypto/subtle"
	"time"

	"github.com/go-faster/errors"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidSession is returned for missing, malformed, tampered, or expired
// session tokens.
var ErrInvalidSession = errors.New("invalid session")

// Authorizer decides whether a username/password pair may access the admin
// surface. Implementations must be safe for concurrent use.
type Authorizer interface {
	Authorize(username, password string) bool
}

// StaticAuthorizer checks credentials against a single configured pair.
// Comparisons are constant-time to avoid leaking prefix matches.
type StaticAuthorizer struct {
	username []byte
	password []byte
}

// NewStaticAuthorizer creates a StaticAuthorizer for the given credentials.
func NewStaticAuthorizer(username, password string) *StaticAuthorizer {
	return &StaticAuthorizer{
		username: []byte(username),
		password: []byte(password),
	}
}

// Authorize reports whether the supplied credentials match the configured
// pair. Both comparisons always run so timing reveals nothing about which
// field was wrong.
func (a *StaticAuthorizer) Authorize(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), a.username) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), a.password) == 1
	return userOK && passOK
}

// Sessions mints and verifies HS256-signed session tokens.
type Sessions struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessions creates a session manager signing with the given secret.
// Tokens expire after ttl.
func NewSessions(secret []byte, ttl time.Duration) *Sessions {
	return &Sessions{secret: secret, ttl: ttl, now: time.Now}
}

// Issue returns a signed token identifying the given user.
func (s *Sessions) Issue(username string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign session token")
	}
	return token, nil
}

// Verify checks the token signature and expiry and returns the username it
// identifies.
func (s *Sessions) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil {
		return "", ErrInvalidSession
	}
	if claims.Subject == "" {
		return "", ErrInvalidSession
	}
	return claims.Subject, nil
}
