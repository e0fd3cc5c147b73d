package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrUnauthorized covers every verification failure: bad signature, malformed
// payload, missing claims, expiry. Callers get a single 401 bucket.
var ErrUnauthorized = errors.New("could not validate credentials")

const DefaultTTL = time.Hour

// Service issues and verifies HS256 bearer tokens. The secret is injected at
// startup and never mutated.
type Service struct {
	Secret []byte
	TTL    time.Duration
}

func New(secret []byte) *Service {
	return &Service{Secret: secret, TTL: DefaultTTL}
}

func (s *Service) Issue(userID uint, email string) (string, error) {
	exp := time.Now().Add(s.TTL)
	claims := jwt.MapClaims{
		"sub": email,
		"id":  userID,
		"exp": exp.Unix(),
		"jti": uuid.NewString(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.Secret)
}

// Verify returns the subject user id. It is a pure function of the token and
// the current time; no storage lookup happens here.
func (s *Service) Verify(raw string) (uint, error) {
	t, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.Secret, nil
	})
	if err != nil || !t.Valid {
		return 0, ErrUnauthorized
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrUnauthorized
	}
	idRaw, ok := claims["id"].(float64)
	if !ok {
		return 0, ErrUnauthorized
	}

	return uint(idRaw), nil
}
