package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const CookieName = "ef_session"

var ErrInvalid = errors.New("session: invalid token")

// Signer issues and checks the cookie that carries the opaque session id.
// The backend token never leaves the server; only the id does.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSigner(secret string, ttl time.Duration) *Signer {
	return &Signer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *Signer) TTL() time.Duration {
	return s.ttl
}

// New starts a fresh session and returns its id and signed cookie value.
func (s *Signer) New() (string, string, error) {
	id := uuid.NewString()
	signed, err := s.Sign(id)
	return id, signed, err
}

func (s *Signer) Sign(sessionID string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		ID:        sessionID,
		Issuer:    "exactfit-web",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Signer) Parse(raw string) (string, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithIssuer("exactfit-web"))
	if err != nil || !token.Valid {
		return "", ErrInvalid
	}
	if _, err := uuid.Parse(claims.ID); err != nil {
		return "", ErrInvalid
	}
	return claims.ID, nil
}
