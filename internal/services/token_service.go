package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token lifetimes. Session tokens back the SSID cookie; legacy tokens serve
// the persist-user rehydration flow.
const (
	SessionTokenTTL = 180 * 24 * time.Hour
	LegacyTokenTTL  = 90 * 24 * time.Hour
)

// SessionClaims are embedded in the SSID cookie token. Rotating the profile's
// session value is the revocation mechanism for previously issued tokens.
type SessionClaims struct {
	Session  string `json:"session"`
	FullName string `json:"fullName"`
	Handle   string `json:"handle"`
	jwt.RegisteredClaims
}

type LegacyClaims struct {
	Session string `json:"session"`
	Mass    string `json:"mass"`
	Club    string `json:"club"`
	jwt.RegisteredClaims
}

type TokenIssuer interface {
	SignSession(session, fullName, handle string) (string, error)
	SignLegacy(session, mass, club string) (string, error)
}

type tokenService struct {
	secret []byte
}

func NewTokenService(secret string) TokenIssuer {
	return &tokenService{secret: []byte(secret)}
}

func (t *tokenService) SignSession(session, fullName, handle string) (string, error) {
	claims := &SessionClaims{
		Session:  session,
		FullName: fullName,
		Handle:   handle,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

func (t *tokenService) SignLegacy(session, mass, club string) (string, error) {
	claims := &LegacyClaims{
		Session: session,
		Mass:    mass,
		Club:    club,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(LegacyTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}
