package auth

import (
	"errors"
	"os"
	"strings"
	"time"

	"gestion_comercial/internal/domain/entities"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token expired")
	ErrInvalidClaims = errors.New("invalid claims")
	ErrMissingJWTKey = errors.New("JWT_SECRET_KEY not configured")
)

const defaultTokenTTL = 24 * time.Hour

// ActorClaims carries the caller identity and its capability set.
type ActorClaims struct {
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	Capabilities []string `json:"capabilities"`
	jwt.RegisteredClaims
}

// TokenService signs and validates HS256 actor tokens.
type TokenService struct {
	secretKey []byte
	ttl       time.Duration
	issuer    string
}

// NewTokenServiceFromEnv reads JWT_SECRET_KEY and JWT_EXPIRATION_HOURS.
func NewTokenServiceFromEnv() (*TokenService, error) {
	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		return nil, ErrMissingJWTKey
	}
	ttl := defaultTokenTTL
	if v := os.Getenv("JWT_EXPIRATION_HOURS"); v != "" {
		if d, err := time.ParseDuration(v + "h"); err == nil && d > 0 {
			ttl = d
		}
	}
	return NewTokenService(secret, ttl), nil
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secretKey: []byte(secret), ttl: ttl, issuer: "gestion-comercial"}
}

// IssueToken signs a token for actor. Used by tooling and tests; the service
// itself only validates.
func (s *TokenService) IssueToken(actor entities.Actor, now time.Time) (string, error) {
	caps := make([]string, 0, len(actor.Capabilities))
	for _, c := range actor.Capabilities {
		caps = append(caps, string(c))
	}
	claims := ActorClaims{
		Email:        actor.Email,
		Name:         actor.Name,
		Capabilities: caps,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
}

// ValidateToken parses tokenString and resolves the actor it names.
func (s *TokenService) ValidateToken(tokenString string) (entities.Actor, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ActorClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return entities.Actor{}, ErrExpiredToken
		}
		return entities.Actor{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*ActorClaims)
	if !ok || !token.Valid || strings.TrimSpace(claims.Subject) == "" {
		return entities.Actor{}, ErrInvalidClaims
	}
	return claims.Actor(), nil
}

func (c ActorClaims) Actor() entities.Actor {
	caps := make([]entities.Capability, 0, len(c.Capabilities))
	for _, raw := range c.Capabilities {
		if v := strings.TrimSpace(raw); v != "" {
			caps = append(caps, entities.Capability(v))
		}
	}
	return entities.Actor{
		ID:           c.Subject,
		Email:        c.Email,
		Name:         c.Name,
		Capabilities: caps,
	}
}
