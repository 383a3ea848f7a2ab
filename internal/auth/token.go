package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"todo-service/internal/domain"
)

// DefaultTokenLifetime is used when neither the config nor the caller sets one.
const DefaultTokenLifetime = 30 * time.Minute

// ErrInvalidIdentity is returned when asked to issue a token without a subject.
var ErrInvalidIdentity = errors.New("identity requires a username")

// TokenConfig is read once at startup and never changed afterwards.
type TokenConfig struct {
	Secret    []byte
	Algorithm string
	Lifetime  time.Duration
}

// TokenService issues and verifies signed bearer tokens.
type TokenService interface {
	Issue(identity domain.Identity, lifetime time.Duration) (string, error)
	Verify(token string) (domain.Identity, error)
	Lifetime() time.Duration
}

// Option customises a TokenService.
type Option func(*jwtService)

// WithClock replaces the time source used for issuing and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *jwtService) {
		if now != nil {
			s.now = now
		}
	}
}

type tokenClaims struct {
	UserID *int64 `json:"user_id,omitempty"`
	jwt.RegisteredClaims
}

type jwtService struct {
	secret   []byte
	method   jwt.SigningMethod
	lifetime time.Duration
	now      func() time.Time
}

var signingMethods = map[string]jwt.SigningMethod{
	jwt.SigningMethodHS256.Alg(): jwt.SigningMethodHS256,
	jwt.SigningMethodHS384.Alg(): jwt.SigningMethodHS384,
	jwt.SigningMethodHS512.Alg(): jwt.SigningMethodHS512,
}

// NewTokenService validates cfg and returns a JWT backed TokenService.
func NewTokenService(cfg TokenConfig, opts ...Option) (TokenService, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("token signing secret is required")
	}

	alg := strings.ToUpper(strings.TrimSpace(cfg.Algorithm))
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	method, ok := signingMethods[alg]
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", cfg.Algorithm)
	}

	lifetime := cfg.Lifetime
	if lifetime <= 0 {
		lifetime = DefaultTokenLifetime
	}

	s := &jwtService{
		secret:   append([]byte(nil), cfg.Secret...),
		method:   method,
		lifetime: lifetime,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *jwtService) Lifetime() time.Duration {
	return s.lifetime
}

// Issue signs {sub, user_id, exp} for identity. A non-positive lifetime
// falls back to the configured one.
func (s *jwtService) Issue(identity domain.Identity, lifetime time.Duration) (string, error) {
	if identity.Username == "" {
		return "", ErrInvalidIdentity
	}
	if lifetime <= 0 {
		lifetime = s.lifetime
	}

	now := s.now()
	userID := identity.UserID
	claims := tokenClaims{
		UserID: &userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		},
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry and recovers the identity.
// Every failure wraps domain.ErrInvalidToken. Tokens without a user_id are
// rejected rather than yielding a partial identity.
func (s *jwtService) Verify(token string) (domain.Identity, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(s.now),
	)

	var claims tokenClaims
	parsed, err := parser.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != s.method.Alg() {
			return nil, fmt.Errorf("unexpected signing method %s", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return domain.Identity{}, domain.ErrInvalidToken
	}
	if claims.Subject == "" {
		return domain.Identity{}, fmt.Errorf("%w: missing subject", domain.ErrInvalidToken)
	}
	if claims.UserID == nil {
		return domain.Identity{}, fmt.Errorf("%w: missing user_id", domain.ErrInvalidToken)
	}

	return domain.Identity{Username: claims.Subject, UserID: *claims.UserID}, nil
}
