package service

import (
	"context"

	"todo-service/internal/auth"
	"todo-service/internal/domain"
)

// TokenTypeBearer is the only token type handed out at login.
const TokenTypeBearer = "bearer"

// AccessToken is the result of a successful login.
type AccessToken struct {
	AccessToken string
	TokenType   string
}

// AuthService turns credentials into tokens and tokens back into identities.
type AuthService interface {
	Login(ctx context.Context, username, password string) (AccessToken, error)
	Identify(token string) (domain.Identity, error)
}

type authService struct {
	users  UserService
	tokens auth.TokenService
}

func NewAuthService(users UserService, tokens auth.TokenService) AuthService {
	return &authService{users: users, tokens: tokens}
}

func (s *authService) Login(ctx context.Context, username, password string) (AccessToken, error) {
	user, err := s.users.Authenticate(ctx, username, password)
	if err != nil {
		return AccessToken{}, err
	}

	token, err := s.tokens.Issue(domain.Identity{Username: user.Username, UserID: user.ID}, s.tokens.Lifetime())
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{AccessToken: token, TokenType: TokenTypeBearer}, nil
}

func (s *authService) Identify(token string) (domain.Identity, error) {
	return s.tokens.Verify(token)
}
