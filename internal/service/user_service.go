package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"todo-service/internal/auth"
	"todo-service/internal/domain"
	"todo-service/internal/repository"
)

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Username    string `validate:"required,max=100"`
	Email       string `validate:"required,email"`
	FirstName   string `validate:"max=100"`
	LastName    string `validate:"max=100"`
	Password    string `validate:"required,passwordbytes"`
	Role        string `validate:"max=50"`
	PhoneNumber string `validate:"max=32"`
	// AdminSecret must match the configured secret to register an admin,
	// unless no secret is configured.
	AdminSecret string
}

// UserService describes user lifecycle operations.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	VerifyPassword(ctx context.Context, username, password string) error
	ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error
}

type userService struct {
	users       repository.UserRepository
	hasher      auth.PasswordHasher
	adminSecret string
	// dummyHash is compared against on unknown usernames so a failed login
	// costs the same whether or not the user exists.
	dummyHash string
}

func NewUserService(users repository.UserRepository, hasher auth.PasswordHasher, adminSecret string) UserService {
	dummyHash, _ := hasher.Hash("todo-service-unknown-user")
	return &userService{
		users:       users,
		hasher:      hasher,
		adminSecret: strings.TrimSpace(adminSecret),
		dummyHash:   dummyHash,
	}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Role = strings.TrimSpace(in.Role)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	if in.Role == domain.RoleAdmin && s.adminSecret != "" &&
		subtle.ConstantTimeCompare([]byte(strings.TrimSpace(in.AdminSecret)), []byte(s.adminSecret)) != 1 {
		return nil, fmt.Errorf("%w: admin registration secret mismatch", domain.ErrForbidden)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		PasswordHash: hash,
		Role:         in.Role,
		IsActive:     true,
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return nil, domain.ErrUserAlreadyExists
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

// Authenticate never reveals whether the username or the password was wrong.
func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	return sanitizeUser(user), nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// VerifyPassword distinguishes an unknown user (ErrNotFound) from a wrong
// password (ErrInvalidPassword), unlike Authenticate.
func (s *userService) VerifyPassword(ctx context.Context, username, password string) error {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return domain.ErrInvalidPassword
	}
	return nil
}

func (s *userService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	if err := validateInput(struct {
		Current string `validate:"required,passwordbytes"`
		New     string `validate:"required,passwordbytes"`
	}{currentPassword, newPassword}); err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(currentPassword, user.PasswordHash) {
		return domain.ErrInvalidPassword
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePasswordHash(ctx, user.ID, hash)
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	clean := *user
	clean.PasswordHash = ""
	return &clean
}
