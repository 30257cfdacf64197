package app

import (
	"context"
	"fmt"
	"strings"

	"gopherblog/internal/model"
)

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	SetResetToken(ctx context.Context, id uint, token string) (bool, error)
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ConsumeResetToken(ctx context.Context, id uint, token, passwordHash string) (bool, error)
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

type TokenService interface {
	Issue(subject string) (string, error)
	Verify(token string) (string, error)
}

// Notifier delivers a password-reset link to the account owner.
type Notifier interface {
	SendResetLink(ctx context.Context, email, token string) error
}

// ResetThrottle bounds how often a reset can be requested for one key.
type ResetThrottle interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type AuthService struct {
	users    UserStore
	hasher   PasswordHasher
	tokens   TokenService
	notifier Notifier
	throttle ResetThrottle
}

type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	Token string
	User  *model.User
}

// NewAuthService wires the account flows. throttle may be nil.
func NewAuthService(users UserStore, hasher PasswordHasher, tokens TokenService, notifier Notifier, throttle ResetThrottle) *AuthService {
	return &AuthService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		notifier: notifier,
		throttle: throttle,
	}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	email := strings.TrimSpace(input.Email)

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	if !validEmail(email) || !validPassword(input.Password, input.ConfirmPassword) {
		return nil, ErrBadCredentials
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    email,
		Password: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	email := strings.TrimSpace(input.Email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrEmailNotFound
	}

	if err := s.hasher.Compare(user.Password, input.Password); err != nil {
		return nil, ErrLoginFailed
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue login token failed: %w", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}
