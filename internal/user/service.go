package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MikeMC777/storefront/internal/auth"
)

var (
	// ErrInvalidCredentials covers both unknown usernames and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordTooLong    = fmt.Errorf("password must be at most %d bytes", auth.MaxPasswordBytes)
)

type TokenIssuer interface {
	Issue(id auth.Identity) (string, error)
}

type Service struct {
	repo   Repository
	tokens TokenIssuer
	cost   int
	// compared against when the username is unknown so both failure paths pay for bcrypt
	dummyHash string
}

func NewService(repo Repository, tokens TokenIssuer, bcryptCost int) *Service {
	dummy, _ := auth.HashPassword("not-a-real-password", bcryptCost)
	return &Service{repo: repo, tokens: tokens, cost: bcryptCost, dummyHash: dummy}
}

// Register
func (s *Service) Register(ctx context.Context, in RegisterRequest) (*AuthResponse, error) {
	if len(in.Password) > auth.MaxPasswordBytes {
		return nil, ErrPasswordTooLong
	}
	taken, err := s.repo.ExistsByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrAlreadyExist
	}
	hash, err := auth.HashPassword(in.Password, s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	role := in.Role
	if role == "" {
		role = auth.RoleUser
	}
	u := &User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
	}
	// unique constraints still catch a concurrent registration
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return s.respond(u, "User registered successfully")
}

// Login
func (s *Service) Login(ctx context.Context, in LoginRequest) (*AuthResponse, error) {
	u, err := s.repo.GetByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			auth.CheckPassword(s.dummyHash, in.Password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, in.Password) {
		return nil, ErrInvalidCredentials
	}
	return s.respond(u, "Login successful")
}

// GetSelf returns the caller's record; ErrNotFound if it vanished.
func (s *Service) GetSelf(ctx context.Context, id string) (*User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) respond(u *User, msg string) (*AuthResponse, error) {
	token, err := s.tokens.Issue(auth.Identity{ID: u.ID, Username: u.Username, Role: u.Role})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResponse{Message: msg, Token: token, User: u.Public()}, nil
}
