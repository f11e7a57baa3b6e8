package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tasknest/taskd/internal/domain"
	"github.com/tasknest/taskd/internal/ports"
)

// UserService owns registration and login. It is stateless beyond the
// collaborators handed to it, so one instance serves all requests.
type UserService struct {
	cfg    Config
	users  ports.UserRepository
	hasher ports.PasswordHasher
	signer ports.TokenSigner
	nowFn  func() time.Time
}

type UserServiceDeps struct {
	Config Config
	Users  ports.UserRepository
	Hasher ports.PasswordHasher
	Signer ports.TokenSigner
}

func NewUserService(deps UserServiceDeps) *UserService {
	return &UserService{
		cfg:    deps.Config,
		users:  deps.Users,
		hasher: deps.Hasher,
		signer: deps.Signer,
		nowFn:  func() time.Time { return time.Now().UTC() },
	}
}

// Register creates a user after a uniqueness check on the normalized
// email. The repository's unique index is the backstop for two
// concurrent registrations racing past the lookup.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (UserResponse, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return UserResponse{}, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return UserResponse{}, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if err := domain.ValidatePassword(req.Password); err != nil {
		return UserResponse{}, err
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return UserResponse{}, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return UserResponse{}, fmt.Errorf("check existing email: %w", err)
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return UserResponse{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.nowFn()
	user, err := s.users.Create(ctx, domain.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return UserResponse{}, err
	}

	slog.InfoContext(ctx, "user registered",
		"operation", "register",
		"outcome", "success",
		"user_id", user.ID.String(),
	)

	return UserResponse{ID: user.ID, Name: user.Name, Email: user.Email}, nil
}

// Login verifies the credential and issues the session token. Unknown
// email and wrong password stay distinct errors because the API
// contract maps them to different status codes.
func (s *UserService) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return LoginResponse{}, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return LoginResponse{}, err
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		slog.WarnContext(ctx, "login rejected",
			"operation", "login",
			"outcome", "failure",
			"user_id", user.ID.String(),
		)
		return LoginResponse{}, domain.ErrInvalidCredentials
	}

	now := s.nowFn()
	token, err := s.signer.Sign(ports.TokenClaims{
		Name:      user.Name,
		Email:     user.Email,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.cfg.TokenTTL),
	})
	if err != nil {
		return LoginResponse{}, fmt.Errorf("sign token: %w", err)
	}

	return LoginResponse{Name: user.Name, Email: user.Email, Token: token}, nil
}

// normalizeEmail lowercases and validates the address so the unique
// index sees one canonical form.
func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%w: malformed email", domain.ErrInvalidInput)
	}
	return email, nil
}
