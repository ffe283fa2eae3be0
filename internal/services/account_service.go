package services

import (
	"context"
	"distance-service/internal/auth"
	"distance-service/internal/domain"
	"distance-service/internal/ports"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 50
	minPasswordLength = 8
	// bcrypt rejects longer inputs.
	maxPasswordBytes = 72
)

type TokenIssuer interface {
	Issue(userID, email string) (string, error)
}

type AccountService struct {
	Users  ports.UserRepository
	Tokens TokenIssuer

	hash  func(password string) (string, error)
	check func(password, hash string) bool
	now   func() time.Time
	newID func() string
}

func NewAccountService(users ports.UserRepository, tokens TokenIssuer) *AccountService {
	return &AccountService{
		Users:  users,
		Tokens: tokens,
		hash:   auth.HashPassword,
		check:  auth.CheckPassword,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

func (s *AccountService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if n := utf8.RuneCountInString(username); n < minUsernameLength || n > maxUsernameLength {
		return nil, fmt.Errorf("register: username must be %d-%d characters: %w",
			minUsernameLength, maxUsernameLength, domain.ErrInvalidInput)
	}

	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil || addr.Name != "" {
		return nil, fmt.Errorf("register: malformed email: %w", domain.ErrInvalidInput)
	}

	if utf8.RuneCountInString(password) < minPasswordLength {
		return nil, fmt.Errorf("register: password must be at least %d characters: %w",
			minPasswordLength, domain.ErrInvalidInput)
	}
	if len(password) > maxPasswordBytes {
		return nil, fmt.Errorf("register: password must be at most %d bytes: %w",
			maxPasswordBytes, domain.ErrInvalidInput)
	}

	hash, err := s.hash(password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	u := &domain.User{
		ID:           s.newID(),
		Username:     username,
		Email:        strings.ToLower(addr.Address),
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	zerolog.Ctx(ctx).Info().Str("user_id", u.ID).Msg("user registered")
	return u, nil
}

// Login checks credentials and issues a bearer token. Unknown email and wrong
// password both yield ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	u, err := s.Users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, fmt.Errorf("login: %w", domain.ErrInvalidCredentials)
	}
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if !s.check(password, u.PasswordHash) {
		return "", nil, fmt.Errorf("login: %w", domain.ErrInvalidCredentials)
	}

	token, err := s.Tokens.Issue(u.ID, u.Email)
	if err != nil {
		return "", nil, fmt.Errorf("login: issue token: %w", err)
	}

	return token, u, nil
}

func (s *AccountService) Me(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, fmt.Errorf("me: %w", domain.ErrUserNotFound)
	}

	u, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("me: %w", err)
	}
	return u, nil
}
