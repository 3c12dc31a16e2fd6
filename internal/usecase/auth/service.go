package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	domain "github.com/mehedi609/dev-social/internal/domain/auth"
	"github.com/mehedi609/dev-social/internal/infrastructure/gravatar"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// Service coordinates authentication workflows between domain and infrastructure.
type Service struct {
	users   domain.UserRepository
	tokens  TokenManager
	nowFunc func() time.Time
}

// NewService constructs an auth service.
func NewService(users domain.UserRepository, tokens TokenManager) *Service {
	return &Service{
		users:   users,
		tokens:  tokens,
		nowFunc: time.Now,
	}
}

// RegisterInput is the payload for account creation.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates a new user and returns a signed token for the session.
func (s *Service) Register(ctx context.Context, input RegisterInput) (string, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := input.Password

	var verrs domain.ValidationErrors
	if name == "" {
		verrs = append(verrs, domain.FieldError{Message: "Name is required"})
	}
	if _, err := mail.ParseAddress(email); err != nil {
		verrs = append(verrs, domain.FieldError{Message: "Please include a valid email"})
	}
	if len(password) < minPasswordLength {
		verrs = append(verrs, domain.FieldError{Message: "Please enter a password with 6 or more characters"})
	}
	if len(verrs) > 0 {
		return "", verrs
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return "", domain.ErrEmailExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	now := s.nowFunc().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		AvatarURL:    gravatar.URL(email),
		PasswordHash: string(hashed),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return "", err
	}

	return s.tokens.Generate(user.ID)
}

// Login validates credentials and returns a signed token.
func (s *Service) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	email := strings.TrimSpace(strings.ToLower(creds.Email))
	if email == "" || creds.Password == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	return s.tokens.Generate(user.ID)
}

// CurrentUser resolves a verified identity to the stored user, with the
// password hash stripped.
func (s *Service) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func sanitizeUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	copy := *u
	copy.PasswordHash = ""
	return &copy
}
