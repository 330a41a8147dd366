package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/adilzhanb/taskhub/internal/auth"
	"github.com/adilzhanb/taskhub/internal/domain"
	"github.com/adilzhanb/taskhub/internal/email"
	"github.com/adilzhanb/taskhub/internal/metrics"
	"github.com/adilzhanb/taskhub/internal/repository"
	"github.com/golang-jwt/jwt/v5"
)

// Sessions are stateless: the JWT is the only credential, there is no
// server-side session table and no revocation. Logout is a client-side action.
const defaultSessionTTL = 48 * time.Hour

type AuthUsecase struct {
	users      repository.UserRepository
	email      email.Sender
	jwtKey     []byte
	sessionTTL time.Duration
	logger     *slog.Logger
}

func NewAuthUsecase(users repository.UserRepository, emailSender email.Sender, jwtKey []byte, logger *slog.Logger) *AuthUsecase {
	return &AuthUsecase{
		users:      users,
		email:      emailSender,
		jwtKey:     jwtKey,
		sessionTTL: defaultSessionTTL,
		logger:     logger.With("component", "auth_usecase"),
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register hashes the password and persists the user. The uniqueness check is
// the insert itself, so a duplicate email never leaves a partial write.
// Registration does not log the user in.
func (u *AuthUsecase) Register(ctx context.Context, input RegisterInput) error {
	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user, err := u.users.Create(ctx, &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}

	metrics.RegistrationsTotal.Inc()

	// Best effort: a failed welcome email never fails the registration.
	subject := "Welcome to Taskhub"
	body := fmt.Sprintf("<p>Hi %s, your account is ready. Happy tracking!</p>", user.Name)
	if err := u.email.Send(ctx, user.Email, subject, body); err != nil {
		u.logger.WarnContext(ctx, "welcome email", "error", err)
	}

	return nil
}

// Login verifies the credentials and returns a signed session token plus the
// user. Unknown email and wrong password collapse into the same
// domain.ErrInvalidCredentials so callers cannot enumerate accounts.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, password string) (string, *domain.User, error) {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if !auth.ComparePassword(user.PasswordHash, password) {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"name":  user.Name,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(u.sessionTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(u.jwtKey)
	if err != nil {
		return "", nil, fmt.Errorf("sign jwt: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return signed, user, nil
}
