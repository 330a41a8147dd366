package usecase_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/adilzhanb/taskhub/internal/auth"
	"github.com/adilzhanb/taskhub/internal/domain"
	"github.com/adilzhanb/taskhub/internal/usecase"
	"github.com/golang-jwt/jwt/v5"
)

// ---- fakes ----

type fakeUserRepo struct {
	create      func(ctx context.Context, user *domain.User) (*domain.User, error)
	findByEmail func(ctx context.Context, email string) (*domain.User, error)
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	return r.create(ctx, user)
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findByEmail(ctx, email)
}

type fakeEmailSender struct {
	send func(ctx context.Context, to, subject, body string) error
}

func (s *fakeEmailSender) Send(ctx context.Context, to, subject, body string) error {
	if s.send == nil {
		return nil
	}
	return s.send(ctx, to, subject, body)
}

// ---- helpers ----

const testJWTKey = "test-jwt-secret-at-least-32-chars!!"

func newAuthUsecase(repo *fakeUserRepo, sender *fakeEmailSender) *usecase.AuthUsecase {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return usecase.NewAuthUsecase(repo, sender, []byte(testJWTKey), logger)
}

// ---- Register ----

func TestRegister_StoresSaltedHashNotPlaintext(t *testing.T) {
	var stored *domain.User
	repo := &fakeUserRepo{
		create: func(_ context.Context, user *domain.User) (*domain.User, error) {
			stored = user
			return user, nil
		},
	}

	input := usecase.RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "secret1"}
	if err := newAuthUsecase(repo, &fakeEmailSender{}).Register(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stored == nil {
		t.Fatal("user was never persisted")
	}
	if stored.PasswordHash == input.Password {
		t.Fatal("password stored as plaintext")
	}
	if !auth.ComparePassword(stored.PasswordHash, input.Password) {
		t.Error("stored hash does not verify against the original password")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	emailSent := false
	repo := &fakeUserRepo{
		create: func(_ context.Context, _ *domain.User) (*domain.User, error) {
			return nil, domain.ErrEmailTaken
		},
	}
	sender := &fakeEmailSender{
		send: func(_ context.Context, _, _, _ string) error {
			emailSent = true
			return nil
		},
	}

	err := newAuthUsecase(repo, sender).Register(context.Background(),
		usecase.RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "secret1"})

	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("error = %v, want ErrEmailTaken", err)
	}
	if emailSent {
		t.Error("welcome email must not be sent for a rejected registration")
	}
}

func TestRegister_EmailFailureDoesNotFailRegistration(t *testing.T) {
	repo := &fakeUserRepo{
		create: func(_ context.Context, user *domain.User) (*domain.User, error) {
			return user, nil
		},
	}
	sender := &fakeEmailSender{
		send: func(_ context.Context, _, _, _ string) error {
			return errors.New("smtp down")
		},
	}

	err := newAuthUsecase(repo, sender).Register(context.Background(),
		usecase.RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("registration must succeed despite email failure, got %v", err)
	}
}

// ---- Login ----

func registeredUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &domain.User{
		ID:           "user-1",
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: hash,
	}
}

func TestLogin_UnknownEmail_InvalidCredentials(t *testing.T) {
	repo := &fakeUserRepo{
		findByEmail: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}

	_, _, err := newAuthUsecase(repo, &fakeEmailSender{}).Login(context.Background(), "nobody@example.com", "secret1")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogin_WrongPassword_SameErrorAsUnknownEmail(t *testing.T) {
	user := registeredUser(t, "secret1")
	repo := &fakeUserRepo{
		findByEmail: func(_ context.Context, _ string) (*domain.User, error) {
			return user, nil
		},
	}

	_, _, err := newAuthUsecase(repo, &fakeEmailSender{}).Login(context.Background(), user.Email, "wrong-password")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogin_Success_TokenCarriesIdentityAndExpiry(t *testing.T) {
	user := registeredUser(t, "secret1")
	repo := &fakeUserRepo{
		findByEmail: func(_ context.Context, _ string) (*domain.User, error) {
			return user, nil
		},
	}

	before := time.Now()
	token, got, err := newAuthUsecase(repo, &fakeEmailSender{}).Login(context.Background(), user.Email, "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("user id = %q, want %q", got.ID, user.ID)
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return []byte(testJWTKey), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}

	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sub"] != user.ID {
		t.Errorf("sub = %v, want %q", claims["sub"], user.ID)
	}
	if claims["email"] != user.Email {
		t.Errorf("email = %v, want %q", claims["email"], user.Email)
	}
	if claims["name"] != user.Name {
		t.Errorf("name = %v, want %q", claims["name"], user.Name)
	}

	exp := time.Unix(int64(claims["exp"].(float64)), 0)
	wantExp := before.Add(48 * time.Hour)
	if exp.Before(wantExp.Add(-time.Minute)) || exp.After(wantExp.Add(time.Minute)) {
		t.Errorf("exp = %v, want ~%v", exp, wantExp)
	}
}
