package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/finance-assistant/backend/internal/application/adapter"
	"github.com/finance-assistant/backend/internal/domain/entity"
	domainerror "github.com/finance-assistant/backend/internal/domain/error"
)

type fakeUserRepository struct {
	users map[string]*entity.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepository) Create(_ context.Context, user *entity.User) error {
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.users[email], nil
}

func (r *fakeUserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

type fakePasswordService struct{}

func (fakePasswordService) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakePasswordService) VerifyPassword(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func (fakePasswordService) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.New("too short")
	}
	return nil
}

type fakeTokenService struct{}

func (fakeTokenService) GenerateAccessToken(_ context.Context, userID uuid.UUID, _ string) (string, error) {
	return "token-" + userID.String(), nil
}

func (fakeTokenService) ValidateAccessToken(_ context.Context, _ string) (*adapter.TokenClaims, error) {
	return nil, errors.New("not implemented")
}

func TestRegisterUser(t *testing.T) {
	t.Run("registers a new user and issues a token", func(t *testing.T) {
		repo := newFakeUserRepository()
		uc := NewRegisterUserUseCase(repo, fakePasswordService{}, fakeTokenService{})

		output, err := uc.Execute(context.Background(), RegisterUserInput{
			Email:    "ana@example.com",
			FullName: "Ana",
			Password: "supersecret",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.AccessToken == "" {
			t.Error("expected an access token")
		}
		if output.User.PasswordHash == "supersecret" {
			t.Error("password must not be stored in plain text")
		}
		if repo.users["ana@example.com"] == nil {
			t.Error("expected the user persisted")
		}
	})

	t.Run("rejects an invalid email", func(t *testing.T) {
		uc := NewRegisterUserUseCase(newFakeUserRepository(), fakePasswordService{}, fakeTokenService{})

		_, err := uc.Execute(context.Background(), RegisterUserInput{
			Email:    "not-an-email",
			Password: "supersecret",
		})

		if !errors.Is(err, domainerror.ErrInvalidCredentials) {
			t.Errorf("expected an invalid email error, got %v", err)
		}
	})

	t.Run("rejects a weak password", func(t *testing.T) {
		uc := NewRegisterUserUseCase(newFakeUserRepository(), fakePasswordService{}, fakeTokenService{})

		_, err := uc.Execute(context.Background(), RegisterUserInput{
			Email:    "ana@example.com",
			Password: "short",
		})

		if !errors.Is(err, domainerror.ErrWeakPassword) {
			t.Errorf("expected ErrWeakPassword, got %v", err)
		}
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		repo := newFakeUserRepository()
		uc := NewRegisterUserUseCase(repo, fakePasswordService{}, fakeTokenService{})

		input := RegisterUserInput{Email: "ana@example.com", Password: "supersecret"}
		if _, err := uc.Execute(context.Background(), input); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err := uc.Execute(context.Background(), input)
		if !errors.Is(err, domainerror.ErrEmailAlreadyExists) {
			t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
		}
	})
}

func TestLoginUser(t *testing.T) {
	registered := func(t *testing.T) (*fakeUserRepository, *LoginUserUseCase) {
		t.Helper()
		repo := newFakeUserRepository()
		register := NewRegisterUserUseCase(repo, fakePasswordService{}, fakeTokenService{})
		if _, err := register.Execute(context.Background(), RegisterUserInput{
			Email:    "ana@example.com",
			Password: "supersecret",
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return repo, NewLoginUserUseCase(repo, fakePasswordService{}, fakeTokenService{})
	}

	t.Run("valid credentials issue a token", func(t *testing.T) {
		_, uc := registered(t)

		output, err := uc.Execute(context.Background(), LoginUserInput{
			Email:    "ana@example.com",
			Password: "supersecret",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.AccessToken == "" {
			t.Error("expected an access token")
		}
	})

	t.Run("wrong password is rejected generically", func(t *testing.T) {
		_, uc := registered(t)

		_, err := uc.Execute(context.Background(), LoginUserInput{
			Email:    "ana@example.com",
			Password: "wrong",
		})
		if !errors.Is(err, domainerror.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email is rejected generically", func(t *testing.T) {
		_, uc := registered(t)

		_, err := uc.Execute(context.Background(), LoginUserInput{
			Email:    "ghost@example.com",
			Password: "supersecret",
		})
		if !errors.Is(err, domainerror.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}
