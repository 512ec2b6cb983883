package service

import (
	"errors"
	"os"
	"testing"

	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/model"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-secret")
	os.Exit(m.Run())
}

func seededUser(t *testing.T, email, password string, active bool) *model.User {
	t.Helper()
	user := &model.User{Email: email, FullName: "Admin", IsActive: active}
	if err := user.SetPassword(password); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	return user
}

func TestLogin(t *testing.T) {
	user := seededUser(t, "admin@example.com", "admin123", true)
	svc := NewAuthService(newFakeUserRepo(user))

	resp, err := svc.Login(&LoginRequest{Email: "admin@example.com", Password: "admin123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Token == "" {
		t.Errorf("empty token")
	}
	if resp.User.Email != "admin@example.com" {
		t.Errorf("email = %q", resp.User.Email)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	user := seededUser(t, "admin@example.com", "admin123", true)
	svc := NewAuthService(newFakeUserRepo(user))

	_, err := svc.Login(&LoginRequest{Email: "admin@example.com", Password: "errada"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	_, err := svc.Login(&LoginRequest{Email: "ninguem@example.com", Password: "x"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginInactiveUser(t *testing.T) {
	user := seededUser(t, "admin@example.com", "admin123", false)
	svc := NewAuthService(newFakeUserRepo(user))

	_, err := svc.Login(&LoginRequest{Email: "admin@example.com", Password: "admin123"})
	if !errors.Is(err, ErrUserInactive) {
		t.Fatalf("err = %v, want ErrUserInactive", err)
	}
}

func TestSeedAdminIdempotent(t *testing.T) {
	repo := newFakeUserRepo()

	if err := SeedAdmin(repo, "admin@example.com", "admin123", "Admin"); err != nil {
		t.Fatalf("SeedAdmin: %v", err)
	}
	first, err := repo.FindByEmail("admin@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}

	if err := SeedAdmin(repo, "admin@example.com", "outrasenha", "Outro"); err != nil {
		t.Fatalf("SeedAdmin again: %v", err)
	}
	second, _ := repo.FindByEmail("admin@example.com")
	if second.ID != first.ID {
		t.Errorf("seed replaced the existing admin")
	}
	if !second.CheckPassword("admin123") {
		t.Errorf("seed overwrote the existing password")
	}
}
