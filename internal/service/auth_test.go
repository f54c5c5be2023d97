package service

import (
	"context"
	"testing"
	"time"

	"github.com/perfpulse/perfpulse-go/internal/crypto"
	"github.com/perfpulse/perfpulse-go/internal/model"
	"github.com/perfpulse/perfpulse-go/internal/repository"
)

// Key generation is slow enough to share one pair across the package's tests.
var testKeys = mustKeyPair()

func mustKeyPair() *crypto.KeyPair {
	kp, err := crypto.GenerateKeyPair()
	if err != nil {
		panic(err)
	}
	return kp
}

func newTestAuthService() (*AuthService, *repository.MemoryUserRepository) {
	users := repository.NewMemoryUserRepository()
	return NewAuthService(users, testKeys, "test-secret", time.Hour), users
}

func TestRegisterEmptyCredentials(t *testing.T) {
	svc, _ := newTestAuthService()

	cases := []model.RegisterRequest{
		{Email: "", Password: "password123"},
		{Email: "test@example.com", Password: ""},
	}
	for _, req := range cases {
		if _, err := svc.Register(context.Background(), req); err != ErrMissingFields {
			t.Errorf("Register(%+v) error = %v, want ErrMissingFields", req, err)
		}
	}
}

func TestRegisterDerivesNameFromEmail(t *testing.T) {
	svc, _ := newTestAuthService()

	data, err := svc.Register(context.Background(), model.RegisterRequest{
		Email:    "zhang.ming@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}
	if data.Name != "zhang.ming" {
		t.Errorf("Register() name = %q, want email local part", data.Name)
	}
	if data.UserID == "" {
		t.Error("Register() returned empty userId")
	}
	if data.Token == "" {
		t.Error("Register() returned empty token")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	req := model.RegisterRequest{Email: "dup@example.com", Password: "pw"}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}
	if _, err := svc.Register(ctx, req); err != ErrEmailTaken {
		t.Errorf("Register() duplicate error = %v, want ErrEmailTaken", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	reg, err := svc.Register(ctx, model.RegisterRequest{Email: "good@x.com", Password: "pw", Name: "Good"})
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	data, err := svc.Login(ctx, model.LoginRequest{Email: "good@x.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}
	if data.UserID != reg.UserID {
		t.Errorf("Login() userId = %q, want %q", data.UserID, reg.UserID)
	}
	if data.Email != "good@x.com" || data.Name != "Good" {
		t.Errorf("Login() data = %+v", data)
	}

	claims, err := crypto.ValidateToken(data.Token, "test-secret")
	if err != nil {
		t.Fatalf("ValidateToken() unexpected error: %v", err)
	}
	if claims.UserID == 0 {
		t.Error("token carries no user ID")
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.Login(context.Background(), model.LoginRequest{Email: "nobody@x.com", Password: "pw"})
	if err != ErrUserNotFound {
		t.Errorf("Login() error = %v, want ErrUserNotFound", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, model.RegisterRequest{Email: "a@b.com", Password: "right"}); err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	_, err := svc.Login(ctx, model.LoginRequest{Email: "a@b.com", Password: "wrong"})
	if err != ErrInvalidCredentials {
		t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginEncryptedCredentials(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, model.RegisterRequest{Email: "enc@x.com", Password: "pw"}); err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	pemText, err := svc.PublicKeyPEM()
	if err != nil {
		t.Fatalf("PublicKeyPEM() unexpected error: %v", err)
	}
	pub, err := crypto.ParsePublicKeyPEM(pemText)
	if err != nil {
		t.Fatalf("ParsePublicKeyPEM() unexpected error: %v", err)
	}

	encrypted, err := crypto.EncryptPayload(pub, map[string]string{"email": "enc@x.com", "password": "pw"})
	if err != nil {
		t.Fatalf("EncryptPayload() unexpected error: %v", err)
	}

	data, err := svc.Login(ctx, model.LoginRequest{Encrypted: encrypted})
	if err != nil {
		t.Fatalf("Login() with encrypted payload unexpected error: %v", err)
	}
	if data.Email != "enc@x.com" {
		t.Errorf("Login() email = %q, want enc@x.com", data.Email)
	}
}

func TestLoginMalformedEncryptedPayload(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.Login(context.Background(), model.LoginRequest{Encrypted: "garbage"})
	if err == nil {
		t.Error("Login() expected error for malformed encrypted payload")
	}
}
