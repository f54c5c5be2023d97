package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/perfpulse/perfpulse-go/internal/crypto"
	"github.com/perfpulse/perfpulse-go/internal/model"
	"github.com/perfpulse/perfpulse-go/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingFields      = errors.New("email and password are required")
	ErrEmailTaken         = errors.New("email already taken")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService handles authentication business logic.
type AuthService struct {
	users     repository.UserRepository
	keys      *crypto.KeyPair
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthService creates a new AuthService. keys is the server RSA key
// pair used to receive encrypted credential payloads.
func NewAuthService(users repository.UserRepository, keys *crypto.KeyPair, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		keys:      keys,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// PublicKeyPEM returns the PEM-encoded public half of the credential key pair.
func (s *AuthService) PublicKeyPEM() (string, error) {
	return s.keys.PublicKeyPEM()
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Login authenticates a user and returns the auth payload clients persist.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthData, error) {
	creds := credentials{Email: req.Email, Password: req.Password}
	if req.Encrypted != "" {
		if err := s.keys.DecryptPayload(req.Encrypted, &creds); err != nil {
			return model.AuthData{}, err
		}
	}
	if creds.Email == "" || creds.Password == "" {
		return model.AuthData{}, ErrMissingFields
	}

	user, err := s.users.GetByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.AuthData{}, ErrUserNotFound
		}
		return model.AuthData{}, err
	}

	match, err := crypto.VerifyPassword(creds.Password, user.AuthHash)
	if err != nil {
		return model.AuthData{}, err
	}
	if !match {
		return model.AuthData{}, ErrInvalidCredentials
	}

	return s.authData(user)
}

// Register creates a new user account. When no display name is supplied
// the local part of the email is used, matching the login fallback clients
// apply.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.AuthData, error) {
	creds := credentials{Email: req.Email, Password: req.Password, Name: req.Name}
	if req.Encrypted != "" {
		if err := s.keys.DecryptPayload(req.Encrypted, &creds); err != nil {
			return model.AuthData{}, err
		}
	}
	if creds.Email == "" || creds.Password == "" {
		return model.AuthData{}, ErrMissingFields
	}
	if creds.Name == "" {
		creds.Name = emailLocalPart(creds.Email)
	}

	hash, err := crypto.HashPassword(creds.Password)
	if err != nil {
		return model.AuthData{}, err
	}

	user := &model.User{
		Name:     creds.Name,
		Email:    creds.Email,
		AuthHash: hash,
		Level:    1,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.AuthData{}, ErrEmailTaken
		}
		return model.AuthData{}, err
	}

	return s.authData(user)
}

func (s *AuthService) authData(user *model.User) (model.AuthData, error) {
	token, err := crypto.GenerateToken(user.ID, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.AuthData{}, err
	}
	return model.AuthData{
		UserID: strconv.FormatInt(user.ID, 10),
		Email:  user.Email,
		Name:   user.Name,
		Token:  token,
	}, nil
}

func emailLocalPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
