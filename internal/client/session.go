package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/perfpulse/perfpulse-go/internal/model"
)

// TokenStorage persists the session token between runs.
type TokenStorage interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
}

// FileTokenStorage stores the token in a single file.
type FileTokenStorage struct {
	path string
}

func NewFileTokenStorage(path string) *FileTokenStorage {
	return &FileTokenStorage{path: path}
}

func (s *FileTokenStorage) Save(token string) error {
	return os.WriteFile(s.path, []byte(token), 0600)
}

func (s *FileTokenStorage) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileTokenStorage) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// MemoryTokenStorage keeps the token in memory. Useful for tests and
// short-lived tools.
type MemoryTokenStorage struct {
	mu    sync.Mutex
	token string
}

func (s *MemoryTokenStorage) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryTokenStorage) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryTokenStorage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// RegisterResult reports the outcome of a registration attempt.
// NoUserID is set when the server reported success but returned no user
// ID, in which case no session is established.
type RegisterResult struct {
	Success  bool
	NoUserID bool
	Message  string
}

// Store tracks the authenticated session: the current user, the session
// token, and a loading flag for in-flight auth operations. All methods
// are safe for concurrent use.
type Store struct {
	client  *Client
	storage TokenStorage
	encrypt bool

	mu      sync.Mutex
	user    *model.UserResponse
	token   string
	loading bool
	lastErr string
}

// StoreOption customizes a Store.
type StoreOption func(*Store)

// WithEncryptedCredentials makes the store encrypt login and register
// payloads with the server's public key.
func WithEncryptedCredentials() StoreOption {
	return func(s *Store) { s.encrypt = true }
}

// NewStore creates a session store backed by the given API client and
// token storage.
func NewStore(client *Client, storage TokenStorage, opts ...StoreOption) *Store {
	s := &Store{client: client, storage: storage}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// User returns the current user, or nil when unauthenticated.
func (s *Store) User() *model.UserResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token returns the current session token, empty when unauthenticated.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// IsAuthenticated reports whether a session is active.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

// Loading reports whether an auth operation is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	if v {
		s.lastErr = ""
	}
	s.mu.Unlock()
}

// LastError returns the server message from the most recent rejected
// auth attempt, empty after a success or before any attempt.
func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Store) setError(msg string) {
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
}

// flexID accepts a user ID serialized either as a JSON string or as a
// number, normalizing to its string form.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*f = flexID(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexID(num.String())
		return nil
	}
	return fmt.Errorf("user id is neither string nor number: %s", data)
}

// credentialBody builds the login/register payload, encrypting it when
// the store was configured to.
func (s *Store) credentialBody(ctx context.Context, email, password, name string) (any, error) {
	if !s.encrypt {
		body := map[string]string{"email": email, "password": password}
		if name != "" {
			body["name"] = name
		}
		return body, nil
	}
	pub, err := s.client.FetchPublicKey(ctx)
	if err != nil {
		return nil, err
	}
	encrypted, err := EncryptCredentials(pub, email, password, name)
	if err != nil {
		return nil, err
	}
	return map[string]string{"encrypted": encrypted}, nil
}

// Login authenticates with the server. It returns true when a session
// was established. A rejected login (wrong password, unknown user) is
// reported as false with a nil error; transport failures return an
// error.
func (s *Store) Login(ctx context.Context, email, password string) (bool, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	body, err := s.credentialBody(ctx, email, password, "")
	if err != nil {
		return false, err
	}

	var resp struct {
		Data struct {
			UserID flexID `json:"userId"`
		} `json:"data"`
		Message string `json:"message"`
		Success bool   `json:"success"`
	}
	if err := s.client.Post(ctx, "/api/auth/login", body, &resp); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			s.setError(apiErr.Message)
			return false, nil
		}
		return false, err
	}
	if !resp.Success || resp.Data.UserID == "" {
		s.setError(resp.Message)
		return false, nil
	}

	s.establish(ctx, string(resp.Data.UserID), email)
	return true, nil
}

// Register creates an account. When the server confirms success and
// returns a user ID, a session is established; a success without a user
// ID is surfaced through RegisterResult.NoUserID and leaves the store
// unauthenticated. The ID is taken from the nested data object, falling
// back to the legacy top-level field older backends used.
func (s *Store) Register(ctx context.Context, email, password, name string) (RegisterResult, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	body, err := s.credentialBody(ctx, email, password, name)
	if err != nil {
		return RegisterResult{}, err
	}

	var resp struct {
		Data struct {
			UserID flexID `json:"userId"`
		} `json:"data"`
		UserID  flexID `json:"userId"`
		Message string `json:"message"`
		Success bool   `json:"success"`
	}
	if err := s.client.Post(ctx, "/api/auth/register", body, &resp); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			s.setError(apiErr.Message)
			return RegisterResult{Message: apiErr.Message}, nil
		}
		return RegisterResult{}, err
	}

	result := RegisterResult{Success: resp.Success, Message: resp.Message}
	if !resp.Success {
		s.setError(resp.Message)
		return result, nil
	}

	userID := string(resp.Data.UserID)
	if userID == "" {
		userID = string(resp.UserID)
	}
	if userID == "" {
		result.NoUserID = true
		return result, nil
	}

	s.establish(ctx, userID, email)
	return result, nil
}

// Logout ends the session. The server call is best effort; local state
// and the persisted token are always cleared, and calling Logout while
// unauthenticated is a no-op.
func (s *Store) Logout(ctx context.Context) {
	_ = s.client.Request(ctx, http.MethodPost, "/api/auth/logout", nil, nil)

	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()
	_ = s.storage.Clear()
}

// Rehydrate restores the session from the persisted token. When the
// user's profile can no longer be fetched the stale token is cleared
// and the store stays unauthenticated.
func (s *Store) Rehydrate(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	token, err := s.storage.Load()
	if err != nil {
		return fmt.Errorf("load token: %w", err)
	}
	if token == "" {
		return nil
	}

	user, err := s.fetchUser(ctx, token)
	if err != nil {
		s.storage.Clear()
		s.mu.Lock()
		s.user = nil
		s.token = ""
		s.mu.Unlock()
		return nil
	}

	s.mu.Lock()
	s.user = user
	s.token = token
	s.mu.Unlock()
	return nil
}

// establish stores the session for the given user ID. The full profile
// is fetched from the server; when that fails a minimal user built from
// the known credentials is kept so the session still works.
func (s *Store) establish(ctx context.Context, userID, email string) {
	user, err := s.fetchUser(ctx, userID)
	if err != nil {
		user = &model.UserResponse{
			ID:    userID,
			Email: email,
			Name:  emailLocalPart(email),
		}
	}

	// A failed save degrades to an in-memory session.
	_ = s.storage.Save(userID)

	s.mu.Lock()
	s.user = user
	s.token = userID
	s.mu.Unlock()
}

func (s *Store) fetchUser(ctx context.Context, userID string) (*model.UserResponse, error) {
	var resp struct {
		Data    model.UserResponse `json:"data"`
		Success bool               `json:"success"`
	}
	if err := s.client.Get(ctx, "/api/users/"+userID, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Data.ID == "" {
		return nil, fmt.Errorf("user %s not found", userID)
	}
	return &resp.Data, nil
}

func emailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
