package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/perfpulse/perfpulse-go/internal/crypto"
)

func TestFetchPublicKeyAndEncrypt(t *testing.T) {
	keys, err := crypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("generate keys: %v", err)
	}
	pem, err := keys.PublicKeyPEM()
	if err != nil {
		t.Fatalf("export key: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/public_key" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"data":    map[string]string{"public_key": pem},
			"message": "获取公钥成功",
			"success": true,
		})
	}))
	defer srv.Close()

	c := New("local", WithBaseURL(srv.URL))
	pub, err := c.FetchPublicKey(context.Background())
	if err != nil {
		t.Fatalf("fetch public key: %v", err)
	}

	ciphertext, err := EncryptCredentials(pub, "zhang@example.com", "secret", "张明")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := keys.DecryptPayload(ciphertext, &creds); err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if creds.Email != "zhang@example.com" || creds.Password != "secret" || creds.Name != "张明" {
		t.Errorf("round trip mismatch: %+v", creds)
	}
}

func TestFetchPublicKeyMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{},"message":"","success":true}`))
	}))
	defer srv.Close()

	c := New("local", WithBaseURL(srv.URL))
	if _, err := c.FetchPublicKey(context.Background()); err == nil {
		t.Fatal("expected an error for a missing key")
	}
}
