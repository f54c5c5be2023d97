package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/perfpulse/perfpulse-go/internal/crypto"
	"github.com/perfpulse/perfpulse-go/internal/model"
	"github.com/perfpulse/perfpulse-go/internal/repository"
	"github.com/perfpulse/perfpulse-go/internal/service"
)

func newTestAuthHandler(t *testing.T) *AuthHandler {
	t.Helper()
	keys, err := crypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("generate keys: %v", err)
	}
	users := repository.NewMemoryUserRepository()
	svc := service.NewAuthService(users, keys, "test-secret", time.Hour)

	// Seed one account through the service so the hash matches.
	_, err = svc.Register(context.Background(), model.RegisterRequest{
		Email:    "zhang@example.com",
		Password: "secret",
		Name:     "张明",
	})
	if err != nil {
		t.Fatalf("seed register: %v", err)
	}
	return NewAuthHandler(svc)
}

func postJSON(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (map[string]any, string, bool) {
	t.Helper()
	var envelope struct {
		Data    map[string]any `json:"data"`
		Message string         `json:"message"`
		Success bool           `json:"success"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, rec.Body.String())
	}
	return envelope.Data, envelope.Message, envelope.Success
}

func TestHandleLoginSuccess(t *testing.T) {
	h := newTestAuthHandler(t)

	rec := postJSON(h.HandleLogin, `{"email":"zhang@example.com","password":"secret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	data, message, success := decodeEnvelope(t, rec)
	if !success || message != "登录成功" {
		t.Errorf("envelope = success=%v message=%q", success, message)
	}
	userID, ok := data["userId"].(string)
	if !ok || userID == "" {
		t.Errorf("data.userId = %v, want non-empty string", data["userId"])
	}
	if tok, ok := data["token"].(string); !ok || tok == "" {
		t.Error("expected a token in the login payload")
	}
}

func TestHandleLoginUnknownUser(t *testing.T) {
	h := newTestAuthHandler(t)

	rec := postJSON(h.HandleLogin, `{"email":"nobody@example.com","password":"secret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	_, message, success := decodeEnvelope(t, rec)
	if success {
		t.Error("expected success=false")
	}
	if message != "登录失败，没有该用户，请注册" {
		t.Errorf("message = %q", message)
	}
}

func TestHandleLoginWrongPassword(t *testing.T) {
	h := newTestAuthHandler(t)

	rec := postJSON(h.HandleLogin, `{"email":"zhang@example.com","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	_, message, success := decodeEnvelope(t, rec)
	if success || message != "无效的邮箱或密码" {
		t.Errorf("envelope = success=%v message=%q", success, message)
	}
}

func TestHandleRegisterDuplicateEmail(t *testing.T) {
	h := newTestAuthHandler(t)

	rec := postJSON(h.HandleRegister, `{"email":"zhang@example.com","password":"other"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	_, message, success := decodeEnvelope(t, rec)
	if success || message != "该邮箱已被注册" {
		t.Errorf("envelope = success=%v message=%q", success, message)
	}
}

func TestHandleRegisterMissingFields(t *testing.T) {
	h := newTestAuthHandler(t)

	rec := postJSON(h.HandleRegister, `{"email":"","password":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	_, message, success := decodeEnvelope(t, rec)
	if success || message != "缺少必填字段" {
		t.Errorf("envelope = success=%v message=%q", success, message)
	}
}

func TestHandleLoginMalformedBody(t *testing.T) {
	h := newTestAuthHandler(t)

	rec := postJSON(h.HandleLogin, `{broken`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandlePublicKey(t *testing.T) {
	h := newTestAuthHandler(t)

	rec := postJSON(h.HandlePublicKey, ``)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	data, _, success := decodeEnvelope(t, rec)
	if !success {
		t.Error("expected success=true")
	}
	pem, _ := data["public_key"].(string)
	if !strings.Contains(pem, "BEGIN PUBLIC KEY") {
		t.Errorf("public_key = %q, want PEM block", pem)
	}
}
