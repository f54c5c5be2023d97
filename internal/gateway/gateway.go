// Package gateway implements the first-party proxy that shields clients
// from cross-origin concerns: it relays auth and user routes to the real
// backend with a bounded timeout and normalizes upstream failures into a
// uniform error envelope.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/perfpulse/perfpulse-go/internal/middleware"
	"github.com/perfpulse/perfpulse-go/internal/model"
)

// Gateway forwards requests to the backend API.
type Gateway struct {
	backendURL string
	timeout    time.Duration
	client     *http.Client
	info       *infoStore
}

// New creates a Gateway targeting the given backend base URL. Each
// upstream call is aborted after timeout.
func New(backendURL string, timeout time.Duration) *Gateway {
	return &Gateway{
		backendURL: backendURL,
		timeout:    timeout,
		client:     &http.Client{},
		info:       newInfoStore(),
	}
}

// Routes returns the gateway's HTTP handler.
func (g *Gateway) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Post("/api/auth/login", g.handleLogin)
	r.Post("/api/auth/register", g.handleRegister)
	r.Get("/api/health", g.handleHealth)
	r.Get("/api/users/{userId}", g.handleGetUser)
	r.Put("/api/users/{userId}", g.handleUpdateUser)
	r.Post("/api/users/{userId}/updateInfo", g.handleUpdateInfo)

	return r
}

func (g *Gateway) handleLogin(w http.ResponseWriter, r *http.Request) {
	body, ok := readJSONBody(w, r)
	if !ok {
		return
	}
	g.forward(w, r, http.MethodPost, "/api/auth/login", body, "登录失败，请稍后再试")
}

func (g *Gateway) handleRegister(w http.ResponseWriter, r *http.Request) {
	body, ok := readJSONBody(w, r)
	if !ok {
		return
	}
	g.forward(w, r, http.MethodPost, "/api/auth/register", body, "注册失败，请稍后再试")
}

func (g *Gateway) handleHealth(w http.ResponseWriter, r *http.Request) {
	g.forward(w, r, http.MethodGet, "/api/health", nil, "无法连接到后端服务")
}

func (g *Gateway) handleGetUser(w http.ResponseWriter, r *http.Request) {
	g.forward(w, r, http.MethodGet, "/api/users/"+chi.URLParam(r, "userId"), nil, "获取用户资料失败")
}

func (g *Gateway) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	body, ok := readJSONBody(w, r)
	if !ok {
		return
	}
	g.forward(w, r, http.MethodPut, "/api/users/"+chi.URLParam(r, "userId"), body, "更新用户资料失败")
}

// forward relays a request to the backend. Successful upstream payloads
// pass through byte-for-byte: clients depend on the exact field names.
// Upstream errors and transport failures are rewritten into the uniform
// gateway envelope, so a response is always produced.
func (g *Gateway) forward(w http.ResponseWriter, r *http.Request, method, path string, body []byte, failMsg string) {
	ctx, cancel := context.WithTimeout(r.Context(), g.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.backendURL+path, reader)
	if err != nil {
		writeEnvelope(w, http.StatusInternalServerError, failMsg, err.Error())
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if auth := r.Header.Get("Authorization"); auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		slog.Error("backend request failed", "path", path, "error", err)
		writeEnvelope(w, http.StatusInternalServerError, failMsg, err.Error())
		return
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		writeEnvelope(w, http.StatusInternalServerError, failMsg, err.Error())
		return
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.StatusCode)
		w.Write(data)
		return
	}

	msg := upstreamMessage(data)
	if msg == "" {
		msg = failMsg
	}
	slog.Warn("backend error response", "path", path, "status", resp.StatusCode, "message", msg)
	writeEnvelope(w, resp.StatusCode, msg, msg)
}

// upstreamMessage pulls a human-readable message out of an upstream error
// body, trying the field names the backend variants use.
func upstreamMessage(data []byte) string {
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return ""
	}
	switch {
	case parsed.Message != "":
		return parsed.Message
	case parsed.Error != "":
		return parsed.Error
	default:
		return parsed.Detail
	}
}

func readJSONBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB
	defer r.Body.Close()

	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeEnvelope(w, http.StatusBadRequest, "无效的请求数据", err.Error())
		return nil, false
	}
	if !json.Valid(data) {
		writeEnvelope(w, http.StatusBadRequest, "无效的请求数据", "request body is not valid JSON")
		return nil, false
	}
	return data, true
}

func writeEnvelope(w http.ResponseWriter, status int, message, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.GatewayError{Success: false, Message: message, Error: detail})
}
