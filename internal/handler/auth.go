package handler

import (
	"errors"
	"net/http"

	"github.com/perfpulse/perfpulse-go/internal/model"
	"github.com/perfpulse/perfpulse-go/internal/service"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleLogin handles POST /api/auth/login requests.
//
// A missing user is reported inside a 200 envelope with success=false;
// a wrong password is a 401. Clients branch on the success flag, not the
// HTTP status.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	data, err := h.service.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			writeFail(w, http.StatusOK, "登录失败，没有该用户，请注册")
		case errors.Is(err, service.ErrInvalidCredentials):
			writeFail(w, http.StatusUnauthorized, "无效的邮箱或密码")
		case errors.Is(err, service.ErrMissingFields):
			writeFail(w, http.StatusBadRequest, "缺少必填字段")
		default:
			writeFail(w, http.StatusInternalServerError, "服务器内部错误")
		}
		return
	}

	writeOK(w, data, "登录成功")
}

// HandleRegister handles POST /api/auth/register requests.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	data, err := h.service.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			writeFail(w, http.StatusOK, "该邮箱已被注册")
		case errors.Is(err, service.ErrMissingFields):
			writeFail(w, http.StatusBadRequest, "缺少必填字段")
		default:
			writeFail(w, http.StatusInternalServerError, "服务器内部错误")
		}
		return
	}

	writeOK(w, data, "注册成功")
}

// HandlePublicKey handles POST /api/auth/public_key requests. It returns
// the PEM public key clients encrypt credentials with.
func (h *AuthHandler) HandlePublicKey(w http.ResponseWriter, r *http.Request) {
	pemText, err := h.service.PublicKeyPEM()
	if err != nil {
		writeFail(w, http.StatusInternalServerError, "服务器内部错误")
		return
	}
	writeOK(w, map[string]string{"public_key": pemText}, "获取公钥成功")
}

// HandleLogout handles POST /api/auth/logout requests. Sessions live on
// the client, so there is nothing to invalidate server-side.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	writeOK(w, map[string]any{}, "登出成功")
}

// HandleSession handles GET /api/auth/session requests.
func (h *AuthHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	writeOK(w, map[string]bool{"authenticated": false}, "")
}
