package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/perfpulse/perfpulse-go/internal/middleware"
	"github.com/perfpulse/perfpulse-go/internal/model"
	"github.com/perfpulse/perfpulse-go/internal/service"
)

// UserHandler handles HTTP requests for user profiles.
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{service: svc}
}

// HandleGetUser handles GET /api/users/{userId} requests.
func (h *UserHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUserID(w, r)
	if !ok {
		return
	}

	user, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeFail(w, http.StatusNotFound, "User not found")
			return
		}
		writeFail(w, http.StatusInternalServerError, "服务器内部错误")
		return
	}

	writeOK(w, user, "查询成功")
}

// HandleUpdateUser handles PUT /api/users/{userId} and
// POST /api/users/{userId}/updateInfo requests. The caller's bearer token
// must belong to the user being updated.
func (h *UserHandler) HandleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUserID(w, r)
	if !ok {
		return
	}

	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeFail(w, http.StatusUnauthorized, "未登录")
		return
	}
	if callerID != id {
		writeFail(w, http.StatusForbidden, "无权修改其他用户信息")
		return
	}

	var req model.UpdateUserRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	user, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			writeFail(w, http.StatusNotFound, "User not found")
		case errors.Is(err, service.ErrEmailTaken):
			writeFail(w, http.StatusBadRequest, "该邮箱已被注册")
		default:
			writeFail(w, http.StatusInternalServerError, "服务器内部错误")
		}
		return
	}

	writeOK(w, user, "用户信息更新成功")
}

// HandleAchievements handles GET /api/users/{userId}/achievements requests.
// Achievements are not tracked yet; the endpoint exists for dashboard
// compatibility.
func (h *UserHandler) HandleAchievements(w http.ResponseWriter, r *http.Request) {
	if _, ok := pathUserID(w, r); !ok {
		return
	}
	writeOK(w, []any{}, "查询成功")
}

func pathUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		writeFail(w, http.StatusBadRequest, "无效的用户ID")
		return 0, false
	}
	return id, true
}
