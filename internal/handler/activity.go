package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/perfpulse/perfpulse-go/internal/model"
	"github.com/perfpulse/perfpulse-go/internal/service"
)

// ActivityHandler handles HTTP requests for governance activities.
type ActivityHandler struct {
	service *service.ActivityService
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(svc *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: svc}
}

// HandleList handles GET /api/activities requests.
func (h *ActivityHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", 10)
	search := r.URL.Query().Get("search")

	result, err := h.service.List(r.Context(), page, perPage, search)
	if err != nil {
		writeFail(w, http.StatusInternalServerError, "服务器内部错误")
		return
	}
	writeOK(w, result, "查询成功")
}

// HandleRecent handles GET /api/activities/recent requests.
func (h *ActivityHandler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	activities, err := h.service.Recent(r.Context())
	if err != nil {
		writeFail(w, http.StatusInternalServerError, "服务器内部错误")
		return
	}
	writeOK(w, activities, "查询成功")
}

// HandleGet handles GET /api/activities/{activityId} requests.
func (h *ActivityHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	activity, err := h.service.Get(r.Context(), chi.URLParam(r, "activityId"))
	if err != nil {
		if errors.Is(err, service.ErrActivityNotFound) {
			writeFail(w, http.StatusNotFound, "找不到活动")
			return
		}
		writeFail(w, http.StatusInternalServerError, "服务器内部错误")
		return
	}
	writeOK(w, activity, "查询成功")
}

// HandleCreate handles POST /api/activities requests.
func (h *ActivityHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req model.CreateActivityRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	activity, err := h.service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrMissingFields) {
			writeFail(w, http.StatusBadRequest, "缺少必填字段")
			return
		}
		writeFail(w, http.StatusInternalServerError, "服务器内部错误")
		return
	}
	writeOK(w, activity, "创建成功")
}
