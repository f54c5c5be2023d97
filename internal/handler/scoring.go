package handler

import (
	"errors"
	"net/http"

	"github.com/perfpulse/perfpulse-go/internal/service"
)

// ScoringHandler handles HTTP requests for scoring and governance metrics.
type ScoringHandler struct {
	service *service.ScoringService
}

// NewScoringHandler creates a new ScoringHandler.
func NewScoringHandler(svc *service.ScoringService) *ScoringHandler {
	return &ScoringHandler{service: svc}
}

// HandleCriteria handles GET /api/scoring/criteria requests.
func (h *ScoringHandler) HandleCriteria(w http.ResponseWriter, r *http.Request) {
	criteria, err := h.service.Criteria(r.Context())
	if err != nil {
		writeFail(w, http.StatusInternalServerError, "服务器内部错误")
		return
	}
	writeOK(w, criteria, "查询成功")
}

// HandleFactors handles GET /api/scoring/factors requests.
func (h *ScoringHandler) HandleFactors(w http.ResponseWriter, r *http.Request) {
	factors, err := h.service.Factors(r.Context())
	if err != nil {
		writeFail(w, http.StatusInternalServerError, "服务器内部错误")
		return
	}
	writeOK(w, factors, "查询成功")
}

// HandleCalculate handles POST /api/scoring/calculate requests. The body
// carries user_id, activity_id and notes alongside factor values keyed by
// factor ID, so it is decoded as a raw map.
func (h *ScoringHandler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	var input map[string]any
	if err := decodeBody(w, r, &input); err != nil {
		writeDecodeError(w, err)
		return
	}

	result, err := h.service.Calculate(r.Context(), input)
	if err != nil {
		writeFail(w, http.StatusInternalServerError, "服务器内部错误")
		return
	}
	writeOK(w, result, "计算成功")
}

// HandleEntries handles GET /api/scoring/entries requests.
func (h *ScoringHandler) HandleEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.Entries(r.Context())
	if err != nil {
		writeFail(w, http.StatusInternalServerError, "服务器内部错误")
		return
	}
	writeOK(w, entries, "查询成功")
}

// HandleGovernanceMetrics handles GET /api/scoring/governance-metrics
// requests. The dimension query parameter defaults to "department".
func (h *ScoringHandler) HandleGovernanceMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.service.GovernanceMetrics(r.Context(), r.URL.Query().Get("dimension"))
	if err != nil {
		writeFail(w, http.StatusInternalServerError, "服务器内部错误")
		return
	}
	writeOK(w, metrics, "查询成功")
}

// HandleSaveGovernanceMetric handles POST /api/scoring/governance-metrics requests.
func (h *ScoringHandler) HandleSaveGovernanceMetric(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Dimension  string  `json:"dimension"`
		MetricName string  `json:"metric_name"`
		Value      float64 `json:"value"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	if err := h.service.SaveGovernanceMetric(r.Context(), req.Dimension, req.MetricName, req.Value); err != nil {
		if errors.Is(err, service.ErrMissingFields) {
			writeFail(w, http.StatusOK, "缺少必填字段")
			return
		}
		writeFail(w, http.StatusInternalServerError, "服务器内部错误")
		return
	}
	writeOK(w, nil, "指标已保存")
}
