package handler

import "net/http"

// HealthResponse is the liveness probe payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// HandleHealth handles GET /api/health requests.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Code:    http.StatusOK,
		Message: "PerfPulse API 运行正常",
	})
}
