package gateway

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
)

// infoStore holds the demo profile data served by the updateInfo route.
// The route is answered by the gateway itself so the profile form keeps
// working when the backend is unavailable.
type infoStore struct {
	mu       sync.Mutex
	profiles map[string]map[string]any
}

func newInfoStore() *infoStore {
	return &infoStore{profiles: make(map[string]map[string]any)}
}

// merge applies the given fields on top of whatever is already stored for
// the user and returns a copy of the result.
func (s *infoStore) merge(userID string, fields map[string]any) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[userID]
	if !ok {
		profile = make(map[string]any)
		s.profiles[userID] = profile
	}
	for k, v := range fields {
		profile[k] = v
	}
	profile["id"] = userID
	profile["updatedAt"] = time.Now().UTC().Format(time.RFC3339)

	out := make(map[string]any, len(profile))
	for k, v := range profile {
		out[k] = v
	}
	return out
}

func (g *Gateway) handleUpdateInfo(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	defer r.Body.Close()

	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeEnvelope(w, http.StatusBadRequest, "无效的请求数据", err.Error())
		return
	}

	updated := g.info.merge(userID, fields)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"message": "用户信息更新成功",
		"data":    updated,
	})
}
