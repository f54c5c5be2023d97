package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/perfpulse/perfpulse-go/internal/model"
)

var errBodyTooLarge = errors.New("request body too large")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeOK(w http.ResponseWriter, data any, message string) {
	writeJSON(w, http.StatusOK, model.OK(data, message))
}

func writeFail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, model.Fail(message))
}

// decodeBody decodes a JSON request body into v with a 1MB size cap.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if err.Error() == "http: request body too large" {
			return errBodyTooLarge
		}
		return err
	}
	return nil
}

// writeDecodeError maps a decodeBody failure to the matching status code.
func writeDecodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, errBodyTooLarge) {
		writeFail(w, http.StatusRequestEntityTooLarge, "请求体过大")
		return
	}
	writeFail(w, http.StatusBadRequest, "无效的请求数据")
}
