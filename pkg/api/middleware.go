package api

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

// requireAPIKey rejects requests whose X-API-Key header does not match the
// configured key. The comparison is constant-time so response latency does
// not reveal how long a matching prefix was. Auth outcomes are counted only
// when a key was actually presented.
func requireAPIKey(expectedKey string, metrics *Metrics) func(http.Handler) http.Handler {
	expected := []byte(expectedKey)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := r.Header.Get("X-API-Key")
			if presented == "" {
				sendError(w, "Missing X-API-Key header", http.StatusUnauthorized)
				return
			}
			if subtle.ConstantTimeCompare([]byte(presented), expected) != 1 {
				if metrics != nil {
					metrics.RecordAuthRequest(false)
				}
				sendError(w, "Invalid API key", http.StatusUnauthorized)
				return
			}
			if metrics != nil {
				metrics.RecordAuthRequest(true)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// respond writes the standard response envelope with the given status.
func respond(w http.ResponseWriter, status int, body APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func sendSuccess(w http.ResponseWriter, data interface{}) {
	respond(w, http.StatusOK, APIResponse{Success: true, Data: data})
}

func sendError(w http.ResponseWriter, message string, statusCode int) {
	respond(w, statusCode, APIResponse{Success: false, Error: message})
}
