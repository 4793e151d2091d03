package mcp

import (
	"encoding/json"
	"net/http"
	"time"
)

const serviceName = "pagesmith-mcp"

// HealthResponse represents the JSON response for health endpoints
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Service   string            `json:"service"`
	Version   string            `json:"version,omitempty"`
	Checks    map[string]string `json:"checks,omitempty"`
}

func writeHealth(w http.ResponseWriter, code int, response HealthResponse) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(response)
}

// LivenessHandler checks if the server is running and accepting requests.
// Always returns 200 OK.
func (s *Server) LivenessHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   serviceName,
		Version:   serverVersion,
	}
	if err := writeHealth(w, http.StatusOK, response); err != nil {
		s.logger.WarnContext(ctx, "failed to write liveness response", "error", err)
		return
	}

	s.logger.DebugContext(ctx, "liveness check completed", "status", "healthy")
}

// ReadinessHandler returns 200 OK if storage is accessible, 503 if not
func (s *Server) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   serviceName,
		Version:   serverVersion,
		Checks:    map[string]string{"storage": "accessible"},
	}
	code := http.StatusOK

	if !s.storageManager.IsAccessible() {
		response.Status = "unhealthy"
		response.Checks["storage"] = "inaccessible"
		code = http.StatusServiceUnavailable
		s.logger.ErrorContext(ctx, "readiness check failed", "status", "unhealthy", "storage", "inaccessible")
	}

	if err := writeHealth(w, code, response); err != nil {
		s.logger.WarnContext(ctx, "failed to write readiness response", "error", err)
	}
}
