package mcp

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kfreiman/pagesmith/internal/storage"
)

func TestServer_LivenessHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := &Server{logger: logger}

	req := httptest.NewRequest("GET", "/health/live", nil)
	w := httptest.NewRecorder()

	server.LivenessHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
	assert.Contains(t, w.Body.String(), `"service":"pagesmith-mcp"`)
	assert.Contains(t, w.Body.String(), `"timestamp"`)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}

func TestServer_ReadinessHandler_StorageAccessible(t *testing.T) {
	sm, err := storage.NewStorageManager(storage.StorageConfig{
		BasePath: t.TempDir(),
	})
	require.NoError(t, err)

	server := &Server{
		storageManager: sm,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	req := httptest.NewRequest("GET", "/health/ready", nil)
	w := httptest.NewRecorder()
	server.ReadinessHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
	assert.Contains(t, w.Body.String(), `"storage":"accessible"`)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}

func TestServer_ReadinessHandler_StorageInaccessible(t *testing.T) {
	tmpDir := t.TempDir()

	sm, err := storage.NewStorageManager(storage.StorageConfig{
		BasePath: tmpDir,
	})
	require.NoError(t, err)

	// Remove the pdf directory to make storage inaccessible
	require.NoError(t, os.RemoveAll(filepath.Join(tmpDir, "pdf")))

	server := &Server{
		storageManager: sm,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	req := httptest.NewRequest("GET", "/health/ready", nil)
	w := httptest.NewRecorder()
	server.ReadinessHandler(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"unhealthy"`)
	assert.Contains(t, w.Body.String(), `"storage":"inaccessible"`)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}
