package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kfreiman/pagesmith/internal/storage"
)

const statsURI = "pagesmith://storage/stats"

// StorageResourceHandler handles pdf:// and zip:// resource requests
type StorageResourceHandler struct {
	storageManager *storage.StorageManager
	logger         *slog.Logger
}

// NewStorageResourceHandler creates a new storage resource handler
func NewStorageResourceHandler(storageManager *storage.StorageManager) *StorageResourceHandler {
	return &StorageResourceHandler{
		storageManager: storageManager,
		logger:         slog.Default(),
	}
}

// WithLogger sets the logger for the handler
func (h *StorageResourceHandler) WithLogger(logger *slog.Logger) *StorageResourceHandler {
	h.logger = logger
	return h
}

// ReadResource returns the stored artifact bytes as a blob
func (h *StorageResourceHandler) ReadResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := req.Params.URI

	content, artifact, err := h.storageManager.ReadArtifact(ctx, uri)
	if err != nil {
		h.logger.DebugContext(ctx, "artifact not readable",
			"error", err,
			"uri", uri,
		)
		return nil, mcp.ResourceNotFoundError(uri)
	}

	h.logger.DebugContext(ctx, "read artifact",
		"uri", uri,
		"filename", artifact.Filename,
		"size", len(content),
	)

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: artifact.Kind.MIMEType(),
			Blob:     content,
		}},
	}, nil
}

// ReadStats renders the artifact counts per kind
func (h *StorageResourceHandler) ReadStats(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	stats, err := h.storageManager.Stats()
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to read storage stats", "error", err)
		return nil, fmt.Errorf("storage stats: %w", err)
	}

	var b strings.Builder
	b.WriteString("# Storage Statistics\n\n")
	for _, kind := range storage.Kinds {
		fmt.Fprintf(&b, "- %s: %d\n", kind, stats[kind])
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     b.String(),
		}},
	}, nil
}
