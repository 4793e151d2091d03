package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kfreiman/pagesmith/internal/storage"
)

// artifactCleaner is the part of the storage manager used by cleanup
type artifactCleaner interface {
	Stats() (map[storage.ArtifactKind]int64, error)
	Cleanup(ctx context.Context, ttl time.Duration) (int64, error)
}

// CleanupStorageTool handles storage cleanup
type CleanupStorageTool struct {
	storageManager artifactCleaner
	logger         *slog.Logger
}

// NewCleanupStorageTool creates a new cleanup storage tool
func NewCleanupStorageTool(storageManager artifactCleaner) *CleanupStorageTool {
	return &CleanupStorageTool{
		storageManager: storageManager,
		logger:         slog.Default(),
	}
}

// WithLogger sets the logger for the tool
func (t *CleanupStorageTool) WithLogger(logger *slog.Logger) *CleanupStorageTool {
	t.logger = logger
	return t
}

// parseTTL accepts a duration string ("24h") or a number of hours ("24").
// Negative values are rejected since they would expire every artifact.
func parseTTL(value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	ttl, err := time.ParseDuration(value)
	if err != nil {
		hours, atoiErr := strconv.Atoi(value)
		if atoiErr != nil {
			return 0, fmt.Errorf("invalid TTL format %q", value)
		}
		ttl = time.Duration(hours) * time.Hour
	}
	if ttl < 0 {
		return 0, fmt.Errorf("invalid TTL %q: must not be negative", value)
	}
	return ttl, nil
}

// Call implements the MCP tool interface
func (t *CleanupStorageTool) Call(ctx context.Context, request *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		TTL string `json:"ttl"`
	}
	if err := decodeArguments(request, &args); err != nil {
		return nil, err
	}

	ttl, err := parseTTL(args.TTL)
	if err != nil {
		t.logger.ErrorContext(ctx, "invalid TTL format",
			"error", err,
			"ttl_input", args.TTL,
			"operation", "cleanup_storage",
		)
		return errorResult(fmt.Errorf("%w. Use duration string (e.g., '24h') or hours as number", err)), nil
	}

	before, err := t.storageManager.Stats()
	if err != nil {
		return errorResult(err), nil
	}

	removed, err := t.storageManager.Cleanup(ctx, ttl)
	if err != nil {
		t.logger.ErrorContext(ctx, "cleanup operation failed",
			"error", err,
			"ttl", ttl,
			"operation", "cleanup_storage",
		)
		return errorResult(err), nil
	}

	ttlDisplay := "default"
	if ttl > 0 {
		ttlDisplay = ttl.String()
	}

	t.logger.InfoContext(ctx, "storage cleanup completed via tool",
		"ttl", ttlDisplay,
		"removed", removed,
	)

	var b strings.Builder
	fmt.Fprintf(&b, "Storage cleanup completed!\n\nTTL used: %s\nFiles removed: %d\n\n", ttlDisplay, removed)

	after, err := t.storageManager.Stats()
	if err != nil {
		t.logger.WarnContext(ctx, "storage statistics unavailable after cleanup",
			"error", err,
			"operation", "cleanup_storage",
		)
		b.WriteString("Storage statistics before cleanup:\n")
		for _, kind := range storage.Kinds {
			fmt.Fprintf(&b, "- %s: %d\n", strings.ToUpper(string(kind)), before[kind])
		}
		fmt.Fprintf(&b, "\nStatistics after cleanup are unavailable: %v", err)
	} else {
		b.WriteString("Storage statistics:\n")
		for _, kind := range storage.Kinds {
			fmt.Fprintf(&b, "- %s before: %d, after: %d\n", strings.ToUpper(string(kind)), before[kind], after[kind])
		}
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: strings.TrimRight(b.String(), "\n")}},
	}, nil
}

// StartCleanupRoutine removes expired artifacts every interval until ctx is done
func StartCleanupRoutine(ctx context.Context, storageManager *storage.StorageManager, interval, ttl time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := storageManager.Cleanup(ctx, ttl)
				if err != nil {
					logger.ErrorContext(ctx, "periodic storage cleanup failed", "error", err)
					continue
				}
				logger.InfoContext(ctx, "periodic storage cleanup completed",
					"removed", removed,
					"interval", interval,
					"ttl", ttl,
				)
			}
		}
	}()
}
