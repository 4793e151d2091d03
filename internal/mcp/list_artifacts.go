package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kfreiman/pagesmith/internal/storage"
)

// ListArtifactsTool handles listing all stored artifacts
type ListArtifactsTool struct {
	storageManager *storage.StorageManager
}

// NewListArtifactsTool creates a new list artifacts tool
func NewListArtifactsTool(storageManager *storage.StorageManager) *ListArtifactsTool {
	return &ListArtifactsTool{storageManager: storageManager}
}

// Call implements the MCP tool interface
func (t *ListArtifactsTool) Call(ctx context.Context, request *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Kind string `json:"kind"` // Optional: "pdf", "zip", "jpg", "png", or empty for all
	}
	if err := decodeArguments(request, &args); err != nil {
		return nil, err
	}

	kinds := storage.Kinds
	if args.Kind != "" {
		kind := storage.ArtifactKind(args.Kind)
		if !kind.Valid() {
			return errorResult(fmt.Errorf("invalid kind '%s'. Use 'pdf', 'zip', 'jpg', 'png', or leave empty for all artifacts", args.Kind)), nil
		}
		kinds = []storage.ArtifactKind{kind}
	}

	all, err := t.storageManager.ListAll()
	if err != nil {
		return errorResult(err), nil
	}

	var b strings.Builder
	for _, kind := range kinds {
		ids := all[kind]
		if len(ids) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s artifacts (%d):\n", strings.ToUpper(string(kind)), len(ids))
		for _, id := range ids {
			uri := storage.BuildURI(kind, id)
			if info, err := t.storageManager.ArtifactInfo(uri); err == nil {
				fmt.Fprintf(&b, "- %s (%s, %d bytes)\n", uri, info.Filename, info.Size)
			} else {
				fmt.Fprintf(&b, "- %s\n", uri)
			}
		}
		b.WriteString("\n")
	}

	text := "No artifacts found in storage."
	if b.Len() > 0 {
		text = "Stored Artifacts:\n\n" + strings.TrimRight(b.String(), "\n")
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil
}
