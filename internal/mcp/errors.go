package mcp

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kfreiman/pagesmith/internal/workflow"
)

// decodeArguments unmarshals tool arguments, treating absent arguments as an empty object
func decodeArguments(request *mcp.CallToolRequest, v any) error {
	if request == nil || request.Params == nil || len(request.Params.Arguments) == 0 {
		return nil
	}
	if err := json.Unmarshal(request.Params.Arguments, v); err != nil {
		return &workflow.ValidationError{
			Field:  "arguments",
			Reason: fmt.Sprintf("invalid JSON format: %v", err),
		}
	}
	return nil
}

// errorResult reports a tool failure to the client
func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + userMessage(err)},
		},
	}
}

// userMessage turns known failures into client-facing text
func userMessage(err error) string {
	var vErr *workflow.ValidationError
	var nfErr *workflow.FileNotFoundError
	var secErr *workflow.SecurityError

	switch {
	case errors.Is(err, workflow.ErrNoValidPages):
		return "No valid pages found in the specified range(s). " + err.Error()
	case errors.As(err, &vErr):
		return vErr.Reason + " (" + vErr.Error() + ")"
	case errors.As(err, &nfErr):
		return nfErr.Error()
	case errors.As(err, &secErr):
		return "invalid path - " + secErr.Error()
	default:
		return err.Error()
	}
}

// jsonResult renders a summary line followed by the JSON encoding of v
func jsonResult(summary string, v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: summary},
			&mcp.TextContent{Text: string(data)},
		},
	}, nil
}
