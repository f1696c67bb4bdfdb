package mcp

import (
	"context"
	"encoding/json"

	"github.com/claude/fittracker/internal/workout"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) variantCatalog(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(workout.Variants())
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
