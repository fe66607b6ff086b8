package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rxtech-lab/launchpad-drafts/internal/services"
	"github.com/rxtech-lab/launchpad-drafts/internal/utils"
)

func NewGetDraftTool(draftService services.DraftService, baseURL string, serverPort int) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("get_draft",
		mcp.WithDescription("Show a saved collection draft: its form data, the metadata of its collection image and NFT assets, and the HTTP API URL that serves it."),
		mcp.WithString("draft_id",
			mcp.Required(),
			mcp.Description("ID of the draft (e.g., solana-1b4e28ba-2fa1-11d2-883f-0016d3cca427)"),
		),
	)

	handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		draftID, err := request.RequireString("draft_id")
		if err != nil {
			return nil, fmt.Errorf("draft_id parameter is required: %w", err)
		}

		draft, err := draftService.Load(ctx, draftID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error loading draft: %v", err)), nil
		}
		if draft == nil {
			return mcp.NewToolResultError(fmt.Sprintf("Draft not found: %s", draftID)), nil
		}

		url, err := utils.GetDraftUrl(baseURL, serverPort, draft.ID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to build draft url: %v", err)), nil
		}

		result := map[string]any{
			"draft": draft,
			"url":   url,
		}
		resultJSON, _ := json.Marshal(result)
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent("Draft loaded successfully: "),
				mcp.NewTextContent(string(resultJSON)),
			},
		}, nil
	}

	return tool, handler
}
