package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rxtech-lab/launchpad-drafts/internal/models"
	"github.com/rxtech-lab/launchpad-drafts/internal/services"
)

func NewListDraftsTool(draftService services.DraftService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("list_drafts",
		mcp.WithDescription("List saved collection drafts, most recently updated first. Returns each draft's id, blockchain, name and asset counts. Call get_draft for the full form data and the draft URL."),
		mcp.WithString("blockchain",
			mcp.Description("Filter by blockchain, e.g. ethereum or solana. If not provided, lists drafts for all chains."),
		),
		mcp.WithString("limit",
			mcp.Description("Maximum number of drafts to return (default: 20)"),
		),
	)

	handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		blockchain := request.GetString("blockchain", "")
		limit, err := strconv.Atoi(request.GetString("limit", "20"))
		if err != nil || limit <= 0 {
			limit = 20
		}

		if blockchain != "" && !models.IsValidDraftBlockchain(blockchain) {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid blockchain %q. Blockchain names must be non-empty and must not contain '-'", blockchain)), nil
		}

		drafts, err := draftService.ListSummaries(ctx, blockchain)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error listing drafts: %v", err)), nil
		}

		if len(drafts) == 0 {
			result := map[string]any{
				"drafts":  []any{},
				"count":   0,
				"message": "No drafts found",
			}
			resultJSON, _ := json.Marshal(result)
			return mcp.NewToolResultText(fmt.Sprintf("Drafts listed: %s", string(resultJSON))), nil
		}

		total := len(drafts)
		if len(drafts) > limit {
			drafts = drafts[:limit]
		}

		result := map[string]any{
			"drafts": drafts,
			"count":  len(drafts),
			"total":  total,
		}
		resultJSON, _ := json.Marshal(result)
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent("Drafts listed successfully: "),
				mcp.NewTextContent(string(resultJSON)),
			},
		}, nil
	}

	return tool, handler
}
