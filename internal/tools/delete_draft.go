package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rxtech-lab/launchpad-drafts/internal/services"
)

func NewDeleteDraftTool(draftService services.DraftService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("delete_draft",
		mcp.WithDescription("Delete a saved collection draft together with its stored images. Deleting a draft that does not exist succeeds."),
		mcp.WithString("draft_id",
			mcp.Required(),
			mcp.Description("ID of the draft to delete"),
		),
	)

	handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		draftID, err := request.RequireString("draft_id")
		if err != nil {
			return nil, fmt.Errorf("draft_id parameter is required: %w", err)
		}

		if err := draftService.Delete(ctx, draftID); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error deleting draft: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Draft %s deleted successfully", draftID)), nil
	}

	return tool, handler
}
