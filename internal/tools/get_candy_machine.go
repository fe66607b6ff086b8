package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rxtech-lab/launchpad-drafts/internal/services"
)

func NewGetCandyMachineTool(candyMachineService services.CandyMachineService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("get_candy_machine",
		mcp.WithDescription("Show a candy machine record including its on-chain addresses, deployment transactions and any recorded errors."),
		mcp.WithString("candy_machine_id",
			mcp.Required(),
			mcp.Description("ID of the candy machine record"),
		),
	)

	handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("candy_machine_id")
		if err != nil {
			return nil, fmt.Errorf("candy_machine_id parameter is required: %w", err)
		}

		record, err := candyMachineService.Load(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error loading candy machine: %v", err)), nil
		}
		if record == nil {
			return mcp.NewToolResultError(fmt.Sprintf("Candy machine not found: %s", id)), nil
		}

		resultJSON, _ := json.Marshal(record)
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent("Candy machine loaded successfully: "),
				mcp.NewTextContent(string(resultJSON)),
			},
		}, nil
	}

	return tool, handler
}
