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

func NewListCandyMachinesTool(candyMachineService services.CandyMachineService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("list_candy_machines",
		mcp.WithDescription("List candy machine records with their deployment status, newest first. Supports filtering by status and pagination."),
		mcp.WithString("status",
			mcp.Description("Filter by deployment status (pending, deploying, deployed, failed)"),
		),
		mcp.WithString("limit",
			mcp.Description("Maximum number of records to return (default: 20)"),
		),
		mcp.WithString("offset",
			mcp.Description("Number of records to skip (default: 0)"),
		),
	)

	handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		status := models.DeploymentStatus(request.GetString("status", ""))
		limit, err := strconv.Atoi(request.GetString("limit", "20"))
		if err != nil || limit <= 0 {
			limit = 20
		}
		offset, err := strconv.Atoi(request.GetString("offset", "0"))
		if err != nil || offset < 0 {
			offset = 0
		}

		var records []models.CandyMachine
		if status != "" {
			if !status.IsValid() {
				return mcp.NewToolResultError("Invalid status. Supported values: pending, deploying, deployed, failed"), nil
			}
			records, err = candyMachineService.ListByStatus(ctx, status)
		} else {
			records, err = candyMachineService.ListAll(ctx)
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error listing candy machines: %v", err)), nil
		}

		total := len(records)
		if offset >= len(records) {
			records = nil
		} else {
			records = records[offset:]
		}
		if len(records) > limit {
			records = records[:limit]
		}

		summaries := make([]map[string]any, len(records))
		for i, record := range records {
			summaries[i] = map[string]any{
				"id":               record.ID,
				"name":             record.Name,
				"symbol":           record.Symbol,
				"blockchain":       record.Blockchain,
				"deploymentStatus": record.DeploymentStatus,
				"itemsInserted":    record.ItemsInserted,
				"updatedAt":        record.UpdatedAt,
			}
		}

		result := map[string]any{
			"candyMachines": summaries,
			"count":         len(summaries),
			"total":         total,
			"pagination": map[string]any{
				"limit":  limit,
				"offset": offset,
			},
		}
		resultJSON, _ := json.Marshal(result)
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent("Candy machines listed successfully: "),
				mcp.NewTextContent(string(resultJSON)),
			},
		}, nil
	}

	return tool, handler
}
