package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rxtech-lab/launchpad-drafts/internal/models"
	"github.com/rxtech-lab/launchpad-drafts/internal/services"
)

type updateCandyMachineTool struct {
	deploymentService services.DeploymentService
}

type UpdateCandyMachineArguments struct {
	CandyMachineID string                   `json:"candy_machine_id" validate:"required"`
	Patch          models.CandyMachinePatch `json:"patch"`
}

func NewUpdateCandyMachineTool(deploymentService services.DeploymentService) *updateCandyMachineTool {
	return &updateCandyMachineTool{
		deploymentService: deploymentService,
	}
}

func (u *updateCandyMachineTool) GetTool() mcp.Tool {
	tool := mcp.NewTool("update_candy_machine",
		mcp.WithDescription("Record deployment progress on a candy machine. Only the fields present in patch change; a field set to null is cleared. Status moves pending -> deploying -> deployed or failed, and deployed is final."),
		mcp.WithString("candy_machine_id",
			mcp.Required(),
			mcp.Description("ID of the candy machine record to update"),
		),
		mcp.WithObject("patch",
			mcp.Required(),
			mcp.Description("Fields to change, e.g. {\"deploymentStatus\": \"deployed\", \"candyMachineAddress\": \"...\", \"deploymentTx\": \"...\", \"deploymentError\": null}"),
		),
	)

	return tool
}

func (u *updateCandyMachineTool) GetHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args UpdateCandyMachineArguments
		if err := request.BindArguments(&args); err != nil {
			return nil, fmt.Errorf("failed to bind arguments: %w", err)
		}

		if err := validator.New().Struct(args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}

		if args.Patch.IsEmpty() {
			return mcp.NewToolResultError("No fields to update. Provide at least one field in patch"), nil
		}

		record, err := u.deploymentService.Update(ctx, args.CandyMachineID, args.Patch)
		switch {
		case errors.Is(err, services.ErrNotFound):
			return mcp.NewToolResultError(fmt.Sprintf("Candy machine not found: %s", args.CandyMachineID)), nil
		case err != nil:
			return mcp.NewToolResultError(fmt.Sprintf("Failed to update candy machine: %v", err)), nil
		}

		resultJSON, _ := json.Marshal(record)
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent("Candy machine updated successfully: "),
				mcp.NewTextContent(string(resultJSON)),
			},
		}, nil
	}
}
