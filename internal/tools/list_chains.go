package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rxtech-lab/launchpad-drafts/internal/models"
	"github.com/rxtech-lab/launchpad-drafts/internal/services"
)

func NewListChainsTool(draftService services.DraftService, candyMachineService services.CandyMachineService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("list_chains",
		mcp.WithDescription("List the supported blockchains, the address and transaction formats each accepts, and how many drafts and candy machines are stored for it."),
		mcp.WithString("chain_type",
			mcp.Description("Filter by chain type (ethereum, solana). Optional."),
		),
	)

	handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		chainType := models.ChainType(request.GetString("chain_type", ""))
		if chainType != "" && !chainType.IsValid() {
			return mcp.NewToolResultError("Invalid chain_type. Supported values: ethereum, solana"), nil
		}

		candyMachines, err := candyMachineService.ListAll(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error listing candy machines: %v", err)), nil
		}
		candyMachineCounts := make(map[models.ChainType]int)
		for _, record := range candyMachines {
			candyMachineCounts[record.Blockchain]++
		}

		var chains []map[string]any
		for _, chain := range models.SupportedChains {
			if chainType != "" && chain != chainType {
				continue
			}

			drafts, err := draftService.ListSummaries(ctx, string(chain))
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Error listing drafts: %v", err)), nil
			}

			addressFormat, txFormat := chain.AddressFormat()
			chains = append(chains, map[string]any{
				"chain_type":          chain,
				"is_default":          chain == models.DefaultChain,
				"address_format":      addressFormat,
				"tx_format":           txFormat,
				"draft_count":         len(drafts),
				"candy_machine_count": candyMachineCounts[chain],
			})
		}

		response := map[string]any{
			"chains": chains,
			"total":  len(chains),
		}
		responseJSON, _ := json.MarshalIndent(response, "", "  ")
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent(string(responseJSON)),
			},
		}, nil
	}

	return tool, handler
}
