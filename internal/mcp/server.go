package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rxtech-lab/launchpad-drafts/internal/services"
	"github.com/rxtech-lab/launchpad-drafts/internal/tools"
)

type MCPServer struct {
	server        *server.MCPServer
	drafts        services.DraftService
	candyMachines services.CandyMachineService
	deployments   services.DeploymentService
}

func NewMCPServer(drafts services.DraftService, candyMachines services.CandyMachineService, deployments services.DeploymentService, baseURL string, serverPort int) *MCPServer {
	mcpServer := &MCPServer{
		drafts:        drafts,
		candyMachines: candyMachines,
		deployments:   deployments,
	}
	mcpServer.InitializeTools(baseURL, serverPort)
	return mcpServer
}

func (s *MCPServer) InitializeTools(baseURL string, serverPort int) {
	srv := server.NewMCPServer(
		"Launchpad Drafts MCP Server",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	srv.AddPrompt(mcp.NewPrompt("launchpad-drafts-usage",
		mcp.WithPromptDescription("Instructions and guidance for using the draft and candy machine tools"),
		mcp.WithArgument("tool_category",
			mcp.ArgumentDescription("Category of tools to get instructions for (draft, candy_machine, or all)"),
			mcp.RequiredArgument(),
		),
	), func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		category := request.Params.Arguments["tool_category"]
		if category == "" {
			return nil, fmt.Errorf("tool_category is required")
		}

		return mcp.NewGetPromptResult(
			fmt.Sprintf("Launchpad Drafts Tools - %s", category),
			[]mcp.PromptMessage{
				mcp.NewPromptMessage(
					mcp.RoleUser,
					mcp.NewTextContent(getToolInstructions(category)),
				),
			},
		), nil
	})

	// Draft Tools
	listDraftsTool, listDraftsHandler := tools.NewListDraftsTool(s.drafts)
	srv.AddTool(listDraftsTool, listDraftsHandler)

	getDraftTool, getDraftHandler := tools.NewGetDraftTool(s.drafts, baseURL, serverPort)
	srv.AddTool(getDraftTool, getDraftHandler)

	deleteDraftTool, deleteDraftHandler := tools.NewDeleteDraftTool(s.drafts)
	srv.AddTool(deleteDraftTool, deleteDraftHandler)

	// Candy Machine Tools
	listCandyMachinesTool, listCandyMachinesHandler := tools.NewListCandyMachinesTool(s.candyMachines)
	srv.AddTool(listCandyMachinesTool, listCandyMachinesHandler)

	getCandyMachineTool, getCandyMachineHandler := tools.NewGetCandyMachineTool(s.candyMachines)
	srv.AddTool(getCandyMachineTool, getCandyMachineHandler)

	updateCandyMachineTool := tools.NewUpdateCandyMachineTool(s.deployments)
	srv.AddTool(updateCandyMachineTool.GetTool(), updateCandyMachineTool.GetHandler())

	listChainsTool, listChainsHandler := tools.NewListChainsTool(s.drafts, s.candyMachines)
	srv.AddTool(listChainsTool, listChainsHandler)

	s.server = srv
}

func getToolInstructions(category string) string {
	switch category {
	case "draft":
		return `Draft Tools:

1. list_drafts - List saved drafts, optionally filtered by blockchain
2. get_draft - Show one draft with its form data, asset metadata and resume URL
3. delete_draft - Remove a draft and its stored assets`
	case "candy_machine":
		return `Candy Machine Tools:

1. list_candy_machines - List candy machine records, optionally filtered by deployment status
2. get_candy_machine - Show one candy machine record
3. update_candy_machine - Record deployment progress (status, addresses, transactions, errors)
4. list_chains - Show supported chains and the address formats update_candy_machine accepts

Status moves pending -> deploying -> deployed or failed. A failed record may be retried.
Deployed is final.`
	default:
		return getToolInstructions("draft") + "\n\n" + getToolInstructions("candy_machine")
	}
}

func (s *MCPServer) Start() error {
	return server.ServeStdio(s.server)
}

// StreamableHTTPServer exposes the tools over the streamable HTTP transport.
func (s *MCPServer) StreamableHTTPServer() *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(s.server)
}

func (s *MCPServer) GetServer() *server.MCPServer {
	return s.server
}
