package tools

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rxtech-lab/launchpad-drafts/internal/models"
)

func (suite *ToolsTestSuite) TestListDraftsToolMetadata() {
	tool, handler := NewListDraftsTool(suite.drafts)

	suite.Equal("list_drafts", tool.Name)
	suite.NotEmpty(tool.Description)
	suite.NotNil(handler)
	suite.Contains(tool.InputSchema.Properties, "blockchain")
	suite.Contains(tool.InputSchema.Properties, "limit")
}

func (suite *ToolsTestSuite) TestListDraftsEmpty() {
	_, handler := NewListDraftsTool(suite.drafts)

	result, err := handler(suite.ctx, callRequest(map[string]any{}))
	suite.Require().NoError(err)
	suite.False(result.IsError)
	suite.Require().Len(result.Content, 1)
	suite.Contains(result.Content[0].(mcp.TextContent).Text, "No drafts found")
}

func (suite *ToolsTestSuite) TestListDrafts() {
	suite.saveDraft("solana-1", "solana", models.FormData{"name": "Sol"})
	suite.saveDraft("ethereum-1", "ethereum", models.FormData{"name": "Eth"})
	suite.saveDraft("solana-2", "solana", nil)
	_, handler := NewListDraftsTool(suite.drafts)

	result, err := handler(suite.ctx, callRequest(map[string]any{"blockchain": "solana"}))
	suite.Require().NoError(err)
	out := suite.resultJSON(result, "Drafts listed successfully: ")
	suite.Equal(float64(2), out["count"])
	for _, d := range out["drafts"].([]any) {
		draft := d.(map[string]any)
		suite.Equal("solana", draft["blockchain"])
		suite.Equal(true, draft["hasCollectionImage"])
		suite.Equal(float64(0), draft["nftAssetCount"])
	}

	result, err = handler(suite.ctx, callRequest(map[string]any{"limit": "1"}))
	suite.Require().NoError(err)
	out = suite.resultJSON(result, "Drafts listed successfully: ")
	suite.Equal(float64(1), out["count"])
	suite.Equal(float64(3), out["total"])

	result, err = handler(suite.ctx, callRequest(map[string]any{"blockchain": "sol-ana"}))
	suite.Require().NoError(err)
	suite.Contains(suite.errorText(result), "Invalid blockchain")
}

func (suite *ToolsTestSuite) TestListDraftsAcceptsAnyStoredChain() {
	suite.saveDraft("sol-1", "sol", models.FormData{"name": "Short"})
	_, handler := NewListDraftsTool(suite.drafts)

	result, err := handler(suite.ctx, callRequest(map[string]any{"blockchain": "sol"}))
	suite.Require().NoError(err)
	suite.False(result.IsError)
	out := suite.resultJSON(result, "Drafts listed successfully: ")
	suite.Equal(float64(1), out["count"])
	draft := out["drafts"].([]any)[0].(map[string]any)
	suite.Equal("sol-1", draft["id"])
	suite.Equal("Short", draft["name"])
}

func (suite *ToolsTestSuite) TestGetDraft() {
	suite.saveDraft("solana-1", "solana", models.FormData{"name": "Sol"})
	tool, handler := NewGetDraftTool(suite.drafts, "", 8080)
	suite.Equal("get_draft", tool.Name)
	suite.Contains(tool.InputSchema.Required, "draft_id")

	result, err := handler(suite.ctx, callRequest(map[string]any{"draft_id": "solana-1"}))
	suite.Require().NoError(err)
	out := suite.resultJSON(result, "Draft loaded successfully: ")
	suite.Equal("http://localhost:8080/api/drafts/solana-1", out["url"])

	draft := out["draft"].(map[string]any)
	suite.Equal(map[string]any{"name": "Sol"}, draft["formData"])
	suite.Equal("cover.png", draft["collectionImage"].(map[string]any)["name"])

	result, err = handler(suite.ctx, callRequest(map[string]any{"draft_id": "solana-missing"}))
	suite.Require().NoError(err)
	suite.Contains(suite.errorText(result), "Draft not found")

	_, err = handler(suite.ctx, callRequest(map[string]any{}))
	suite.Error(err)
}

func (suite *ToolsTestSuite) TestGetDraftWithBaseURL() {
	suite.saveDraft("solana-1", "solana", nil)
	_, handler := NewGetDraftTool(suite.drafts, "https://launchpad.example.com", 8080)

	result, err := handler(suite.ctx, callRequest(map[string]any{"draft_id": "solana-1"}))
	suite.Require().NoError(err)
	out := suite.resultJSON(result, "Draft loaded successfully: ")
	suite.Equal("https://launchpad.example.com/api/drafts/solana-1", out["url"])
}

func (suite *ToolsTestSuite) TestDeleteDraft() {
	suite.saveDraft("solana-1", "solana", nil)
	tool, handler := NewDeleteDraftTool(suite.drafts)
	suite.Equal("delete_draft", tool.Name)

	for i := 0; i < 2; i++ {
		result, err := handler(suite.ctx, callRequest(map[string]any{"draft_id": "solana-1"}))
		suite.Require().NoError(err)
		suite.False(result.IsError)
	}

	draft, err := suite.drafts.Load(suite.ctx, "solana-1")
	suite.Require().NoError(err)
	suite.Nil(draft)
}
