package tools

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rxtech-lab/launchpad-drafts/internal/models"
)

func (suite *ToolsTestSuite) TestListCandyMachines() {
	for _, id := range []string{"A", "B", "C"} {
		suite.saveCandyMachine(id)
	}
	_, err := suite.deployments.Update(suite.ctx, "B", models.CandyMachinePatch{
		DeploymentStatus: models.Some(models.DeploymentStatusFailed),
	})
	suite.Require().NoError(err)

	tool, handler := NewListCandyMachinesTool(suite.candyMachines)
	suite.Equal("list_candy_machines", tool.Name)
	suite.Contains(tool.InputSchema.Properties, "status")

	result, err := handler(suite.ctx, callRequest(map[string]any{}))
	suite.Require().NoError(err)
	out := suite.resultJSON(result, "Candy machines listed successfully: ")
	suite.Equal(float64(3), out["count"])

	result, err = handler(suite.ctx, callRequest(map[string]any{"status": "failed"}))
	suite.Require().NoError(err)
	out = suite.resultJSON(result, "Candy machines listed successfully: ")
	suite.Equal(float64(1), out["count"])
	suite.Equal("B", out["candyMachines"].([]any)[0].(map[string]any)["id"])

	result, err = handler(suite.ctx, callRequest(map[string]any{"limit": "2", "offset": "2"}))
	suite.Require().NoError(err)
	out = suite.resultJSON(result, "Candy machines listed successfully: ")
	suite.Equal(float64(1), out["count"])
	suite.Equal(float64(3), out["total"])

	result, err = handler(suite.ctx, callRequest(map[string]any{"offset": "10"}))
	suite.Require().NoError(err)
	out = suite.resultJSON(result, "Candy machines listed successfully: ")
	suite.Equal(float64(0), out["count"])

	result, err = handler(suite.ctx, callRequest(map[string]any{"status": "exploded"}))
	suite.Require().NoError(err)
	suite.Contains(suite.errorText(result), "Invalid status")
}

func (suite *ToolsTestSuite) TestGetCandyMachine() {
	suite.saveCandyMachine("cm-1")
	tool, handler := NewGetCandyMachineTool(suite.candyMachines)
	suite.Equal("get_candy_machine", tool.Name)

	result, err := handler(suite.ctx, callRequest(map[string]any{"candy_machine_id": "cm-1"}))
	suite.Require().NoError(err)
	out := suite.resultJSON(result, "Candy machine loaded successfully: ")
	suite.Equal("Foo Collection", out["name"])
	suite.Equal("pending", out["deploymentStatus"])

	result, err = handler(suite.ctx, callRequest(map[string]any{"candy_machine_id": "cm-missing"}))
	suite.Require().NoError(err)
	suite.Contains(suite.errorText(result), "Candy machine not found")
}

func (suite *ToolsTestSuite) TestUpdateCandyMachine() {
	suite.saveCandyMachine("cm-1")
	updateTool := NewUpdateCandyMachineTool(suite.deployments)
	tool := updateTool.GetTool()
	suite.Equal("update_candy_machine", tool.Name)
	suite.Contains(tool.InputSchema.Required, "candy_machine_id")
	suite.Contains(tool.InputSchema.Required, "patch")
	handler := updateTool.GetHandler()

	result, err := handler(suite.ctx, callRequest(map[string]any{
		"candy_machine_id": "cm-1",
		"patch": map[string]any{
			"deploymentStatus": "failed",
			"deploymentError":  "insufficient funds",
		},
	}))
	suite.Require().NoError(err)
	out := suite.resultJSON(result, "Candy machine updated successfully: ")
	suite.Equal("failed", out["deploymentStatus"])
	suite.Equal("insufficient funds", out["deploymentError"])

	result, err = handler(suite.ctx, callRequest(map[string]any{
		"candy_machine_id": "cm-1",
		"patch": map[string]any{
			"deploymentStatus": "deploying",
			"deploymentError":  nil,
		},
	}))
	suite.Require().NoError(err)
	out = suite.resultJSON(result, "Candy machine updated successfully: ")
	suite.Equal("deploying", out["deploymentStatus"])
	suite.NotContains(out, "deploymentError")
	suite.Equal("FOO", out["symbol"])
}

func (suite *ToolsTestSuite) TestUpdateCandyMachineErrors() {
	suite.saveCandyMachine("cm-1")
	handler := NewUpdateCandyMachineTool(suite.deployments).GetHandler()

	result, err := handler(suite.ctx, callRequest(map[string]any{"patch": map[string]any{"name": "x"}}))
	suite.Require().NoError(err)
	suite.Contains(suite.errorText(result), "Invalid arguments")

	result, err = handler(suite.ctx, callRequest(map[string]any{"candy_machine_id": "cm-1", "patch": map[string]any{}}))
	suite.Require().NoError(err)
	suite.Contains(suite.errorText(result), "No fields to update")

	result, err = handler(suite.ctx, callRequest(map[string]any{"candy_machine_id": "cm-missing", "patch": map[string]any{"name": "x"}}))
	suite.Require().NoError(err)
	suite.Contains(suite.errorText(result), "Candy machine not found")

	result, err = handler(suite.ctx, callRequest(map[string]any{
		"candy_machine_id": "cm-1",
		"patch":            map[string]any{"candyMachineAddress": "not-base58-0OIl"},
	}))
	suite.Require().NoError(err)
	suite.Contains(suite.errorText(result), "Failed to update candy machine")
}

func (suite *ToolsTestSuite) TestListChains() {
	suite.saveDraft("solana-1", "solana", nil)
	suite.saveDraft("solana-2", "solana", nil)
	suite.saveCandyMachine("cm-1")

	tool, handler := NewListChainsTool(suite.drafts, suite.candyMachines)
	suite.Equal("list_chains", tool.Name)

	result, err := handler(suite.ctx, callRequest(map[string]any{}))
	suite.Require().NoError(err)
	suite.Require().False(result.IsError)

	var out struct {
		Chains []struct {
			ChainType         string `json:"chain_type"`
			IsDefault         bool   `json:"is_default"`
			DraftCount        int    `json:"draft_count"`
			CandyMachineCount int    `json:"candy_machine_count"`
		} `json:"chains"`
		Total int `json:"total"`
	}
	suite.Require().NoError(json.Unmarshal([]byte(result.Content[0].(mcp.TextContent).Text), &out))
	suite.Equal(2, out.Total)
	suite.Equal("ethereum", out.Chains[0].ChainType)
	suite.False(out.Chains[0].IsDefault)
	suite.Zero(out.Chains[0].DraftCount)
	suite.Equal("solana", out.Chains[1].ChainType)
	suite.True(out.Chains[1].IsDefault)
	suite.Equal(2, out.Chains[1].DraftCount)
	suite.Equal(1, out.Chains[1].CandyMachineCount)

	result, err = handler(suite.ctx, callRequest(map[string]any{"chain_type": "ethereum"}))
	suite.Require().NoError(err)
	suite.Require().NoError(json.Unmarshal([]byte(result.Content[0].(mcp.TextContent).Text), &out))
	suite.Equal(1, out.Total)

	result, err = handler(suite.ctx, callRequest(map[string]any{"chain_type": "dogecoin"}))
	suite.Require().NoError(err)
	suite.Contains(suite.errorText(result), "Invalid chain_type")
}
