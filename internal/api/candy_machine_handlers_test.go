package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
)

func candyMachineBody(id string) map[string]any {
	return map[string]any{
		"id":          id,
		"blockchain":  "solana",
		"name":        "Foo Collection",
		"symbol":      "FOO",
		"supply":      100,
		"mintPrice":   0.5,
		"manifestUrl": "https://arweave.net/manifest.json",
	}
}

func (suite *APITestSuite) TestSaveAndGetCandyMachine() {
	resp, body := suite.doJSON(http.MethodPost, "/api/candy-machines", candyMachineBody("cm-1"))
	suite.Require().Equal(http.StatusCreated, resp.StatusCode, string(body))

	saved := suite.decode(body)
	suite.Equal("pending", saved["deploymentStatus"])
	suite.NotZero(saved["createdAt"])

	resp, body = suite.do(httptest.NewRequest(http.MethodGet, "/api/candy-machines/cm-1", nil))
	suite.Require().Equal(http.StatusOK, resp.StatusCode)
	suite.Equal("Foo Collection", suite.decode(body)["name"])

	resp, _ = suite.do(httptest.NewRequest(http.MethodGet, "/api/candy-machines/cm-missing", nil))
	suite.Equal(http.StatusNotFound, resp.StatusCode)
}

func (suite *APITestSuite) TestSaveCandyMachineValidation() {
	invalid := candyMachineBody("cm-bad")
	invalid["supply"] = 0
	resp, _ := suite.doJSON(http.MethodPost, "/api/candy-machines", invalid)
	suite.Equal(http.StatusBadRequest, resp.StatusCode)

	req := httptest.NewRequest(http.MethodPost, "/api/candy-machines", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	resp, _ = suite.do(req)
	suite.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (suite *APITestSuite) TestPatchCandyMachine() {
	record := candyMachineBody("cm-patch")
	record["deploymentError"] = "previous attempt failed"
	resp, _ := suite.doJSON(http.MethodPost, "/api/candy-machines", record)
	suite.Require().Equal(http.StatusCreated, resp.StatusCode)

	resp, body := suite.doJSON(http.MethodPatch, "/api/candy-machines/cm-patch", map[string]any{
		"deploymentStatus": "deploying",
		"deploymentError":  nil,
	})
	suite.Require().Equal(http.StatusOK, resp.StatusCode, string(body))

	updated := suite.decode(body)
	suite.Equal("deploying", updated["deploymentStatus"])
	suite.NotContains(updated, "deploymentError")
	suite.Equal("FOO", updated["symbol"])
	suite.Equal(float64(100), updated["supply"])
}

func (suite *APITestSuite) TestPatchCandyMachineErrors() {
	resp, _ := suite.doJSON(http.MethodPost, "/api/candy-machines", candyMachineBody("cm-err"))
	suite.Require().Equal(http.StatusCreated, resp.StatusCode)

	resp, _ = suite.doJSON(http.MethodPatch, "/api/candy-machines/cm-err", map[string]any{})
	suite.Equal(http.StatusBadRequest, resp.StatusCode)

	resp, _ = suite.doJSON(http.MethodPatch, "/api/candy-machines/cm-missing", map[string]any{"name": "x"})
	suite.Equal(http.StatusNotFound, resp.StatusCode)

	resp, _ = suite.doJSON(http.MethodPatch, "/api/candy-machines/cm-err", map[string]any{"deploymentStatus": "deployed"})
	suite.Require().Equal(http.StatusOK, resp.StatusCode)

	resp, body := suite.doJSON(http.MethodPatch, "/api/candy-machines/cm-err", map[string]any{"deploymentStatus": "pending"})
	suite.Equal(http.StatusConflict, resp.StatusCode)
	suite.Contains(suite.decode(body)["error"], "invalid deployment status transition")
}

func (suite *APITestSuite) TestListAndDeleteCandyMachines() {
	for _, id := range []string{"A", "B"} {
		resp, _ := suite.doJSON(http.MethodPost, "/api/candy-machines", candyMachineBody(id))
		suite.Require().Equal(http.StatusCreated, resp.StatusCode)
	}
	resp, _ := suite.doJSON(http.MethodPatch, "/api/candy-machines/B", map[string]any{"deploymentStatus": "failed"})
	suite.Require().Equal(http.StatusOK, resp.StatusCode)

	resp, body := suite.do(httptest.NewRequest(http.MethodGet, "/api/candy-machines?status=failed", nil))
	suite.Require().Equal(http.StatusOK, resp.StatusCode)
	suite.Equal(float64(1), suite.decode(body)["count"])

	resp, _ = suite.do(httptest.NewRequest(http.MethodGet, "/api/candy-machines?status=bogus", nil))
	suite.Equal(http.StatusBadRequest, resp.StatusCode)

	resp, _ = suite.do(httptest.NewRequest(http.MethodDelete, "/api/candy-machines/A", nil))
	suite.Equal(http.StatusNoContent, resp.StatusCode)

	resp, body = suite.do(httptest.NewRequest(http.MethodGet, "/api/candy-machines", nil))
	suite.Require().Equal(http.StatusOK, resp.StatusCode)
	suite.Equal(float64(1), suite.decode(body)["count"])
}
