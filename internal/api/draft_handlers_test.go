package api

import (
	"net/http"
	"net/http/httptest"

	"github.com/rxtech-lab/launchpad-drafts/internal/utils"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func (suite *APITestSuite) TestSaveAndGetDraft() {
	resp, body := suite.doMultipart(http.MethodPost, "/api/drafts",
		map[string]string{
			"id":         "solana-api",
			"blockchain": "solana",
			"formData":   `{"name":"Foo","symbol":"FOO"}`,
		},
		multipartFile{field: "collectionImage", filename: "cover.png", contentType: "image/png", data: pngBytes},
		multipartFile{field: "nftAssets", filename: "0.json", contentType: "application/json", data: []byte(`{"name":"#0"}`)},
		multipartFile{field: "nftAssets", filename: "1.json", contentType: "application/json", data: []byte(`{"name":"#1"}`)},
	)
	suite.Require().Equal(http.StatusCreated, resp.StatusCode, string(body))

	resp, body = suite.do(httptest.NewRequest(http.MethodGet, "/api/drafts/solana-api", nil))
	suite.Require().Equal(http.StatusOK, resp.StatusCode)

	draft := suite.decode(body)
	suite.Equal("solana", draft["blockchain"])
	suite.Equal(map[string]any{"name": "Foo", "symbol": "FOO"}, draft["formData"])
	suite.Equal(map[string]any{"name": "cover.png", "type": "image/png", "size": float64(len(pngBytes))}, draft["collectionImage"])
	suite.Len(draft["nftAssets"], 2)
}

func (suite *APITestSuite) TestSaveDraftMintsID() {
	resp, body := suite.doMultipart(http.MethodPost, "/api/drafts", map[string]string{"blockchain": "ethereum"})
	suite.Require().Equal(http.StatusCreated, resp.StatusCode)

	id, _ := suite.decode(body)["id"].(string)
	suite.Contains(id, "ethereum-")
}

func (suite *APITestSuite) TestSaveDraftValidation() {
	resp, _ := suite.doMultipart(http.MethodPost, "/api/drafts", map[string]string{"id": "x"})
	suite.Equal(http.StatusBadRequest, resp.StatusCode)

	resp, _ = suite.doMultipart(http.MethodPost, "/api/drafts", map[string]string{
		"blockchain": "solana",
		"formData":   `{"unknown":true}`,
	})
	suite.Equal(http.StatusBadRequest, resp.StatusCode)

	resp, _ = suite.doMultipart(http.MethodPost, "/api/drafts", map[string]string{
		"blockchain": "solana",
		"formData":   `{not json`,
	})
	suite.Equal(http.StatusBadRequest, resp.StatusCode)

	req := httptest.NewRequest(http.MethodPost, "/api/drafts", nil)
	req.Header.Set("Content-Type", "application/json")
	resp, _ = suite.do(req)
	suite.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (suite *APITestSuite) TestAssetDownloads() {
	resp, _ := suite.doMultipart(http.MethodPost, "/api/drafts",
		map[string]string{"id": "solana-dl", "blockchain": "solana"},
		multipartFile{field: "collectionImage", filename: "cover.png", contentType: "image/png", data: pngBytes},
		multipartFile{field: "nftAssets", filename: "0.json", contentType: "application/json", data: []byte(`{"n":0}`)},
	)
	suite.Require().Equal(http.StatusCreated, resp.StatusCode)

	resp, body := suite.do(httptest.NewRequest(http.MethodGet, "/api/drafts/solana-dl/collection-image", nil))
	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Equal("image/png", resp.Header.Get("Content-Type"))
	suite.Contains(resp.Header.Get("Content-Disposition"), "cover.png")
	suite.Equal(pngBytes, body)

	resp, body = suite.do(httptest.NewRequest(http.MethodGet, "/api/drafts/solana-dl/nft-assets/0", nil))
	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Equal(`{"n":0}`, string(body))

	resp, _ = suite.do(httptest.NewRequest(http.MethodGet, "/api/drafts/solana-dl/nft-assets/1", nil))
	suite.Equal(http.StatusNotFound, resp.StatusCode)

	resp, _ = suite.do(httptest.NewRequest(http.MethodGet, "/api/drafts/solana-dl/nft-assets/-1", nil))
	suite.Equal(http.StatusBadRequest, resp.StatusCode)

	resp, _ = suite.do(httptest.NewRequest(http.MethodGet, "/api/drafts/missing/collection-image", nil))
	suite.Equal(http.StatusNotFound, resp.StatusCode)
}

func (suite *APITestSuite) TestAssetWithoutContentType() {
	resp, body := suite.doMultipart(http.MethodPost, "/api/drafts",
		map[string]string{"id": "solana-untyped", "blockchain": "solana"},
		multipartFile{field: "collectionImage", filename: "cover", contentType: "", data: pngBytes},
	)
	suite.Require().Equal(http.StatusCreated, resp.StatusCode, string(body))

	resp, body = suite.do(httptest.NewRequest(http.MethodGet, "/api/drafts/solana-untyped", nil))
	suite.Require().Equal(http.StatusOK, resp.StatusCode)
	image := suite.decode(body)["collectionImage"].(map[string]any)
	suite.Equal("", image["type"])

	resp, body = suite.do(httptest.NewRequest(http.MethodGet, "/api/drafts/solana-untyped/collection-image", nil))
	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Equal("image/png", resp.Header.Get("Content-Type"))
	suite.Equal(pngBytes, body)
}

func (suite *APITestSuite) TestDraftURLIsServed() {
	resp, body := suite.doMultipart(http.MethodPost, "/api/drafts",
		map[string]string{"id": "solana-link", "blockchain": "solana", "formData": `{"name":"Linked"}`},
	)
	suite.Require().Equal(http.StatusCreated, resp.StatusCode, string(body))

	draftURL, err := utils.GetDraftUrl("", 8080, "solana-link")
	suite.Require().NoError(err)

	resp, body = suite.do(httptest.NewRequest(http.MethodGet, draftURL, nil))
	suite.Require().Equal(http.StatusOK, resp.StatusCode, string(body))
	draft := suite.decode(body)
	suite.Equal("solana-link", draft["id"])
	suite.Equal(map[string]any{"name": "Linked"}, draft["formData"])

	draftURL, err = utils.GetDraftUrl("https://launchpad.example.com", 8080, "solana-link")
	suite.Require().NoError(err)
	resp, _ = suite.do(httptest.NewRequest(http.MethodGet, draftURL, nil))
	suite.Equal(http.StatusOK, resp.StatusCode)
}

func (suite *APITestSuite) TestUpdateDraft() {
	resp, _ := suite.doMultipart(http.MethodPost, "/api/drafts",
		map[string]string{"id": "solana-upd", "blockchain": "solana", "formData": `{"name":"Foo"}`},
		multipartFile{field: "collectionImage", filename: "cover.png", contentType: "image/png", data: pngBytes},
		multipartFile{field: "nftAssets", filename: "0.json", contentType: "application/json", data: []byte(`{}`)},
	)
	suite.Require().Equal(http.StatusCreated, resp.StatusCode)

	// Only formData changes.
	resp, body := suite.doMultipart(http.MethodPatch, "/api/drafts/solana-upd", map[string]string{"formData": `{"name":"Bar"}`})
	suite.Require().Equal(http.StatusOK, resp.StatusCode, string(body))
	draft := suite.decode(body)
	suite.Equal(map[string]any{"name": "Bar"}, draft["formData"])
	suite.NotNil(draft["collectionImage"])
	suite.Len(draft["nftAssets"], 1)

	// Clear both asset groups.
	resp, body = suite.doMultipart(http.MethodPatch, "/api/drafts/solana-upd", map[string]string{
		"clearCollectionImage": "true",
		"clearNftAssets":       "true",
	})
	suite.Require().Equal(http.StatusOK, resp.StatusCode)
	draft = suite.decode(body)
	suite.NotContains(draft, "collectionImage")
	suite.NotContains(draft, "nftAssets")
	suite.Equal(map[string]any{"name": "Bar"}, draft["formData"])

	resp, _ = suite.doMultipart(http.MethodPatch, "/api/drafts/solana-upd", map[string]string{"clearNftAssets": "maybe"})
	suite.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (suite *APITestSuite) TestUpdateMissingDraft() {
	resp, _ := suite.doMultipart(http.MethodPatch, "/api/drafts/solana-missing", map[string]string{"formData": `{"name":"x"}`})
	suite.Equal(http.StatusNotFound, resp.StatusCode)
}

func (suite *APITestSuite) TestDeleteAndListDrafts() {
	for _, id := range []string{"solana-A", "solana-B", "ethereum-C"} {
		chain := "solana"
		if id == "ethereum-C" {
			chain = "ethereum"
		}
		resp, _ := suite.doMultipart(http.MethodPost, "/api/drafts", map[string]string{"id": id, "blockchain": chain})
		suite.Require().Equal(http.StatusCreated, resp.StatusCode)
	}

	resp, _ := suite.do(httptest.NewRequest(http.MethodDelete, "/api/drafts/solana-B", nil))
	suite.Equal(http.StatusNoContent, resp.StatusCode)
	resp, _ = suite.do(httptest.NewRequest(http.MethodDelete, "/api/drafts/solana-B", nil))
	suite.Equal(http.StatusNoContent, resp.StatusCode)

	resp, body := suite.do(httptest.NewRequest(http.MethodGet, "/api/drafts", nil))
	suite.Require().Equal(http.StatusOK, resp.StatusCode)
	suite.Equal(float64(2), suite.decode(body)["count"])

	resp, body = suite.do(httptest.NewRequest(http.MethodGet, "/api/drafts?blockchain=solana", nil))
	suite.Require().Equal(http.StatusOK, resp.StatusCode)
	list := suite.decode(body)
	suite.Equal(float64(1), list["count"])
	suite.Equal("solana-A", list["drafts"].([]any)[0].(map[string]any)["id"])

	resp, _ = suite.do(httptest.NewRequest(http.MethodGet, "/api/drafts/solana-B", nil))
	suite.Equal(http.StatusNotFound, resp.StatusCode)
}
