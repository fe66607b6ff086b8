package utils

import (
	"fmt"
	"net/url"
)

// GetDraftUrl returns the HTTP API address that serves a draft
// (GET /api/drafts/:id). baseUrl overrides the local server address when set.
func GetDraftUrl(baseUrl string, serverPort int, draftId string) (string, error) {
	if baseUrl != "" {
		parsedUrl, err := url.Parse(baseUrl)
		if err != nil {
			return "", fmt.Errorf("invalid base url: %w", err)
		}
		if parsedUrl.Scheme == "" || parsedUrl.Host == "" {
			return "", fmt.Errorf("invalid base url: %s", baseUrl)
		}
		return parsedUrl.JoinPath("api", "drafts", draftId).String(), nil
	}

	return fmt.Sprintf("http://localhost:%d/api/drafts/%s", serverPort, url.PathEscape(draftId)), nil
}
