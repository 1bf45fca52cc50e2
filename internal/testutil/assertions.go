package testutil

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

// AssertJSONResponse checks the content type and decodes the body into out.
func AssertJSONResponse(t *testing.T, resp *http.Response, out any) {
	t.Helper()

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		t.Fatalf("expected JSON response, got content type %q", contentType)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
}
