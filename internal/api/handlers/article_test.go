package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/rei/cms-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doJSON(t *testing.T, method, url string, cookie *http.Cookie, body any) *http.Response {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func adminCookie(t *testing.T, ts *testutil.TestServer) *http.Cookie {
	t.Helper()
	user, rawPassword := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	return testutil.Login(t, ts, user.Email, rawPassword)
}

func TestArticleHandler_PublicRoutes(t *testing.T) {
	ts := testutil.NewTestServer(t)

	published := testutil.NewArticleBuilder().WithSlug("published-piece").Build(t, ts.DB.DB)
	testutil.NewArticleBuilder().WithSlug("draft-piece").Unpublished().Build(t, ts.DB.DB)

	t.Run("list shows only published", func(t *testing.T) {
		resp, err := http.Get(ts.URL("/articles"))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			Articles []struct {
				ID   string `json:"id"`
				Slug string `json:"slug"`
			} `json:"articles"`
		}
		testutil.AssertJSONResponse(t, resp, &result)
		require.Len(t, result.Articles, 1)
		assert.Equal(t, published.ID.String(), result.Articles[0].ID)
	})

	t.Run("detail serves html but not markdown", func(t *testing.T) {
		resp, err := http.Get(ts.URL("/articles/published-piece"))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			Article map[string]any `json:"article"`
		}
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Equal(t, published.HTML, result.Article["html"])
		assert.NotContains(t, result.Article, "markdown")
	})

	t.Run("draft detail is 404", func(t *testing.T) {
		resp, err := http.Get(ts.URL("/articles/draft-piece"))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestArticleHandler_AdminRequiresAuth(t *testing.T) {
	ts := testutil.NewTestServer(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/admin/articles"},
		{http.MethodPost, "/admin/articles"},
		{http.MethodPut, "/admin/articles/00000000-0000-0000-0000-000000000000"},
		{http.MethodDelete, "/admin/articles/00000000-0000-0000-0000-000000000000"},
	} {
		resp := doJSON(t, route.method, ts.URL(route.path), nil, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", route.method, route.path)
	}
}

func TestArticleHandler_Create(t *testing.T) {
	ts := testutil.NewTestServer(t)
	cookie := adminCookie(t, ts)

	t.Run("renders markdown and derives slug", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, ts.URL("/admin/articles"), cookie, map[string]any{
			"title":    "Hello, World!",
			"markdown": "# Hello\n\nSome <script>alert(1)</script> text.",
		})
		defer resp.Body.Close()

		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var article struct {
			Slug      string `json:"slug"`
			HTML      string `json:"html"`
			Published bool   `json:"published"`
		}
		testutil.AssertJSONResponse(t, resp, &article)
		assert.Equal(t, "hello-world", article.Slug)
		assert.Contains(t, article.HTML, "<h1>Hello</h1>")
		assert.NotContains(t, article.HTML, "<script>")
		assert.False(t, article.Published, "articles default to draft")
	})

	t.Run("slug collision gets a suffix", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, ts.URL("/admin/articles"), cookie, map[string]any{
			"title":    "Hello, World!",
			"markdown": "Second take.",
		})
		defer resp.Body.Close()

		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var article struct {
			Slug string `json:"slug"`
		}
		testutil.AssertJSONResponse(t, resp, &article)
		assert.True(t, strings.HasPrefix(article.Slug, "hello-world-"), "got slug %q", article.Slug)
		assert.NotEqual(t, "hello-world", article.Slug)
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name string
			body map[string]any
		}{
			{"empty title", map[string]any{"title": "", "markdown": "x"}},
			{"oversized title", map[string]any{"title": strings.Repeat("a", 201), "markdown": "x"}},
			{"empty markdown", map[string]any{"title": "ok", "markdown": ""}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				resp := doJSON(t, http.MethodPost, ts.URL("/admin/articles"), cookie, tt.body)
				resp.Body.Close()
				assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			})
		}
	})
}

func TestArticleHandler_UpdateAndDelete(t *testing.T) {
	ts := testutil.NewTestServer(t)
	cookie := adminCookie(t, ts)

	article := testutil.NewArticleBuilder().
		WithTitle("Original Title").
		WithSlug("original-title").
		Unpublished().
		Build(t, ts.DB.DB)

	t.Run("partial update keeps html when markdown untouched", func(t *testing.T) {
		resp := doJSON(t, http.MethodPut, ts.URL("/admin/articles/"+article.ID.String()), cookie, map[string]any{
			"published": true,
		})
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var updated struct {
			Title     string `json:"title"`
			HTML      string `json:"html"`
			Published bool   `json:"published"`
		}
		testutil.AssertJSONResponse(t, resp, &updated)
		assert.Equal(t, article.Title, updated.Title)
		assert.Equal(t, article.HTML, updated.HTML)
		assert.True(t, updated.Published)
	})

	t.Run("new markdown re-renders html", func(t *testing.T) {
		resp := doJSON(t, http.MethodPut, ts.URL("/admin/articles/"+article.ID.String()), cookie, map[string]any{
			"markdown": "## Updated",
		})
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var updated struct {
			HTML string `json:"html"`
		}
		testutil.AssertJSONResponse(t, resp, &updated)
		assert.Contains(t, updated.HTML, "<h2>Updated</h2>")
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		resp := doJSON(t, http.MethodPut, ts.URL("/admin/articles/11111111-1111-1111-1111-111111111111"), cookie, map[string]any{
			"published": true,
		})
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("invalid id is 400", func(t *testing.T) {
		resp := doJSON(t, http.MethodPut, ts.URL("/admin/articles/not-a-uuid"), cookie, map[string]any{})
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("delete", func(t *testing.T) {
		resp := doJSON(t, http.MethodDelete, ts.URL("/admin/articles/"+article.ID.String()), cookie, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		getResp := doJSON(t, http.MethodGet, ts.URL("/admin/articles/"+article.ID.String()), cookie, nil)
		getResp.Body.Close()
		assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
	})
}
