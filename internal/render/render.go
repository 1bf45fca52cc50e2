// Package render converts user-authored markdown into sanitized HTML.
package render

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

// Raw HTML passes through the markdown renderer untouched; sanitization is
// the sole gate, so the policy below is load-bearing.
var (
	markdown = goldmark.New(goldmark.WithRendererOptions(html.WithUnsafe()))
	policy   = bluemonday.UGCPolicy()
)

// MarkdownToHTML renders CommonMark markdown and strips any markup the UGC
// policy does not allow. The returned HTML is safe to serve verbatim.
func MarkdownToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return policy.Sanitize(buf.String()), nil
}
