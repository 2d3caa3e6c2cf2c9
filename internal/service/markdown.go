package service

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)
	ugcPolicy    = bluemonday.UGCPolicy()
	strictPolicy = bluemonday.StrictPolicy()
)

// renderMarkdown converts post markdown to sanitized HTML. On a parser
// failure the sanitized source is returned as-is.
func renderMarkdown(source string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return ugcPolicy.Sanitize(source)
	}
	return ugcPolicy.Sanitize(buf.String())
}

// sanitizeContent strips dangerous markup from stored post content while
// keeping user formatting.
func sanitizeContent(content string) string {
	return ugcPolicy.Sanitize(content)
}

// sanitizeText strips all markup; used for comment text and titles.
func sanitizeText(text string) string {
	return strictPolicy.Sanitize(text)
}
