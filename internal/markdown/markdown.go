// Package markdown renders quiz text fragments to HTML. Converters are
// constructed per call; no state is shared between renders.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

func newConverter() goldmark.Markdown {
	// WithUnsafe keeps raw HTML in questions and answers intact, mirroring
	// how the documentation site treats authored markdown.
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
}

// RenderBlock converts a markdown fragment to HTML, used for quiz content
// sections which may hold full block markup (paragraphs, lists, fences).
func RenderBlock(text string) (string, error) {
	var buf bytes.Buffer
	if err := newConverter().Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// RenderInline converts a short fragment (question or answer text) and strips
// the single wrapping paragraph tag so the result embeds inside labels and
// headings.
func RenderInline(text string) (string, error) {
	out, err := RenderBlock(strings.TrimSpace(text))
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") {
		out = out[len("<p>") : len(out)-len("</p>")]
	}
	return out, nil
}
