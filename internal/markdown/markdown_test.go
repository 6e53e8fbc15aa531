package markdown

import (
	"strings"
	"testing"
)

func TestRenderInlineStripsParagraph(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"**bold** and *italic*", "<strong>bold</strong> and <em>italic</em>"},
		{"`code`", "<code>code</code>"},
		{"What is 2+2?", "What is 2+2?"},
	}
	for _, tt := range tests {
		got, err := RenderInline(tt.in)
		if err != nil {
			t.Fatalf("RenderInline(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("RenderInline(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderBlockKeepsParagraphs(t *testing.T) {
	got, err := RenderBlock("first\n\nsecond")
	if err != nil {
		t.Fatalf("RenderBlock: %v", err)
	}
	if !strings.Contains(got, "<p>first</p>") || !strings.Contains(got, "<p>second</p>") {
		t.Errorf("RenderBlock = %q", got)
	}
}

func TestRenderBlockFencedCode(t *testing.T) {
	got, err := RenderBlock("```\n<quiz>example</quiz>\n```")
	if err != nil {
		t.Fatalf("RenderBlock: %v", err)
	}
	if !strings.Contains(got, "<pre><code>") {
		t.Errorf("fenced block not rendered as code: %q", got)
	}
	if !strings.Contains(got, "&lt;quiz&gt;") {
		t.Errorf("code content not escaped: %q", got)
	}
}
