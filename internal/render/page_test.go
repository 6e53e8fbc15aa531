package render

import (
	"io"
	"log/slog"
	"strings"
	"testing"
)

func newProcessor() *PageProcessor {
	return NewPageProcessor(DefaultOptions(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestPageTwoPhaseFlow(t *testing.T) {
	p := newProcessor()
	md := "# Title\n\n<quiz>\nQ?\n- [x] a\n- [ ] b\n</quiz>\n\ntrailing text"

	out := p.MarkdownPhase("docs/a.md", md, nil)
	if strings.Contains(out, "<quiz>") {
		t.Error("quiz block must be replaced by a placeholder")
	}
	if !strings.Contains(out, "<!-- QUIZMD_PLACEHOLDER_0 -->") {
		t.Errorf("missing placeholder: %q", out)
	}
	if !strings.Contains(out, "# Title") || !strings.Contains(out, "trailing text") {
		t.Error("surrounding markdown must be preserved")
	}

	// Host converts markdown to HTML; the placeholder comment rides through.
	html := p.ContentPhase("docs/a.md", "<h1>Title</h1>\n<!-- QUIZMD_PLACEHOLDER_0 -->\n<p>trailing text</p>")
	if !strings.Contains(html, `<div class="quiz"`) {
		t.Errorf("placeholder not substituted: %q", html)
	}

	// Entries are drained per page: a second flush finds nothing.
	again := p.ContentPhase("docs/a.md", "<!-- QUIZMD_PLACEHOLDER_0 -->")
	if strings.Contains(again, "div class=\"quiz\"") {
		t.Error("pending entries must be cleared after the content phase")
	}
}

func TestPageMalformedQuizLeftUntouched(t *testing.T) {
	p := newProcessor()
	md := "<quiz>\nquestion but no answers\n</quiz>\n\n<quiz>\nQ?\n- [x] a\n</quiz>"

	out := p.MarkdownPhase("docs/b.md", md, nil)
	if !strings.Contains(out, "<quiz>\nquestion but no answers\n</quiz>") {
		t.Errorf("malformed block must stay verbatim: %q", out)
	}
	// The quiz after the failure still processes, keeping its document-order id.
	if !strings.Contains(out, "<!-- QUIZMD_PLACEHOLDER_1 -->") {
		t.Errorf("second quiz not processed: %q", out)
	}
}

func TestPageCodeExampleNotParsed(t *testing.T) {
	p := newProcessor()
	md := "Example of the syntax:\n\n```\n<quiz>\nQ?\n- [x] a\n</quiz>\n```\n"

	out := p.MarkdownPhase("docs/c.md", md, nil)
	if out != md {
		t.Errorf("fenced example must pass through unchanged:\nin:  %q\nout: %q", md, out)
	}
}

func TestPageIsolation(t *testing.T) {
	p := newProcessor()
	p.MarkdownPhase("docs/a.md", "<quiz>\nQ?\n- [x] a\n</quiz>", nil)
	p.MarkdownPhase("docs/b.md", "<quiz>\nOther?\n- [x] b\n</quiz>", nil)

	// Page b's flush must not consume or leak page a's entries.
	htmlB := p.ContentPhase("docs/b.md", "<!-- QUIZMD_PLACEHOLDER_0 -->")
	if !strings.Contains(htmlB, "Other?") {
		t.Errorf("page b placeholder not filled: %q", htmlB)
	}
	htmlA := p.ContentPhase("docs/a.md", "<!-- QUIZMD_PLACEHOLDER_0 -->")
	if !strings.Contains(htmlA, "Q?") {
		t.Errorf("page a placeholder not filled: %q", htmlA)
	}
}

func TestPageMetaOverrides(t *testing.T) {
	p := newProcessor()
	out := p.MarkdownPhase("docs/d.md", "<quiz>\nQ?\n- [x] a\n</quiz>",
		map[string]any{"question_tag": "h2", "show_correct": false})
	html := p.ContentPhase("docs/d.md", out)
	if !strings.Contains(html, "<h2 id=\"quiz-0\">") {
		t.Errorf("page meta question_tag not applied: %q", html)
	}
	if strings.Contains(html, "data-show-correct") {
		t.Error("page meta show_correct=false not applied")
	}
}
