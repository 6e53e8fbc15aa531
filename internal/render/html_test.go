package render

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/quizmd/quizmd/internal/quiz"
)

func parseQuiz(t *testing.T, inner string) quiz.Quiz {
	t.Helper()
	q, err := quiz.ParseCheckbox(inner)
	if err != nil {
		t.Fatalf("ParseCheckbox: %v", err)
	}
	return q
}

func renderDoc(t *testing.T, q quiz.Quiz, quizID int, opts Options) *goquery.Document {
	t.Helper()
	html, err := Render(q, quizID, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse rendered html: %v", err)
	}
	return doc
}

func TestRenderSingleChoice(t *testing.T) {
	q := parseQuiz(t, "What is 2+2?\n- [x] 4\n- [ ] 3\n- [ ] 5\n\nThe answer is 4.")
	doc := renderDoc(t, q, 0, DefaultOptions())

	if n := doc.Find(`input[type="radio"]`).Length(); n != 3 {
		t.Errorf("got %d radio inputs, want 3", n)
	}
	if n := doc.Find(`input[correct]`).Length(); n != 1 {
		t.Errorf("got %d correct inputs, want exactly 1", n)
	}
	if got := doc.Find("section.content").Text(); !strings.Contains(got, "The answer is 4.") {
		t.Errorf("content section = %q", got)
	}
	// Auto-submit on a single-choice quiz suppresses the submit button.
	if doc.Find("button").Length() != 0 {
		t.Error("single-choice with auto-submit must not render a submit button")
	}
	if doc.Find(`h4#quiz-0 a.quiz-header-link[href="#quiz-0"]`).Length() != 1 {
		t.Error("missing deep-link header anchor")
	}
}

func TestRenderMultipleChoice(t *testing.T) {
	q := parseQuiz(t, "Pick two\n- [x] a\n- [x] b\n- [ ] c")
	doc := renderDoc(t, q, 2, DefaultOptions())

	if n := doc.Find(`input[type="checkbox"]`).Length(); n != 3 {
		t.Errorf("got %d checkbox inputs, want 3", n)
	}
	// Multi-choice always shows the submit control, auto-submit or not.
	if doc.Find("button.quiz-button").Length() != 1 {
		t.Error("multi-choice must render a submit button")
	}
	// id/for pairs follow quiz and answer position.
	if doc.Find(`input#quiz-2-1`).Length() != 1 || doc.Find(`label[for="quiz-2-1"]`).Length() != 1 {
		t.Error("input id / label for pair wrong")
	}
}

func TestRenderDataAttributes(t *testing.T) {
	q := parseQuiz(t, "Q?\n- [x] a")

	doc := renderDoc(t, q, 0, DefaultOptions())
	div := doc.Find("div.quiz")
	for _, attr := range []string{"data-show-correct", "data-auto-submit", "data-disable-after-submit"} {
		if v, ok := div.Attr(attr); !ok || v != "true" {
			t.Errorf("%s = %q, want \"true\"", attr, v)
		}
	}

	// Disabled options are omitted entirely, not emitted as "false".
	off := DefaultOptions()
	off.ShowCorrect = false
	off.AutoSubmit = false
	off.DisableAfterSubmit = false
	doc = renderDoc(t, q, 0, off)
	div = doc.Find("div.quiz")
	for _, attr := range []string{"data-show-correct", "data-auto-submit", "data-disable-after-submit"} {
		if _, ok := div.Attr(attr); ok {
			t.Errorf("%s must be omitted when false", attr)
		}
	}
	// With auto-submit off the submit button comes back.
	if doc.Find("button.quiz-button").Length() != 1 {
		t.Error("submit button must render when auto-submit is off")
	}
}

func TestRenderQuestionTag(t *testing.T) {
	q := parseQuiz(t, "Q?\n- [x] a")
	opts := DefaultOptions()
	opts.QuestionTag = "h3"
	doc := renderDoc(t, q, 5, opts)
	if doc.Find("h3#quiz-5").Length() != 1 {
		t.Error("question tag option not honored")
	}
}

func TestRenderEmptyContentSectionStillPresent(t *testing.T) {
	q := parseQuiz(t, "Q?\n- [x] a")
	doc := renderDoc(t, q, 0, DefaultOptions())
	section := doc.Find("section.content.hidden")
	if section.Length() != 1 {
		t.Fatal("content section must always be emitted")
	}
	if strings.TrimSpace(section.Text()) != "" {
		t.Errorf("content section should be empty, got %q", section.Text())
	}
}

// Correctness is matched on rendered answer text: two answers with different
// source that render identically are both flagged correct. This pins the
// historical behavior; switching to index-based matching changes this test.
func TestRenderDuplicateRenderedTextBothMarkedCorrect(t *testing.T) {
	q := parseQuiz(t, "Q?\n- [x] **a**\n- [ ] __a__\n- [ ] b")
	doc := renderDoc(t, q, 0, DefaultOptions())
	if n := doc.Find(`input[correct]`).Length(); n != 2 {
		t.Errorf("got %d correct inputs, want 2 (rendered-text equality rule)", n)
	}
}

// Parsing then rendering preserves the correct/total split.
func TestRenderRoundTripCorrectSplit(t *testing.T) {
	tests := []struct {
		inner   string
		correct int
		total   int
	}{
		{"Q?\n- [x] a\n- [ ] b", 1, 2},
		{"Q?\n- [x] a\n- [x] b\n- [ ] c\n- [ ] d", 2, 4},
		{"Q?\n- [x] only", 1, 1},
	}
	for _, tt := range tests {
		doc := renderDoc(t, parseQuiz(t, tt.inner), 0, DefaultOptions())
		if n := doc.Find("input").Length(); n != tt.total {
			t.Errorf("%q: %d inputs, want %d", tt.inner, n, tt.total)
		}
		if n := doc.Find("input[correct]").Length(); n != tt.correct {
			t.Errorf("%q: %d correct, want %d", tt.inner, n, tt.correct)
		}
	}
}
