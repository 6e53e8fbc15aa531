// Package render turns parsed quizzes into the interactive HTML fragment
// graded client-side, and implements the two-phase page pipeline the
// documentation-site host drives.
package render

import (
	"fmt"
	"strings"

	"github.com/quizmd/quizmd/internal/markdown"
	"github.com/quizmd/quizmd/internal/quiz"
)

// Render builds the HTML fragment for one quiz. quizID is the 0-based
// position of the quiz on its page; it seeds the input/label id pairs and the
// deep-link anchor and is presentation-only, distinct from the model
// identifier used by exports.
func Render(q quiz.Quiz, quizID int, opts Options) (string, error) {
	question, err := markdown.RenderInline(q.Question)
	if err != nil {
		return "", err
	}

	answersHTML, multiple, err := renderAnswers(q, quizID)
	if err != nil {
		return "", err
	}

	contentHTML := ""
	if q.Content != "" {
		contentHTML, err = markdown.RenderBlock(q.Content)
		if err != nil {
			return "", err
		}
	}

	var attrs []string
	if opts.ShowCorrect {
		attrs = append(attrs, `data-show-correct="true"`)
	}
	if opts.AutoSubmit {
		attrs = append(attrs, `data-auto-submit="true"`)
	}
	if opts.DisableAfterSubmit {
		attrs = append(attrs, `data-disable-after-submit="true"`)
	}
	attrStr := ""
	if len(attrs) > 0 {
		attrStr = " " + strings.Join(attrs, " ")
	}

	// Multi-select quizzes always get a submit control: with checkboxes
	// there is no "last click" to auto-submit on.
	submit := `<button type="submit" class="quiz-button">Submit</button>`
	if opts.AutoSubmit && !multiple {
		submit = ""
	}

	headerID := fmt.Sprintf("quiz-%d", quizID)
	tag := opts.QuestionTag
	if tag == "" {
		tag = DefaultOptions().QuestionTag
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<div class=\"quiz\"%s>\n", attrStr)
	fmt.Fprintf(&b, "<%s id=%q>\n%s\n<a href=\"#%s\" class=\"quiz-header-link\">#</a>\n</%s>\n",
		tag, headerID, question, headerID, tag)
	b.WriteString("<form>\n<fieldset>")
	b.WriteString(answersHTML)
	b.WriteString("</fieldset>\n<div class=\"quiz-feedback hidden\"></div>\n")
	if submit != "" {
		b.WriteString(submit)
		b.WriteString("\n")
	}
	b.WriteString("</form>\n")
	// The content section is always present so the client script has a
	// stable slot to reveal, even when it stays empty.
	fmt.Fprintf(&b, "<section class=\"content hidden\">%s</section>\n", contentHTML)
	b.WriteString("</div>")
	return b.String(), nil
}

func renderAnswers(q quiz.Quiz, quizID int) (string, bool, error) {
	multiple := q.IsMultipleChoice()
	inputType := "radio"
	if multiple {
		inputType = "checkbox"
	}

	// Correctness is matched on rendered text, so two answers that render to
	// the same HTML are both flagged correct. Kept for compatibility with
	// existing sites; see the pinning test before changing to index matching.
	correctSet := map[string]bool{}
	for _, a := range q.CorrectAnswers() {
		rendered, err := markdown.RenderInline(a.Text)
		if err != nil {
			return "", false, err
		}
		correctSet[rendered] = true
	}

	var b strings.Builder
	for i, a := range q.Answers {
		rendered, err := markdown.RenderInline(a.Text)
		if err != nil {
			return "", false, err
		}
		inputID := fmt.Sprintf("quiz-%d-%d", quizID, i)
		correctAttr := ""
		if correctSet[rendered] {
			correctAttr = " correct"
		}
		fmt.Fprintf(&b,
			`<div><input type=%q name="answer" value="%d" id=%q%s><label for=%q>%s</label></div>`,
			inputType, i, inputID, correctAttr, inputID, rendered)
	}
	return b.String(), multiple, nil
}
