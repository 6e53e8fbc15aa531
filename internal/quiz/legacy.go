package quiz

import "strings"

// LegacyQuiz is the older line-oriented quiz syntax (question:/answer:/
// answer-correct:/content: plus boolean option lines). It survives only as
// the input format of the one-time migration tool; the main pipeline does
// not accept it.
type LegacyQuiz struct {
	Question string
	// Options are show-correct:/auto-submit:/disable-after-submit: lines,
	// preserved verbatim through migration.
	Options      []string
	Answers      []LegacyAnswer
	ContentLines []string
}

type LegacyAnswer struct {
	Text    string
	Correct bool
}

// ParseLegacy parses the inner text of one <?quiz?> block. The dialect is
// purely line-oriented; unknown lines outside the content section are
// dropped, matching the historical behavior.
func ParseLegacy(inner string) LegacyQuiz {
	var lq LegacyQuiz
	inContent := false
	for _, raw := range strings.Split(strings.TrimSpace(inner), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "question:"):
			lq.Question = strings.TrimSpace(strings.TrimPrefix(line, "question:"))
		case strings.HasPrefix(line, "show-correct:"),
			strings.HasPrefix(line, "auto-submit:"),
			strings.HasPrefix(line, "disable-after-submit:"):
			lq.Options = append(lq.Options, line)
		case line == "content:":
			inContent = true
		case strings.HasPrefix(line, "answer-correct:"):
			lq.Answers = append(lq.Answers, LegacyAnswer{
				Text:    strings.TrimSpace(strings.TrimPrefix(line, "answer-correct:")),
				Correct: true,
			})
		case strings.HasPrefix(line, "answer:"):
			lq.Answers = append(lq.Answers, LegacyAnswer{
				Text: strings.TrimSpace(strings.TrimPrefix(line, "answer:")),
			})
		case inContent:
			lq.ContentLines = append(lq.ContentLines, line)
		}
	}
	return lq
}

// Checkbox rewrites the legacy quiz into the checkbox dialect, tags included.
// Option lines ride along unchanged and one blank line separates answers from
// any content block.
func (lq LegacyQuiz) Checkbox() string {
	out := []string{StartTag}
	if lq.Question != "" {
		out = append(out, lq.Question)
	}
	out = append(out, lq.Options...)
	for _, a := range lq.Answers {
		if a.Correct {
			out = append(out, "- [x] "+a.Text)
		} else {
			out = append(out, "- [ ] "+a.Text)
		}
	}
	if len(lq.ContentLines) > 0 {
		out = append(out, "")
		out = append(out, lq.ContentLines...)
	}
	out = append(out, EndTag)
	return strings.Join(out, "\n")
}
