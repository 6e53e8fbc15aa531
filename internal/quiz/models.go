package quiz

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Answer is one selectable option of a quiz. Text holds the raw markdown as
// written in the source block; rendering to HTML happens at the point of use.
type Answer struct {
	Text       string `json:"text"`
	IsCorrect  bool   `json:"is_correct"`
	Identifier string `json:"identifier"`
}

// NewAnswer assigns a synthetic identifier at construction. The identifier is
// referenced from generated XML response conditions and must never change.
func NewAnswer(text string, correct bool) Answer {
	return Answer{Text: text, IsCorrect: correct, Identifier: newID("answer")}
}

// Quiz is one parsed quiz block: a question, its ordered answers and optional
// feedback content shown after grading. Order of Answers is significant.
type Quiz struct {
	Question   string   `json:"question"`
	Answers    []Answer `json:"answers"`
	Content    string   `json:"content,omitempty"`
	Identifier string   `json:"identifier"`

	// Provenance for diagnostics, set by the extraction pipeline.
	SourceFile string `json:"source_file,omitempty"`
	SourceLine int    `json:"source_line,omitempty"`
}

// IsMultipleChoice reports whether more than one answer is marked correct,
// which switches rendering to checkboxes and export cardinality to multiple.
func (q Quiz) IsMultipleChoice() bool {
	return len(q.CorrectAnswers()) > 1
}

// CorrectAnswers returns the correct answers preserving source order.
func (q Quiz) CorrectAnswers() []Answer {
	var out []Answer
	for _, a := range q.Answers {
		if a.IsCorrect {
			out = append(out, a)
		}
	}
	return out
}

// IncorrectAnswers returns the incorrect answers preserving source order.
func (q Quiz) IncorrectAnswers() []Answer {
	var out []Answer
	for _, a := range q.Answers {
		if !a.IsCorrect {
			out = append(out, a)
		}
	}
	return out
}

// Validate collects invariant violations as human-readable strings. It never
// fails hard; callers decide whether violations are fatal.
func (q Quiz) Validate() []string {
	var violations []string
	if strings.TrimSpace(q.Question) == "" {
		violations = append(violations, "quiz has no question")
	}
	if len(q.Answers) == 0 {
		violations = append(violations, "quiz has no answers")
	}
	if len(q.Answers) > 0 && len(q.CorrectAnswers()) == 0 {
		violations = append(violations, "quiz has no correct answer")
	}
	return violations
}

// Collection is an ordered set of quizzes aggregated for one export run.
// Insertion order is discovery order: file sort order, then in-file order.
type Collection struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Identifier  string `json:"identifier"`
	Quizzes     []Quiz `json:"quizzes"`
}

func NewCollection(title, description string) Collection {
	return Collection{
		Title:       title,
		Description: description,
		Identifier:  newID("quiz_collection"),
	}
}

func (c *Collection) Add(q Quiz) { c.Quizzes = append(c.Quizzes, q) }

func (c Collection) TotalQuestions() int { return len(c.Quizzes) }

func (c Collection) SingleChoiceCount() int {
	n := 0
	for _, q := range c.Quizzes {
		if !q.IsMultipleChoice() {
			n++
		}
	}
	return n
}

func (c Collection) MultipleChoiceCount() int {
	n := 0
	for _, q := range c.Quizzes {
		if q.IsMultipleChoice() {
			n++
		}
	}
	return n
}

// newID builds identifiers usable as XML ID attribute values: the prefix
// keeps them from starting with a digit, the uuid suffix keeps them unique.
func newID(prefix string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%s_%s", prefix, suffix)
}
