package quiz

import (
	"errors"
	"regexp"
	"strings"
)

// Parse failures are values, not panics: the page pipeline and the extractor
// log them and move on to the next block.
var (
	ErrEmptyBlock      = errors.New("quiz content is empty")
	ErrNoQuestion      = errors.New("quiz has no question")
	ErrNoAnswers       = errors.New("quiz must have at least one answer")
	ErrNoCorrectAnswer = errors.New("quiz must have at least one correct answer")
)

// Checkbox answer line: - [x] / * [X] / - [ ] / - [], bullet - or *.
var answerRe = regexp.MustCompile(`^[-*]\s*\[([xX ]?)\]\s*(.*)$`)

// ParseCheckbox parses the inner text of one quiz block written in the
// checkbox dialect into a Quiz. Structure:
//
//	question lines
//	- [x] correct answer
//	- [ ] incorrect answer
//
//	optional free-form content
//
// Blank lines between answers are insignificant. The first non-blank line
// that is not a checkbox line ends the answer run and starts the content
// section; checkbox-looking lines after that point are content, not answers.
func ParseCheckbox(inner string) (Quiz, error) {
	lines := strings.Split(Dedent(inner), "\n")
	lines = trimBlankEdges(lines)
	if len(lines) == 0 {
		return Quiz{}, ErrEmptyBlock
	}

	firstAnswer := -1
	for i, line := range lines {
		if answerRe.MatchString(strings.TrimSpace(line)) {
			firstAnswer = i
			break
		}
	}
	if firstAnswer < 0 {
		return Quiz{}, ErrNoAnswers
	}

	question := strings.TrimSpace(strings.Join(lines[:firstAnswer], "\n"))
	if question == "" {
		return Quiz{}, ErrNoQuestion
	}

	var answers []Answer
	contentStart := len(lines)
	for i := firstAnswer; i < len(lines); i++ {
		stripped := strings.TrimSpace(lines[i])
		if m := answerRe.FindStringSubmatch(stripped); m != nil {
			contentStart = i + 1
			text := strings.TrimSpace(m[2])
			if text == "" {
				// Empty answers are dropped here, keeping the model invariant
				// that answer text is never blank.
				continue
			}
			answers = append(answers, NewAnswer(text, strings.ToLower(m[1]) == "x"))
		} else if stripped == "" {
			continue
		} else {
			break
		}
	}

	if len(answers) == 0 {
		return Quiz{}, ErrNoAnswers
	}

	q := Quiz{
		Question:   question,
		Answers:    answers,
		Content:    strings.TrimSpace(strings.Join(lines[contentStart:], "\n")),
		Identifier: newID("quiz"),
	}
	if len(q.CorrectAnswers()) == 0 {
		return Quiz{}, ErrNoCorrectAnswer
	}
	return q, nil
}

// Dedent strips the longest common leading whitespace prefix from all
// non-blank lines, so quizzes nested in indented containers (content tabs,
// admonitions) parse the same as top-level ones.
func Dedent(text string) string {
	lines := strings.Split(text, "\n")
	prefix := ""
	first := true
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			prefix = indent
			first = false
			continue
		}
		prefix = commonPrefix(prefix, indent)
		if prefix == "" {
			return text
		}
	}
	if prefix == "" {
		return text
	}
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines[i] = strings.TrimPrefix(line, prefix)
	}
	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}

func trimBlankEdges(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
