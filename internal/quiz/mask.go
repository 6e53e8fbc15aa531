package quiz

import (
	"fmt"
	"regexp"
	"strings"
)

// Fenced code blocks, ``` or ~~~ delimited (3+ fence characters), with
// optional indentation. Two alternation branches so a backtick fence never
// closes a tilde fence.
var fencedRe = regexp.MustCompile("(?ms)^[ \t]*`{3,}.*?\n.*?^[ \t]*`{3,}|^[ \t]*~{3,}.*?\n.*?^[ \t]*~{3,}")

// placeholderFormat is reserved: documents must not contain it literally.
const placeholderFormat = "__CODEBLOCK_%d__"

// MaskCodeBlocks substitutes fenced code regions outside quiz tags with
// opaque placeholders so the quiz scanner never matches quiz syntax shown as
// an example. Fences inside a quiz block are teaching material in its content
// section and are left alone. The returned map restores the original text.
func MaskCodeBlocks(markdown string) (string, map[string]string) {
	placeholders := map[string]string{}

	// Quiz spans are located first so fences inside them survive masking.
	var quizRanges [][2]int
	for _, b := range ScanBlocks(markdown, StartTag, EndTag) {
		quizRanges = append(quizRanges, [2]int{b.Start, b.End})
	}

	insideQuiz := func(start, end int) bool {
		for _, r := range quizRanges {
			if (r[0] < start && start < r[1]) || (r[0] < end && end < r[1]) {
				return true
			}
		}
		return false
	}

	var out strings.Builder
	counter := 0
	last := 0
	for _, loc := range fencedRe.FindAllStringIndex(markdown, -1) {
		if insideQuiz(loc[0], loc[1]) {
			continue
		}
		placeholder := fmt.Sprintf(placeholderFormat, counter)
		placeholders[placeholder] = markdown[loc[0]:loc[1]]
		counter++
		out.WriteString(markdown[last:loc[0]])
		out.WriteString(placeholder)
		last = loc[1]
	}
	out.WriteString(markdown[last:])
	return out.String(), placeholders
}

// UnmaskCodeBlocks restores regions previously masked by MaskCodeBlocks.
func UnmaskCodeBlocks(markdown string, placeholders map[string]string) string {
	for placeholder, original := range placeholders {
		markdown = strings.ReplaceAll(markdown, placeholder, original)
	}
	return markdown
}
