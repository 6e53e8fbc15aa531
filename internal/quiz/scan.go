package quiz

import "regexp"

// Current quiz block tag pair.
const (
	StartTag = "<quiz>"
	EndTag   = "</quiz>"
)

// Legacy tag pair, recognized only by the migration tool.
const (
	LegacyStartTag = "<?quiz?>"
	LegacyEndTag   = "<?/quiz?>"
)

// Block is one scanned quiz region. Start/End are byte offsets of the whole
// match (tags included) in the scanned text, half-open.
type Block struct {
	Inner string
	Start int
	End   int
}

// ScanBlocks finds every startTag...endTag region in document order,
// non-greedy, newline-spanning. The tag pair is a parameter because the
// migration tool scans the legacy <?quiz?> markers with the same logic.
func ScanBlocks(text, startTag, endTag string) []Block {
	re := regexp.MustCompile("(?s)" + regexp.QuoteMeta(startTag) + "(.*?)" + regexp.QuoteMeta(endTag))
	var blocks []Block
	for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
		blocks = append(blocks, Block{
			Inner: text[m[2]:m[3]],
			Start: m[0],
			End:   m[1],
		})
	}
	return blocks
}
