package render

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/quizmd/quizmd/internal/quiz"
)

// Placeholder comments survive the host's markdown-to-HTML conversion
// untouched, so rendered quiz fragments can be spliced in afterwards.
const placeholderFormat = "<!-- QUIZMD_PLACEHOLDER_%d -->"

// PageProcessor implements the host's two extension points. The markdown
// phase swaps quiz blocks for placeholder comments and parks the rendered
// fragments; the content phase, called with the same page key after the host
// converted the page, drains them back in. Pending entries never outlive
// their page: the content phase deletes the page's bucket once flushed.
//
// The pending map is mutex-guarded so a host building pages in parallel
// stays race-free.
type PageProcessor struct {
	defaults Options
	log      *slog.Logger

	mu      sync.Mutex
	pending map[string]map[string]string
}

func NewPageProcessor(defaults Options, log *slog.Logger) *PageProcessor {
	if log == nil {
		log = slog.Default()
	}
	return &PageProcessor{
		defaults: defaults,
		log:      log,
		pending:  map[string]map[string]string{},
	}
}

// MarkdownPhase processes one page's raw markdown: fenced code outside quiz
// blocks is masked, each quiz block is parsed and rendered, and the block is
// replaced by a placeholder. A block that fails to parse is left exactly as
// written and logged; the rest of the page still renders.
func (p *PageProcessor) MarkdownPhase(pageKey, md string, meta map[string]any) string {
	opts := p.defaults.Merge(meta)

	masked, codeBlocks := quiz.MaskCodeBlocks(md)
	blocks := quiz.ScanBlocks(masked, quiz.StartTag, quiz.EndTag)

	fragments := map[string]string{}
	var out strings.Builder
	last := 0
	for quizID, block := range blocks {
		q, err := quiz.ParseCheckbox(block.Inner)
		if err != nil {
			p.log.Warn("skipping malformed quiz block",
				"page", pageKey, "quiz", quizID, "err", err)
			continue
		}
		html, err := Render(q, quizID, opts)
		if err != nil {
			p.log.Warn("skipping unrenderable quiz block",
				"page", pageKey, "quiz", quizID, "err", err)
			continue
		}
		placeholder := fmt.Sprintf(placeholderFormat, quizID)
		fragments[placeholder] = html
		out.WriteString(masked[last:block.Start])
		out.WriteString(placeholder)
		last = block.End
	}
	out.WriteString(masked[last:])

	p.mu.Lock()
	p.pending[pageKey] = fragments
	p.mu.Unlock()

	return quiz.UnmaskCodeBlocks(out.String(), codeBlocks)
}

// ContentPhase substitutes the page's placeholders in the converted HTML and
// clears that page's pending entries.
func (p *PageProcessor) ContentPhase(pageKey, html string) string {
	p.mu.Lock()
	fragments := p.pending[pageKey]
	delete(p.pending, pageKey)
	p.mu.Unlock()

	for placeholder, fragment := range fragments {
		html = strings.ReplaceAll(html, placeholder, fragment)
	}
	return html
}
