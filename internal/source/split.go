package source

import (
	"regexp"
	"strings"

	"github.com/heartmarshall/quizbank-backend/internal/domain"
)

// headingPattern matches a line that opens a new question:
// 問1, 問 1, 第1問, Q1., Q 1), Question 1.
var headingPattern = regexp.MustCompile(
	`^(?:問\s*[0-9０-９]+|第\s*[0-9０-９]+\s*問|(?i:q)\s*[0-9０-９]+\s*[.．:：)）]|(?i:question)\s+[0-9０-９]+)`,
)

// pageBreak is the form feed pdftotext emits between pages.
const pageBreak = "\f"

// SplitBlocks cuts a document into question-sized blocks.
//
// When the document contains question headings, each heading starts a new
// block, text before the first heading is discarded and page breaks are
// treated as ordinary line breaks, so a question may span pages. Without
// headings every non-blank page is one block.
func SplitBlocks(text string) []string {
	text = domain.NormalizeLineEndings(text)

	if !hasHeading(text) {
		var blocks []string
		for _, page := range strings.Split(text, pageBreak) {
			if p := strings.TrimSpace(page); p != "" {
				blocks = append(blocks, p)
			}
		}
		return blocks
	}

	var (
		blocks  []string
		current []string
		started bool
	)
	flush := func() {
		if b := strings.TrimSpace(strings.Join(current, "\n")); b != "" {
			blocks = append(blocks, b)
		}
		current = current[:0]
	}

	for _, line := range strings.Split(strings.ReplaceAll(text, pageBreak, "\n"), "\n") {
		if IsHeading(line) {
			if started {
				flush()
			}
			started = true
		}
		if started {
			current = append(current, line)
		}
	}
	flush()
	return blocks
}

// IsHeading reports whether line opens a new question.
func IsHeading(line string) bool {
	return headingPattern.MatchString(strings.TrimSpace(line))
}

func hasHeading(text string) bool {
	for _, line := range strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == '\f' }) {
		if IsHeading(line) {
			return true
		}
	}
	return false
}
