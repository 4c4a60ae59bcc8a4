package pipeline

import (
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Compress multiple blank lines to one
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)

	// Trailing spaces or tabs before a newline
	trailingBlanks = regexp.MustCompile(`[ \t]+\n`)

	// Fenced code block delimiter (backticks or tildes)
	fencedCodeBlock = regexp.MustCompile("^(```|~~~)")

	// Header pattern (ATX style)
	headerPattern = regexp.MustCompile(`^#{1,6}\s`)

	// Blockquote pattern
	blockquotePattern = regexp.MustCompile(`^>`)

	// List item patterns (unordered and ordered)
	unorderedListPattern = regexp.MustCompile(`^[-*+]\s`)
	orderedListPattern   = regexp.MustCompile(`^[0-9]+[.)]\s`)

	// Indented code block (4 spaces or tab)
	indentedCodeBlock = regexp.MustCompile(`^(    |\t)`)
)

// Normalize prepares composed Markdown for parsing. Order matters:
// line endings first, then spacing fixes, then compression.
func Normalize(content string) string {
	content = NormalizeLineEndings(content)
	content = TrimTrailingBlanks(content)
	content = EnsureBlankBeforeHeaders(content)
	content = EnsureBlankBeforeBlockquotes(content)
	content = EnsureBlankBeforeLists(content)
	content = CompressBlankLines(content)
	return strings.TrimLeft(content, "\n")
}

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// TrimTrailingBlanks removes spaces and tabs at line ends. A backslash hard
// break is unaffected; two-space hard breaks are not produced by templates.
func TrimTrailingBlanks(content string) string {
	return trailingBlanks.ReplaceAllString(content, "\n")
}

// CompressBlankLines limits consecutive blank lines to one.
func CompressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// EnsureBlankBeforeHeaders adds a blank line before ATX headers (#, ##, etc.)
// if the previous line is non-empty. Skips content inside code blocks.
func EnsureBlankBeforeHeaders(content string) string {
	return processLinesWithCodeBlockAwareness(content, func(prev, current string) string {
		if headerPattern.MatchString(current) && !isBlankLine(prev) {
			return "\n" + current
		}
		return current
	})
}

// EnsureBlankBeforeBlockquotes adds a blank line before blockquotes (>)
// if the previous line is non-empty and not itself a blockquote.
func EnsureBlankBeforeBlockquotes(content string) string {
	return processLinesWithCodeBlockAwareness(content, func(prev, current string) string {
		if blockquotePattern.MatchString(current) &&
			!isBlankLine(prev) &&
			!blockquotePattern.MatchString(prev) {
			return "\n" + current
		}
		return current
	})
}

// EnsureBlankBeforeLists adds a blank line before list items (-, *, +, 1.)
// if the previous line is text (not a list item, blank, or header).
func EnsureBlankBeforeLists(content string) string {
	return processLinesWithCodeBlockAwareness(content, func(prev, current string) string {
		if isListItem(current) && !isBlankLine(prev) && !isListItem(prev) &&
			!headerPattern.MatchString(prev) && !isContinuation(prev) {
			return "\n" + current
		}
		return current
	})
}

// processLinesWithCodeBlockAwareness processes each line with a callback,
// but skips lines inside fenced code blocks.
func processLinesWithCodeBlockAwareness(content string, process func(prev, current string) string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))

	inCodeBlock := false
	var previousLine string

	for i, line := range lines {
		if fencedCodeBlock.MatchString(line) {
			inCodeBlock = !inCodeBlock
		}

		if i == 0 || inCodeBlock || indentedCodeBlock.MatchString(line) {
			result = append(result, line)
			previousLine = line
			continue
		}

		processed := process(previousLine, line)
		if strings.HasPrefix(processed, "\n") {
			result = append(result, "", processed[1:])
		} else {
			result = append(result, processed)
		}

		// Match against the original line, not the inserted blank.
		previousLine = line
	}

	return strings.Join(result, "\n")
}

// isBlankLine returns true if the line is empty or contains only whitespace.
func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}

// isListItem returns true if the line starts with a list marker.
func isListItem(line string) bool {
	return unorderedListPattern.MatchString(line) || orderedListPattern.MatchString(line)
}

// isContinuation reports an indented line belonging to a previous list item.
func isContinuation(line string) bool {
	return strings.HasPrefix(line, "  ")
}
