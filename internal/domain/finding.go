package domain

import (
	"strings"
	"time"
)

const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Finding is a single validator observation: a stable namespaced code, a
// severity, a human message, and structured context for tooling.
type Finding struct {
	Level     string         `json:"level"`
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Location is the position of an offending substring within a component's
// raw content.
type Location struct {
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	LineText string `json:"line_text"`
}

// Locate resolves a character offset into content to a 1-based line and
// column plus the text of that line. Offsets past the end clamp to the
// final position.
func Locate(content string, offset int) Location {
	if offset < 0 {
		offset = 0
	}
	if offset > len(content) {
		offset = len(content)
	}

	line := 1 + strings.Count(content[:offset], "\n")
	lineStart := strings.LastIndex(content[:offset], "\n") + 1

	lineEnd := strings.IndexByte(content[offset:], '\n')
	if lineEnd < 0 {
		lineEnd = len(content)
	} else {
		lineEnd += offset
	}

	return Location{
		Line:     line,
		Column:   offset - lineStart + 1,
		LineText: content[lineStart:lineEnd],
	}
}
