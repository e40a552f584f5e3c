package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/fatih/camelcase"
	"gopkg.in/yaml.v3"

	"github.com/compvet/compvet/internal/domain"
)

const (
	// MaxContentSize caps component size; pattern scans are bounded by it.
	MaxContentSize = 100 * 1024
	// MaxSections caps top-level headings before a file is flagged as
	// suspiciously large. Not unsafe, so a warning only.
	MaxSections = 20
)

// requiredFields lists mandatory frontmatter fields per component type.
var requiredFields = map[domain.ComponentType][]string{
	domain.TypeAgent:   {"name", "description", "tools"},
	domain.TypeCommand: {"name", "description"},
}

// knownTools is the recognized tool-capability vocabulary. Unknown names
// are a warning, not an error, since the vocabulary legitimately grows.
var knownTools = map[string]bool{
	"Read": true, "Write": true, "Edit": true, "Bash": true,
	"Grep": true, "Glob": true, "Task": true, "WebFetch": true,
	"WebSearch": true, "TodoWrite": true, "NotebookEdit": true,
}

var headingRe = regexp.MustCompile(`(?m)^# \S`)

// StructuralValidator verifies that a component is syntactically
// well-formed: frontmatter schema, size, encoding, and section count.
type StructuralValidator struct{}

func NewStructuralValidator() *StructuralValidator { return &StructuralValidator{} }

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(c domain.Component, _ domain.Options) (*domain.ValidationResult, error) {
	rec := domain.NewRecorder()

	if !utf8.ValidString(c.RawContent) {
		rec.AddError("STRUCT_E010", "content is not valid UTF-8", nil)
		// The remaining checks still run: size and frontmatter detection
		// operate on bytes.
	}

	if size := len(c.RawContent); size > MaxContentSize {
		rec.AddError("STRUCT_E004",
			fmt.Sprintf("content size %d bytes exceeds limit of %d", size, MaxContentSize),
			map[string]any{"size": size, "limit": MaxContentSize})
	}

	fm, found, err := SplitFrontmatter(c.RawContent)
	switch {
	case !found && c.Type.RequiresFrontmatter():
		rec.AddError("STRUCT_E001",
			fmt.Sprintf("%s components require a frontmatter block", c.Type), nil)
	case found && err != nil:
		rec.AddError("STRUCT_E002", fmt.Sprintf("malformed frontmatter: %v", err), nil)
	case found:
		v.checkFields(rec, c.Type, fm)
	}

	if headings := len(headingRe.FindAllString(c.RawContent, -1)); headings > MaxSections {
		rec.AddWarning("STRUCT_W011",
			fmt.Sprintf("%d top-level sections exceed the expected maximum of %d", headings, MaxSections),
			map[string]any{"sections": headings, "limit": MaxSections})
	}

	return rec.Result(), nil
}

func (v *StructuralValidator) checkFields(rec *domain.Recorder, t domain.ComponentType, fm map[string]any) {
	for _, field := range requiredFields[t] {
		val, ok := fm[field]
		if !ok || val == nil || fmt.Sprintf("%v", val) == "" {
			rec.AddError("STRUCT_E003",
				fmt.Sprintf("missing required frontmatter field %q", field),
				map[string]any{"field": field})
		}
	}

	if name, ok := fm["name"].(string); ok && name != "" {
		// Component names are lowercase/kebab by convention; a camelCase
		// name splits into multiple words.
		if len(camelcase.Split(name)) > 1 && name != strings.ToLower(name) {
			rec.AddWarning("STRUCT_W005",
				fmt.Sprintf("name %q should be lowercase kebab-case", name),
				map[string]any{"field": "name", "value": name})
		}
	}

	for _, tool := range toolNames(fm["tools"]) {
		if !knownTools[tool] {
			rec.AddWarning("STRUCT_W006",
				fmt.Sprintf("unrecognized tool capability %q", tool),
				map[string]any{"tool": tool})
		}
	}
}

// toolNames normalizes the tools field, which may be a comma-separated
// string or a YAML list.
func toolNames(v any) []string {
	var names []string
	switch t := v.(type) {
	case string:
		for _, part := range strings.Split(t, ",") {
			if p := strings.TrimSpace(part); p != "" {
				names = append(names, p)
			}
		}
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				names = append(names, strings.TrimSpace(s))
			}
		}
	}
	return names
}

// SplitFrontmatter extracts the leading YAML frontmatter block from
// markdown content. found reports whether a block delimiter was present;
// err is non-nil when a block exists but is not valid YAML.
func SplitFrontmatter(content string) (fm map[string]any, found bool, err error) {
	if !strings.HasPrefix(content, "---\n") && !strings.HasPrefix(content, "---\r\n") {
		return nil, false, nil
	}

	rest := content[strings.IndexByte(content, '\n')+1:]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return nil, true, fmt.Errorf("unterminated frontmatter block")
	}
	raw := rest[:end]

	if err := yaml.Unmarshal([]byte(raw), &fm); err != nil {
		return nil, true, err
	}
	if fm == nil {
		fm = map[string]any{}
	}
	return fm, true, nil
}
