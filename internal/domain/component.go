package domain

import "fmt"

// ComponentType classifies a distributable component by the directory it
// ships under.
type ComponentType string

const (
	TypeAgent   ComponentType = "agent"
	TypeCommand ComponentType = "command"
	TypeSetting ComponentType = "setting"
	TypeHook    ComponentType = "hook"
	TypeMCP     ComponentType = "mcp"
)

// ComponentTypes lists every known component type.
func ComponentTypes() []ComponentType {
	return []ComponentType{TypeAgent, TypeCommand, TypeSetting, TypeHook, TypeMCP}
}

// ParseComponentType converts a string into a ComponentType.
func ParseComponentType(s string) (ComponentType, error) {
	for _, t := range ComponentTypes() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown component type %q", s)
}

// RequiresFrontmatter reports whether components of this type must carry a
// frontmatter block. Settings, hooks and MCP definitions are structured
// documents in their own right and may omit it.
func (t ComponentType) RequiresFrontmatter() bool {
	return t == TypeAgent || t == TypeCommand
}

// Component is the unit of third-party content subjected to validation.
// It is a value object owned by the caller; the pipeline never mutates it.
type Component struct {
	Path        string
	Type        ComponentType
	RawContent  string
	Frontmatter map[string]any // best-effort parse by the loader, may be nil

	// Commit metadata supplied by the loader when the component lives in a
	// git checkout. Optional; cross-checked by the provenance validator.
	Commit *CommitMeta
}

// CommitMeta describes the last commit touching a component.
type CommitMeta struct {
	SHA    string `json:"sha"`
	Author string `json:"author"`
	Date   string `json:"date"` // RFC3339
}

// ComponentRef is the report-facing identity of a component.
type ComponentRef struct {
	Path string        `json:"path"`
	Type ComponentType `json:"type"`
}

// Ref returns the component's report identity.
func (c Component) Ref() ComponentRef {
	return ComponentRef{Path: c.Path, Type: c.Type}
}

// FrontmatterString returns a frontmatter value as a string, or "" when
// the key is absent or not a scalar.
func (c Component) FrontmatterString(key string) string {
	if c.Frontmatter == nil {
		return ""
	}
	switch v := c.Frontmatter[key].(type) {
	case string:
		return v
	case int, int64, float64, bool:
		return fmt.Sprintf("%v", v)
	default:
		return ""
	}
}
