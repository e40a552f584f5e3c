package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/compvet/compvet/internal/domain"
	"github.com/compvet/compvet/internal/domain/validation"
)

// typeDirs maps component directory names to component types.
var typeDirs = map[string]domain.ComponentType{
	"agents":   domain.TypeAgent,
	"commands": domain.TypeCommand,
	"settings": domain.TypeSetting,
	"hooks":    domain.TypeHook,
	"mcp":      domain.TypeMCP,
	"mcps":     domain.TypeMCP,
}

// Loader reads components from disk, inferring the component type from
// the directory the file ships under. Frontmatter is parsed best-effort;
// the structural validator re-checks it strictly.
type Loader struct {
	commitInfo domain.CommitInfo
}

// New creates a Loader. commitInfo may be nil when no git metadata is
// wanted.
func New(commitInfo domain.CommitInfo) *Loader {
	return &Loader{commitInfo: commitInfo}
}

// Load reads a single component file.
func (l *Loader) Load(path string) (*domain.Component, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading component: %w", err)
	}

	c := &domain.Component{
		Path:       filepath.ToSlash(path),
		Type:       inferType(path),
		RawContent: string(data),
	}

	if fm, found, err := validation.SplitFrontmatter(c.RawContent); found && err == nil {
		c.Frontmatter = fm
	}

	if l.commitInfo != nil {
		if meta, err := l.commitInfo.LastCommit(path); err == nil && meta != nil {
			c.Commit = meta
		}
	}

	return c, nil
}

// LoadDir walks a components tree and loads every markdown file, sorted
// by path for deterministic batch ordering.
func (l *Loader) LoadDir(root string) ([]domain.Component, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".md") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	sort.Strings(paths)

	components := make([]domain.Component, 0, len(paths))
	for _, p := range paths {
		c, err := l.Load(p)
		if err != nil {
			return nil, err
		}
		components = append(components, *c)
	}
	return components, nil
}

// inferType picks the component type from the nearest known ancestor
// directory, defaulting to agent.
func inferType(path string) domain.ComponentType {
	parts := strings.Split(filepath.ToSlash(path), "/")
	for i := len(parts) - 2; i >= 0; i-- {
		if t, ok := typeDirs[strings.ToLower(parts[i])]; ok {
			return t
		}
	}
	return domain.TypeAgent
}
