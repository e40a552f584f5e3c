package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/compvet/compvet/internal/domain"
)

const fileName = ".compvet.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .compvet.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .compvet.yaml from dir. Returns DefaultConfig if the file
// does not exist.
func (l *YAMLLoader) Load(dir string) (domain.ToolConfig, error) {
	data, err := os.ReadFile(filepath.Join(dir, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.ToolConfig{}, err
	}

	var cfg domain.ToolConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ToolConfig{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.ToolConfig{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}

	return cfg, nil
}
