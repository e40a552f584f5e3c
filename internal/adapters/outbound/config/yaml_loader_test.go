package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compvet/compvet/internal/domain"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".compvet.yaml"), []byte(content), 0644))
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := New().Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestLoad_FullConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
strict: true
registry_path: custom/registry.json
severity_overrides:
  SEM_W002: error
trusted_domains:
  - internal.example
hosting_domains:
  - git.corp.example
reputation_db: verdicts.json
`)

	cfg, err := New().Load(dir)
	require.NoError(t, err)

	assert.True(t, cfg.Strict)
	assert.Equal(t, "custom/registry.json", cfg.RegistryPath)
	assert.Equal(t, "error", cfg.SeverityOverrides["SEM_W002"])
	assert.Equal(t, []string{"internal.example"}, cfg.TrustedDomains)
	assert.Equal(t, []string{"git.corp.example"}, cfg.HostingDomains)
	assert.Equal(t, "verdicts.json", cfg.ReputationDB)
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "strict: [broken")

	_, err := New().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".compvet.yaml")
}

func TestLoad_InvalidOverrideRejected(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "severity_overrides:\n  SEM_W001: fatal\n")

	_, err := New().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown severity")
}
