package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToolConfigValidate_Empty(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestToolConfigValidate_GoodOverride(t *testing.T) {
	cfg := ToolConfig{SeverityOverrides: map[string]string{"SEM_W002": SeverityError}}
	assert.NoError(t, cfg.Validate())
}

func TestToolConfigValidate_UnknownSeverity(t *testing.T) {
	cfg := ToolConfig{SeverityOverrides: map[string]string{"SEM_W002": "fatal"}}
	assert.Error(t, cfg.Validate())
}

func TestToolConfigValidate_NonSemanticCode(t *testing.T) {
	cfg := ToolConfig{SeverityOverrides: map[string]string{"REF_W001": SeverityInfo}}
	assert.Error(t, cfg.Validate())
}

func TestToolConfigValidate_BadDomain(t *testing.T) {
	cfg := ToolConfig{TrustedDomains: []string{"example.com/path"}}
	assert.Error(t, cfg.Validate())
}
