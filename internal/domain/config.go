package domain

import (
	"fmt"
	"strings"
)

// ToolConfig holds tool-level configuration loaded from .compvet.yaml.
// The zero value is a usable default.
type ToolConfig struct {
	// Strict makes every run behave as if --strict was passed.
	Strict bool `yaml:"strict" json:"strict,omitempty"`
	// RegistryPath overrides the default hash registry location,
	// relative to the working directory.
	RegistryPath string `yaml:"registry_path" json:"registry_path,omitempty"`
	// SeverityOverrides retunes the severity of individual semantic
	// catalogue codes (e.g. SEM_W002: error). The error/warning boundary
	// of the catalogue is tuning, not contract.
	SeverityOverrides map[string]string `yaml:"severity_overrides" json:"severity_overrides,omitempty"`
	// TrustedDomains are link hosts exempt from the suspicious-domain
	// heuristics.
	TrustedDomains []string `yaml:"trusted_domains" json:"trusted_domains,omitempty"`
	// HostingDomains extends the accepted repository hosting domains
	// checked by the provenance validator.
	HostingDomains []string `yaml:"hosting_domains" json:"hosting_domains,omitempty"`
	// ReputationDB points at an offline host-reputation database; when
	// set, its verdicts surface as info-level findings on links.
	ReputationDB string `yaml:"reputation_db" json:"reputation_db,omitempty"`
}

// DefaultConfig returns a zero-value config that changes nothing.
func DefaultConfig() ToolConfig {
	return ToolConfig{}
}

// Validate catches typos before the config is applied.
func (c ToolConfig) Validate() error {
	for code, sev := range c.SeverityOverrides {
		switch sev {
		case SeverityError, SeverityWarning, SeverityInfo:
		default:
			return fmt.Errorf("severity_overrides[%s]: unknown severity %q", code, sev)
		}
		if !strings.HasPrefix(code, "SEM_") {
			return fmt.Errorf("severity_overrides: %q is not a semantic catalogue code", code)
		}
	}
	for _, d := range append(append([]string{}, c.TrustedDomains...), c.HostingDomains...) {
		if strings.ContainsAny(d, " /") || d == "" {
			return fmt.Errorf("invalid domain %q", d)
		}
	}
	return nil
}
