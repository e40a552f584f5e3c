package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/compvet/compvet/internal/domain"
)

func sampleReport() *domain.BatchReport {
	rec := domain.NewRecorder()
	rec.AddError("STRUCT_E001", "no frontmatter block found", nil)
	rec.AddWarning("STRUCT_W006", "unknown tool", nil)
	failing := rec.Result()

	passing := domain.NewRecorder().Result()

	report := &domain.BatchReport{
		Components: []domain.ComponentReport{
			{
				Component:  domain.ComponentRef{Path: "agents/good.md", Type: domain.TypeAgent},
				Validators: map[string]*domain.ValidationResult{"structural": passing},
			},
			{
				Component:  domain.ComponentRef{Path: "agents/bad.md", Type: domain.TypeAgent},
				Validators: map[string]*domain.ValidationResult{"structural": failing},
			},
		},
	}
	for i := range report.Components {
		report.Components[i].Aggregate()
	}
	report.Tally()
	return report
}

func TestRenderBatch_StatusBadges(t *testing.T) {
	out := RenderBatch(sampleReport(), Options{})

	assert.Contains(t, out, "PASS")
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, "agents/good.md")
	assert.Contains(t, out, "agents/bad.md")
	assert.Contains(t, out, "100/100")
	assert.Contains(t, out, "2 validated")
	assert.Contains(t, out, "1 passed")
	assert.Contains(t, out, "1 failed")
}

func TestRenderBatch_QuietModeHidesFindings(t *testing.T) {
	out := RenderBatch(sampleReport(), Options{})
	assert.NotContains(t, out, "STRUCT_E001")
}

func TestRenderBatch_VerboseShowsFindingCodes(t *testing.T) {
	out := RenderBatch(sampleReport(), Options{Verbose: true})
	assert.Contains(t, out, "STRUCT_E001")
	assert.Contains(t, out, "no frontmatter block found")
	assert.Contains(t, out, "STRUCT_W006")
}

func TestRenderBatch_VerboseCapsFindings(t *testing.T) {
	rec := domain.NewRecorder()
	for i := 0; i < maxFindingsShown+2; i++ {
		rec.AddWarning("STRUCT_W006", "unknown tool", nil)
	}
	report := &domain.BatchReport{
		Components: []domain.ComponentReport{{
			Component:  domain.ComponentRef{Path: "agents/a.md", Type: domain.TypeAgent},
			Validators: map[string]*domain.ValidationResult{"structural": rec.Result()},
		}},
	}
	report.Components[0].Aggregate()
	report.Tally()

	out := RenderBatch(report, Options{Verbose: true})
	assert.Equal(t, maxFindingsShown, strings.Count(out, "unknown tool"))
	assert.Contains(t, out, "2 more")
}

func TestRenderHistory_Empty(t *testing.T) {
	out := RenderHistory(nil, Options{})
	assert.Contains(t, out, "No recorded runs")
}

func TestRenderHistory_Entries(t *testing.T) {
	entries := []domain.RunEntry{
		{Timestamp: "2026-08-25T10:00:00Z", MeanScore: 75, Passed: 3, Failed: 1},
		{Timestamp: "2026-08-26T10:00:00Z", MeanScore: 100, Passed: 4},
	}

	out := RenderHistory(entries, Options{})
	assert.Contains(t, out, "2026-08-25T10:00:00Z")
	assert.Contains(t, out, "mean  75/100")
	assert.Contains(t, out, "3 passed")
	assert.Contains(t, out, "1 failed")
	assert.Contains(t, out, "mean 100/100")
}

func TestRenderRegistry_Empty(t *testing.T) {
	out := RenderRegistry(nil, Options{})
	assert.Contains(t, out, "No registered baselines")
}

func TestRenderRegistry_Entries(t *testing.T) {
	entries := []domain.RegistryEntry{{
		Path:            "agents/a.md",
		Hash:            "0123456789abcdef0123456789abcdef",
		Version:         "1.2.0",
		LastValidatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}}

	out := RenderRegistry(entries, Options{})
	assert.Contains(t, out, "agents/a.md")
	assert.Contains(t, out, "0123456789ab") // truncated hash
	assert.NotContains(t, out, "0123456789abcdef0")
	assert.Contains(t, out, "1.2.0")
	assert.Contains(t, out, "2026-08-01")
}

func TestRender_NoColorHasNoEscapes(t *testing.T) {
	registry := RenderRegistry([]domain.RegistryEntry{{
		Path: "agents/a.md", Hash: "abc", LastValidatedAt: time.Now(),
	}}, Options{Colors: false})
	history := RenderHistory([]domain.RunEntry{{
		Timestamp: "2026-08-25T10:00:00Z", MeanScore: 75, Passed: 1,
	}}, Options{Colors: false})

	assert.NotContains(t, registry, "\x1b[")
	assert.NotContains(t, history, "\x1b[")
}
