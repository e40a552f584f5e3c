package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/compvet/compvet/internal/domain"
)

// ── Claude-inspired warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success).Bold(true)
	failStyle     = lipgloss.NewStyle().Foreground(danger).Bold(true)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = strings.Repeat("─", 64)
)

// maxFindingsShown caps per-validator finding detail in verbose mode; the
// JSON report carries everything.
const maxFindingsShown = 3

// Options controls terminal rendering.
type Options struct {
	Verbose bool
	Colors  bool
}

// RenderBatch renders a batch report: a summary header, then a status
// line per component with one line per validator, and in verbose mode
// the first few findings with their codes.
func RenderBatch(report *domain.BatchReport, opts Options) string {
	r := renderer{opts: opts}
	var b strings.Builder

	title := r.style(headerStyle, "compvet")
	subtitle := r.style(dimStyle, "Component Trust Report")
	counts := fmt.Sprintf("%d validated   %s   %s",
		report.Summary.Total,
		r.style(passStyle, fmt.Sprintf("%d passed", report.Summary.Passed)),
		r.style(failStyle, fmt.Sprintf("%d failed", report.Summary.Failed)),
	)
	if opts.Colors {
		b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + counts))
	} else {
		b.WriteString(title + " — " + subtitle + "\n" + counts)
	}
	b.WriteString("\n\n")

	for i := range report.Components {
		r.renderComponent(&b, &report.Components[i])
		if i < len(report.Components)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString("  " + r.style(faintStyle, separatorLine))
	b.WriteString("\n")
	if report.Summary.Warnings > 0 {
		fmt.Fprintf(&b, "  %s\n",
			r.style(warnTagStyle, fmt.Sprintf("%d warnings across the batch", report.Summary.Warnings)))
	}

	return b.String()
}

// RenderRegistry lists persisted baselines, one line per component path.
func RenderRegistry(entries []domain.RegistryEntry, opts Options) string {
	r := renderer{opts: opts}
	if len(entries) == 0 {
		return "  " + r.style(dimStyle, "No registered baselines.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + r.style(titleStyle, "Hash Registry") + "\n")
	b.WriteString("  " + r.style(faintStyle, strings.Repeat("─", 50)) + "\n\n")

	for _, e := range entries {
		hash := e.Hash
		if len(hash) > 12 {
			hash = hash[:12]
		}
		version := e.Version
		if version == "" {
			version = "-"
		}
		fmt.Fprintf(&b, "  %s  %s  %s  %s\n",
			r.style(faintStyle, hash),
			r.style(dimStyle, e.LastValidatedAt.Format("2006-01-02")),
			r.style(dimStyle, padRight(version, 10)),
			e.Path,
		)
	}
	return b.String()
}

// RenderHistory lists past validation runs, newest last.
func RenderHistory(entries []domain.RunEntry, opts Options) string {
	r := renderer{opts: opts}
	if len(entries) == 0 {
		return "  " + r.style(dimStyle, "No recorded runs.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + r.style(titleStyle, "Run History") + "\n")
	b.WriteString("  " + r.style(faintStyle, strings.Repeat("─", 50)) + "\n\n")

	for _, e := range entries {
		outcome := r.style(passStyle, fmt.Sprintf("%d passed", e.Passed))
		if e.Failed > 0 {
			outcome += "  " + r.style(failStyle, fmt.Sprintf("%d failed", e.Failed))
		}
		fmt.Fprintf(&b, "  %s  %s  %s\n",
			r.style(dimStyle, e.Timestamp),
			r.style(titleStyle, fmt.Sprintf("mean %3d/100", e.MeanScore)),
			outcome,
		)
	}
	return b.String()
}

type renderer struct {
	opts Options
}

// style applies a lipgloss style only when colors are enabled.
func (r renderer) style(s lipgloss.Style, text string) string {
	if !r.opts.Colors {
		return text
	}
	return s.Render(text)
}

func (r renderer) renderComponent(b *strings.Builder, report *domain.ComponentReport) {
	badge := r.style(passStyle, "PASS")
	if !report.Overall.Valid {
		badge = r.style(failStyle, "FAIL")
	}

	score := r.style(lipgloss.NewStyle().Bold(true).Foreground(scoreColor(report.Overall.Score)),
		fmt.Sprintf("%3d/100", report.Overall.Score))

	fmt.Fprintf(b, "  %s %s  %s %s\n", badge, score,
		r.style(titleStyle, report.Component.Path),
		r.style(faintStyle, fmt.Sprintf("(%s)", report.Component.Type)))

	for _, name := range sortedValidatorNames(report.Validators) {
		r.renderValidator(b, name, report.Validators[name])
	}
}

func (r renderer) renderValidator(b *strings.Builder, name string, vr *domain.ValidationResult) {
	var icon string
	switch {
	case vr.Valid && vr.WarningCount == 0:
		icon = r.style(passStyle, "●")
	case vr.Valid:
		icon = r.style(warnTagStyle, "●")
	default:
		icon = r.style(failStyle, "●")
	}

	detail := fmt.Sprintf("score %d", vr.Score)
	if vr.ErrorCount > 0 {
		detail += fmt.Sprintf(", %d error(s)", vr.ErrorCount)
	}
	if vr.WarningCount > 0 {
		detail += fmt.Sprintf(", %d warning(s)", vr.WarningCount)
	}
	fmt.Fprintf(b, "    %s %s %s\n", icon, padRight(name, 12), r.style(dimStyle, detail))

	if !r.opts.Verbose {
		return
	}
	r.renderFindings(b, r.style(errorTagStyle, "error"), vr.Errors)
	r.renderFindings(b, r.style(warnTagStyle, "warn "), vr.Warnings)
	r.renderFindings(b, r.style(infoTagStyle, "info "), vr.Info)
}

func (r renderer) renderFindings(b *strings.Builder, tag string, findings []domain.Finding) {
	for i, f := range findings {
		if i == maxFindingsShown {
			fmt.Fprintf(b, "        %s\n",
				r.style(faintStyle, fmt.Sprintf("… %d more", len(findings)-maxFindingsShown)))
			return
		}
		fmt.Fprintf(b, "        %s %s %s\n", tag,
			r.style(faintStyle, f.Code), r.style(dimStyle, f.Message))
	}
}

func sortedValidatorNames(validators map[string]*domain.ValidationResult) []string {
	names := make([]string, 0, len(validators))
	for name := range validators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func scoreColor(score int) lipgloss.Color {
	switch {
	case score >= 80:
		return success
	case score >= 60:
		return lipgloss.Color("#A3E635") // lime
	case score >= 40:
		return warning
	default:
		return danger
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
