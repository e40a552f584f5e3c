package validation

import (
	"fmt"

	"github.com/compvet/compvet/internal/domain"
)

// SemanticValidator scans raw content against the pattern catalogue. It is
// a syntactic matcher, not a classifier: false positives are expected and
// acceptable because a human reviews failures before merge.
type SemanticValidator struct {
	catalogue []Pattern
	overrides map[string]string
}

// NewSemanticValidator builds a semantic validator over the shipped
// catalogue. Severity overrides (per catalogue code) come from config.
func NewSemanticValidator(overrides map[string]string) *SemanticValidator {
	return &SemanticValidator{catalogue: Catalogue, overrides: overrides}
}

func (v *SemanticValidator) Name() string { return "semantic" }

// Validate reports every catalogue match with its location and matched
// substring. Strict mode promotes promotable warnings to errors.
func (v *SemanticValidator) Validate(c domain.Component, opts domain.Options) (*domain.ValidationResult, error) {
	rec := domain.NewRecorder()

	for _, p := range v.catalogue {
		severity := p.Severity
		if o, ok := v.overrides[p.Code]; ok {
			severity = o
		}
		if opts.Strict && p.Promotable && severity == domain.SeverityWarning {
			severity = domain.SeverityError
		}

		for _, m := range p.Matcher.FindAllStringIndex(c.RawContent, -1) {
			loc := domain.Locate(c.RawContent, m[0])
			matched := c.RawContent[m[0]:m[1]]
			rec.AddFinding(severity, p.Code,
				fmt.Sprintf("%s: %q", p.Description, matched),
				map[string]any{
					"pattern":   p.Code,
					"matched":   matched,
					"line":      loc.Line,
					"column":    loc.Column,
					"line_text": loc.LineText,
				})
		}
	}

	rec.AddInfo("SEM_I001", fmt.Sprintf("scanned against pattern catalogue %s", CatalogueVersion),
		map[string]any{"catalogue_version": CatalogueVersion, "patterns": len(v.catalogue)})

	return rec.Result(), nil
}
