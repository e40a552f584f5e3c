package domain

import (
	"sort"
	"time"
)

// OverallResult aggregates all validator results for one component.
type OverallResult struct {
	Valid        bool `json:"valid"`
	Score        int  `json:"score"`
	ErrorCount   int  `json:"error_count"`
	WarningCount int  `json:"warning_count"`
}

// ComponentReport is the full validation outcome for one component.
type ComponentReport struct {
	Component  ComponentRef                 `json:"component"`
	Timestamp  time.Time                    `json:"timestamp"`
	Overall    OverallResult                `json:"overall"`
	Validators map[string]*ValidationResult `json:"validators"`
}

// Aggregate recomputes the overall block from the per-validator results.
// The overall score is the mean of validator scores that are above zero;
// a validator scoring exactly 0 is excluded from the average unless every
// validator scored 0.
func (r *ComponentReport) Aggregate() {
	r.Overall = OverallResult{Valid: true}

	var sum, nonZero int
	for _, vr := range r.Validators {
		if vr == nil {
			continue
		}
		r.Overall.Valid = r.Overall.Valid && vr.Valid
		r.Overall.ErrorCount += vr.ErrorCount
		r.Overall.WarningCount += vr.WarningCount
		if vr.Score > 0 {
			sum += vr.Score
			nonZero++
		}
	}
	if nonZero > 0 {
		r.Overall.Score = sum / nonZero
	}
}

// BatchSummary tallies a batch of component reports.
type BatchSummary struct {
	Total    int `json:"total"`
	Passed   int `json:"passed"`
	Failed   int `json:"failed"`
	Warnings int `json:"warnings"`
}

// BatchReport aggregates validation across many components. Components
// keep the caller's ordering. Invariant: Passed + Failed == Total.
type BatchReport struct {
	RunID      string            `json:"run_id"`
	Timestamp  time.Time         `json:"timestamp"`
	Summary    BatchSummary      `json:"summary"`
	Components []ComponentReport `json:"components"`
}

// Tally recomputes the summary from the component reports.
func (b *BatchReport) Tally() {
	b.Summary = BatchSummary{Total: len(b.Components)}
	for _, c := range b.Components {
		if c.Overall.Valid {
			b.Summary.Passed++
		} else {
			b.Summary.Failed++
		}
		b.Summary.Warnings += c.Overall.WarningCount
	}
}

// ErrorCodes collects every distinct finding code observed in the batch,
// sorted, for dashboards and trend tracking.
func (b *BatchReport) ErrorCodes() []string {
	seen := make(map[string]bool)
	for _, c := range b.Components {
		for _, vr := range c.Validators {
			if vr == nil {
				continue
			}
			for _, list := range [][]Finding{vr.Errors, vr.Warnings, vr.Info} {
				for _, f := range list {
					seen[f.Code] = true
				}
			}
		}
	}

	codes := make([]string, 0, len(seen))
	for code := range seen {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
