package domain

import "time"

// RunEntry is one persisted line of validation run history, used for
// trend tracking across batches.
type RunEntry struct {
	Timestamp  string   `json:"timestamp"`
	RunID      string   `json:"run_id"`
	Total      int      `json:"total"`
	Passed     int      `json:"passed"`
	Failed     int      `json:"failed"`
	Warnings   int      `json:"warnings"`
	MeanScore  int      `json:"mean_score"`
	ErrorCodes []string `json:"error_codes,omitempty"`
}

// NewRunEntry summarizes a batch report for the history log.
func NewRunEntry(report *BatchReport) RunEntry {
	var sum int
	for _, c := range report.Components {
		sum += c.Overall.Score
	}
	mean := 0
	if len(report.Components) > 0 {
		mean = sum / len(report.Components)
	}

	return RunEntry{
		Timestamp:  report.Timestamp.UTC().Format(time.RFC3339),
		RunID:      report.RunID,
		Total:      report.Summary.Total,
		Passed:     report.Summary.Passed,
		Failed:     report.Summary.Failed,
		Warnings:   report.Summary.Warnings,
		MeanScore:  mean,
		ErrorCodes: report.ErrorCodes(),
	}
}

// RunHistory persists run summaries for trend inspection.
type RunHistory interface {
	Save(dir string, entry RunEntry) error
	Load(dir string) ([]RunEntry, error)
}
