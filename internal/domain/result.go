package domain

import "time"

// ValidationResult is the outcome of one validator for one component.
// Valid and Score are pure functions of the error and warning counts.
type ValidationResult struct {
	Valid        bool      `json:"valid"`
	Score        int       `json:"score"`
	ErrorCount   int       `json:"error_count"`
	WarningCount int       `json:"warning_count"`
	Errors       []Finding `json:"errors"`
	Warnings     []Finding `json:"warnings"`
	Info         []Finding `json:"info"`

	// Hash carries the integrity validator's computed digest; empty for
	// every other validator.
	Hash string `json:"hash,omitempty"`
}

// ScoreFor computes the trust score contribution of a finding tally. An
// error costs 25 points and a warning 5, floored at zero, so any validator
// with four or more errors scores 0 while warnings degrade gracefully.
func ScoreFor(errorCount, warningCount int) int {
	score := 100 - 25*errorCount - 5*warningCount
	if score < 0 {
		return 0
	}
	return score
}

// Recorder accumulates findings during a single Validate call. A fresh
// Recorder is created per call, so validators carry no cross-call state.
type Recorder struct {
	errors   []Finding
	warnings []Finding
	info     []Finding
	now      func() time.Time
}

// NewRecorder returns an empty finding accumulator.
func NewRecorder() *Recorder {
	return &Recorder{now: time.Now}
}

func (r *Recorder) add(level, code, message string, metadata map[string]any) Finding {
	return Finding{
		Level:     level,
		Code:      code,
		Message:   message,
		Metadata:  metadata,
		Timestamp: r.now(),
	}
}

// AddError records an error-level finding.
func (r *Recorder) AddError(code, message string, metadata map[string]any) {
	r.errors = append(r.errors, r.add(SeverityError, code, message, metadata))
}

// AddWarning records a warning-level finding.
func (r *Recorder) AddWarning(code, message string, metadata map[string]any) {
	r.warnings = append(r.warnings, r.add(SeverityWarning, code, message, metadata))
}

// AddInfo records an info-level finding.
func (r *Recorder) AddInfo(code, message string, metadata map[string]any) {
	r.info = append(r.info, r.add(SeverityInfo, code, message, metadata))
}

// AddFinding records a finding at the given severity, used when the
// severity comes from the pattern catalogue or a config override.
func (r *Recorder) AddFinding(level, code, message string, metadata map[string]any) {
	switch level {
	case SeverityError:
		r.AddError(code, message, metadata)
	case SeverityWarning:
		r.AddWarning(code, message, metadata)
	default:
		r.AddInfo(code, message, metadata)
	}
}

// IsValid reports whether no errors have been recorded. Warnings never
// affect validity, only score.
func (r *Recorder) IsValid() bool {
	return len(r.errors) == 0
}

// Score returns the trust score for the findings recorded so far.
func (r *Recorder) Score() int {
	return ScoreFor(len(r.errors), len(r.warnings))
}

// Result seals the accumulated findings into a ValidationResult.
func (r *Recorder) Result() *ValidationResult {
	return &ValidationResult{
		Valid:        r.IsValid(),
		Score:        r.Score(),
		ErrorCount:   len(r.errors),
		WarningCount: len(r.warnings),
		Errors:       append([]Finding(nil), r.errors...),
		Warnings:     append([]Finding(nil), r.warnings...),
		Info:         append([]Finding(nil), r.info...),
	}
}
