package application

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/compvet/compvet/internal/domain"
	"github.com/compvet/compvet/internal/domain/validation"
)

// Orchestrator runs the validator set over components and aggregates the
// results into component and batch reports.
type Orchestrator struct {
	cfg        domain.ToolConfig
	validators []domain.Validator
	registry   domain.RegistryStore
	logger     *log.Logger
	workers    int
}

// Option tunes an Orchestrator.
type Option func(*Orchestrator)

// WithLogger attaches a structured logger for per-run debug output.
func WithLogger(logger *log.Logger) Option {
	return func(o *Orchestrator) { o.logger = logger }
}

// WithReputationChecker plugs an external link-reputation lookup into the
// reference validator.
func WithReputationChecker(rc domain.ReputationChecker) Option {
	return func(o *Orchestrator) {
		for i, v := range o.validators {
			if v.Name() == "reference" {
				o.validators[i] = validation.NewReferenceValidator(o.cfg.TrustedDomains, rc)
			}
		}
	}
}

// WithExtraValidators appends validators to the default set, e.g. an
// organization-specific check.
func WithExtraValidators(vs ...domain.Validator) Option {
	return func(o *Orchestrator) {
		o.validators = append(o.validators, vs...)
	}
}

// WithWorkers overrides the batch parallelism, which defaults to the
// available CPU count.
func WithWorkers(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.workers = n
		}
	}
}

// NewOrchestrator builds the default validator set from config. Only the
// integrity validator receives the registry store.
func NewOrchestrator(cfg domain.ToolConfig, registry domain.RegistryStore, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		cfg: cfg,
		validators: []domain.Validator{
			validation.NewStructuralValidator(),
			validation.NewIntegrityValidator(registry),
			validation.NewSemanticValidator(cfg.SeverityOverrides),
			validation.NewReferenceValidator(cfg.TrustedDomains, nil),
			validation.NewProvenanceValidator(cfg.HostingDomains),
		},
		registry: registry,
		logger:   log.New(io.Discard),
		workers:  runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ValidatorNames lists the validators in run order.
func (o *Orchestrator) ValidatorNames() []string {
	names := make([]string, len(o.validators))
	for i, v := range o.validators {
		names[i] = v.Name()
	}
	return names
}

// ValidateComponent runs the requested validators over one component.
// A validator that returns an error or panics contributes a synthetic
// failing result instead of aborting the others.
func (o *Orchestrator) ValidateComponent(c domain.Component, opts domain.Options) domain.ComponentReport {
	if o.cfg.Strict {
		opts.Strict = true
	}
	report := domain.ComponentReport{
		Component:  c.Ref(),
		Timestamp:  time.Now(),
		Validators: make(map[string]*domain.ValidationResult),
	}

	known := make(map[string]bool, len(o.validators))
	for _, v := range o.validators {
		known[v.Name()] = true
		if !opts.WantsValidator(v.Name()) {
			continue
		}
		result := o.runValidator(v, c, opts)
		report.Validators[v.Name()] = result
		o.logger.Debug("validator finished",
			"component", c.Path, "validator", v.Name(),
			"valid", result.Valid, "score", result.Score)
	}

	// A requested name that matches nothing must fail loudly: dropping it
	// would let a typo disable the whole gate and report a vacuous pass.
	for _, name := range opts.Validators {
		if !known[name] {
			o.logger.Error("unknown validator requested", "validator", name)
			report.Validators[name] = unknownValidator(name)
		}
	}

	report.Aggregate()
	return report
}

// runValidator isolates a single validator run: errors and panics map to
// a synthetic failing result so one broken validator never takes down the
// rest of the pipeline.
func (o *Orchestrator) runValidator(v domain.Validator, c domain.Component, opts domain.Options) (result *domain.ValidationResult) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("validator panicked", "validator", v.Name(), "panic", r)
			result = syntheticFailure(v.Name(), fmt.Errorf("panic: %v", r))
		}
	}()

	result, err := v.Validate(c, opts)
	if err != nil {
		o.logger.Error("validator failed", "validator", v.Name(), "err", err)
		return syntheticFailure(v.Name(), err)
	}
	return result
}

func unknownValidator(name string) *domain.ValidationResult {
	rec := domain.NewRecorder()
	rec.AddError("ORCH_E002",
		fmt.Sprintf("unknown validator %q requested", name),
		map[string]any{"validator": name})
	return rec.Result()
}

func syntheticFailure(name string, err error) *domain.ValidationResult {
	rec := domain.NewRecorder()
	rec.AddError("ORCH_E001",
		fmt.Sprintf("validator %s failed to complete: %v", name, err),
		map[string]any{"validator": name})
	return rec.Result()
}

// ValidateBatch validates components in parallel, preserving input order
// in the report. The registry is flushed once at the end; validation is
// CPU-bound and the registry store is the only shared mutable resource.
func (o *Orchestrator) ValidateBatch(components []domain.Component, opts domain.Options) *domain.BatchReport {
	report := &domain.BatchReport{
		RunID:      uuid.NewString(),
		Timestamp:  time.Now(),
		Components: make([]domain.ComponentReport, len(components)),
	}

	workers := o.workers
	if workers > len(components) {
		workers = len(components)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				report.Components[i] = o.ValidateComponent(components[i], opts)
			}
		}()
	}
	for i := range components {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	report.Tally()

	if o.registry != nil {
		if err := o.registry.Flush(); err != nil {
			o.logger.Warn("flushing hash registry", "err", err)
		}
	}

	return report
}

// JSONReport serializes a batch report for CI artifacts. Every finding is
// preserved in full.
func JSONReport(report *domain.BatchReport) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling report: %w", err)
	}
	return string(data), nil
}
