package domain

// Options selects and tunes the validators for a run.
type Options struct {
	// Validators names the validators to run; empty means all.
	Validators []string
	// Strict promotes promotable semantic warnings to errors.
	Strict bool
	// UpdateRegistry records new content hashes as intentional changes
	// instead of flagging them as drift.
	UpdateRegistry bool
}

// WantsValidator reports whether the named validator was requested.
func (o Options) WantsValidator(name string) bool {
	if len(o.Validators) == 0 {
		return true
	}
	for _, v := range o.Validators {
		if v == name {
			return true
		}
	}
	return false
}

// Validator is one independent check over a component. Validate never
// mutates the component; a non-nil error means the validator itself broke
// and the orchestrator substitutes a synthetic failing result.
type Validator interface {
	Name() string
	Validate(c Component, opts Options) (*ValidationResult, error)
}

// RegistryStore is the narrow interface the integrity validator uses to
// read and conditionally write content baselines. Implementations must
// serialize writes; reads see the snapshot taken when the store opened.
type RegistryStore interface {
	Get(path string) (*RegistryEntry, bool)
	Put(path string, entry RegistryEntry)
	Flush() error
}

// ComponentLoader supplies components from storage.
type ComponentLoader interface {
	Load(path string) (*Component, error)
	LoadDir(root string) ([]Component, error)
}

// ConfigLoader reads tool configuration for a working directory.
type ConfigLoader interface {
	Load(dir string) (ToolConfig, error)
}

// CommitInfo supplies git commit metadata for a component path, when the
// component lives in a checkout. Implementations return (nil, nil) when
// no repository is present.
type CommitInfo interface {
	LastCommit(path string) (*CommitMeta, error)
}

// ReputationChecker is an optional external link-reputation lookup. Its
// verdicts are additive evidence only; absence or failure never fails
// validation.
type ReputationChecker interface {
	Check(url string) (verdict string, err error)
}
