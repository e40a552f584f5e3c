package validation

import (
	"crypto/sha256"
	"fmt"
	"regexp"
	"time"

	"github.com/compvet/compvet/internal/domain"
)

// semverRe accepts MAJOR.MINOR.PATCH with an optional pre-release and
// build suffix, with or without a leading v.
var semverRe = regexp.MustCompile(`^v?\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?$`)

// IntegrityValidator hashes component content and compares it against the
// persisted registry baseline, catching unreviewed drift between runs.
// It is the only validator that touches the registry, and only through
// the narrow RegistryStore port.
type IntegrityValidator struct {
	registry domain.RegistryStore
	now      func() time.Time
}

func NewIntegrityValidator(registry domain.RegistryStore) *IntegrityValidator {
	return &IntegrityValidator{registry: registry, now: time.Now}
}

func (v *IntegrityValidator) Name() string { return "integrity" }

func (v *IntegrityValidator) Validate(c domain.Component, opts domain.Options) (*domain.ValidationResult, error) {
	rec := domain.NewRecorder()

	hash := fmt.Sprintf("%x", sha256.Sum256([]byte(c.RawContent)))
	version := c.FrontmatterString("version")

	if version != "" && !semverRe.MatchString(version) {
		rec.AddError("INT_E002",
			fmt.Sprintf("version %q is not a valid semantic version", version),
			map[string]any{"version": version})
	}

	entry, ok := v.registry.Get(c.Path)
	switch {
	case !ok:
		rec.AddInfo("INT_I005", "new component, registering baseline",
			map[string]any{"hash": hash})
		if opts.UpdateRegistry {
			v.put(c.Path, hash, version)
		}

	case entry.Hash == hash:
		rec.AddInfo("INT_I001", fmt.Sprintf("content matches baseline %s", shortHash(hash)),
			map[string]any{"hash": hash})

	case opts.UpdateRegistry:
		// An intentional content change: overwrite the baseline.
		rec.AddInfo("INT_I002",
			fmt.Sprintf("baseline updated from %s to %s", shortHash(entry.Hash), shortHash(hash)),
			map[string]any{"previous_hash": entry.Hash, "hash": hash})
		v.put(c.Path, hash, version)

	default:
		rec.AddError("INT_E001",
			fmt.Sprintf("content changed since last validated baseline %s", shortHash(entry.Hash)),
			map[string]any{"expected_hash": entry.Hash, "actual_hash": hash})
	}

	result := rec.Result()
	result.Hash = hash
	return result, nil
}

func (v *IntegrityValidator) put(path, hash, version string) {
	v.registry.Put(path, domain.RegistryEntry{
		Path:            path,
		Hash:            hash,
		Version:         version,
		LastValidatedAt: v.now(),
	})
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
