package validation

import (
	"crypto/sha256"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compvet/compvet/internal/domain"
)

// memRegistry is an in-memory RegistryStore for tests.
type memRegistry struct {
	entries map[string]domain.RegistryEntry
	flushes int
}

func newMemRegistry() *memRegistry {
	return &memRegistry{entries: make(map[string]domain.RegistryEntry)}
}

func (m *memRegistry) Get(path string) (*domain.RegistryEntry, bool) {
	e, ok := m.entries[path]
	if !ok {
		return nil, false
	}
	return &e, true
}

func (m *memRegistry) Put(path string, entry domain.RegistryEntry) {
	m.entries[path] = entry
}

func (m *memRegistry) Flush() error {
	m.flushes++
	return nil
}

func component(path, content string) domain.Component {
	return domain.Component{Path: path, Type: domain.TypeAgent, RawContent: content}
}

func TestIntegrity_NewComponentRecordsInfoOnly(t *testing.T) {
	reg := newMemRegistry()
	v := NewIntegrityValidator(reg)

	result, err := v.Validate(component("agents/a.md", "hello"), domain.Options{})
	require.NoError(t, err)

	assert.True(t, result.Valid)
	assert.Equal(t, "INT_I005", result.Info[0].Code)
	assert.Empty(t, reg.entries, "baseline must not register without UpdateRegistry")
}

func TestIntegrity_NewComponentRegistersWithUpdate(t *testing.T) {
	reg := newMemRegistry()
	v := NewIntegrityValidator(reg)

	_, err := v.Validate(component("agents/a.md", "hello"), domain.Options{UpdateRegistry: true})
	require.NoError(t, err)

	entry, ok := reg.Get("agents/a.md")
	require.True(t, ok)
	assert.Equal(t, fmt.Sprintf("%x", sha256.Sum256([]byte("hello"))), entry.Hash)
	assert.False(t, entry.LastValidatedAt.IsZero())
}

func TestIntegrity_MatchingBaseline(t *testing.T) {
	reg := newMemRegistry()
	v := NewIntegrityValidator(reg)

	_, err := v.Validate(component("agents/a.md", "hello"), domain.Options{UpdateRegistry: true})
	require.NoError(t, err)

	result, err := v.Validate(component("agents/a.md", "hello"), domain.Options{})
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, "INT_I001", result.Info[0].Code)
}

func TestIntegrity_TamperDetection(t *testing.T) {
	reg := newMemRegistry()
	v := NewIntegrityValidator(reg)

	_, err := v.Validate(component("agents/a.md", "hello"), domain.Options{UpdateRegistry: true})
	require.NoError(t, err)

	// A single changed character must yield exactly one INT_E001.
	result, err := v.Validate(component("agents/a.md", "hellO"), domain.Options{})
	require.NoError(t, err)
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "INT_E001", result.Errors[0].Code)
	assert.NotEmpty(t, result.Errors[0].Metadata["expected_hash"])
}

func TestIntegrity_IntentionalUpdateOverwritesBaseline(t *testing.T) {
	reg := newMemRegistry()
	v := NewIntegrityValidator(reg)

	_, err := v.Validate(component("agents/a.md", "v1"), domain.Options{UpdateRegistry: true})
	require.NoError(t, err)

	result, err := v.Validate(component("agents/a.md", "v2"), domain.Options{UpdateRegistry: true})
	require.NoError(t, err)
	assert.True(t, result.Valid)

	entry, _ := reg.Get("agents/a.md")
	assert.Equal(t, fmt.Sprintf("%x", sha256.Sum256([]byte("v2"))), entry.Hash)
}

func TestIntegrity_HashExposedOnResult(t *testing.T) {
	v := NewIntegrityValidator(newMemRegistry())
	result, err := v.Validate(component("agents/a.md", "hello"), domain.Options{})
	require.NoError(t, err)
	assert.Len(t, result.Hash, 64)
}

func TestIntegrity_ValidSemver(t *testing.T) {
	v := NewIntegrityValidator(newMemRegistry())
	c := component("agents/a.md", "body")
	c.Frontmatter = map[string]any{"version": "1.2.3-beta.1"}

	result, err := v.Validate(c, domain.Options{})
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestIntegrity_MalformedSemver(t *testing.T) {
	v := NewIntegrityValidator(newMemRegistry())
	for _, bad := range []string{"1.2", "latest", "1.2.x", "1.2.3.4"} {
		c := component("agents/a.md", "body")
		c.Frontmatter = map[string]any{"version": bad}

		result, err := v.Validate(c, domain.Options{})
		require.NoError(t, err)
		assert.Equal(t, "INT_E002", result.Errors[0].Code, "version %q", bad)
	}
}
