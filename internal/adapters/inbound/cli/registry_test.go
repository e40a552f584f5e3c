package cli_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryList_Empty(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := runCommand(t, "registry", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No registered baselines")
}

func TestRegistryList_JSON(t *testing.T) {
	good, _ := fixtureWorkspace(t)

	_, err := runCommand(t, "validate", good, "--update-registry", "--no-color")
	require.NoError(t, err)

	out, err := runCommand(t, "registry", "list", "--json")
	require.NoError(t, err)

	var entries []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &entries), "output should be valid JSON array")
	require.Len(t, entries, 1)
	assert.Equal(t, good, entries[0]["path"])
}
