package policy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeList(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "list.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadMissingFileIsEmptySet(t *testing.T) {
	set, err := Load(filepath.Join(t.TempDir(), "does-not-exist.txt"))
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestLoadSkipsBlanksAndComments(t *testing.T) {
	path := writeList(t, "alice\n\n# a comment\nbob\n   \n#charlie\n")

	set, err := Load(path)
	require.NoError(t, err)

	assert.Len(t, set, 2)
	assert.Contains(t, set, "alice")
	assert.Contains(t, set, "bob")
	assert.NotContains(t, set, "charlie")
}

func TestLoadCanonicalizesAndTrims(t *testing.T) {
	path := writeList(t, "  Alice  \nBOB\n")

	set, err := Load(path)
	require.NoError(t, err)

	assert.Contains(t, set, "alice")
	assert.Contains(t, set, "bob")
	assert.NotContains(t, set, "Alice")
}
