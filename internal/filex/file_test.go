package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir_Absolute(t *testing.T) {
	base := t.TempDir()
	want := filepath.Join(base, "exports", "nested")

	got, err := EnsureDir(want)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	st, err := os.Stat(got)
	require.NoError(t, err)
	assert.True(t, st.IsDir())
}

func TestEnsureDir_RelativeResolvesAgainstCwd(t *testing.T) {
	base := t.TempDir()
	t.Chdir(base)

	got, err := EnsureDir("out")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
	assert.Equal(t, "out", filepath.Base(got))
}

func TestEnsureDir_FileInTheWay(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := EnsureDir(filepath.Join(blocker, "sub"))
	require.Error(t, err)
}

func TestSafeName(t *testing.T) {
	assert.Equal(t, "USS A-B - 3rd Voyage Log.png", SafeName("USS A/B - 3rd Voyage Log.png"))
	assert.Equal(t, "plain.pdf", SafeName("plain.pdf"))
}
