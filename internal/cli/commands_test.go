package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/voyagelog/internal/config"
	"github.com/dmitrijs2005/voyagelog/internal/models"
	"github.com/dmitrijs2005/voyagelog/internal/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, cfg *config.Config, stdin string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand(cfg, strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	if args == nil {
		// cobra falls back to os.Args for a nil slice
		args = []string{}
	}
	root.SetArgs(args)
	require.NoError(t, root.Execute())
	return out.String()
}

func sqliteConfig(t *testing.T) *config.Config {
	cfg := testConfig(t)
	cfg.StoreDriver = "sqlite"
	return cfg
}

func TestCommands_ImportThenMessage(t *testing.T) {
	cfg := sqliteConfig(t)

	s := models.DefaultState()
	s.Ship = models.ShipHodr
	models.ApplySample(&s)
	path := filepath.Join(t.TempDir(), "log.yaml")
	require.NoError(t, snapshot.Save(path, s))

	execute(t, cfg, "", "import", path)
	out := execute(t, cfg, "", "message")

	assert.Contains(t, out, "aboard the USS Hodr, auxiliary to the USS Gullinbursti.")
}

func TestCommands_MessageCopy(t *testing.T) {
	cfg := sqliteConfig(t)

	var copied string
	orig := writeClipboard
	t.Cleanup(func() { writeClipboard = orig })
	writeClipboard = func(s string) error { copied = s; return nil }

	out := execute(t, cfg, "", "message", "--copy")
	assert.Contains(t, out, "Message copied to clipboard")
	assert.Contains(t, copied, "**Entry Log**")
}

func TestCommands_SnapshotAndReset(t *testing.T) {
	cfg := sqliteConfig(t)
	execute(t, cfg, "", "import", writeSample(t))

	path := filepath.Join(t.TempDir(), "out.toml")
	execute(t, cfg, "", "snapshot", path)
	got, err := snapshot.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "5", got.VoyageNumber)

	execute(t, cfg, "", "reset")
	execute(t, cfg, "", "snapshot", path)
	got, err = snapshot.Load(path)
	require.NoError(t, err)
	assert.Empty(t, got.VoyageNumber)
	assert.Empty(t, got.Body)
}

func TestCommands_ExportFlagsOverrideConfig(t *testing.T) {
	cfg := sqliteConfig(t)
	execute(t, cfg, "", "import", writeSample(t))

	outDir := t.TempDir()
	execute(t, cfg, "", "export", "--format", "pdf", "--out", outDir)

	files, err := filepath.Glob(filepath.Join(outDir, "*.pdf"))
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestCommands_ReplSessionPersists(t *testing.T) {
	cfg := sqliteConfig(t)
	capturePrint(t)

	execute(t, cfg, "ship Gjallarhorn\nvoyage 9\nexit\n")
	out := execute(t, cfg, "", "message")

	assert.Contains(t, out, "USS Gjallarhorn")
	assert.Contains(t, out, "9th voyage")
}

func TestCommands_Version(t *testing.T) {
	out := execute(t, testConfig(t), "", "version")
	assert.Contains(t, out, "Build version: ")
}

func TestCommands_RejectsBadArgs(t *testing.T) {
	root := NewRootCommand(testConfig(t), strings.NewReader(""))
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"import"})
	assert.Error(t, root.Execute())
}

func writeSample(t *testing.T) string {
	t.Helper()
	s := models.DefaultState()
	models.ApplySample(&s)
	path := filepath.Join(t.TempDir(), "sample.json")
	require.NoError(t, snapshot.Save(path, s))
	return path
}
