package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rheo5/WLP4-compiler/internal/compileerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Load_missingDefaultPathIsOK(t *testing.T) {
	dir := t.TempDir()
	old, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(old)

	cfg, err := Load(DefaultPath)
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func Test_Load_missingNamedPathIsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.Error(t, err)

	kind, ok := compileerr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, compileerr.KindLoader, kind)
}

func Test_Load_malformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("trace_tokens = [unterminated"), 0o644))

	_, err := Load(path)
	require.Error(t, err)

	kind, ok := compileerr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, compileerr.KindLoader, kind)
}

func Test_Load_wellFormed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wlp4toolchain.toml")
	contents := `
trace_tokens = true
dump_tree = true
dump_table = true
cfg_file = "wlp4.cfg"
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.TraceTokens)
	assert.True(t, cfg.DumpTree)
	assert.True(t, cfg.DumpTable)
	assert.False(t, cfg.TraceParse)
	assert.Equal(t, "wlp4.cfg", cfg.CFGFile)
}
