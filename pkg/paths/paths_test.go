package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotlink/dotlink/pkg/errors"
)

func TestNewWithExplicitRoot(t *testing.T) {
	root := t.TempDir()

	p, err := New(root)
	require.NoError(t, err)
	assert.Equal(t, root, p.DotfilesRoot())
	assert.NotEmpty(t, p.HomeDir())
}

func TestNewFromEnv(t *testing.T) {
	root := t.TempDir()
	t.Setenv(EnvDotfilesRoot, root)

	p, err := New("")
	require.NoError(t, err)
	assert.Equal(t, root, p.DotfilesRoot())
}

func TestNewExplicitRootWinsOverEnv(t *testing.T) {
	flagRoot := t.TempDir()
	t.Setenv(EnvDotfilesRoot, t.TempDir())

	p, err := New(flagRoot)
	require.NoError(t, err)
	assert.Equal(t, flagRoot, p.DotfilesRoot())
}

func TestNewWithoutRootFails(t *testing.T) {
	t.Setenv(EnvDotfilesRoot, "")

	_, err := New("")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrInvalidInput))
}

func TestNewRejectsNonDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrInvalidInput))
}

func TestConfigFileLivesInsideRoot(t *testing.T) {
	root := t.TempDir()

	p, err := New(root)
	require.NoError(t, err)

	cfg := p.ConfigFile()
	assert.True(t, filepath.IsAbs(cfg))
	assert.Contains(t, cfg, root)
	assert.Equal(t, ConfigFileName, filepath.Base(cfg))
	assert.Equal(t, AppDirName, filepath.Base(filepath.Dir(cfg)))
}
