package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotlink/dotlink/pkg/errors"
	"github.com/dotlink/dotlink/pkg/testutil"
	"github.com/dotlink/dotlink/pkg/types"
)

const (
	dotfilesRoot = "/home/user/dotfiles"
	homeDir      = "/home/user"
	configFile   = dotfilesRoot + "/.config/dotlink/config.toml"
)

func TestStatusClassifiesAllMappings(t *testing.T) {
	m := testutil.NewMemoryFS()
	testutil.MustWriteFile(t, m, configFile, `
version = 1

[[mappings]]
source = "bashrc"
target = ".bashrc"

[[mappings]]
source = "vimrc"
target = ".vimrc"

[[mappings]]
source = "gone"
target = ".gone"

[[mappings]]
source = "gitconfig"
target = ".gitconfig"
`)
	// .bashrc is correctly linked.
	testutil.MustWriteFile(t, m, dotfilesRoot+"/bashrc", "x")
	testutil.MustSymlink(t, m, dotfilesRoot+"/bashrc", homeDir+"/.bashrc")
	// .vimrc conflicts with a pre-existing regular file.
	testutil.MustWriteFile(t, m, dotfilesRoot+"/vimrc", "x")
	testutil.MustWriteFile(t, m, homeDir+"/.vimrc", "user data")
	// .gone has no source.
	// .gitconfig is not linked yet.
	testutil.MustWriteFile(t, m, dotfilesRoot+"/gitconfig", "x")

	result, err := Run(Options{FS: m, DotfilesRoot: dotfilesRoot, HomeDir: homeDir, ConfigFile: configFile})
	require.NoError(t, err)
	require.Len(t, result.Statuses, 4)

	assert.Equal(t, types.StatusLinked, result.Statuses[0].Status)
	assert.Equal(t, types.StatusConflict, result.Statuses[1].Status)
	assert.Equal(t, types.StatusMissing, result.Statuses[2].Status)
	assert.Equal(t, types.StatusUnlinked, result.Statuses[3].Status)
}

func TestStatusWithoutConfigIsEmpty(t *testing.T) {
	m := testutil.NewMemoryFS()

	result, err := Run(Options{FS: m, DotfilesRoot: dotfilesRoot, HomeDir: homeDir, ConfigFile: configFile})
	require.NoError(t, err)
	assert.Empty(t, result.Statuses)
}

func TestStatusNeverMutates(t *testing.T) {
	m := testutil.NewMemoryFS()
	testutil.MustWriteFile(t, m, configFile, "[[mappings]]\nsource = \"bashrc\"\n")
	testutil.MustWriteFile(t, m, dotfilesRoot+"/bashrc", "x")

	before := m.Snapshot()
	_, err := Run(Options{FS: m, DotfilesRoot: dotfilesRoot, HomeDir: homeDir, ConfigFile: configFile})
	require.NoError(t, err)
	assert.Equal(t, before, m.Snapshot())
}

func TestStatusFailsOnBrokenConfig(t *testing.T) {
	m := testutil.NewMemoryFS()
	testutil.MustWriteFile(t, m, configFile, "not [valid toml")

	_, err := Run(Options{FS: m, DotfilesRoot: dotfilesRoot, HomeDir: homeDir, ConfigFile: configFile})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfigParse))
}
