package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotlink/dotlink/pkg/testutil"
	"github.com/dotlink/dotlink/pkg/types"
)

const (
	dotfilesRoot = "/home/user/dotfiles"
	homeDir      = "/home/user"
)

func classify(t *testing.T, m *testutil.MemoryFS, mapping types.Mapping) types.MappingStatus {
	t.Helper()
	status, err := Classify(m, mapping, dotfilesRoot, homeDir)
	require.NoError(t, err)
	return status
}

func TestClassifyUnlinked(t *testing.T) {
	m := testutil.NewMemoryFS()
	testutil.MustWriteFile(t, m, dotfilesRoot+"/nvim.conf", "cfg")

	status := classify(t, m, types.Mapping{Source: "nvim.conf", Target: ".config/nvim/init"})
	assert.Equal(t, types.StatusUnlinked, status.Status)
}

func TestClassifyLinked(t *testing.T) {
	m := testutil.NewMemoryFS()
	testutil.MustWriteFile(t, m, dotfilesRoot+"/bashrc", "cfg")
	testutil.MustSymlink(t, m, dotfilesRoot+"/bashrc", homeDir+"/.bashrc")

	status := classify(t, m, types.Mapping{Source: "bashrc", Target: ".bashrc"})
	assert.Equal(t, types.StatusLinked, status.Status)
}

func TestClassifyMissingSource(t *testing.T) {
	m := testutil.NewMemoryFS()
	testutil.MustMkdirAll(t, m, dotfilesRoot)

	status := classify(t, m, types.Mapping{Source: "gone.conf", Target: ".gone"})
	assert.Equal(t, types.StatusMissing, status.Status)
}

func TestClassifyMissingWinsOverDanglingLinkToRightPlace(t *testing.T) {
	// The target symlink points exactly where the source would be, but
	// the source is gone. Missing must win over Linked.
	m := testutil.NewMemoryFS()
	testutil.MustMkdirAll(t, m, dotfilesRoot)
	testutil.MustSymlink(t, m, dotfilesRoot+"/bashrc", homeDir+"/.bashrc")

	status := classify(t, m, types.Mapping{Source: "bashrc", Target: ".bashrc"})
	assert.Equal(t, types.StatusMissing, status.Status)
}

func TestClassifyConflictRegularFile(t *testing.T) {
	m := testutil.NewMemoryFS()
	testutil.MustWriteFile(t, m, dotfilesRoot+"/bashrc", "cfg")
	testutil.MustWriteFile(t, m, homeDir+"/.bashrc", "pre-existing user data")

	status := classify(t, m, types.Mapping{Source: "bashrc", Target: ".bashrc"})
	assert.Equal(t, types.StatusConflict, status.Status)
	assert.Contains(t, status.Detail, "not a symlink")
}

func TestClassifyConflictWrongDestination(t *testing.T) {
	m := testutil.NewMemoryFS()
	testutil.MustWriteFile(t, m, dotfilesRoot+"/bashrc", "cfg")
	testutil.MustSymlink(t, m, "/somewhere/else", homeDir+"/.bashrc")

	status := classify(t, m, types.Mapping{Source: "bashrc", Target: ".bashrc"})
	assert.Equal(t, types.StatusConflict, status.Status)
	assert.Contains(t, status.Detail, "/somewhere/else")
}

func TestClassifyLinkedViaRelativeDestination(t *testing.T) {
	m := testutil.NewMemoryFS()
	testutil.MustWriteFile(t, m, dotfilesRoot+"/bashrc", "cfg")
	testutil.MustSymlink(t, m, "dotfiles/bashrc", homeDir+"/.bashrc")

	status := classify(t, m, types.Mapping{Source: "bashrc", Target: ".bashrc"})
	assert.Equal(t, types.StatusLinked, status.Status)
}

func TestClassifyIsIdempotent(t *testing.T) {
	m := testutil.NewMemoryFS()
	testutil.MustWriteFile(t, m, dotfilesRoot+"/bashrc", "cfg")
	testutil.MustSymlink(t, m, "/somewhere/else", homeDir+"/.bashrc")

	mapping := types.Mapping{Source: "bashrc", Target: ".bashrc"}
	first := classify(t, m, mapping)
	second := classify(t, m, mapping)
	assert.Equal(t, first, second)
}

func TestClassifyAllPreservesOrder(t *testing.T) {
	m := testutil.NewMemoryFS()
	testutil.MustWriteFile(t, m, dotfilesRoot+"/bashrc", "cfg")
	testutil.MustWriteFile(t, m, dotfilesRoot+"/vimrc", "cfg")

	mappings := []types.Mapping{
		{Source: "vimrc", Target: ".vimrc"},
		{Source: "missing", Target: ".missing"},
		{Source: "bashrc", Target: ".bashrc"},
	}
	statuses, err := ClassifyAll(m, mappings, dotfilesRoot, homeDir)
	require.NoError(t, err)
	require.Len(t, statuses, 3)
	assert.Equal(t, ".vimrc", statuses[0].Mapping.Target)
	assert.Equal(t, types.StatusMissing, statuses[1].Status)
	assert.Equal(t, ".bashrc", statuses[2].Mapping.Target)
}
