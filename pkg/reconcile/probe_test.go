package reconcile

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotlink/dotlink/pkg/errors"
	"github.com/dotlink/dotlink/pkg/testutil"
	"github.com/dotlink/dotlink/pkg/types"
)

func TestProbeAbsent(t *testing.T) {
	m := testutil.NewMemoryFS()

	state, err := Probe(m, "/home/user/.bashrc")
	require.NoError(t, err)
	assert.Equal(t, types.TargetAbsent, state.Kind)
}

func TestProbeOtherFile(t *testing.T) {
	m := testutil.NewMemoryFS()
	testutil.MustWriteFile(t, m, "/home/user/.bashrc", "not a link")

	state, err := Probe(m, "/home/user/.bashrc")
	require.NoError(t, err)
	assert.Equal(t, types.TargetOtherFile, state.Kind)
}

func TestProbeDirectoryIsOtherFile(t *testing.T) {
	m := testutil.NewMemoryFS()
	testutil.MustMkdirAll(t, m, "/home/user/.config/nvim")

	state, err := Probe(m, "/home/user/.config/nvim")
	require.NoError(t, err)
	assert.Equal(t, types.TargetOtherFile, state.Kind)
}

func TestProbeSymlink(t *testing.T) {
	m := testutil.NewMemoryFS()
	testutil.MustWriteFile(t, m, "/df/bashrc", "x")
	testutil.MustSymlink(t, m, "/df/bashrc", "/home/user/.bashrc")

	state, err := Probe(m, "/home/user/.bashrc")
	require.NoError(t, err)
	assert.Equal(t, types.TargetSymlink, state.Kind)
	assert.Equal(t, "/df/bashrc", state.Dest)
}

func TestProbeDanglingSymlinkIsNotAbsent(t *testing.T) {
	m := testutil.NewMemoryFS()
	testutil.MustSymlink(t, m, "/df/gone", "/home/user/.gone")

	state, err := Probe(m, "/home/user/.gone")
	require.NoError(t, err)
	assert.Equal(t, types.TargetSymlink, state.Kind)
	assert.Equal(t, "/df/gone", state.Dest)
}

func TestProbeResolvesRelativeDestinations(t *testing.T) {
	m := testutil.NewMemoryFS()
	testutil.MustWriteFile(t, m, "/home/user/df/bashrc", "x")
	testutil.MustSymlink(t, m, "df/bashrc", "/home/user/.bashrc")

	state, err := Probe(m, "/home/user/.bashrc")
	require.NoError(t, err)
	assert.Equal(t, types.TargetSymlink, state.Kind)
	assert.Equal(t, "/home/user/df/bashrc", state.Dest)
}

func TestProbeOpaqueErrors(t *testing.T) {
	m := testutil.NewMemoryFS()
	testutil.MustWriteFile(t, m, "/home/user/.bashrc", "x")
	m.InjectError("/home/user/.bashrc", fs.ErrPermission)

	_, err := Probe(m, "/home/user/.bashrc")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrPermission))
}
