package errors

import (
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	err := Newf(ErrNotFound, "no mapping for %q", ".bashrc")
	assert.Equal(t, `[NOT_FOUND] no mapping for ".bashrc"`, err.Error())

	wrapped := Wrap(fs.ErrPermission, ErrPermission, "cannot remove target")
	assert.Contains(t, wrapped.Error(), "[PERMISSION]")
	assert.Contains(t, wrapped.Error(), "permission denied")
}

func TestUnwrapAndIs(t *testing.T) {
	cause := fs.ErrNotExist
	err := Wrap(cause, ErrIoFailure, "probe failed")

	require.True(t, stderrors.Is(err, fs.ErrNotExist))
	assert.True(t, stderrors.Is(err, New(ErrIoFailure, "anything")))
	assert.False(t, stderrors.Is(err, New(ErrPermission, "anything")))
}

func TestIsCodeAndCodeOf(t *testing.T) {
	err := New(ErrDuplicateTarget, "target already mapped")

	assert.True(t, IsCode(err, ErrDuplicateTarget))
	assert.False(t, IsCode(err, ErrNotFound))
	assert.Equal(t, ErrDuplicateTarget, CodeOf(err))
	assert.Equal(t, ErrUnknown, CodeOf(stderrors.New("plain")))
	assert.False(t, IsCode(nil, ErrNotFound))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrIoFailure, "nothing"))
	assert.Nil(t, Wrapf(nil, ErrIoFailure, "nothing %d", 1))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrRaceConflict, "target changed since planning").
		WithDetail("target", "/home/u/.bashrc").
		WithDetail("expected", "/df/bashrc")

	require.NotNil(t, err.Details)
	assert.Equal(t, "/home/u/.bashrc", err.Details["target"])
}
