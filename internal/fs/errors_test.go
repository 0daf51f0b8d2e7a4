package fs

import (
	"context"
	"errors"
	iofs "io/fs"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"not exist", iofs.ErrNotExist, KindNotFound},
		{"permission", iofs.ErrPermission, KindNoPermission},
		{"exists", iofs.ErrExist, KindAlreadyExists},
		{"is a directory", syscall.EISDIR, KindIsADirectory},
		{"cancelled", context.Canceled, KindCancelled},
		{"deadline", context.DeadlineExceeded, KindCancelled},
		{"other", errors.New("boom"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestKindOf_WrappedError(t *testing.T) {
	err := &Error{Kind: KindNoPermission, Path: "/x", Err: iofs.ErrPermission}

	assert.Equal(t, KindNoPermission, KindOf(err))
	assert.ErrorIs(t, err, iofs.ErrPermission)
	assert.Contains(t, err.Error(), "/x")
}
