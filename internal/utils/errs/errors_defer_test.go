package errs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapture(t *testing.T) {
	tests := []struct {
		name     string
		initial  error
		errFunc  func() error
		msg      string
		expected string
	}{
		{
			name:     "No error from errFunc",
			initial:  nil,
			errFunc:  func() error { return nil },
			msg:      "close volume",
			expected: "",
		},
		{
			name:     "Error from errFunc with no initial error",
			initial:  nil,
			errFunc:  func() error { return errors.New("disk full") },
			msg:      "close volume",
			expected: "close volume: disk full",
		},
		{
			name:     "Error from errFunc keeps initial error",
			initial:  errors.New("write page"),
			errFunc:  func() error { return errors.New("disk full") },
			msg:      "close volume",
			expected: "write page\nclose volume: disk full",
		},
		{
			name:     "Wrapped initial error is preserved",
			initial:  fmt.Errorf("merge: %w", errors.New("write page")),
			errFunc:  func() error { return errors.New("disk full") },
			msg:      "close volume",
			expected: "merge: write page\nclose volume: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.initial
			Capture(&err, tt.errFunc, tt.msg)
			if tt.expected == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestCaptureGeneric(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "leftover")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))

	var err error
	CaptureGeneric(&err, os.Remove, target, "remove leftover")
	assert.NoError(t, err)

	CaptureGeneric(&err, os.Remove, target, "remove leftover")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "remove leftover")
}
