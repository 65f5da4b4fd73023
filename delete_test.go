package foldericon

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFS struct {
	exists   bool
	failures int
	err      error

	existsCalls int
	deleteCalls int
}

func (f *fakeFS) OpenForExclusiveWrite(string) (io.WriteCloser, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeFS) Exists(string) bool {
	f.existsCalls++
	return f.exists
}

func (f *fakeFS) Delete(string) error {
	f.deleteCalls++
	if f.deleteCalls <= f.failures {
		return f.err
	}
	if !f.exists {
		return &fs.PathError{Op: "remove", Path: "file", Err: fs.ErrNotExist}
	}
	f.exists = false
	return nil
}

func newTestDeleter(fsys Filesystem) (*Deleter, *[]time.Duration) {
	var sleeps []time.Duration
	d := NewDeleter(fsys, nil)
	d.sleep = func(t time.Duration) {
		sleeps = append(sleeps, t)
	}
	return d, &sleeps
}

func TestDeleteWithRetry(t *testing.T) {
	errBusy := errors.New("in use")

	tables := map[string]struct {
		fs          *fakeFS
		result      bool
		existsCalls int
		deleteCalls int
		sleeps      []time.Duration
	}{
		"deletable": {
			fs:          &fakeFS{exists: true},
			result:      true,
			existsCalls: 1,
			deleteCalls: 1,
		},
		// A file that is already absent is reported as a failure
		"never exists": {
			fs:          &fakeFS{},
			result:      false,
			existsCalls: 3,
			deleteCalls: 0,
		},
		"locked twice": {
			fs:          &fakeFS{exists: true, failures: 2, err: errBusy},
			result:      true,
			existsCalls: 3,
			deleteCalls: 3,
			sleeps:      []time.Duration{DeleteBackoff, DeleteBackoff},
		},
		"always locked": {
			fs:          &fakeFS{exists: true, failures: 3, err: errBusy},
			result:      false,
			existsCalls: 3,
			deleteCalls: 3,
			sleeps:      []time.Duration{DeleteBackoff, DeleteBackoff},
		},
	}

	for name, table := range tables {
		t.Run(name, func(t *testing.T) {
			d, sleeps := newTestDeleter(table.fs)

			assert.Equal(t, table.result, d.DeleteWithRetry("file"))
			assert.Equal(t, table.existsCalls, table.fs.existsCalls)
			assert.Equal(t, table.deleteCalls, table.fs.deleteCalls)
			assert.Equal(t, table.sleeps, *sleeps)
		})
	}
}

func TestDeleteBackoff(t *testing.T) {
	assert.Equal(t, 3, DeleteAttempts)
	assert.Equal(t, 500*time.Millisecond, DeleteBackoff)
}

func TestDeleteWithRetryOS(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "icon.ico")
	require.NoError(t, os.WriteFile(file, []byte("icon"), 0666))

	assert.True(t, DeleteWithRetry(file))
	assert.NoFileExists(t, file)

	// Directories are never considered to exist
	assert.False(t, DeleteWithRetry(dir))
	assert.DirExists(t, dir)
}

func TestDeleteClassification(t *testing.T) {
	err := Delete(&fakeFS{}, "file")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.False(t, errors.Is(err, ErrLocked))

	other := errors.New("permission denied")
	err = Delete(&fakeFS{failures: 1, err: other}, "file")
	assert.Equal(t, other, err)
	assert.False(t, errors.Is(err, ErrLocked))

	assert.NoError(t, Delete(&fakeFS{exists: true}, "file"))
}
