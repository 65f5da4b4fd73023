package foldericon

import (
	"errors"
	"io/fs"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DeleteAttempts is the number of rounds DeleteWithRetry makes
	DeleteAttempts = 3
	// DeleteBackoff is the pause between rounds after a failed deletion
	DeleteBackoff = 500 * time.Millisecond
)

// ErrLocked is matched by errors returned from Delete when the file is in
// use by another process and a later attempt may succeed.
var ErrLocked = errors.New("foldericon: file is locked")

type lockedError struct {
	err error
}

func (e *lockedError) Error() string { return e.err.Error() }

func (e *lockedError) Unwrap() error { return e.err }

func (e *lockedError) Is(target error) bool { return target == ErrLocked }

// Delete removes path from fsys, classifying any failure. A missing file
// matches fs.ErrNotExist, a file held open elsewhere matches ErrLocked and
// anything else is returned unchanged.
func Delete(fsys Filesystem, path string) error {
	err := fsys.Delete(path)
	switch {
	case err == nil, errors.Is(err, fs.ErrNotExist):
		return err
	case isLocked(err):
		return &lockedError{err}
	default:
		return err
	}
}

// Deleter removes files, tolerating transient lock contention.
type Deleter struct {
	fs       Filesystem
	attempts int
	backoff  time.Duration
	sleep    func(time.Duration)
	logger   logrus.FieldLogger
}

// NewDeleter returns a Deleter using fsys that makes DeleteAttempts rounds
// with DeleteBackoff between them.
func NewDeleter(fsys Filesystem, logger logrus.FieldLogger) *Deleter {
	if logger == nil {
		logger = discardLogger()
	}
	return &Deleter{
		fs:       fsys,
		attempts: DeleteAttempts,
		backoff:  DeleteBackoff,
		sleep:    time.Sleep,
		logger:   logger,
	}
}

// DeleteWithRetry tries to remove path, returning true as soon as a deletion
// succeeds. A round where path does not exist is skipped without pausing; a
// failed deletion pauses before the next round, but never after the last.
//
// A path that never exists is reported as false, the same as a file that
// could not be removed. Callers should read false as "deletion could not be
// confirmed".
func (d *Deleter) DeleteWithRetry(path string) bool {
	for i := 0; i < d.attempts; i++ {
		if !d.fs.Exists(path) {
			continue
		}

		err := Delete(d.fs, path)
		if err == nil {
			return true
		}

		d.logger.WithFields(logrus.Fields{
			"path":    path,
			"attempt": i + 1,
			"locked":  errors.Is(err, ErrLocked),
		}).Warnf("Unable to delete: %v", err)

		if i < d.attempts-1 {
			d.sleep(d.backoff)
		}
	}
	return false
}

// DeleteWithRetry removes path from the operating system filesystem, see
// Deleter.DeleteWithRetry.
func DeleteWithRetry(path string) bool {
	return NewDeleter(OS, nil).DeleteWithRetry(path)
}
