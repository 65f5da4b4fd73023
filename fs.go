package foldericon

import (
	"io"
	"os"
)

// Filesystem is the set of file operations needed to write icons and remove
// files.
type Filesystem interface {
	// OpenForExclusiveWrite creates or truncates path for writing.
	OpenForExclusiveWrite(path string) (io.WriteCloser, error)
	// Exists reports whether path exists and is not a directory.
	Exists(path string) bool
	// Delete removes path.
	Delete(path string) error
}

type osFS struct{}

// OS is the Filesystem backed by the operating system.
var OS Filesystem = osFS{}

func (osFS) OpenForExclusiveWrite(path string) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
}

func (osFS) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (osFS) Delete(path string) error {
	return os.Remove(path)
}
