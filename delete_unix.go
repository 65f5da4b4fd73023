//go:build unix

package foldericon

import (
	"errors"

	"golang.org/x/sys/unix"
)

func isLocked(err error) bool {
	return errors.Is(err, unix.EBUSY) || errors.Is(err, unix.ETXTBSY)
}
