//go:build !unix && !windows

package foldericon

func isLocked(err error) bool {
	return false
}
