package foldericon

import (
	"crypto/sha1"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/bodgit/foldericon/ico" // register icon decoder
	_ "golang.org/x/image/bmp"           // register BMP decoder
)

var supportedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".bmp":  {},
	".gif":  {},
	".ico":  {},
}

// IsSupportedRasterExtension reports whether path has the extension of an
// image format that can be used as a source, ignoring case.
func IsSupportedRasterExtension(path string) bool {
	_, ok := supportedExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// load decodes the image at path, also returning the SHA-1 of the file
// contents.
func load(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", &DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	h := sha1.New()
	m, _, err := image.Decode(io.TeeReader(f, h))
	if err != nil {
		return nil, "", &DecodeError{Path: path, Err: err}
	}

	// Decoders may stop short of the end of the file
	if _, err := io.Copy(h, f); err != nil {
		return nil, "", &DecodeError{Path: path, Err: err}
	}

	return m, fmt.Sprintf("%X", h.Sum(nil)), nil
}

// Load decodes the image at path. Any failure is returned as a *DecodeError.
func Load(path string) (image.Image, error) {
	m, _, err := load(path)
	return m, err
}
