package foldericon

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bodgit/foldericon/ico"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

var red = color.NRGBA{0xff, 0x00, 0x00, 0xff}

func solid(w, h int, c color.Color) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.Set(x, y, c)
		}
	}
	return m
}

// writeImage encodes m to file using the format implied by its extension
func writeImage(t *testing.T, file string, m image.Image) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(file), 0777))

	f, err := os.Create(file)
	require.NoError(t, err)
	defer f.Close()

	switch strings.ToLower(filepath.Ext(file)) {
	case ".png":
		err = png.Encode(f, m)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, m, nil)
	case ".gif":
		err = gif.Encode(f, m, nil)
	case ".bmp":
		err = bmp.Encode(f, m)
	case ".ico":
		err = ico.Encode(f, m)
	default:
		t.Fatalf("no encoder for %s", file)
	}
	require.NoError(t, err)
}

func TestIsSupportedRasterExtension(t *testing.T) {
	tables := map[string]bool{
		"photo.png":          true,
		"photo.jpg":          true,
		"photo.jpeg":         true,
		"photo.bmp":          true,
		"photo.gif":          true,
		"folder.ico":         true,
		"PHOTO.PNG":          true,
		"Photo.JpEg":         true,
		"photo.webp":         false,
		"photo.svg":          false,
		"photo":              false,
		"photo.png.txt":      false,
		"dir.png/readme.txt": false,
		"":                   false,
	}

	for path, supported := range tables {
		assert.Equal(t, supported, IsSupportedRasterExtension(path), path)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"a.png", "a.jpg", "a.gif", "a.bmp", "a.ico"} {
		t.Run(name, func(t *testing.T) {
			file := filepath.Join(dir, name)
			writeImage(t, file, solid(8, 4, red))

			m, err := Load(file)
			require.NoError(t, err)
			assert.False(t, m.Bounds().Empty())
		})
	}
}

func TestLoadSHA1(t *testing.T) {
	dir := t.TempDir()
	a, b := filepath.Join(dir, "a.png"), filepath.Join(dir, "b.png")
	writeImage(t, a, solid(8, 8, red))
	writeImage(t, b, solid(8, 8, color.White))

	_, shaA, err := load(a)
	require.NoError(t, err)
	_, shaA2, err := load(a)
	require.NoError(t, err)
	_, shaB, err := load(b)
	require.NoError(t, err)

	assert.Len(t, shaA, 40)
	assert.Equal(t, shaA, shaA2)
	assert.NotEqual(t, shaA, shaB)
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()

	corrupt := filepath.Join(dir, "corrupt.png")
	require.NoError(t, os.WriteFile(corrupt, []byte("not an image"), 0666))

	for _, file := range []string{corrupt, filepath.Join(dir, "missing.png")} {
		_, err := Load(file)

		var decodeErr *DecodeError
		require.True(t, errors.As(err, &decodeErr))
		assert.Equal(t, file, decodeErr.Path)
	}

	_, err := Load(filepath.Join(dir, "missing.png"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
