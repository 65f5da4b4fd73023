/*
Package resample renders images onto square canvases.
*/
package resample

import (
	"image"

	"golang.org/x/image/draw"
)

// Square returns m scaled to fill an edge by edge image using Catmull-Rom
// interpolation for both enlarging and reducing. The aspect ratio of m is not
// preserved. An empty m yields a fully transparent image. Square panics if
// edge is not positive.
func Square(m image.Image, edge int) *image.NRGBA {
	if edge <= 0 {
		panic("resample: edge length must be positive")
	}
	dst := image.NewNRGBA(image.Rect(0, 0, edge, edge))
	if m.Bounds().Empty() {
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Rect, m, m.Bounds(), draw.Src, nil)
	return dst
}
