package ico

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"io/ioutil"
)

var (
	errNotEnough    = errors.New("ico: not enough image data")
	errFormat       = errors.New("ico: invalid format")
	errNoImages     = errors.New("ico: no images")
	errUnsupported  = errors.New("ico: unsupported bitmap")
	errBadDirectory = errors.New("ico: image data out of range")
)

const (
	magic     = "\x00\x00\x01\x00"
	pngHeader = "\x89PNG\r\n\x1a\n"
)

func init() {
	image.RegisterFormat("ico", magic, Decode, DecodeConfig)
}

func readDirectory(r io.Reader) ([]entry, error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, errNotEnough
		}
		return nil, err
	}
	if h.Reserved != 0 || h.Type != typeIcon {
		return nil, errFormat
	}
	if h.Count == 0 {
		return nil, errNoImages
	}

	entries := make([]entry, h.Count)
	if err := binary.Read(r, binary.LittleEndian, entries); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, errNotEnough
		}
		return nil, err
	}
	return entries, nil
}

func edgeLength(d uint8) int {
	if d == 0 {
		return maxEdge
	}
	return int(d)
}

// largest returns the index of the entry with the most pixels, preferring
// the greater color depth.
func largest(entries []entry) int {
	best := 0
	for i, e := range entries[1:] {
		b := entries[best]
		switch p, q := edgeLength(e.Width)*edgeLength(e.Height), edgeLength(b.Width)*edgeLength(b.Height); {
		case p > q, p == q && e.BitCount > b.BitCount:
			best = i + 1
		}
	}
	return best
}

func decodeBitmap(b []byte) (image.Image, error) {
	var h infoHeader
	if err := binary.Read(bytes.NewReader(b), binary.LittleEndian, &h); err != nil {
		return nil, errNotEnough
	}
	if h.Size < infoHeaderSize || h.BitCount != bitCount || h.Compression != 0 || h.Width <= 0 || h.Height <= 0 {
		return nil, errUnsupported
	}

	w, ht := int(h.Width), int(h.Height)/2
	stride := w * bytesPerPixel
	pixels := int(h.Size)
	mask := pixels + stride*ht
	if len(b) < mask {
		return nil, errNotEnough
	}

	m := image.NewNRGBA(image.Rect(0, 0, w, ht))
	var alpha bool
	for y := 0; y < ht; y++ {
		src := b[pixels+(ht-1-y)*stride:]
		dst := m.Pix[m.PixOffset(0, y):]
		for x := 0; x < stride; x += bytesPerPixel {
			dst[x+0] = src[x+2]
			dst[x+1] = src[x+1]
			dst[x+2] = src[x+0]
			dst[x+3] = src[x+3]
			if src[x+3] != 0 {
				alpha = true
			}
		}
	}

	if alpha {
		return m, nil
	}

	// No alpha channel in use so fall back to the mask, a set bit being
	// transparent
	rowBytes := maskRowBytes(w)
	if len(b) < mask+rowBytes*ht {
		return nil, errNotEnough
	}
	for y := 0; y < ht; y++ {
		row := b[mask+(ht-1-y)*rowBytes:]
		for x := 0; x < w; x++ {
			if row[x>>3]&(0x80>>uint(x&7)) == 0 {
				m.Pix[m.PixOffset(x, y)+3] = 0xff
			}
		}
	}

	return m, nil
}

func decodeImage(b []byte, e entry) (image.Image, error) {
	if uint64(e.Offset)+uint64(e.Size) > uint64(len(b)) {
		return nil, errBadDirectory
	}
	data := b[e.Offset : e.Offset+e.Size]
	if bytes.HasPrefix(data, []byte(pngHeader)) {
		return png.Decode(bytes.NewReader(data))
	}
	return decodeBitmap(data)
}

// DecodeAll reads an icon container from r and returns every image in
// directory order.
func DecodeAll(r io.Reader) ([]image.Image, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}

	entries, err := readDirectory(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}

	images := make([]image.Image, 0, len(entries))
	for _, e := range entries {
		m, err := decodeImage(b, e)
		if err != nil {
			return nil, err
		}
		images = append(images, m)
	}

	return images, nil
}

// Decode reads an icon container from r and returns its largest image.
func Decode(r io.Reader) (image.Image, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}

	entries, err := readDirectory(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}

	return decodeImage(b, entries[largest(entries)])
}

// DecodeConfig returns the color model and dimensions of the largest image in
// an icon container without decoding any image data.
func DecodeConfig(r io.Reader) (image.Config, error) {
	entries, err := readDirectory(r)
	if err != nil {
		return image.Config{}, err
	}

	e := entries[largest(entries)]

	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      edgeLength(e.Width),
		Height:     edgeLength(e.Height),
	}, nil
}
