package ico

import (
	"bufio"
	"encoding/binary"
	"errors"
	"image"
	"io"

	"github.com/bodgit/foldericon/resample"
)

var (
	errEmpty        = errors.New("ico: image is empty")
	errSizeMismatch = errors.New("ico: payload size mismatch")
)

// directory computes the directory entries for the given edge lengths, the
// image data starting immediately after the directory.
func directory(sizes []int) []entry {
	entries := make([]entry, len(sizes))
	offset := headerSize + entrySize*len(sizes)
	for i, edge := range sizes {
		size := PayloadSize(edge)
		entries[i] = entry{
			Width:    dimension(edge),
			Height:   dimension(edge),
			Planes:   1,
			BitCount: bitCount,
			Size:     uint32(size),
			Offset:   uint32(offset),
		}
		offset += size
	}
	return entries
}

type encoder struct {
	w *bufio.Writer
	n int

	// Enough to hold one row of the largest image
	row [maxEdge * bytesPerPixel]byte
}

func (e *encoder) Write(p []byte) (int, error) {
	n, err := e.w.Write(p)
	e.n += n
	return n, err
}

func (e *encoder) writeImage(m *image.NRGBA) error {
	b := m.Bounds()
	edge := b.Dx()

	h := infoHeader{
		Size:      infoHeaderSize,
		Width:     int32(edge),
		Height:    int32(edge * 2), // Pixels and mask
		Planes:    1,
		BitCount:  bitCount,
		SizeImage: uint32(edge * edge * bytesPerPixel),
	}
	if err := binary.Write(e, binary.LittleEndian, &h); err != nil {
		return err
	}

	// Rows are stored bottom-up with each pixel as B, G, R, A
	row := e.row[:edge*bytesPerPixel]
	for y := b.Max.Y - 1; y >= b.Min.Y; y-- {
		i := m.PixOffset(b.Min.X, y)
		pix := m.Pix[i : i+len(row)]
		for x := 0; x < len(row); x += bytesPerPixel {
			row[x+0] = pix[x+2]
			row[x+1] = pix[x+1]
			row[x+2] = pix[x+0]
			row[x+3] = pix[x+3]
		}
		if _, err := e.Write(row); err != nil {
			return err
		}
	}

	if _, err := e.Write(make([]byte, maskRowBytes(edge)*edge)); err != nil {
		return err
	}

	return nil
}

func (e *encoder) encode(m image.Image, sizes []int) error {
	entries := directory(sizes)

	h := header{
		Type:  typeIcon,
		Count: uint16(len(entries)),
	}
	if err := binary.Write(e, binary.LittleEndian, &h); err != nil {
		return err
	}
	if err := binary.Write(e, binary.LittleEndian, entries); err != nil {
		return err
	}

	for i, edge := range sizes {
		if e.n != int(entries[i].Offset) {
			return errSizeMismatch
		}
		if err := e.writeImage(resample.Square(m, edge)); err != nil {
			return err
		}
		if e.n != int(entries[i].Offset+entries[i].Size) {
			return errSizeMismatch
		}
	}

	return e.w.Flush()
}

// Encode writes the Image m to w as an icon container holding one resampled
// copy of m for each of the edge lengths in Sizes. Non-square images are
// stretched to fill each square.
func Encode(w io.Writer, m image.Image) error {
	if m.Bounds().Empty() {
		return errEmpty
	}

	e := encoder{w: bufio.NewWriter(w)}

	return e.encode(m, Sizes[:])
}
