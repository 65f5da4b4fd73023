/*
Package ico implements an icon container encoder and decoder.

The container starts with a 6 byte header holding two reserved bytes, the
container type (1 for icons) and the number of images, all little-endian 16-bit
values. It is followed by one 16 byte directory entry per image giving the
width and height as single bytes (0 meaning 256), the color count, a reserved
byte, the number of planes, the bits per pixel, the size of the image data and
the offset of the image data from the start of the file.

The encoder writes one uncompressed 32 bits per pixel bitmap for each of the
sizes in Sizes, largest first. Each bitmap is a 40 byte info header whose
height is doubled to account for the mask, the pixel rows stored bottom-up in
B, G, R, A order, and finally a 1 bit per pixel transparency mask with rows
padded to 4 bytes. The mask is always zero; transparency is carried by the
alpha channel.

The decoder additionally understands PNG compressed images.
*/
package ico

const (
	headerSize     = 6
	entrySize      = 16
	infoHeaderSize = 40
	bitCount       = 32
	bytesPerPixel  = bitCount / 8
	typeIcon       = 1
	maxEdge        = 256
)

// Sizes lists the edge lengths, in pixels, of every image written by Encode.
// The order is both the directory order and the order of the image data.
var Sizes = [...]int{256, 128, 64, 48, 32, 16}

type header struct {
	Reserved uint16
	Type     uint16
	Count    uint16
}

type entry struct {
	Width      uint8
	Height     uint8
	ColorCount uint8
	Reserved   uint8
	Planes     uint16
	BitCount   uint16
	Size       uint32
	Offset     uint32
}

type infoHeader struct {
	Size            uint32
	Width           int32
	Height          int32
	Planes          uint16
	BitCount        uint16
	Compression     uint32
	SizeImage       uint32
	XPelsPerMeter   int32
	YPelsPerMeter   int32
	ColorsUsed      uint32
	ColorsImportant uint32
}

// maskRowBytes returns the number of bytes in one row of the 1 bit per pixel
// mask, padded to a multiple of 4.
func maskRowBytes(edge int) int {
	return (edge + 31) / 32 * 4
}

// PayloadSize returns the exact number of bytes Encode writes for the image
// with the given edge length: the info header, the pixel rows and the mask.
func PayloadSize(edge int) int {
	return infoHeaderSize + edge*bytesPerPixel*edge + maskRowBytes(edge)*edge
}

// Size returns the total number of bytes Encode writes.
func Size() int {
	n := headerSize + entrySize*len(Sizes)
	for _, edge := range Sizes {
		n += PayloadSize(edge)
	}
	return n
}

// dimension encodes an edge length as a directory entry byte.
func dimension(edge int) uint8 {
	if edge >= maxEdge {
		return 0
	}
	return uint8(edge)
}
