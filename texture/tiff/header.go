// Package tiff reads uncompressed and deflate baseline TIFF files through a
// memory map, so a pixel can be sampled from a very large scan without
// decoding the whole image.
package tiff

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrInvalidHeader means the file is not a TIFF at all.
	ErrInvalidHeader = errors.New("invalid TIFF header")
	// ErrUnsupported means the file is a TIFF this package cannot read;
	// a general decoder may still handle it.
	ErrUnsupported = errors.New("unsupported TIFF layout")
)

// Header holds the fields of the first IFD the readers need.
type Header struct {
	ByteOrder       binary.ByteOrder
	Width, Height   int
	SamplesPerPixel int
	BitsPerSample   []int
	ExtraSamples    []int
	Photometric     int
	Compression     int
	PlanarConfig    int

	// Strip layout
	RowsPerStrip    int
	StripOffsets    []int
	StripByteCounts []int

	// Tile layout
	TileWidth      int
	TileHeight     int
	TileOffsets    []int
	TileByteCounts []int
}

// https://www.loc.gov/preservation/digital/formats/content/tiff_tags.shtml
const (
	TagImageWidth                = 256
	TagImageLength               = 257
	TagBitsPerSample             = 258
	TagCompression               = 259
	TagPhotometricInterpretation = 262
	TagStripOffsets              = 273
	TagSamplesPerPixel           = 277
	TagRowsPerStrip              = 278
	TagStripByteCounts           = 279
	TagPlanarConfiguration       = 284
	TagTileWidth                 = 322
	TagTileLength                = 323
	TagTileOffsets               = 324
	TagTileByteCounts            = 325
	TagExtraSamples              = 338
)

const (
	CompressionNone       = 1
	CompressionDeflate    = 8
	CompressionDeflateOld = 32946
)

const (
	PhotometricBlackIsZero = 1
	PhotometricRGB         = 2
)

// ExtraSamples values
const (
	extraAssociatedAlpha   = 1
	extraUnassociatedAlpha = 2
)

// field types
const (
	typeByte  = 1
	typeShort = 3
	typeLong  = 4
)

// maxCount bounds array lengths read from the file, so a corrupt count
// cannot trigger a huge allocation.
const maxCount = 1 << 24

type ifdEntry struct {
	tag   uint16
	typ   uint16
	count uint32
	value [4]byte
}

// ReadHeader parses the 8-byte file header and the first IFD.
func ReadHeader(r io.ReaderAt) (Header, error) {
	var head [8]byte
	if _, err := r.ReadAt(head[:], 0); err != nil {
		return Header{}, ErrInvalidHeader
	}

	var bo binary.ByteOrder
	switch string(head[0:2]) {
	case "II":
		bo = binary.LittleEndian
	case "MM":
		bo = binary.BigEndian
	default:
		return Header{}, ErrInvalidHeader
	}
	if bo.Uint16(head[2:4]) != 42 {
		return Header{}, ErrInvalidHeader
	}
	ifd := int64(bo.Uint32(head[4:8]))

	var n [2]byte
	if _, err := r.ReadAt(n[:], ifd); err != nil {
		return Header{}, fmt.Errorf("read IFD at %d: %w", ifd, err)
	}
	raw := make([]byte, int(bo.Uint16(n[:]))*12)
	if _, err := r.ReadAt(raw, ifd+2); err != nil {
		return Header{}, fmt.Errorf("read IFD entries: %w", err)
	}

	h := Header{
		ByteOrder:       bo,
		SamplesPerPixel: 1,
		Photometric:     -1,
		Compression:     CompressionNone,
		PlanarConfig:    1,
	}
	for i := 0; i < len(raw); i += 12 {
		e := ifdEntry{
			tag:   bo.Uint16(raw[i:]),
			typ:   bo.Uint16(raw[i+2:]),
			count: bo.Uint32(raw[i+4:]),
		}
		copy(e.value[:], raw[i+8:i+12])
		if err := h.apply(r, e); err != nil {
			return Header{}, err
		}
	}
	if h.Width <= 0 || h.Height <= 0 {
		return Header{}, fmt.Errorf("%w: %dx%d image", ErrUnsupported, h.Width, h.Height)
	}
	if h.RowsPerStrip <= 0 || h.RowsPerStrip > h.Height {
		h.RowsPerStrip = h.Height
	}
	return h, nil
}

func (h *Header) apply(r io.ReaderAt, e ifdEntry) error {
	var scalar *int
	var array *[]int
	switch e.tag {
	case TagImageWidth:
		scalar = &h.Width
	case TagImageLength:
		scalar = &h.Height
	case TagCompression:
		scalar = &h.Compression
	case TagPhotometricInterpretation:
		scalar = &h.Photometric
	case TagSamplesPerPixel:
		scalar = &h.SamplesPerPixel
	case TagRowsPerStrip:
		scalar = &h.RowsPerStrip
	case TagPlanarConfiguration:
		scalar = &h.PlanarConfig
	case TagTileWidth:
		scalar = &h.TileWidth
	case TagTileLength:
		scalar = &h.TileHeight
	case TagBitsPerSample:
		array = &h.BitsPerSample
	case TagExtraSamples:
		array = &h.ExtraSamples
	case TagStripOffsets:
		array = &h.StripOffsets
	case TagStripByteCounts:
		array = &h.StripByteCounts
	case TagTileOffsets:
		array = &h.TileOffsets
	case TagTileByteCounts:
		array = &h.TileByteCounts
	default:
		return nil
	}

	vals, err := h.values(r, e)
	if err != nil {
		return err
	}
	if array != nil {
		*array = vals
		return nil
	}
	if len(vals) == 0 {
		return fmt.Errorf("%w: tag %d has no value", ErrUnsupported, e.tag)
	}
	*scalar = vals[0]
	return nil
}

// values decodes an entry's array. Arrays of up to four bytes are stored
// inline; longer ones live at the offset held in the entry.
func (h *Header) values(r io.ReaderAt, e ifdEntry) ([]int, error) {
	var size int
	switch e.typ {
	case typeByte:
		size = 1
	case typeShort:
		size = 2
	case typeLong:
		size = 4
	default:
		return nil, fmt.Errorf("%w: tag %d has field type %d", ErrUnsupported, e.tag, e.typ)
	}
	if e.count > maxCount {
		return nil, fmt.Errorf("%w: tag %d has %d values", ErrUnsupported, e.tag, e.count)
	}

	data := e.value[:]
	if n := int(e.count) * size; n > len(data) {
		data = make([]byte, n)
		off := int64(h.ByteOrder.Uint32(e.value[:]))
		if _, err := r.ReadAt(data, off); err != nil {
			return nil, fmt.Errorf("read tag %d values at %d: %w", e.tag, off, err)
		}
	}

	out := make([]int, e.count)
	for i := range out {
		switch size {
		case 1:
			out[i] = int(data[i])
		case 2:
			out[i] = int(h.ByteOrder.Uint16(data[2*i:]))
		case 4:
			out[i] = int(h.ByteOrder.Uint32(data[4*i:]))
		}
	}
	return out, nil
}

// Tiled reports whether the image is stored in tiles rather than strips.
func (h Header) Tiled() bool {
	return len(h.TileOffsets) > 0
}

// checkPixels rejects anything but chunky 8-bit gray, RGB or RGBA.
func (h Header) checkPixels() error {
	if h.PlanarConfig != 1 {
		return fmt.Errorf("%w: planar configuration %d", ErrUnsupported, h.PlanarConfig)
	}
	for _, b := range h.BitsPerSample {
		if b != 8 {
			return fmt.Errorf("%w: %v bits per sample", ErrUnsupported, h.BitsPerSample)
		}
	}
	switch h.Photometric {
	case PhotometricBlackIsZero:
		if h.SamplesPerPixel != 1 {
			return fmt.Errorf("%w: grayscale with %d samples", ErrUnsupported, h.SamplesPerPixel)
		}
	case PhotometricRGB:
		if h.SamplesPerPixel != 3 && h.SamplesPerPixel != 4 {
			return fmt.Errorf("%w: RGB with %d samples", ErrUnsupported, h.SamplesPerPixel)
		}
	default:
		return fmt.Errorf("%w: photometric interpretation %d", ErrUnsupported, h.Photometric)
	}
	return nil
}
