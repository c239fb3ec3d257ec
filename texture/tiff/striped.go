package tiff

import (
	"fmt"
	"image"
	"image/color"
)

type stripedTiff struct {
	*reader
}

// OpenStriped maps an uncompressed, strip-organized TIFF. Tiled or
// compressed files fail with ErrUnsupported and non-TIFF files with
// ErrInvalidHeader.
func OpenStriped(path string) (Image, error) {
	r, err := open(path)
	if err != nil {
		return nil, err
	}
	h := r.header

	var bad error
	switch {
	case h.Tiled():
		bad = fmt.Errorf("%w: tiled layout", ErrUnsupported)
	case h.Compression != CompressionNone:
		bad = fmt.Errorf("%w: compression %d", ErrUnsupported, h.Compression)
	case len(h.StripOffsets) == 0 || len(h.StripOffsets) != len(h.StripByteCounts):
		bad = fmt.Errorf("%w: %d strip offsets, %d byte counts", ErrUnsupported, len(h.StripOffsets), len(h.StripByteCounts))
	case len(h.StripOffsets) < (h.Height+h.RowsPerStrip-1)/h.RowsPerStrip:
		bad = fmt.Errorf("%w: %d strips for %d rows", ErrUnsupported, len(h.StripOffsets), h.Height)
	}
	if bad != nil {
		r.Close()
		return nil, bad
	}
	return &stripedTiff{reader: r}, nil
}

func (t *stripedTiff) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(t.Bounds())) {
		return color.RGBA{}
	}
	h := t.header

	strip := y / h.RowsPerStrip
	localY := y % h.RowsPerStrip
	idx := h.StripOffsets[strip] + (localY*h.Width+x)*h.SamplesPerPixel

	var buf [4]byte
	px := buf[:h.SamplesPerPixel]
	if _, err := t.mm.ReadAt(px, int64(idx)); err != nil {
		return t.fail(fmt.Errorf("read pixel (%d,%d): %w", x, y, err))
	}
	return h.pixel(px)
}
