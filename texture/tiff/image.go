package tiff

import (
	"image"
	"image/color"
	"io"
	"sync"

	"golang.org/x/exp/mmap"
)

// Image is a TIFF read on demand from a memory map. At never panics: a
// failed read yields transparent black and is reported by the next call
// to Err. Close releases the mapping.
type Image interface {
	image.Image
	io.Closer
	Err() error
}

type reader struct {
	header Header
	mm     *mmap.ReaderAt

	mu  sync.Mutex
	err error
}

func open(path string) (*reader, error) {
	mm, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	h, err := ReadHeader(mm)
	if err == nil {
		err = h.checkPixels()
	}
	if err != nil {
		mm.Close()
		return nil, err
	}
	return &reader{header: h, mm: mm}, nil
}

func (r *reader) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.header.Width, r.header.Height)
}

func (r *reader) ColorModel() color.Model {
	h := r.header
	switch {
	case h.Photometric == PhotometricBlackIsZero:
		return color.GrayModel
	case h.SamplesPerPixel == 4 && h.alpha() == extraUnassociatedAlpha:
		return color.NRGBAModel
	}
	return color.RGBAModel
}

func (r *reader) Close() error {
	return r.mm.Close()
}

// Err returns the first read error seen by At since the previous call to
// Err, and clears it.
func (r *reader) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	err := r.err
	r.err = nil
	return err
}

func (r *reader) fail(err error) color.Color {
	r.mu.Lock()
	if r.err == nil {
		r.err = err
	}
	r.mu.Unlock()
	return color.RGBA{}
}

func (h Header) alpha() int {
	if len(h.ExtraSamples) == 0 {
		return 0
	}
	return h.ExtraSamples[0]
}

// pixel turns one chunky sample group into a color.
func (h Header) pixel(b []byte) color.Color {
	switch {
	case h.Photometric == PhotometricBlackIsZero:
		return color.Gray{Y: b[0]}
	case h.SamplesPerPixel == 3:
		return color.RGBA{R: b[0], G: b[1], B: b[2], A: 0xff}
	}
	switch h.alpha() {
	case extraAssociatedAlpha:
		return color.RGBA{R: b[0], G: b[1], B: b[2], A: b[3]}
	case extraUnassociatedAlpha:
		return color.NRGBA{R: b[0], G: b[1], B: b[2], A: b[3]}
	}
	// unspecified extra sample, not an alpha channel
	return color.RGBA{R: b[0], G: b[1], B: b[2], A: 0xff}
}
