// Package texture loads images and samples them as sRGB triples. It is the
// eyedropper's source of external colors.
package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"io/fs"
	"os"

	tiffdec "github.com/echoflaresat/tiff"

	"github.com/echoflaresat/colorpick/colors"
	"github.com/echoflaresat/colorpick/texture/tiff"

	_ "image/gif"  // register GIF format with image.Decode
	_ "image/jpeg" // register JPEG format with image.Decode
	_ "image/png"  // register PNG format with image.Decode

	_ "golang.org/x/image/bmp"  // register BMP format with image.Decode
	_ "golang.org/x/image/tiff" // register TIFF format with image.Decode
	_ "golang.org/x/image/webp" // register WebP format with image.Decode
)

// ErrOutOfBounds is returned when a pixel lies outside the image.
var ErrOutOfBounds = errors.New("pixel out of bounds")

// Texture is a loaded image. TIFFs stay memory-mapped until Close.
type Texture struct {
	Width  int
	Height int
	img    image.Image
}

// Load opens path, trying the mapped striped and tiled TIFF readers, then
// a general TIFF decoder for other TIFF layouts, then the registered image
// codecs.
func Load(path string) (*Texture, error) {
	img, err := loadImage(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	b := img.Bounds()
	return &Texture{Width: b.Dx(), Height: b.Dy(), img: img}, nil
}

// New wraps an image that is already in memory.
func New(img image.Image) *Texture {
	b := img.Bounds()
	return &Texture{Width: b.Dx(), Height: b.Dy(), img: img}
}

func loadImage(path string) (image.Image, error) {
	img, err := tiff.OpenStriped(path)
	if err == nil {
		return img, nil
	}
	isTIFF := errors.Is(err, tiff.ErrUnsupported)
	if isTIFF {
		colors.Logger().Debug("not a striped TIFF", "path", path, "error", err)
		img, err = tiff.OpenTiled(path)
		if err == nil {
			return img, nil
		}
		colors.Logger().Debug("not a tiled TIFF", "path", path, "error", err)
	}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, err
	case !errors.Is(err, tiff.ErrInvalidHeader) && !errors.Is(err, tiff.ErrUnsupported):
		colors.Logger().Warn("failed to map TIFF", "path", path, "error", err)
	}

	// fallback to image codecs
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if isTIFF {
		decoded, err := tiffdec.Decode(f)
		if err == nil {
			return decoded, nil
		}
		colors.Logger().Debug("TIFF decoder failed", "path", path, "error", err)
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
	}
	decoded, _, err := image.Decode(f)
	return decoded, err
}

// Image returns the underlying image.
func (t *Texture) Image() image.Image { return t.img }

// Close releases a mapped file. It is a no-op for decoded images.
func (t *Texture) Close() error {
	if c, ok := t.img.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Sample returns the sRGB triple of pixel (x, y), un-premultiplied, with
// each channel in [0,1].
func (t *Texture) Sample(x, y int) ([3]float32, error) {
	p := image.Point{X: x, Y: y}.Add(t.img.Bounds().Min)
	if !p.In(t.img.Bounds()) {
		return [3]float32{}, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, t.Width, t.Height)
	}
	t.readErr() // discard errors from earlier reads
	rgb := toRGB(t.img.At(p.X, p.Y))
	return rgb, t.readErr()
}

// Average returns the mean sRGB triple of the square of side 2*radius+1
// centred on (x, y), clipped to the image. The centre must be inside.
func (t *Texture) Average(x, y, radius int) ([3]float32, error) {
	if radius < 0 {
		return [3]float32{}, fmt.Errorf("negative radius %d", radius)
	}
	b := t.img.Bounds()
	c := image.Point{X: x, Y: y}.Add(b.Min)
	if !c.In(b) {
		return [3]float32{}, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, t.Width, t.Height)
	}

	radius = min(radius, max(b.Dx(), b.Dy()))
	area := image.Rect(c.X-radius, c.Y-radius, c.X+radius+1, c.Y+radius+1).Intersect(b)
	if area.Empty() {
		return [3]float32{}, fmt.Errorf("%w: empty area around (%d,%d)", ErrOutOfBounds, x, y)
	}

	t.readErr()
	var sum [3]float64
	for py := area.Min.Y; py < area.Max.Y; py++ {
		for px := area.Min.X; px < area.Max.X; px++ {
			rgb := toRGB(t.img.At(px, py))
			for i := range sum {
				sum[i] += float64(rgb[i])
			}
		}
	}
	n := float64(area.Dx() * area.Dy())
	out := [3]float32{float32(sum[0] / n), float32(sum[1] / n), float32(sum[2] / n)}
	return out, t.readErr()
}

// readErr returns and clears the read error of a mapped TIFF.
func (t *Texture) readErr() error {
	if m, ok := t.img.(tiff.Image); ok {
		return m.Err()
	}
	return nil
}

func toRGB(c color.Color) [3]float32 {
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return [3]float32{
		float32(n.R) / 0xffff,
		float32(n.G) / 0xffff,
		float32(n.B) / 0xffff,
	}
}
