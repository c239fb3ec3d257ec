package tiff

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"image"
	"image/color"
	"io"

	lru "github.com/hashicorp/golang-lru"
)

// tileCacheSize is the number of decoded tiles kept per image.
const tileCacheSize = 200

type tiledTiff struct {
	*reader
	across int
	cache  *lru.Cache // tile index -> []byte
}

// OpenTiled maps a tile-organized TIFF, uncompressed or deflate. Decoded
// tiles are kept in an LRU cache.
func OpenTiled(path string) (Image, error) {
	r, err := open(path)
	if err != nil {
		return nil, err
	}
	h := r.header

	var bad error
	across, down := 0, 0
	if h.TileWidth > 0 && h.TileHeight > 0 {
		across = (h.Width + h.TileWidth - 1) / h.TileWidth
		down = (h.Height + h.TileHeight - 1) / h.TileHeight
	}
	switch {
	case !h.Tiled():
		bad = fmt.Errorf("%w: striped layout", ErrUnsupported)
	case across == 0:
		bad = fmt.Errorf("%w: %dx%d tiles", ErrUnsupported, h.TileWidth, h.TileHeight)
	case h.Compression != CompressionNone && h.Compression != CompressionDeflate && h.Compression != CompressionDeflateOld:
		bad = fmt.Errorf("%w: compression %d", ErrUnsupported, h.Compression)
	case len(h.TileOffsets) != len(h.TileByteCounts) || len(h.TileOffsets) < across*down:
		bad = fmt.Errorf("%w: %d tile offsets, %d byte counts", ErrUnsupported, len(h.TileOffsets), len(h.TileByteCounts))
	}
	if bad != nil {
		r.Close()
		return nil, bad
	}

	cache, err := lru.New(tileCacheSize)
	if err != nil {
		r.Close()
		return nil, err
	}
	return &tiledTiff{reader: r, across: across, cache: cache}, nil
}

func (t *tiledTiff) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(t.Bounds())) {
		return color.RGBA{}
	}
	h := t.header

	index := (y/h.TileHeight)*t.across + x/h.TileWidth
	tile, err := t.tile(index)
	if err != nil {
		return t.fail(err)
	}

	localX := x % h.TileWidth
	localY := y % h.TileHeight
	off := (localY*h.TileWidth + localX) * h.SamplesPerPixel
	return h.pixel(tile[off : off+h.SamplesPerPixel])
}

func (t *tiledTiff) tile(index int) ([]byte, error) {
	if v, ok := t.cache.Get(index); ok {
		return v.([]byte), nil
	}
	tile, err := t.loadTile(index)
	if err != nil {
		return nil, err
	}
	t.cache.Add(index, tile)
	return tile, nil
}

func (t *tiledTiff) loadTile(index int) ([]byte, error) {
	h := t.header
	buf := make([]byte, h.TileByteCounts[index])
	if _, err := t.mm.ReadAt(buf, int64(h.TileOffsets[index])); err != nil {
		return nil, fmt.Errorf("read tile %d: %w", index, err)
	}

	if h.Compression != CompressionNone {
		zr, err := zlib.NewReader(bytes.NewReader(buf))
		if err != nil {
			return nil, fmt.Errorf("inflate tile %d: %w", index, err)
		}
		defer zr.Close()
		if buf, err = io.ReadAll(zr); err != nil {
			return nil, fmt.Errorf("inflate tile %d: %w", index, err)
		}
	}

	if want := h.TileWidth * h.TileHeight * h.SamplesPerPixel; len(buf) < want {
		return nil, fmt.Errorf("tile %d holds %d bytes, want %d", index, len(buf), want)
	}
	return buf, nil
}
