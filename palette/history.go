package palette

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"github.com/echoflaresat/colorpick/colors"
)

// History remembers the most recently used colors by their hex text.
// Using a color again moves it to the front; the oldest one is evicted
// once size is reached.
type History struct {
	cache *lru.Cache // hex -> colors.Color
}

// NewHistory returns an empty history holding at most size colors.
func NewHistory(size int) (*History, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("new history of size %d: %w", size, err)
	}
	return &History{cache: cache}, nil
}

// Remember records c. It reports whether an older entry was evicted.
func (h *History) Remember(c colors.Color) bool {
	return h.cache.Add(c.Hex(), c)
}

// Recent returns the remembered hex strings, newest first.
func (h *History) Recent() []string {
	keys := h.cache.Keys()
	out := make([]string, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		out = append(out, keys[i].(string))
	}
	return out
}

// Lookup returns the color last remembered under hex, in the space it was
// used in.
func (h *History) Lookup(hex string) (colors.Color, bool) {
	v, ok := h.cache.Peek(hex)
	if !ok {
		return colors.Color{}, false
	}
	return v.(colors.Color), true
}

// Len is the number of colors remembered.
func (h *History) Len() int { return h.cache.Len() }

// Purge forgets every color, for example when the user clears the list.
func (h *History) Purge() { h.cache.Purge() }
