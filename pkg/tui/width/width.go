// ABOUTME: VisibleWidth computes the terminal column width of a text row, grapheme by grapheme
// ABOUTME: Non-ASCII rows are memoized in an LRU cache since the viewer redraws the same rows every frame

package width

import (
	"container/list"
	"sync"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// cacheSize bounds the memoized rows; a full screen of distinct
// non-ASCII rows fits several times over.
const cacheSize = 512

// widthCache memoizes non-ASCII row widths, evicting the least recently
// measured row when full.
type widthCache struct {
	mu    sync.Mutex
	limit int
	lru   *list.List // front is most recent; values are *cachedWidth
	index map[string]*list.Element
}

type cachedWidth struct {
	row   string
	width int
}

func newCache(limit int) *widthCache {
	return &widthCache{
		limit: limit,
		lru:   list.New(),
		index: make(map[string]*list.Element, limit),
	}
}

func (c *widthCache) get(row string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.index[row]
	if !ok {
		return 0, false
	}
	c.lru.MoveToFront(e)
	return e.Value.(*cachedWidth).width, true
}

func (c *widthCache) put(row string, width int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.index[row]; ok {
		c.lru.MoveToFront(e)
		return
	}
	for c.lru.Len() >= c.limit {
		oldest := c.lru.Remove(c.lru.Back()).(*cachedWidth)
		delete(c.index, oldest.row)
	}
	c.index[row] = c.lru.PushFront(&cachedWidth{row: row, width: width})
}

var rowWidths = newCache(cacheSize)

// VisibleWidth returns the number of terminal columns s occupies. A
// grapheme cluster counts as the width of its first rune, so combining
// marks add nothing and East Asian wide characters and emoji count two.
func VisibleWidth(s string) int {
	if s == "" {
		return 0
	}
	if isPlainASCII(s) {
		return len(s)
	}
	if w, ok := rowWidths.get(s); ok {
		return w
	}
	w := computeWidth(s)
	rowWidths.put(s, w)
	return w
}

// isPlainASCII reports whether s holds only printable ASCII (0x20-0x7E).
func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b < 0x20 || b > 0x7E {
			return false
		}
	}
	return true
}

// computeWidth sums grapheme cluster widths.
func computeWidth(s string) int {
	w := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.FirstGraphemeClusterInString(s, state)
		w += graphemeWidth(cluster)
		s = rest
		state = newState
	}
	return w
}

// graphemeWidth returns the display width of a single grapheme cluster.
func graphemeWidth(cluster string) int {
	if len(cluster) == 0 {
		return 0
	}
	// Decode the first rune without allocating a []rune slice.
	r, _ := utf8.DecodeRuneInString(cluster)
	return runewidth.RuneWidth(r)
}
