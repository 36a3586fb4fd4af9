// ABOUTME: Row shaping for the screen: tab expansion to a fixed tab stop and clipping to a column count
// ABOUTME: Both walk grapheme clusters so a wide character is never split across the screen edge

package width

import (
	"strings"

	"github.com/rivo/uniseg"
)

// DefaultTabStop is the tab width used when none is configured.
const DefaultTabStop = 8

// ExpandTabs replaces each tab in s with spaces up to the next multiple of
// tabStop columns. A tabStop below 1 uses DefaultTabStop.
func ExpandTabs(s string, tabStop int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	if tabStop < 1 {
		tabStop = DefaultTabStop
	}

	var b strings.Builder
	b.Grow(len(s) + tabStop)
	col := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.FirstGraphemeClusterInString(s, state)
		s, state = rest, newState
		if cluster == "\t" {
			n := tabStop - col%tabStop
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteString(cluster)
		col += graphemeWidth(cluster)
	}
	return b.String()
}

// Truncate returns the longest prefix of s that fits in cols columns. A
// wide cluster that would straddle the edge is left out entirely.
func Truncate(s string, cols int) string {
	if cols <= 0 {
		return ""
	}
	if isPlainASCII(s) {
		if len(s) <= cols {
			return s
		}
		return s[:cols]
	}
	if VisibleWidth(s) <= cols {
		return s
	}

	col, end := 0, 0
	state := -1
	rest := s
	for len(rest) > 0 {
		cluster, next, _, newState := uniseg.FirstGraphemeClusterInString(rest, state)
		w := graphemeWidth(cluster)
		if col+w > cols {
			break
		}
		col += w
		end += len(cluster)
		rest, state = next, newState
	}
	return s[:end]
}
