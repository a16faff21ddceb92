package engine

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/multicaret/internal/engine/buffer"
)

// graphemeWindow is how many bytes around a caret are read to find the
// neighbouring cluster boundary. Longer clusters are split.
const graphemeWindow = 64

// prevBoundary returns the start of the grapheme cluster ending at pos.
func prevBoundary(t buffer.Text, pos buffer.Offset) buffer.Offset {
	if pos <= 0 {
		return 0
	}
	start := max(0, pos-graphemeWindow)
	g := uniseg.NewGraphemes(t.ReadRange(start, pos))
	last := 0
	for g.Next() {
		last, _ = g.Positions()
	}
	return start + last
}

// nextBoundary returns the end of the grapheme cluster starting at pos.
func nextBoundary(t buffer.Text, pos buffer.Offset) buffer.Offset {
	n := t.Len()
	if pos >= n {
		return n
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(t.ReadRange(pos, pos+graphemeWindow), -1)
	if cluster == "" {
		return pos + 1
	}
	return pos + len(cluster)
}
