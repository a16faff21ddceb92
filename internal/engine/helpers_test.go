package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/multicaret/internal/engine/buffer"
	"github.com/dshills/multicaret/internal/engine/cursor"
)

// newSet builds a set over cursors with the first one primary.
func newSet(t *testing.T, cursors ...cursor.Cursor) *cursor.Set {
	t.Helper()
	s := cursor.NewSet(0, 0)
	require.True(t, s.Replace(cursors, 0))
	return s
}

func carets(s *cursor.Set) []buffer.Offset {
	var out []buffer.Offset
	for _, c := range s.All() {
		out = append(out, c.Position)
	}
	return out
}

func ranges(s *cursor.Set) []buffer.Range {
	var out []buffer.Range
	for _, c := range s.All() {
		out = append(out, c.Range())
	}
	return out
}

// panicText panics on the nth ReplaceRange.
type panicText struct {
	*buffer.Buffer
	n int
}

func (p *panicText) ReplaceRange(start, end buffer.Offset, text string) {
	p.n--
	if p.n == 0 {
		panic("replace failed")
	}
	p.Buffer.ReplaceRange(start, end, text)
}
