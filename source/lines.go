package source

import (
	"sort"
	"unicode/utf8"
)

// lineIndex maps byte offsets to 1-based line and column numbers. Columns
// count runes.
type lineIndex struct {
	src    []byte
	starts []int
}

func newLineIndex(src []byte) lineIndex {
	starts := []int{0}
	for i, c := range src {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return lineIndex{src: src, starts: starts}
}

func (x lineIndex) position(off int64) Position {
	o := int(off)
	if o > len(x.src) {
		o = len(x.src)
	}
	if o < 0 {
		o = 0
	}
	line := sort.Search(len(x.starts), func(i int) bool { return x.starts[i] > o }) - 1
	return Position{Line: line + 1, Column: utf8.RuneCount(x.src[x.starts[line]:o]) + 1}
}
