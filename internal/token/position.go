package token

import "sort"

// Span is a half-open byte range [Start, End) into the source buffer.
type Span struct {
	Start int
	End   int
}

// Diagnostic is a compile-time problem report from the scanner, parser,
// or resolver. Runtime errors live in the object package instead.
type Diagnostic struct {
	Message string
	Span    Span
}

// LineOffsets maps byte offsets to 1-indexed line numbers. It records the
// starting offset of every line once and answers lookups with a binary
// search, so a run only pays for the scan of the source a single time no
// matter how many diagnostics it reports.
type LineOffsets struct {
	offsets []int
	len     int
}

func NewLineOffsets(src string) *LineOffsets {
	offsets := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return &LineOffsets{offsets: offsets, len: len(src)}
}

// Line returns the 1-indexed line containing the byte offset pos.
// Offsets past the end of the source report the last line.
func (lo *LineOffsets) Line(pos int) int {
	if pos > lo.len {
		pos = lo.len
	}
	i := sort.SearchInts(lo.offsets, pos)
	if i < len(lo.offsets) && lo.offsets[i] == pos {
		return i + 1
	}
	return i
}
