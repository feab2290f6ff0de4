// Package text implements a balanced, persistent rope of text segments,
// the structure a Text Buffer lays its document out on.
package text

// Kind distinguishes the three segment variants a rope leaf can hold.
type Kind uint8

const (
	KindTextChunk Kind = iota
	KindHardBreak
	KindMarker
)

// MarkerKind distinguishes marker variants. Only a line-start marker is
// produced by this repo today; the type exists so new marker kinds can be
// added without changing the rope's API.
type MarkerKind uint8

const (
	MarkerLineStart MarkerKind = iota
)

// Segment is a rope leaf payload: a contiguous run of text bytes backed by
// an external arena, a hard line break, or a zero-width marker located by
// weight rather than content.
type Segment struct {
	Kind Kind

	// TextChunk fields.
	MemID      uint64
	ByteStart  int
	ByteEnd    int
	Width      uint64
	AsciiOnly  bool
	StyleID    uint32

	// Marker fields.
	Marker MarkerKind

	// Ending records which line-ending sequence a hard break originally
	// was, so plain-text reconstruction round-trips it exactly.
	Ending LineEndingKind
}

// LineEndingKind distinguishes the three hard line break sequences a
// HardBreak segment can reconstruct as.
type LineEndingKind uint8

const (
	EndingLF LineEndingKind = iota
	EndingCR
	EndingCRLF
)

// IsEmpty reports whether this segment is a zero-length text chunk. Empty
// segments act as sentinels: they are skipped by Count, Walk, Get, and
// range operations, but remain structurally present in the tree.
func (s Segment) IsEmpty() bool {
	return s.Kind == KindTextChunk && s.ByteStart == s.ByteEnd
}

// ByteLen returns the byte length of a text chunk segment (0 for
// hard breaks and markers).
func (s Segment) ByteLen() int {
	if s.Kind != KindTextChunk {
		return 0
	}
	return s.ByteEnd - s.ByteStart
}

// TextChunk constructs a text chunk segment.
func TextChunk(memID uint64, byteStart, byteEnd int, width uint64, asciiOnly bool, styleID uint32) Segment {
	return Segment{
		Kind:      KindTextChunk,
		MemID:     memID,
		ByteStart: byteStart,
		ByteEnd:   byteEnd,
		Width:     width,
		AsciiOnly: asciiOnly,
		StyleID:   styleID,
	}
}

// HardBreak constructs an LF hard line break segment.
func HardBreak() Segment {
	return Segment{Kind: KindHardBreak, Ending: EndingLF}
}

// HardBreakCR constructs a hard line break segment that reconstructs as a
// bare "\r" rather than "\n".
func HardBreakCR() Segment {
	return Segment{Kind: KindHardBreak, Ending: EndingCR}
}

// HardBreakCRLF constructs a hard line break segment that reconstructs as
// "\r\n" rather than "\n".
func HardBreakCRLF() Segment {
	return Segment{Kind: KindHardBreak, Ending: EndingCRLF}
}

// Marker constructs a zero-width marker segment of the given kind.
func Marker(kind MarkerKind) Segment {
	return Segment{Kind: KindMarker, Marker: kind}
}

// Metrics is the associative, non-commutative aggregate cached at every
// rope node. Combining two adjacent subtrees' metrics answers "line index
// at byte offset", "width up to offset", and "max line width" in O(log n).
type Metrics struct {
	TotalWidth      uint64
	BreakCount      uint64
	FirstLineWidth  uint64
	LastLineWidth   uint64
	MaxLineWidth    uint64
	AsciiOnly       bool
	MarkerCount     uint64

	// Count is the number of non-empty segments this metrics value
	// summarizes. It is the default (and currently only) rope balance
	// weight; it also makes Metrics{} the correct identity element for
	// combine, since an empty-sentinel leaf contributes Count 0.
	Count uint64
}

func metricsForSegment(seg Segment) Metrics {
	if seg.IsEmpty() {
		return Metrics{}
	}
	switch seg.Kind {
	case KindTextChunk:
		return Metrics{
			TotalWidth:     seg.Width,
			FirstLineWidth: seg.Width,
			LastLineWidth:  seg.Width,
			MaxLineWidth:   seg.Width,
			AsciiOnly:      seg.AsciiOnly,
			Count:          1,
		}
	case KindHardBreak:
		return Metrics{BreakCount: 1, AsciiOnly: true, Count: 1}
	case KindMarker:
		return Metrics{MarkerCount: 1, AsciiOnly: true, Count: 1}
	default:
		return Metrics{}
	}
}

// combineMetrics folds two adjacent subtrees' metrics into one. It is
// associative but not commutative: combineMetrics(a, b) tracks which side
// is "first" and "last" for line-width purposes.
func combineMetrics(a, b Metrics) Metrics {
	if a.Count == 0 {
		return b
	}
	if b.Count == 0 {
		return a
	}

	first := a.FirstLineWidth
	if a.BreakCount == 0 {
		// a is entirely one line with no break of its own; that line
		// continues into b's first line.
		first = a.FirstLineWidth + b.FirstLineWidth
	}

	last := b.LastLineWidth
	if b.BreakCount == 0 {
		last = b.LastLineWidth + a.LastLineWidth
	}

	// The line formed where a's tail meets b's head.
	joined := a.LastLineWidth + b.FirstLineWidth

	maxW := a.MaxLineWidth
	if b.MaxLineWidth > maxW {
		maxW = b.MaxLineWidth
	}
	if joined > maxW {
		maxW = joined
	}

	return Metrics{
		TotalWidth:     a.TotalWidth + b.TotalWidth,
		BreakCount:     a.BreakCount + b.BreakCount,
		FirstLineWidth: first,
		LastLineWidth:  last,
		MaxLineWidth:   maxW,
		AsciiOnly:      a.AsciiOnly && b.AsciiOnly,
		MarkerCount:    a.MarkerCount + b.MarkerCount,
		Count:          a.Count + b.Count,
	}
}
