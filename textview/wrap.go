// Package textview computes wrapped virtual-line layout over a Text
// Buffer, the way aretext's text/segment.WrappedLineIter turns a rune
// stream into display lines, generalized to the three wrap modes and
// word-mode last-break tracking this engine's views need.
package textview

import (
	"github.com/aretext/vtext/text/utf8"
)

// WrapMode selects how a source line is split into virtual lines.
type WrapMode uint8

const (
	// WrapNone emits one virtual line per source line, verbatim.
	WrapNone WrapMode = iota
	// WrapChar breaks at the grapheme-cluster boundary nearest the wrap
	// width, with no regard for word boundaries.
	WrapChar
	// WrapWord breaks at the last wrap-break opportunity (§4.3) within the
	// current run when one exists, falling back to WrapChar behavior
	// otherwise.
	WrapWord
)

// VirtualLine is one horizontal slice of a source line, as produced by
// wrapLine. CharOffset and ByteOffset are relative to the start of the
// source line, not the document.
type VirtualLine struct {
	CharOffset int
	ByteOffset int
	Width      int
	// WrapStart is true for the first virtual line produced for its source
	// line (as opposed to a soft-wrap continuation).
	WrapStart bool
}

// clusterWidth returns the display width of the grapheme cluster gc within
// lineBytes, honoring the document's width method and static tab width.
func clusterWidth(lineBytes []byte, gc utf8.Cluster, method utf8.WidthMethod, tabWidth int) int {
	b := lineBytes[gc.ByteOffset : gc.ByteOffset+gc.ByteLen]
	if gc.RuneLen == 1 && len(b) == 1 && b[0] == '\t' {
		return tabWidth
	}
	return utf8.GraphemeClusterWidth([]rune(string(b)), method)
}

// wrapLine splits lineBytes into virtual lines under mode. wrapWidth <= 0
// and WrapNone both degenerate to a single verbatim virtual line.
//
// In WrapWord mode, the index of the last wrap-break opportunity within the
// current run is tracked as clusters are scanned; when the accumulated
// width would exceed wrapWidth, the line is split there instead of at the
// current cluster, unless no break has been seen yet in the run (in which
// case this degenerates to WrapChar behavior for that line). Leading
// whitespace on a continuation line is never trimmed: the break position is
// the byte immediately after the break character, so any further
// whitespace on the line remains content of the next virtual line.
func wrapLine(lineBytes []byte, mode WrapMode, wrapWidth int, method utf8.WidthMethod, tabWidth int) []VirtualLine {
	if mode == WrapNone || wrapWidth <= 0 {
		w := int(utf8.CalculateTextWidth(lineBytes, method, tabWidth))
		return []VirtualLine{{Width: w, WrapStart: true}}
	}

	clusters := utf8.FindClusters(lineBytes)

	breakBytes := make(map[int]bool)
	if mode == WrapWord {
		for _, wb := range utf8.FindWrapBreaks(lineBytes) {
			breakBytes[wb.Offset] = true
		}
	}

	var result []VirtualLine
	lineStartByte, lineStartChar := 0, 0
	width := 0
	breakByte, breakChar, breakWidth := -1, -1, 0
	charPos := 0

	emit := func(endByte, endChar, w int) {
		result = append(result, VirtualLine{
			CharOffset: lineStartChar,
			ByteOffset: lineStartByte,
			Width:      w,
			WrapStart:  len(result) == 0,
		})
		lineStartByte, lineStartChar = endByte, endChar
		breakByte, breakChar, breakWidth = -1, -1, 0
	}

	i := 0
	for i < len(clusters) {
		gc := clusters[i]
		cw := clusterWidth(lineBytes, gc, method, tabWidth)

		if width > 0 && width+cw > wrapWidth {
			if breakByte >= 0 {
				leftover := width - breakWidth
				emit(breakByte, breakChar, breakWidth)
				width = leftover
			} else {
				emit(gc.ByteOffset, charPos, width)
				width = 0
			}
			continue
		}

		if width == 0 && cw > wrapWidth {
			emit(gc.ByteOffset+gc.ByteLen, charPos+gc.RuneLen, cw)
			charPos += gc.RuneLen
			i++
			continue
		}

		width += cw
		charPos += gc.RuneLen
		if mode == WrapWord && breakBytes[gc.ByteOffset+gc.ByteLen] {
			breakByte = gc.ByteOffset + gc.ByteLen
			breakChar = charPos
			breakWidth = width
		}
		i++
	}

	emit(len(lineBytes), charPos, width)
	return result
}
