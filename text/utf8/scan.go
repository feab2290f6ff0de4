package utf8

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// LineBreakKind distinguishes the three hard line break sequences this
// engine recognizes.
type LineBreakKind uint8

const (
	LineBreakLF LineBreakKind = iota
	LineBreakCR
	LineBreakCRLF
)

// LineBreak describes one hard line break found in a buffer. Offset is the
// byte offset of the first byte *after* the break sequence, i.e. the start
// of the next line.
type LineBreak struct {
	Offset int
	Kind   LineBreakKind
}

// lineBreakTriggerBytes flags the bytes that can start or belong to a hard
// line break sequence (LF, bare CR, CRLF).
var lineBreakTriggerBytes = func() [256]bool {
	var t [256]bool
	t['\n'] = true
	t['\r'] = true
	return t
}()

// FindLineBreaks scans buf for hard line breaks: LF, CRLF (treated as a
// single break, reported at the '\n'), and bare CR. A CR immediately
// followed by LF is absorbed into that CRLF break; consecutive CRs not
// followed by LF each report as their own CR break.
func FindLineBreaks(buf []byte) []LineBreak {
	var breaks []LineBreak
	scanTriggerBytes(buf, &lineBreakTriggerBytes, func(i int) {
		switch buf[i] {
		case '\n':
			if i > 0 && buf[i-1] == '\r' {
				breaks = append(breaks, LineBreak{Offset: i + 1, Kind: LineBreakCRLF})
			} else {
				breaks = append(breaks, LineBreak{Offset: i + 1, Kind: LineBreakLF})
			}
		case '\r':
			if i+1 < len(buf) && buf[i+1] == '\n' {
				// Deferred to the '\n' trigger, reported as CRLF.
				return
			}
			breaks = append(breaks, LineBreak{Offset: i + 1, Kind: LineBreakCR})
		}
	})
	return breaks
}

// isWrapBreakByte reports whether b is one of the fixed ASCII wrap-break
// class bytes: whitespace, the hyphen, and common punctuation. A tab is a
// normal wrap opportunity like a space, not a forced break.
func isWrapBreakByte(b byte) bool {
	switch b {
	case ' ', '\t', '-', '/', '\\', '.', ',', ':', ';', '!', '?', '(', ')', '[', ']', '{', '}':
		return true
	default:
		return false
	}
}

// WrapBreak describes one candidate position for word-wrapping: the byte
// offset immediately after a wrap-break character.
type WrapBreak struct {
	Offset int
}

// wrapBreakRunes are the non-ASCII codepoints that are also wrap-break
// opportunities: NBSP, em-space, ideographic space, soft hyphen, Unicode
// hyphen, and zero-width space.
var wrapBreakRunes = map[rune]bool{
	'\u00A0': true, // NBSP
	'\u2003': true, // em-space
	'\u3000': true, // ideographic space
	'\u00AD': true, // soft hyphen
	'\u2010': true, // Unicode hyphen
	'\u200B': true, // zero-width space
}

// wrapBreakTriggerBytes flags the ASCII wrap-break bytes plus every UTF-8
// start byte, so the chunked scan only falls back to a full rune decode
// when a byte could possibly begin one of wrapBreakRunes.
var wrapBreakTriggerBytes = func() [256]bool {
	var t [256]bool
	for b := 0; b < 128; b++ {
		if isWrapBreakByte(byte(b)) {
			t[b] = true
		}
	}
	for b := 128; b < 256; b++ {
		if IsStartByte(byte(b)) {
			t[b] = true
		}
	}
	return t
}()

// FindWrapBreaks scans buf for word-wrap opportunities: the fixed ASCII
// break-class bytes (see isWrapBreakByte) plus a handful of Unicode break
// codepoints. A wrap break never coincides with a hard line break (the
// line ends there regardless).
func FindWrapBreaks(buf []byte) []WrapBreak {
	var breaks []WrapBreak
	scanTriggerBytes(buf, &wrapBreakTriggerBytes, func(i int) {
		b := buf[i]
		if b < 0x80 {
			breaks = append(breaks, WrapBreak{Offset: i + 1})
			return
		}
		r, size := decodeRune(buf[i:])
		if wrapBreakRunes[r] {
			breaks = append(breaks, WrapBreak{Offset: i + size})
		}
	})
	return breaks
}

// scanTriggerBytes calls onTrigger(i) for every index in buf whose byte is
// flagged in isTrigger, in ascending order. It processes buf in chunkSize
// chunks: a chunk that contains no trigger byte costs one pass with no
// further work, and only a chunk with at least one hit is walked a second
// time to report exact offsets, with a scalar tail for the remainder.
func scanTriggerBytes(buf []byte, isTrigger *[256]bool, onTrigger func(i int)) {
	n := len(buf)
	i := 0
	for ; i+chunkSize <= n; i += chunkSize {
		chunk := buf[i : i+chunkSize]
		hit := false
		for _, b := range chunk {
			if isTrigger[b] {
				hit = true
				break
			}
		}
		if !hit {
			continue
		}
		for j, b := range chunk {
			if isTrigger[b] {
				onTrigger(i + j)
			}
		}
	}
	for ; i < n; i++ {
		if isTrigger[buf[i]] {
			onTrigger(i)
		}
	}
}

// decodeRune decodes the first UTF-8 rune in b, assumed already validated.
// It falls back to a single-byte advance for malformed input so scanning
// never stalls.
func decodeRune(b []byte) (rune, int) {
	s := string(b)
	for _, r := range s {
		return r, len(string(r))
	}
	return 0, 1
}

// Cluster describes one extended grapheme cluster found in a buffer: the
// user-perceived-character unit cursor motion and editing address,
// independent of width method. Unlike FindGraphemeInfo's units, a Cluster
// is always one logical column regardless of the configured width method.
type Cluster struct {
	ByteOffset int
	ByteLen    int
	RuneLen    int
}

// FindClusters segments buf into extended grapheme clusters using the
// Unicode text segmentation algorithm.
func FindClusters(buf []byte) []Cluster {
	var clusters []Cluster
	s := string(buf)
	gr := uniseg.NewGraphemes(s)
	offset := 0
	for gr.Next() {
		runes := gr.Runes()
		byteLen := len(gr.Str())
		clusters = append(clusters, Cluster{
			ByteOffset: offset,
			ByteLen:    byteLen,
			RuneLen:    len(runes),
		})
		offset += byteLen
	}
	return clusters
}

// WidthMethod selects how grapheme clusters are converted to a terminal
// cell count.
type WidthMethod uint8

const (
	// WidthMethodWcwidth assigns width per code point (POSIX wcwidth
	// semantics): a cluster's width is the sum of its code points' widths,
	// and a combining mark contributes zero.
	WidthMethodWcwidth WidthMethod = iota

	// WidthMethodUnicode assigns width per extended grapheme cluster using
	// Unicode East Asian Width plus emoji presentation rules, so a flag or
	// ZWJ emoji sequence is measured as the rendered glyph width.
	WidthMethodUnicode
)

// GraphemeClusterWidth returns the terminal cell width of a single grapheme
// cluster, given as its constituent runes. Tabs are not handled here: tab
// width is a layout decision made by the caller (see CalculateTextWidth).
//
// In WidthMethodWcwidth mode, width is the sum of every constituent rune's
// own width, not just the leading rune's: a flag (two regional indicators)
// or a skin-tone-modified emoji (base plus modifier) each contribute their
// own nonzero width under POSIX wcwidth, unlike a combining accent, which
// runewidth already reports as zero.
func GraphemeClusterWidth(runes []rune, method WidthMethod) int {
	if len(runes) == 0 {
		return 0
	}
	switch method {
	case WidthMethodUnicode:
		return uniseg.StringWidth(string(runes))
	default:
		total := 0
		for _, r := range runes {
			total += runewidth.RuneWidth(r)
		}
		return total
	}
}

// GraphemeInfo describes one layout unit measured by FindGraphemeInfo: a
// single code point in WidthMethodWcwidth mode, or a single extended
// grapheme cluster in WidthMethodUnicode mode. ColOffset is the running
// column position at which this unit starts, so a caller doing column math
// never needs to re-sum the widths of preceding units.
type GraphemeInfo struct {
	ByteOffset int
	ByteLen    int
	Width      int
	ColOffset  int
}

// FindGraphemeInfo segments buf into layout units and measures each one's
// terminal cell width and column position.
//
// In WidthMethodWcwidth mode each unit is a single code point: a CJK
// character is width 2, a combining mark is width 0, and a skin-tone
// modifier or a regional indicator each carry their own width, matching
// POSIX wcwidth. In WidthMethodUnicode mode each unit is an extended
// grapheme cluster, so an emoji-ZWJ sequence, a skin-tone-modified emoji,
// or a flag is one unit sized by East Asian Width and emoji presentation
// rules.
//
// A tab byte is always its own unit. If expandTabsOnly, a tab's width is
// the distance to the next stop measured from column 0 (dynamic tab-stop
// alignment); otherwise every tab costs a fixed tabWidth cells regardless
// of position, matching CalculateTextWidth's static tab semantics.
func FindGraphemeInfo(buf []byte, tabWidth int, expandTabsOnly bool, method WidthMethod) []GraphemeInfo {
	var infos []GraphemeInfo
	col := 0

	appendUnit := func(offset, byteLen int, runes []rune) {
		var w int
		if len(runes) == 1 && runes[0] == '\t' {
			if expandTabsOnly {
				stop := tabWidth
				if stop <= 0 {
					stop = 1
				}
				w = stop - (col % stop)
			} else {
				w = tabWidth
			}
		} else {
			w = GraphemeClusterWidth(runes, method)
		}
		infos = append(infos, GraphemeInfo{
			ByteOffset: offset,
			ByteLen:    byteLen,
			Width:      w,
			ColOffset:  col,
		})
		col += w
	}

	if method == WidthMethodUnicode {
		s := string(buf)
		gr := uniseg.NewGraphemes(s)
		offset := 0
		for gr.Next() {
			runes := gr.Runes()
			byteLen := len(gr.Str())
			appendUnit(offset, byteLen, runes)
			offset += byteLen
		}
		return infos
	}

	offset := 0
	for _, r := range string(buf) {
		byteLen := len(string(r))
		appendUnit(offset, byteLen, []rune{r})
		offset += byteLen
	}
	return infos
}

// CalculateTextWidth returns the total display width of buf in terminal
// cells, given a width method and a fixed tab width. Tabs are static: every
// tab occupies exactly tabWidth cells regardless of the column it appears
// at, unlike dynamic tab-stop alignment.
func CalculateTextWidth(buf []byte, method WidthMethod, tabWidth int) uint64 {
	var total uint64
	s := string(buf)
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		runes := gr.Runes()
		if len(runes) == 1 && runes[0] == '\t' {
			total += uint64(tabWidth)
			continue
		}
		total += uint64(GraphemeClusterWidth(runes, method))
	}
	return total
}
