// Package textbuffer implements the Text Buffer: a rope-backed document
// with a byte arena, a width method, per-line highlights, and typing
// coalescence, the way aretext's internal/pkg/exec mutators lay edits onto
// its text.Tree.
package textbuffer

import (
	"os"

	"github.com/pkg/errors"

	"github.com/aretext/vtext/event"
	"github.com/aretext/vtext/text"
	"github.com/aretext/vtext/text/utf8"
	"github.com/aretext/vtext/verr"
)

// Document is a Text Buffer: a rope of segments over a byte arena, plus the
// rendering attributes (width method, tab width) and highlight state a
// view needs to lay it out.
type Document struct {
	tree        *text.Tree
	arena       *arena
	widthMethod utf8.WidthMethod
	tabWidth    int

	highlights   map[int][]Highlight
	nextHlSeq    int
	emitter      *event.Emitter

	placeholder []StyledChunk
}

// New constructs an empty Document.
func New(widthMethod utf8.WidthMethod, tabWidth int) *Document {
	return &Document{
		tree:        text.New(),
		arena:       newArena(1),
		widthMethod: widthMethod,
		tabWidth:    tabWidth,
		highlights:  make(map[int][]Highlight),
		emitter:     event.NewEmitter(),
	}
}

// Events returns the emitter Views subscribe to for change notifications.
func (d *Document) Events() *event.Emitter {
	return d.emitter
}

// WidthMethod returns the document's configured width method.
func (d *Document) WidthMethod() utf8.WidthMethod {
	return d.widthMethod
}

// TabWidth returns the document's configured tab width.
func (d *Document) TabWidth() int {
	return d.tabWidth
}

// SetTabWidth updates the tab width and marks views dirty, since every
// cached virtual line's width depends on it.
func (d *Document) SetTabWidth(n int) {
	d.tabWidth = n
	d.emitter.Emit(event.TopicDocumentChanged, nil)
}

// SetText replaces the document's entire content.
func (d *Document) SetText(b []byte) error {
	if !utf8.Validate(b) {
		return verr.InvalidUtf8{ByteOffset: utf8.FirstInvalidByteOffset(b)}
	}
	d.tree = text.New()
	d.arena = newArena(d.arena.memID)
	d.highlights = make(map[int][]Highlight)
	if len(b) > 0 {
		segs := d.buildSegments(b, 0)
		if err := d.tree.InsertSlice(0, segs); err != nil {
			return err
		}
	}
	d.emitter.Emit(event.TopicDocumentChanged, nil)
	return nil
}

// LoadFile reads path and replaces the document's content with its bytes,
// classifying filesystem failures into the IoError kinds callers branch on.
func (d *Document) LoadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return classifyIoError(path, err)
	}
	if err := d.SetText(b); err != nil {
		return errors.Wrapf(err, "SetText()")
	}
	return nil
}

func classifyIoError(path string, err error) error {
	kind := verr.IoErrorOther
	switch {
	case os.IsNotExist(err):
		kind = verr.IoErrorNotFound
	case os.IsPermission(err):
		kind = verr.IoErrorPermission
	}
	return verr.IoError{Kind: kind, Path: path, Err: err}
}

// GetLength returns the total byte length of the document's text content
// (hard breaks count as their original 1- or 2-byte line ending).
func (d *Document) GetLength() int {
	total := 0
	d.tree.Walk(func(seg text.Segment) bool {
		total += segSpan(seg)
		return true
	})
	return total
}

// GetLineCount returns the number of lines in the document (hard break
// count plus one, matching a trailing unterminated line).
func (d *Document) GetLineCount() int {
	return int(d.tree.Metrics().BreakCount) + 1
}

// GetPlainTextInto appends the document's plain-text reconstruction to buf
// and returns the number of bytes written.
func (d *Document) GetPlainTextInto(buf []byte) ([]byte, int) {
	start := len(buf)
	d.tree.Walk(func(seg text.Segment) bool {
		switch seg.Kind {
		case text.KindTextChunk:
			buf = append(buf, d.arena.slice(seg.ByteStart, seg.ByteEnd)...)
		case text.KindHardBreak:
			switch seg.Ending {
			case text.EndingCRLF:
				buf = append(buf, '\r', '\n')
			case text.EndingCR:
				buf = append(buf, '\r')
			default:
				buf = append(buf, '\n')
			}
		}
		return true
	})
	return buf, len(buf) - start
}

// StyledChunk is one run of text sharing a style, as passed to
// SetStyledText.
type StyledChunk struct {
	Bytes   []byte
	StyleID uint32
}

// SetStyledText replaces the document's content with the given styled
// chunks, appended in order as mergeable text segments.
func (d *Document) SetStyledText(chunks []StyledChunk) error {
	d.tree = text.New()
	d.arena = newArena(d.arena.memID)
	d.highlights = make(map[int][]Highlight)

	for _, c := range chunks {
		if !utf8.Validate(c.Bytes) {
			return verr.InvalidUtf8{ByteOffset: utf8.FirstInvalidByteOffset(c.Bytes)}
		}
		segs := d.buildSegments(c.Bytes, c.StyleID)
		if err := d.tree.InsertSlice(d.tree.Count(), segs); err != nil {
			return err
		}
	}
	d.emitter.Emit(event.TopicDocumentChanged, nil)
	return nil
}

func segSpan(seg text.Segment) int {
	switch seg.Kind {
	case text.KindTextChunk:
		return seg.ByteLen()
	case text.KindHardBreak:
		if seg.Ending == text.EndingCRLF {
			return 2
		}
		return 1
	default:
		return 0
	}
}
