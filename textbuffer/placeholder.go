package textbuffer

// SetPlaceholderStyledText installs display-only text rendered by
// RenderLines whenever the document's real content is empty. Logical reads
// (AllLines, GetPlainTextInto, GetLength) never see it: only the renderer
// observes the placeholder, matching the "callers see empty" contract.
// Inserting any real content makes HasPlaceholder false automatically;
// deleting back to empty reactivates it without any extra bookkeeping.
func (d *Document) SetPlaceholderStyledText(chunks []StyledChunk) {
	d.placeholder = chunks
}

// ClearPlaceholder removes any installed placeholder text.
func (d *Document) ClearPlaceholder() {
	d.placeholder = nil
}

// HasPlaceholder reports whether a placeholder is installed and currently
// showing: a placeholder is installed, and the document's real content is
// empty.
func (d *Document) HasPlaceholder() bool {
	return len(d.placeholder) > 0 && d.GetLength() == 0
}

// RenderLines returns the lines a view should render: the placeholder's
// lines when the document is otherwise empty and a placeholder is
// installed, else the document's real lines.
func (d *Document) RenderLines() []DocLine {
	if d.HasPlaceholder() {
		tmp := New(d.widthMethod, d.tabWidth)
		_ = tmp.SetStyledText(d.placeholder)
		return tmp.AllLines()
	}
	return d.AllLines()
}
