package text

import "github.com/aretext/vtext/verr"

// Label identifies an undo snapshot, the way aretext's undo.LogEntry is
// keyed by a position rather than a richer structure.
type Label string

type undoEntry struct {
	root  *node
	label Label
}

// Tree is a balanced, persistent rope of Segments. The zero value is not
// usable; construct with New or FromSlice.
type Tree struct {
	root *node

	undoStack    []undoEntry
	maxUndoDepth int
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{root: newLeaf(Segment{Kind: KindTextChunk})}
}

// FromSlice builds a tree containing items, in order.
func FromSlice(items []Segment) *Tree {
	t := New()
	for _, it := range items {
		t.root = insertAt(t.root, t.root.count(), it)
	}
	return t
}

// Count returns the number of non-empty segments in the tree.
func (t *Tree) Count() int {
	return int(t.root.count())
}

// Walk visits every non-empty segment left to right, stopping early if
// visit returns false.
func (t *Tree) Walk(visit func(Segment) bool) {
	walk(t.root, visit)
}

// Get returns the segment at logical index i.
func (t *Tree) Get(i int) (Segment, error) {
	if i < 0 || uint64(i) >= t.root.count() {
		return Segment{}, verr.InvalidIndex{Index: i, Len: t.Count()}
	}
	seg, ok := getAt(t.root, uint64(i))
	if !ok {
		return Segment{}, verr.InvalidIndex{Index: i, Len: t.Count()}
	}
	return seg, nil
}

// Split divides the tree at logical index i into two independent trees:
// [0,i) and [i,count).
func (t *Tree) Split(i int) (*Tree, *Tree, error) {
	if i < 0 || uint64(i) > t.root.count() {
		return nil, nil, verr.InvalidIndex{Index: i, Len: t.Count()}
	}
	l, r := splitNode(t.root, uint64(i))
	left := &Tree{root: l}
	right := &Tree{root: r}
	if left.root == nil {
		left.root = newLeaf(Segment{Kind: KindTextChunk})
	}
	if right.root == nil {
		right.root = newLeaf(Segment{Kind: KindTextChunk})
	}
	return left, right, nil
}

// Concat appends other's items after this tree's items and returns the
// combined tree. other must not be used afterward.
func (t *Tree) Concat(other *Tree) *Tree {
	return &Tree{root: concatNodes(t.root, other.root)}
}

// Insert inserts item so that it becomes logical index i.
func (t *Tree) Insert(i int, item Segment) error {
	if i < 0 || uint64(i) > t.root.count() {
		return verr.InvalidIndex{Index: i, Len: t.Count()}
	}
	t.root = insertAt(t.root, uint64(i), item)
	return nil
}

// InsertSlice inserts items, in order, starting at logical index i.
func (t *Tree) InsertSlice(i int, items []Segment) error {
	if i < 0 || uint64(i) > t.root.count() {
		return verr.InvalidIndex{Index: i, Len: t.Count()}
	}
	root := t.root
	idx := uint64(i)
	for _, it := range items {
		root = insertAt(root, idx, it)
		idx++
	}
	t.root = root
	return nil
}

// Append inserts item at the end of the tree.
func (t *Tree) Append(item Segment) error {
	t.root = insertAt(t.root, t.root.count(), item)
	return nil
}

// Replace overwrites the segment at logical index i.
func (t *Tree) Replace(i int, item Segment) error {
	if i < 0 || uint64(i) >= t.root.count() {
		return verr.InvalidIndex{Index: i, Len: t.Count()}
	}
	t.root = replaceAt(t.root, uint64(i), item)
	return nil
}

// Delete removes the segment at logical index i.
func (t *Tree) Delete(i int) error {
	if i < 0 || uint64(i) >= t.root.count() {
		return verr.InvalidIndex{Index: i, Len: t.Count()}
	}
	newRoot := deleteAt(t.root, uint64(i))
	if newRoot == nil {
		newRoot = newLeaf(Segment{Kind: KindTextChunk})
	}
	t.root = newRoot
	return nil
}

// DeleteRange removes logical indices [start, end).
func (t *Tree) DeleteRange(start, end int) error {
	n := t.Count()
	if start < 0 || end < start || end > n {
		return verr.InvalidIndex{Index: end, Len: n}
	}
	if start == end {
		return nil
	}
	head, rest := splitNode(t.root, uint64(start))
	_, tail := splitNode(rest, uint64(end-start))
	newRoot := concatNodes(head, tail)
	if newRoot == nil {
		newRoot = newLeaf(Segment{Kind: KindTextChunk})
	}
	t.root = newRoot
	return nil
}

// GetMarker locates the logical index of the n-th (0-based) marker of the
// given kind, by summing marker-count weights.
func (t *Tree) GetMarker(kind MarkerKind, n int) (int, error) {
	idx, ok := findMarker(t.root, kind, uint64(n), 0)
	if !ok {
		return 0, verr.InvalidIndex{Index: n, Len: t.Count()}
	}
	return int(idx), nil
}

// StoreUndo snapshots the current root under label. Snapshots are shallow
// root captures (structural sharing via the persistent node tree), so this
// is O(1) regardless of tree size.
func (t *Tree) StoreUndo(label Label) {
	t.undoStack = append(t.undoStack, undoEntry{root: t.root, label: label})
	if t.maxUndoDepth > 0 && len(t.undoStack) > t.maxUndoDepth {
		excess := len(t.undoStack) - t.maxUndoDepth
		t.undoStack = t.undoStack[excess:]
	}
}

// Undo restores the most recently stored root, returning the label that was
// current when that snapshot was taken. It is a no-op returning (_, false)
// when there is no history.
func (t *Tree) Undo(currentLabel Label) (Label, bool) {
	if len(t.undoStack) == 0 {
		return "", false
	}
	last := len(t.undoStack) - 1
	entry := t.undoStack[last]
	t.undoStack = t.undoStack[:last]
	t.root = entry.root
	return entry.label, true
}

// CanUndo reports whether any undo snapshot is available.
func (t *Tree) CanUndo() bool {
	return len(t.undoStack) > 0
}

// ClearHistory discards all undo snapshots.
func (t *Tree) ClearHistory() {
	t.undoStack = nil
}

// SetMaxUndoDepth caps the retained undo states; zero means unbounded.
// Existing excess states are trimmed immediately.
func (t *Tree) SetMaxUndoDepth(n int) {
	t.maxUndoDepth = n
	if n > 0 && len(t.undoStack) > n {
		t.undoStack = t.undoStack[len(t.undoStack)-n:]
	}
}

// MaxUndoDepth returns the current cap (0 = unbounded).
func (t *Tree) MaxUndoDepth() int {
	return t.maxUndoDepth
}

// Metrics returns the aggregate metrics for the whole tree.
func (t *Tree) Metrics() Metrics {
	return t.root.metrics
}
