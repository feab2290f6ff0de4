package textbuffer

// arena is the byte backing store a Document's rope segments reference by
// range. A Document owns exactly one arena; segments name it implicitly
// (there is only ever one memID in play per Document), matching spec.md's
// memory-arena ownership rule that a TextChunk crossing between Documents
// requires the target to keep the source arena alive.
type arena struct {
	memID uint64
	bytes []byte
}

func newArena(memID uint64) *arena {
	return &arena{memID: memID}
}

// append adds bytes to the arena and returns the byte range they occupy.
func (a *arena) append(b []byte) (start, end int) {
	start = len(a.bytes)
	a.bytes = append(a.bytes, b...)
	end = len(a.bytes)
	return start, end
}

func (a *arena) slice(start, end int) []byte {
	return a.bytes[start:end]
}
