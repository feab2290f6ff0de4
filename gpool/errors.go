package gpool

import "fmt"

// ErrOutOfMemory is returned when the pool refuses to grow (a class has
// reached its configured page limit).
type ErrOutOfMemory struct {
	Class Class
}

func (e ErrOutOfMemory) Error() string {
	return fmt.Sprintf("gpool: out of memory for class %d", e.Class)
}

// ErrInvalidID is returned when an ID's class is out of range, or the slot
// it names is free.
type ErrInvalidID struct {
	ID ID
}

func (e ErrInvalidID) Error() string {
	return fmt.Sprintf("gpool: invalid id %d", uint32(e.ID))
}

// ErrWrongGeneration is returned when an ID names a slot that is live, but
// the slot has been reused since the ID was allocated. This is a latent
// aliasing bug in the caller: the ID was retained past the slot's lifetime.
type ErrWrongGeneration struct {
	ID ID
}

func (e ErrWrongGeneration) Error() string {
	return fmt.Sprintf("gpool: stale id %d (generation mismatch)", uint32(e.ID))
}
