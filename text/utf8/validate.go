package utf8

// validatorState is a node in the UTF-8 decoding DFA described at
// http://bjoern.hoehrmann.de/utf-8/decoder/dfa/.
type validatorState uint8

const (
	stateValid = validatorState(iota)
	stateInvalid
	stateAwaitingOneByte
	stateAwaitingTwoBytesA
	stateAwaitingTwoBytesB
	stateAwaitingTwoBytesC
	stateAwaitingThreeBytesA
	stateAwaitingThreeBytesB
	stateAwaitingThreeBytesC
)

// Validator incrementally checks whether a stream of bytes is valid UTF-8.
// It rejects invalid start bytes, missing or extra continuation bytes,
// encoded surrogate code points, overlong sequences, and sequences encoding
// code points outside the Unicode range.
type Validator struct {
	state       validatorState
	processed   int64
	invalidByte int64 // -1 until the first invalid byte is seen
}

// NewValidator constructs a Validator ready to process the start of a byte
// stream.
func NewValidator() *Validator {
	return &Validator{state: stateValid, invalidByte: -1}
}

// ValidateBytes feeds buf to the validator and reports whether the bytes
// seen so far (across all calls) are still a valid UTF-8 prefix.
func (v *Validator) ValidateBytes(buf []byte) bool {
	if v.state == stateValid && IsASCIIOnly(buf) {
		v.processed += int64(len(buf))
		return true
	}

	for _, b := range buf {
		prevState := v.state
		v.processByte(b)
		if v.state == stateInvalid && prevState != stateInvalid && v.invalidByte < 0 {
			v.invalidByte = v.processed
		}
		v.processed++
	}

	return v.state != stateInvalid
}

// ValidateEnd reports whether the stream, now that all bytes have been
// processed, ended on a complete, valid code point (no truncated multi-byte
// sequence left dangling).
func (v *Validator) ValidateEnd() bool {
	return v.state == stateValid
}

// InvalidByteOffset returns the byte offset of the first byte that made the
// stream invalid, or -1 if the stream (as validated so far) is still valid.
func (v *Validator) InvalidByteOffset() int64 {
	return v.invalidByte
}

func (v *Validator) processByte(b byte) {
	switch v.state {
	case stateValid:
		switch {
		case b <= 0x7f:
			v.state = stateValid
		case b >= 0xc2 && b <= 0xdf:
			v.state = stateAwaitingOneByte
		case (b >= 0xe1 && b <= 0xec) || (b >= 0xee && b <= 0xef):
			v.state = stateAwaitingTwoBytesA
		case b == 0xe0:
			v.state = stateAwaitingTwoBytesB
		case b == 0xed:
			v.state = stateAwaitingTwoBytesC
		case b == 0xf0:
			v.state = stateAwaitingThreeBytesA
		case b >= 0xf1 && b <= 0xf3:
			v.state = stateAwaitingThreeBytesB
		case b == 0xf4:
			v.state = stateAwaitingThreeBytesC
		default:
			v.state = stateInvalid
		}

	case stateAwaitingOneByte:
		v.state = transitionOrInvalid(b, 0x80, 0xbf, stateValid)

	case stateAwaitingTwoBytesA:
		v.state = transitionOrInvalid(b, 0x80, 0xbf, stateAwaitingOneByte)

	case stateAwaitingTwoBytesB:
		v.state = transitionOrInvalid(b, 0xa0, 0xbf, stateAwaitingOneByte)

	case stateAwaitingTwoBytesC:
		v.state = transitionOrInvalid(b, 0x80, 0x9f, stateAwaitingOneByte)

	case stateAwaitingThreeBytesA:
		v.state = transitionOrInvalid(b, 0x90, 0xbf, stateAwaitingTwoBytesA)

	case stateAwaitingThreeBytesB:
		v.state = transitionOrInvalid(b, 0x80, 0xbf, stateAwaitingTwoBytesA)

	case stateAwaitingThreeBytesC:
		v.state = transitionOrInvalid(b, 0x80, 0x8f, stateAwaitingTwoBytesA)

	default:
		v.state = stateInvalid
	}
}

func transitionOrInvalid(b, lo, hi byte, next validatorState) validatorState {
	if b >= lo && b <= hi {
		return next
	}
	return stateInvalid
}

// Validate reports whether buf, taken as a complete byte string, is valid
// UTF-8.
func Validate(buf []byte) bool {
	v := NewValidator()
	return v.ValidateBytes(buf) && v.ValidateEnd()
}

// FirstInvalidByteOffset returns the byte offset of the first byte in buf
// that breaks UTF-8 validity, or -1 if buf is entirely valid UTF-8.
func FirstInvalidByteOffset(buf []byte) int64 {
	v := NewValidator()
	v.ValidateBytes(buf)
	if !v.ValidateEnd() && v.invalidByte < 0 {
		// The stream ended mid-sequence: the dangling start byte is the
		// offending byte.
		return lastStartByteOffset(buf)
	}
	return v.invalidByte
}

func lastStartByteOffset(buf []byte) int64 {
	for i := len(buf) - 1; i >= 0; i-- {
		if IsStartByte(buf[i]) {
			return int64(i)
		}
	}
	return 0
}
