package utf8

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	testCases := []struct {
		name        string
		bytes       []byte
		expectValid bool
	}{
		{"empty", nil, true},
		{"ascii", []byte("abcd1234"), true},
		{"multi-byte", []byte("丂丄丅丆丏 ¢ह€한"), true},
		{"invalid start byte", []byte{0xFF}, false},
		{"non-continuation byte inside sequence", []byte{0b11100000, 0b10000000, 0b00000000}, false},
		{"missing continuation chars at end", []byte{0b11110000, 0b10000000}, false},
		{"start byte beyond U+10FFFF", []byte{0b11110111, 0b10111111, 0b10111111, 0b10111111}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectValid, Validate(tc.bytes))
		})
	}
}

func TestValidateBytesIndividually(t *testing.T) {
	v := NewValidator()
	s := []byte("ვეპხის ტყაოსანი შოთა რუსთაველი")
	for _, b := range s {
		assert.True(t, v.ValidateBytes([]byte{b}))
	}
	assert.True(t, v.ValidateEnd())
}

func TestFirstInvalidByteOffset(t *testing.T) {
	testCases := []struct {
		name     string
		bytes    []byte
		expected int64
	}{
		{"valid ascii", []byte("hello"), -1},
		{"valid multibyte", []byte("héllo"), -1},
		{"invalid start byte at offset 2", []byte{'h', 'i', 0xFF}, 2},
		{"truncated sequence at end", []byte{'o', 'k', 0b11000010}, 2},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FirstInvalidByteOffset(tc.bytes))
		})
	}
}

func TestIsASCIIOnly(t *testing.T) {
	assert.True(t, IsASCIIOnly([]byte("the quick brown fox jumps over the lazy dog, 32 chars exactly!!")))
	assert.False(t, IsASCIIOnly([]byte("the quick brown fox jumps over the lazy dog, with a 丂 in it")))
	assert.False(t, IsASCIIOnly(nil))
	assert.False(t, IsASCIIOnly([]byte{}))
	assert.False(t, IsASCIIOnly([]byte("丂")))
	assert.False(t, IsASCIIOnly([]byte("tab\there")))
	assert.False(t, IsASCIIOnly([]byte{0x7F}))
}
